// Package backup commits the inventory data file to a git remote on a
// schedule.
package backup

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Ryladain/Inventory-files/internal/config"
)

// ErrDisabled indicates a backup configuration without a repository.
var ErrDisabled = errors.New("backup disabled: GITHUB_REPO is not set")

// Runner executes a command in dir and returns its combined output.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Job pushes one file to the configured repository.
type Job struct {
	cfg    config.BackupConfig
	file   string
	runner Runner
	now    func() time.Time
}

// New returns a job backing up file. A nil runner selects ExecRunner.
func New(cfg config.BackupConfig, file string, runner Runner) (*Job, error) {
	if cfg.Repo == "" {
		return nil, ErrDisabled
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	return &Job{cfg: cfg, file: file, runner: runner, now: time.Now}, nil
}

func (j *Job) remote() string {
	if j.cfg.Token == "" {
		return fmt.Sprintf("https://github.com/%s.git", j.cfg.Repo)
	}
	return fmt.Sprintf("https://%s@github.com/%s.git", j.cfg.Token, j.cfg.Repo)
}

// redact hides the token in command output.
func (j *Job) redact(s string) string {
	if j.cfg.Token == "" {
		return s
	}
	return strings.ReplaceAll(s, j.cfg.Token, "***")
}

func (j *Job) git(ctx context.Context, dir string, args ...string) error {
	out, err := j.runner.Run(ctx, dir, "git", args...)
	if err != nil {
		return fmt.Errorf("git %s: %w: %s", args[0], err, j.redact(strings.TrimSpace(string(out))))
	}
	return nil
}

// Run stages, commits and pushes the file. An empty commit is not an error.
func (j *Job) Run(ctx context.Context) error {
	dir, base := filepath.Split(j.file)
	if dir == "" {
		dir = "."
	}

	if j.cfg.Email != "" {
		if err := j.git(ctx, dir, "config", "user.email", j.cfg.Email); err != nil {
			return err
		}
	}
	if j.cfg.Name != "" {
		if err := j.git(ctx, dir, "config", "user.name", j.cfg.Name); err != nil {
			return err
		}
	}
	if err := j.git(ctx, dir, "add", base); err != nil {
		return err
	}
	msg := "auto backup " + j.now().UTC().Format("2006-01-02 15:04:05")
	if err := j.git(ctx, dir, "commit", "-m", msg); err != nil {
		log.Printf("Backup: nothing committed: %v", err)
	}
	if err := j.git(ctx, dir, "push", j.remote(), "HEAD:"+j.cfg.Branch); err != nil {
		return err
	}
	log.Printf("💾 Backup pushed to %s (%s)", j.cfg.Repo, j.cfg.Branch)
	return nil
}

// Start schedules the job and returns the running cron. Failed runs are
// logged; the caller stops the cron on shutdown.
func Start(ctx context.Context, schedule string, job *Job) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		if err := job.Run(ctx); err != nil {
			log.Printf("Warning: backup failed: %v", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule backup %q: %w", schedule, err)
	}
	c.Start()
	log.Printf("💾 Backup scheduled %s", schedule)
	return c, nil
}
