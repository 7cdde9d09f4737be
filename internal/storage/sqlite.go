package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Ryladain/Inventory-files/internal/models"
)

// SQLite handles all database operations
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite store
func New(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLite{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *SQLite) Close() error {
	return s.db.Close()
}

// migrate runs database migrations
func (s *SQLite) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS inventories (
			user_id TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS simulations (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			days INTEGER NOT NULL,
			report TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_simulations_user ON simulations(user_id, created_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// --- Inventories ---

// Load returns the inventory for a user, or a fresh one if none is stored
func (s *SQLite) Load(userID string) (models.Inventory, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM inventories WHERE user_id = ?`, userID).Scan(&data)
	if err == sql.ErrNoRows {
		return models.NewInventory(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load inventory %s: %w", userID, err)
	}
	return decodeInventory(userID, []byte(data))
}

// Save upserts the inventory for a user
func (s *SQLite) Save(userID string, inv models.Inventory) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("encode inventory %s: %w", userID, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO inventories (user_id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, userID, string(data), time.Now())
	if err != nil {
		return fmt.Errorf("save inventory %s: %w", userID, err)
	}
	return nil
}

// BulkSave writes many inventories in a transaction
func (s *SQLite) BulkSave(invs map[string]models.Inventory) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO inventories (user_id, data, updated_at) VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for userID, inv := range invs {
		data, err := json.Marshal(inv)
		if err != nil {
			return fmt.Errorf("encode inventory %s: %w", userID, err)
		}
		if _, err := stmt.Exec(userID, string(data), now); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// UserIDs returns every user with a stored inventory
func (s *SQLite) UserIDs() ([]string, error) {
	rows, err := s.db.Query(`SELECT user_id FROM inventories ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// --- Simulations ---

// RecordSimulation stores a simulation report, assigning an ID if it has none
func (s *SQLite) RecordSimulation(report *models.SimulationReport) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode simulation %s: %w", report.ID, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO simulations (id, user_id, days, report, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, report.ID, report.UserID, len(report.Days), string(data), report.CreatedAt)
	return err
}

// ListSimulations returns the most recent runs for a user
func (s *SQLite) ListSimulations(userID string, limit int) ([]models.SimulationSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, user_id, days, created_at
		FROM simulations WHERE user_id = ? ORDER BY created_at DESC LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SimulationSummary
	for rows.Next() {
		var sum models.SimulationSummary
		if err := rows.Scan(&sum.ID, &sum.UserID, &sum.Days, &sum.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// GetSimulation returns a simulation report by ID
func (s *SQLite) GetSimulation(id string) (*models.SimulationReport, error) {
	var data string
	err := s.db.QueryRow(`SELECT report FROM simulations WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var report models.SimulationReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("decode simulation %s: %w", id, err)
	}
	return &report, nil
}
