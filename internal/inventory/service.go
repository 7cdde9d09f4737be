// Package inventory is the core service: it reads and mutates per-user
// inventories under a per-user lock and runs loot simulations on them.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ryladain/Inventory-files/internal/catalog"
	"github.com/Ryladain/Inventory-files/internal/loot"
	"github.com/Ryladain/Inventory-files/internal/models"
	"github.com/Ryladain/Inventory-files/internal/roster"
	"github.com/Ryladain/Inventory-files/internal/storage"
)

var (
	// ErrUnknownCategory indicates a category label that matches none of the seven.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrItemNotFound indicates an item index outside the category's list.
	ErrItemNotFound = errors.New("item not found")
	// ErrEmptyName indicates an add request without an item name.
	ErrEmptyName = errors.New("item name is empty")
	// ErrTooManyDays indicates a simulation longer than the configured maximum.
	ErrTooManyDays = errors.New("too many days")
	// ErrNoJournal indicates the store keeps no simulation history.
	ErrNoJournal = errors.New("simulation history is not available")
	// ErrSimulationNotFound indicates an unknown simulation run ID.
	ErrSimulationNotFound = errors.New("simulation not found")
	// ErrNotInCatalog indicates an accepted suggestion whose name the catalog
	// does not know.
	ErrNotInCatalog = errors.New("item is not in the catalog")
	// ErrInvalidDays indicates a simulation shorter than one day.
	ErrInvalidDays = loot.ErrInvalidDays
)

// NoDescription is shown when neither the catalog nor the entry describes an item.
const NoDescription = "no description"

// Notifier delivers a short message to a user. Failures are logged, never
// surfaced to the caller.
type Notifier interface {
	Notify(ctx context.Context, userID int64, text string) error
}

// LogNotifier writes notifications to the log.
type LogNotifier struct{}

// Notify implements Notifier.
func (LogNotifier) Notify(_ context.Context, userID int64, text string) error {
	log.Printf("notify %d: %s", userID, text)
	return nil
}

// Deps are the collaborators a Service needs.
type Deps struct {
	Store    storage.Store
	Catalog  *catalog.Catalog
	Engine   *loot.Engine
	Matcher  *catalog.Matcher
	Roster   *roster.Roster
	Notifier Notifier
}

// Options are the service limits. Zero values select the defaults.
type Options struct {
	MaxSimulationDays       int
	ConfirmDescriptionLimit int
}

// Defaults for Options.
const (
	DefaultMaxSimulationDays       = 365
	DefaultConfirmDescriptionLimit = 350
)

// Service implements every inventory operation.
type Service struct {
	store    storage.Store
	journal  storage.Journal
	catalog  *catalog.Catalog
	matcher  *catalog.Matcher
	roster   *roster.Roster
	notifier Notifier
	locks    *storage.Locker

	engineMu sync.Mutex
	engine   *loot.Engine

	maxDays      int
	confirmLimit int
	now          func() time.Time
}

// New wires a Service.
func New(d Deps, opts Options) *Service {
	s := &Service{
		store:        d.Store,
		catalog:      d.Catalog,
		matcher:      d.Matcher,
		roster:       d.Roster,
		notifier:     d.Notifier,
		locks:        storage.NewLocker(),
		engine:       d.Engine,
		maxDays:      opts.MaxSimulationDays,
		confirmLimit: opts.ConfirmDescriptionLimit,
		now:          time.Now,
	}
	if j, ok := d.Store.(storage.Journal); ok {
		s.journal = j
	}
	if s.catalog == nil {
		s.catalog = catalog.New(nil, nil)
	}
	if s.matcher == nil {
		s.matcher = catalog.NewMatcher(catalog.DefaultMatchThreshold)
	}
	if s.roster == nil {
		s.roster = roster.New(0, nil, "")
	}
	if s.notifier == nil {
		s.notifier = LogNotifier{}
	}
	if s.maxDays <= 0 {
		s.maxDays = DefaultMaxSimulationDays
	}
	if s.confirmLimit <= 0 {
		s.confirmLimit = DefaultConfirmDescriptionLimit
	}
	return s
}

// Roster returns the group roster.
func (s *Service) Roster() *roster.Roster {
	return s.roster
}

// Catalog returns the item catalog.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// MaxSimulationDays returns the longest simulation accepted.
func (s *Service) MaxSimulationDays() int {
	return s.maxDays
}

// Categories returns the seven categories in display order.
func (s *Service) Categories() []models.Category {
	return models.Categories()
}

// ParseCategory resolves a user-supplied label.
func ParseCategory(label string) (models.Category, error) {
	c, ok := models.ParseCategory(label)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, label)
	}
	return c, nil
}

// Get returns target's inventory.
func (s *Service) Get(ctx context.Context, actor, target int64) (models.Inventory, error) {
	if err := s.roster.Authorize(actor, target, roster.View); err != nil {
		return nil, err
	}
	return s.store.Load(roster.Key(target))
}

// Item returns the catalog record for the entry at index of cat, falling
// back to a record built from the entry itself.
func (s *Service) Item(ctx context.Context, actor, target int64, label string, index int) (models.CatalogItem, error) {
	cat, err := ParseCategory(label)
	if err != nil {
		return models.CatalogItem{}, err
	}
	inv, err := s.Get(ctx, actor, target)
	if err != nil {
		return models.CatalogItem{}, err
	}
	entries := inv[cat]
	if index < 0 || index >= len(entries) {
		return models.CatalogItem{}, ErrItemNotFound
	}
	entry := entries[index]
	it, ok := s.catalog.Lookup(entry.Name, cat)
	if !ok {
		it = models.CatalogItem{Name: entry.Name, Category: string(cat)}
	}
	if it.Text() == "" && entry.Description != "" {
		it.Description = entry.Description
	}
	return it, nil
}

// AddResult is the outcome of Add: either an entry was stored, or a catalog
// match awaits confirmation.
type AddResult struct {
	Category   models.Category    `json:"category"`
	Added      *models.ItemEntry  `json:"added,omitempty"`
	Suggestion *models.Suggestion `json:"suggestion,omitempty"`
}

// SplitInput separates "name: description" free text.
func SplitInput(raw string) (name, description string) {
	name, description, _ = strings.Cut(raw, ":")
	return strings.TrimSpace(name), strings.TrimSpace(description)
}

// Add reconciles free text against the catalog. A match above the
// threshold is returned as a suggestion without touching the inventory;
// anything else is stored as a custom entry.
func (s *Service) Add(ctx context.Context, actor, target int64, label, raw string) (*AddResult, error) {
	cat, err := ParseCategory(label)
	if err != nil {
		return nil, err
	}
	if err := s.roster.Authorize(actor, target, roster.Edit); err != nil {
		return nil, err
	}
	name, desc := SplitInput(raw)
	if name == "" {
		return nil, ErrEmptyName
	}

	if m, ok := s.matcher.Closest(name, s.catalog.Pool(cat)); ok {
		text := m.Item.Text()
		if strings.TrimSpace(text) == "" {
			text = "— no description —"
		}
		return &AddResult{
			Category: cat,
			Suggestion: &models.Suggestion{
				UserID:      roster.Key(target),
				Category:    cat,
				Name:        m.Item.Name,
				Description: catalog.Shorten(text, s.confirmLimit),
				Score:       m.Score,
				Raw:         strings.TrimSpace(raw),
			},
		}, nil
	}

	entry := models.CustomEntry(name, desc)
	if err := s.append(ctx, actor, target, cat, entry); err != nil {
		return nil, err
	}
	return &AddResult{Category: cat, Added: &entry}, nil
}

// Confirm answers a suggestion: accepting stores the catalog's spelling of
// the name, declining stores the original input as a custom entry.
func (s *Service) Confirm(ctx context.Context, actor, target int64, req models.ConfirmRequest) (models.ItemEntry, error) {
	cat, err := ParseCategory(req.Category)
	if err != nil {
		return models.ItemEntry{}, err
	}
	if err := s.roster.Authorize(actor, target, roster.Edit); err != nil {
		return models.ItemEntry{}, err
	}

	var entry models.ItemEntry
	if req.Accept {
		if strings.TrimSpace(req.Name) == "" {
			return models.ItemEntry{}, ErrEmptyName
		}
		it, ok := s.catalog.Lookup(req.Name, cat)
		if !ok {
			return models.ItemEntry{}, fmt.Errorf("confirm %q: %w", req.Name, ErrNotInCatalog)
		}
		entry = models.CatalogEntry(it.Name)
	} else {
		raw := req.Raw
		if strings.TrimSpace(raw) == "" {
			raw = req.Name
		}
		name, desc := SplitInput(raw)
		if name == "" {
			return models.ItemEntry{}, ErrEmptyName
		}
		entry = models.CustomEntry(name, desc)
	}
	if err := s.append(ctx, actor, target, cat, entry); err != nil {
		return models.ItemEntry{}, err
	}
	return entry, nil
}

func (s *Service) append(ctx context.Context, actor, target int64, cat models.Category, entry models.ItemEntry) error {
	key := roster.Key(target)
	unlock := s.locks.Lock(key)
	defer unlock()

	inv, err := s.store.Load(key)
	if err != nil {
		return err
	}
	inv.Add(cat, entry)
	if err := s.store.Save(key, inv); err != nil {
		return err
	}
	s.notifyCounterpart(ctx, actor, target, fmt.Sprintf("added [%s] %s", cat, entry.Name))
	return nil
}

// Remove deletes the entry at index (0-based) of the category.
func (s *Service) Remove(ctx context.Context, actor, target int64, label string, index int) (models.ItemEntry, error) {
	cat, err := ParseCategory(label)
	if err != nil {
		return models.ItemEntry{}, err
	}
	if err := s.roster.Authorize(actor, target, roster.Edit); err != nil {
		return models.ItemEntry{}, err
	}

	key := roster.Key(target)
	unlock := s.locks.Lock(key)
	defer unlock()

	inv, err := s.store.Load(key)
	if err != nil {
		return models.ItemEntry{}, err
	}
	removed, ok := inv.RemoveAt(cat, index)
	if !ok {
		return models.ItemEntry{}, fmt.Errorf("%w: %s #%d", ErrItemNotFound, cat, index+1)
	}
	if err := s.store.Save(key, inv); err != nil {
		return models.ItemEntry{}, err
	}
	s.notifyCounterpart(ctx, actor, target, fmt.Sprintf("removed [%s] %s", cat, removed.Name))
	return removed, nil
}

// Simulate runs days loss/find cycles on target's inventory and saves the
// result once.
func (s *Service) Simulate(ctx context.Context, actor, target int64, days int) (*models.SimulationReport, error) {
	if days < 1 {
		return nil, fmt.Errorf("simulate %d days: %w", days, ErrInvalidDays)
	}
	if days > s.maxDays {
		return nil, fmt.Errorf("simulate %d days (max %d): %w", days, s.maxDays, ErrTooManyDays)
	}
	if err := s.roster.Authorize(actor, target, roster.Simulate); err != nil {
		return nil, err
	}

	key := roster.Key(target)
	unlock := s.locks.Lock(key)
	defer unlock()

	inv, err := s.store.Load(key)
	if err != nil {
		return nil, err
	}

	s.engineMu.Lock()
	simulated, err := s.engine.Simulate(inv, days)
	s.engineMu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(key, inv); err != nil {
		return nil, err
	}

	report := NewReport(s.catalog, key, simulated, s.now())
	if s.journal != nil {
		if err := s.journal.RecordSimulation(report); err != nil {
			log.Printf("Warning: failed to record simulation %s: %v", report.ID, err)
		}
	}
	if s.roster.Role(actor) != roster.Master && s.roster.MasterID() != 0 {
		s.notify(ctx, s.roster.MasterID(), fmt.Sprintf("%s simulated %d day(s)", s.displayName(actor), days))
	}
	return report, nil
}

// NewReport turns simulated days into a report with a fresh run ID, resolving
// each lost and found entry's description through cat.
func NewReport(cat *catalog.Catalog, userID string, days []loot.Day, at time.Time) *models.SimulationReport {
	report := &models.SimulationReport{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: at,
		Days:      make([]models.DayReport, 0, len(days)),
	}
	for i, d := range days {
		r := models.DayReport{
			Day:              i + 1,
			LostCategory:     d.LostCategory,
			Lost:             d.Lost,
			LossRoll:         d.LossRoll,
			LostDescription:  describe(cat, d.Lost, d.LostCategory),
			FoundCategory:    d.FoundCategory,
			Found:            d.Found,
			FindRoll:         d.FindRoll,
			FoundDescription: describe(cat, d.Found, d.FoundCategory),
		}
		if d.Magic != nil {
			r.RarityLabel = string(d.Magic.Label)
			r.RarityRoll = d.Magic.Roll
		}
		report.Days = append(report.Days, r)
	}
	return report
}

func describe(cat *catalog.Catalog, e models.ItemEntry, c models.Category) string {
	if text := cat.Describe(e, c); text != "" {
		return text
	}
	return NoDescription
}

// Simulations lists recent simulation runs for target.
func (s *Service) Simulations(ctx context.Context, actor, target int64, limit int) ([]models.SimulationSummary, error) {
	if err := s.roster.Authorize(actor, target, roster.View); err != nil {
		return nil, err
	}
	if s.journal == nil {
		return nil, ErrNoJournal
	}
	return s.journal.ListSimulations(roster.Key(target), limit)
}

// Simulation returns a recorded run. The caller must be allowed to view
// the inventory it was run on.
func (s *Service) Simulation(ctx context.Context, actor int64, id string) (*models.SimulationReport, error) {
	if s.journal == nil {
		return nil, ErrNoJournal
	}
	report, err := s.journal.GetSimulation(id)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, ErrSimulationNotFound
	}
	owner, err := strconv.ParseInt(report.UserID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("simulation %s has owner %q: %w", id, report.UserID, err)
	}
	if err := s.roster.Authorize(actor, owner, roster.View); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Service) displayName(id int64) string {
	if name, ok := s.roster.Name(id); ok {
		return name
	}
	return roster.Key(id)
}

// notifyCounterpart tells the player when the master changed their
// inventory, and the master when a player changed their own.
func (s *Service) notifyCounterpart(ctx context.Context, actor, target int64, action string) {
	switch s.roster.Role(actor) {
	case roster.Master:
		s.notify(ctx, target, "📜 The game master changed your inventory: "+action)
	case roster.Player:
		if m := s.roster.MasterID(); m != 0 {
			s.notify(ctx, m, fmt.Sprintf("🪶 Player %s %s", s.displayName(actor), action))
		}
	}
}

func (s *Service) notify(ctx context.Context, userID int64, text string) {
	if err := s.notifier.Notify(ctx, userID, text); err != nil {
		log.Printf("Warning: failed to notify %d: %v", userID, err)
	}
}
