// Package storage persists inventories keyed by user id.
package storage

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Ryladain/Inventory-files/internal/models"
)

// ErrMalformedInventory is returned by Load when a user's stored document
// cannot be decoded. The document is left in place.
var ErrMalformedInventory = errors.New("stored inventory is malformed")

// Store loads and saves whole inventories. Load never fails for an unknown
// user: it returns a fresh inventory with every category present.
type Store interface {
	Load(userID string) (models.Inventory, error)
	Save(userID string, inv models.Inventory) error
	UserIDs() ([]string, error)
	Close() error
}

// Journal records simulation runs. Stores that keep history implement it.
type Journal interface {
	RecordSimulation(report *models.SimulationReport) error
	ListSimulations(userID string, limit int) ([]models.SimulationSummary, error)
	GetSimulation(id string) (*models.SimulationReport, error)
}

// Drivers accepted by Open.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Open returns the store for driver at path.
func Open(driver, path string) (Store, error) {
	switch driver {
	case DriverJSON, "":
		return NewJSONFile(path), nil
	case DriverSQLite:
		s, err := New(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

// Locker hands out one mutex per user id so that each load-mutate-save
// sequence runs alone.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLocker returns an empty Locker.
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*sync.Mutex)}
}

// Lock blocks until userID is free and returns the matching unlock.
func (l *Locker) Lock(userID string) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
