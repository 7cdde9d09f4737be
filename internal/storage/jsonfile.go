package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Ryladain/Inventory-files/internal/models"
)

// JSONFile keeps every inventory in one JSON document keyed by user id.
// Each operation reads or writes the whole file.
type JSONFile struct {
	path string
	mu   sync.Mutex
}

// NewJSONFile returns a store backed by path. The file is created on the
// first Save.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Path returns the backing file.
func (s *JSONFile) Path() string {
	return s.path
}

// readAll returns the raw per-user documents. A missing file is an empty
// store; a malformed one is set aside as <path>.corrupt and treated as empty.
func (s *JSONFile) readAll() map[string]json.RawMessage {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}
	}
	if err != nil {
		log.Printf("Warning: failed to read store %s: %v", s.path, err)
		return map[string]json.RawMessage{}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]json.RawMessage{}
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		log.Printf("Warning: store %s is malformed, starting fresh: %v", s.path, err)
		if err := os.WriteFile(s.path+".corrupt", data, 0o644); err != nil {
			log.Printf("Warning: failed to keep a copy of the malformed store: %v", err)
		}
		return map[string]json.RawMessage{}
	}
	if all == nil {
		all = map[string]json.RawMessage{}
	}
	return all
}

func (s *JSONFile) writeAll(all map[string]json.RawMessage) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(all); err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}

// Load returns the inventory for userID.
func (s *JSONFile) Load(userID string) (models.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.readAll()[userID]
	if !ok {
		return models.NewInventory(), nil
	}
	return decodeInventory(userID, raw)
}

// Save replaces the inventory for userID, leaving every other user's
// document as it was, even ones this version cannot decode.
func (s *JSONFile) Save(userID string, inv models.Inventory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("encode inventory %s: %w", userID, err)
	}
	all := s.readAll()
	all[userID] = data
	return s.writeAll(all)
}

// UserIDs lists every user with a stored inventory, sorted.
func (s *JSONFile) UserIDs() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.readAll()
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close is a no-op; the file is not held open.
func (s *JSONFile) Close() error {
	return nil
}

// decodeInventory refuses documents it cannot read instead of starting fresh,
// so the caller never saves over them.
func decodeInventory(userID string, raw []byte) (models.Inventory, error) {
	var inv models.Inventory
	if err := json.Unmarshal(raw, &inv); err != nil {
		return nil, fmt.Errorf("inventory %s: %w: %v", userID, ErrMalformedInventory, err)
	}
	if inv == nil {
		inv = models.NewInventory()
	}
	if unknown := inv.Unknown(); len(unknown) > 0 {
		log.Printf("Warning: inventory for %s has unknown categories %v, keeping them as is", userID, unknown)
	}
	inv.Materialize()
	return inv, nil
}
