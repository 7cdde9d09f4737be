package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Inventory maps every category to its ordered entries. Keys outside the
// seven categories come from hand-edited or older data; they are carried
// through load and save untouched but never rolled or displayed.
type Inventory map[Category][]ItemEntry

// NewInventory returns an inventory with all seven categories present.
func NewInventory() Inventory {
	inv := make(Inventory, len(Categories()))
	inv.Materialize()
	return inv
}

// Materialize adds any missing category as an empty list.
func (inv Inventory) Materialize() {
	for _, c := range Categories() {
		if inv[c] == nil {
			inv[c] = []ItemEntry{}
		}
	}
}

// Count returns the number of entries across all categories.
func (inv Inventory) Count() int {
	n := 0
	for _, entries := range inv {
		n += len(entries)
	}
	return n
}

// IsEmpty reports whether none of the seven categories holds an entry.
func (inv Inventory) IsEmpty() bool {
	return len(inv.NonEmpty()) == 0
}

// Unknown returns the keys that are not one of the seven categories, sorted.
func (inv Inventory) Unknown() []Category {
	var out []Category
	for c := range inv {
		if !c.Valid() {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NonEmpty returns the categories holding at least one entry, in display order.
func (inv Inventory) NonEmpty() []Category {
	var out []Category
	for _, c := range Categories() {
		if len(inv[c]) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Add appends an entry to a category.
func (inv Inventory) Add(c Category, e ItemEntry) {
	inv[c] = append(inv[c], e)
}

// InsertAt puts e at index i of category c, appending when i is past the end.
func (inv Inventory) InsertAt(c Category, i int, e ItemEntry) {
	entries := inv[c]
	if i < 0 || i >= len(entries) {
		inv[c] = append(entries, e)
		return
	}
	out := make([]ItemEntry, 0, len(entries)+1)
	out = append(out, entries[:i]...)
	out = append(out, e)
	out = append(out, entries[i:]...)
	inv[c] = out
}

// RemoveAt deletes the entry at index i of category c and returns it.
func (inv Inventory) RemoveAt(c Category, i int) (ItemEntry, bool) {
	entries := inv[c]
	if i < 0 || i >= len(entries) {
		return ItemEntry{}, false
	}
	removed := entries[i]
	out := make([]ItemEntry, 0, len(entries)-1)
	out = append(out, entries[:i]...)
	out = append(out, entries[i+1:]...)
	inv[c] = out
	return removed, true
}

// Clone returns a deep copy.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for c, entries := range inv {
		out[c] = append([]ItemEntry{}, entries...)
	}
	return out
}

// MarshalJSON writes categories in display order, followed by any unknown
// keys in sorted order.
func (inv Inventory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, c := range append(Categories(), inv.Unknown()...) {
		entries, ok := inv[c]
		if !ok {
			continue
		}
		if entries == nil {
			entries = []ItemEntry{}
		}
		key, err := json.Marshal(string(c))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(entries)
		if err != nil {
			return nil, err
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts canonical and legacy category labels. Unknown labels
// are kept verbatim so that saving the inventory does not drop them.
func (inv *Inventory) UnmarshalJSON(data []byte) error {
	var raw map[string][]ItemEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Inventory, len(raw))
	for label, entries := range raw {
		c, ok := ParseCategory(label)
		if !ok {
			c = Category(label)
		}
		if out[c] == nil {
			out[c] = []ItemEntry{}
		}
		out[c] = append(out[c], entries...)
	}
	*inv = out
	return nil
}
