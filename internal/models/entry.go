package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EntryKind distinguishes catalog references from user-authored items.
type EntryKind int

const (
	KindCatalog EntryKind = iota
	KindCustom
)

func (k EntryKind) String() string {
	switch k {
	case KindCatalog:
		return "catalog"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// DescriptionSeparator joins an inline description to an item name in the
// flat string form.
const DescriptionSeparator = " — "

// legacyCustomMarker prefixed custom items in older data files.
const legacyCustomMarker = "⭐"

// DefaultCustomDescription is stored when a user adds a custom item without
// describing it.
const DefaultCustomDescription = "— custom description —"

// ItemEntry is a single inventory line. Catalog entries reference a catalog
// name and may carry an inline description (magic finds keep their audit
// suffix there); custom entries are authored by the user.
type ItemEntry struct {
	Kind        EntryKind `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// CatalogEntry builds a catalog reference.
func CatalogEntry(name string) ItemEntry {
	return ItemEntry{Kind: KindCatalog, Name: strings.TrimSpace(name)}
}

// CustomEntry builds a user-authored entry. An empty description is replaced
// with DefaultCustomDescription.
func CustomEntry(name, description string) ItemEntry {
	description = strings.TrimSpace(description)
	if description == "" {
		description = DefaultCustomDescription
	}
	return ItemEntry{Kind: KindCustom, Name: strings.TrimSpace(name), Description: description}
}

// IsCustom reports whether the entry was authored by a user.
func (e ItemEntry) IsCustom() bool {
	return e.Kind == KindCustom
}

// String renders the entry the way it is shown in chat.
func (e ItemEntry) String() string {
	s := e.Name
	if e.Description != "" {
		s += DescriptionSeparator + e.Description
	}
	if e.IsCustom() {
		s = legacyCustomMarker + " " + s
	}
	return s
}

// MarshalJSON writes catalog entries as flat strings and custom entries as
// {name, description} objects.
func (e ItemEntry) MarshalJSON() ([]byte, error) {
	if e.IsCustom() {
		return json.Marshal(struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}{e.Name, e.Description})
	}
	s := e.Name
	if e.Description != "" {
		s += DescriptionSeparator + e.Description
	}
	return json.Marshal(s)
}

// UnmarshalJSON accepts the string and object forms, including the legacy
// star-marked custom strings.
func (e *ItemEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = ParseEntry(s)
		return nil
	}

	var obj struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Desc        string `json:"desc"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("item entry must be a string or object: %w", err)
	}
	desc := obj.Description
	if desc == "" {
		desc = obj.Desc
	}
	*e = ItemEntry{Kind: KindCustom, Name: strings.TrimSpace(obj.Name), Description: strings.TrimSpace(desc)}
	return nil
}

// ParseEntry decodes the flat string form.
func ParseEntry(s string) ItemEntry {
	s = strings.TrimSpace(s)
	kind := KindCatalog
	if strings.HasPrefix(s, legacyCustomMarker) {
		kind = KindCustom
		s = strings.TrimSpace(strings.TrimPrefix(s, legacyCustomMarker))
	}
	name, desc, _ := strings.Cut(s, DescriptionSeparator)
	return ItemEntry{Kind: kind, Name: strings.TrimSpace(name), Description: strings.TrimSpace(desc)}
}
