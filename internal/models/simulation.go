package models

import (
	"time"
)

// DayReport describes one simulated day.
type DayReport struct {
	Day              int       `json:"day"`
	LostCategory     Category  `json:"lost_category"`
	Lost             ItemEntry `json:"lost"`
	LossRoll         int       `json:"loss_roll"`
	LostDescription  string    `json:"lost_description"`
	FoundCategory    Category  `json:"found_category"`
	Found            ItemEntry `json:"found"`
	FindRoll         int       `json:"find_roll"`
	FoundDescription string    `json:"found_description"`
	RarityLabel      string    `json:"rarity_label,omitempty"` // magic finds only
	RarityRoll       int       `json:"rarity_roll,omitempty"`
}

// SimulationReport is the outcome of a multi-day simulation run.
type SimulationReport struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Days      []DayReport `json:"days"`
	CreatedAt time.Time   `json:"created_at"`
}

// SimulationSummary is a lightweight journal listing entry.
type SimulationSummary struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Days      int       `json:"days"`
	CreatedAt time.Time `json:"created_at"`
}

// Suggestion is a catalog match awaiting the user's confirmation.
type Suggestion struct {
	UserID      string   `json:"user_id"`
	Category    Category `json:"category"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Score       int      `json:"score"`
	Raw         string   `json:"raw"` // the user's original input, kept for the custom fallback
}

// AddItemRequest is the request body for adding an item.
type AddItemRequest struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// ConfirmRequest is the request body for answering a suggestion.
type ConfirmRequest struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Raw      string `json:"raw"`
	Accept   bool   `json:"accept"`
}

// SimulateRequest is the request body for a simulation run.
type SimulateRequest struct {
	Days int `json:"days"`
}
