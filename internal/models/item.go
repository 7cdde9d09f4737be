package models

// CatalogItem is a read-only reference entry from one of the catalogs.
type CatalogItem struct {
	Name        string                 `json:"name"`
	Category    string                 `json:"category"`
	Rarity      string                 `json:"rarity,omitempty"`
	Tier        string                 `json:"tier,omitempty"`
	Description string                 `json:"description,omitempty"`
	Desc        string                 `json:"desc,omitempty"` // older exports use "desc"
	Cost        string                 `json:"cost,omitempty"`
	Weight      string                 `json:"weight,omitempty"`
	Attunement  string                 `json:"attunement,omitempty"`
	SourceURL   string                 `json:"source_url,omitempty"`
	Props       map[string]interface{} `json:"props,omitempty"` // weapon/armor stats
	Magic       bool                   `json:"-"`
}

// Text returns the item's description from whichever field carries it.
func (it CatalogItem) Text() string {
	if it.Description != "" {
		return it.Description
	}
	return it.Desc
}

// Rarity is the base rarity used to narrow the magic catalog.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
	RarityVeryRare Rarity = "very rare"
)

// Tier is the minor/major split of magic items.
type Tier string

const (
	TierMinor Tier = "minor"
	TierMajor Tier = "major"
)

// RarityLabel is the outcome of the d100 rarity roll.
type RarityLabel string

const (
	LabelCommon          RarityLabel = "common"
	LabelUncommon        RarityLabel = "uncommon"
	LabelRare            RarityLabel = "rare"
	LabelNotableUncommon RarityLabel = "notable uncommon"
	LabelVeryRare        RarityLabel = "very rare"
	LabelNotableRare     RarityLabel = "notable rare"
)
