package loot

import (
	"fmt"

	"github.com/Ryladain/Inventory-files/internal/models"
)

// Day is the outcome of one loss/find cycle.
type Day struct {
	LostCategory  models.Category
	Lost          models.ItemEntry
	LossRoll      int
	FoundCategory models.Category
	Found         models.ItemEntry
	FindRoll      int
	Magic         *MagicFind // set when the find was a magic item
}

// SimulateDay removes one random entry from inv and appends one newly drawn
// entry. It returns ErrNothingToLose, leaving inv untouched, when inv is empty.
// A day that fails after the loss restores the lost entry to its position.
func (e *Engine) SimulateDay(inv models.Inventory) (Day, error) {
	lostCat, lost, lostAt, lossRoll, err := e.lose(inv)
	if err != nil {
		return Day{}, err
	}
	foundCat, found, findRoll, magic, err := e.find(inv)
	if err != nil {
		inv.InsertAt(lostCat, lostAt, lost)
		return Day{}, err
	}
	return Day{
		LostCategory:  lostCat,
		Lost:          lost,
		LossRoll:      lossRoll,
		FoundCategory: foundCat,
		Found:         found,
		FindRoll:      findRoll,
		Magic:         magic,
	}, nil
}

// lose rolls d20 until it lands on a category holding something. The
// up-front check guarantees termination; the reroll bound is a safety net
// after which the pick falls back to a d20-weighted choice among the
// non-empty categories.
func (e *Engine) lose(inv models.Inventory) (cat models.Category, entry models.ItemEntry, index, roll int, err error) {
	if inv.IsEmpty() {
		return "", models.ItemEntry{}, 0, 0, ErrNothingToLose
	}
	for i := 0; i < e.maxRerolls; i++ {
		roll = D20(e.src)
		cat = CategoryFor(roll)
		if len(inv[cat]) == 0 {
			continue
		}
		index = e.src.Intn(len(inv[cat]))
		entry, _ = inv.RemoveAt(cat, index)
		return cat, entry, index, roll, nil
	}

	cat, roll = e.weightedNonEmpty(inv)
	index = e.src.Intn(len(inv[cat]))
	entry, _ = inv.RemoveAt(cat, index)
	return cat, entry, index, roll, nil
}

// weightedNonEmpty picks a non-empty category with probability proportional
// to its share of the d20, and reports a face of the die that selects it.
func (e *Engine) weightedNonEmpty(inv models.Inventory) (models.Category, int) {
	total := 0
	for _, c := range inv.NonEmpty() {
		total += categoryWidth(c)
	}
	pick := e.src.Intn(total)
	for _, r := range d20Table {
		if len(inv[r.Category]) == 0 {
			continue
		}
		width := r.Hi - r.Lo + 1
		if pick < width {
			return r.Category, r.Lo + pick
		}
		pick -= width
	}
	panic("loot: weighted pick fell off the d20 table")
}

func (e *Engine) find(inv models.Inventory) (models.Category, models.ItemEntry, int, *MagicFind, error) {
	roll := D20(e.src)
	cat := CategoryFor(roll)
	if cat.IsMagic() {
		m := e.FindMagicItem()
		entry := m.Entry()
		inv.Add(cat, entry)
		return cat, entry, roll, &m, nil
	}
	name, err := e.DrawItem(cat)
	if err != nil {
		return "", models.ItemEntry{}, 0, nil, err
	}
	entry := models.CatalogEntry(name)
	inv.Add(cat, entry)
	return cat, entry, roll, nil, nil
}

// Simulate runs days cycles against inv in order. It fails fast on days < 1
// and stops at the first day that cannot complete, returning the days
// simulated so far.
func (e *Engine) Simulate(inv models.Inventory, days int) ([]Day, error) {
	if days < 1 {
		return nil, fmt.Errorf("simulate %d days: %w", days, ErrInvalidDays)
	}
	out := make([]Day, 0, days)
	for d := 1; d <= days; d++ {
		day, err := e.SimulateDay(inv)
		if err != nil {
			return out, fmt.Errorf("day %d: %w", d, err)
		}
		out = append(out, day)
	}
	return out, nil
}
