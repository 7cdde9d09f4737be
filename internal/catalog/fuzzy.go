package catalog

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"github.com/Ryladain/Inventory-files/internal/models"
)

// DefaultMatchThreshold is the minimum score for a fuzzy match to be offered.
const DefaultMatchThreshold = 60

// Match is the best catalog candidate for a free-text name.
type Match struct {
	Item  models.CatalogItem
	Score int
}

// Matcher reconciles free-text item names against a candidate pool.
// Scores are deterministic: the same query, pool and threshold always
// produce the same decision.
type Matcher struct {
	Threshold int
}

// NewMatcher returns a matcher accepting scores >= threshold. A non-positive
// threshold selects DefaultMatchThreshold.
func NewMatcher(threshold int) *Matcher {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &Matcher{Threshold: threshold}
}

// Closest returns the highest scoring candidate if it reaches the threshold.
// Ties go to the earliest candidate in the pool.
func (m *Matcher) Closest(query string, pool []models.CatalogItem) (Match, bool) {
	q := Normalize(query)
	if q == "" {
		return Match{}, false
	}
	best := Match{Score: -1}
	for _, it := range pool {
		name := Normalize(it.Name)
		if name == "" {
			continue
		}
		if s := Score(q, name); s > best.Score {
			best = Match{Item: it, Score: s}
		}
	}
	if best.Score < m.Threshold {
		return Match{}, false
	}
	return best, true
}

// Score rates the similarity of two strings on a 0-100 scale. It takes the
// best of the plain ratio, a scaled partial ratio when the lengths differ a
// lot, and a scaled token-sort ratio.
func Score(a, b string) int {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 || lb == 0 {
		return 0
	}
	best := float64(ratio(a, b))

	if s := 0.95 * float64(ratio(tokenSort(a), tokenSort(b))); s > best {
		best = s
	}

	lenRatio := float64(max(la, lb)) / float64(min(la, lb))
	if lenRatio >= 1.5 {
		scale := 0.9
		if lenRatio >= 8 {
			scale = 0.6
		}
		if s := scale * float64(partialRatio(a, b)); s > best {
			best = s
		}
	}
	return int(math.Round(best))
}

// ratio is the Levenshtein similarity normalised by the longer string.
func ratio(a, b string) int {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := max(la, lb)
	if longest == 0 {
		return 100
	}
	d := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * (1 - float64(d)/float64(longest))))
}

// partialRatio is the best ratio of the shorter string against every window
// of the longer one.
func partialRatio(a, b string) int {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}
	s := string(short)
	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		if r := ratio(s, string(long[i:i+len(short)])); r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

func tokenSort(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !(r == '+' || r == '\'' || unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	sort.Strings(words)
	return strings.Join(words, " ")
}

