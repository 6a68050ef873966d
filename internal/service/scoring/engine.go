package scoring

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TopK is the maximum number of ranked candidates returned.
const TopK = 5

// Side describes one party of a potential match: a need or a donation.
// Address holds the drop-off address for needs and the location label
// for donations. Expiry is set on the donation side only.
type Side struct {
	FoodType string
	Quantity string
	Address  string
	Expiry   *time.Time
}

// Candidate is a scorable entity with its identity.
type Candidate struct {
	ID uuid.UUID
	Side
}

// Match is a ranked candidate.
type Match struct {
	ID    uuid.UUID
	Score float64
}

// Score weights of the additive rubric.
const (
	foodTypeWeight      = 10
	quantityFullWeight  = 5
	quantityCloseWeight = 2
	localityWeight      = 3
	freshnessMaxDays    = 5
)

// Rank scores every candidate against the subject and returns the top
// TopK by descending score. The sort is stable: ties preserve the input
// order. Rank never filters; zero-score candidates are returned when
// fewer than TopK are available. Pure and deterministic for a given now.
func Rank(now time.Time, subject Side, candidates []Candidate) []Match {
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		matches = append(matches, Match{ID: c.ID, Score: Score(now, subject, c.Side)})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > TopK {
		matches = matches[:TopK]
	}
	return matches
}

// Score applies the additive rubric to a single (subject, candidate)
// pair. Total function: malformed quantities or addresses degrade to a
// zero contribution, never an error.
func Score(now time.Time, subject, cand Side) float64 {
	var score float64

	if subject.FoodType == cand.FoodType {
		score += foodTypeWeight
	}

	score += quantityScore(parseQuantity(subject.Quantity), parseQuantity(cand.Quantity))

	if tok := localityToken(subject.Address); tok != "" {
		if strings.Contains(strings.ToLower(cand.Address), tok) {
			score += localityWeight
		}
	}

	score += freshnessScore(now, donationExpiry(subject, cand))

	return score
}

// quantityScore awards full credit when the candidate covers the
// subject's quantity and partial credit for a relative deficit under
// 10%. A zero subject quantity is always covered, so the deficit ratio
// never divides by zero.
func quantityScore(subject, cand float64) float64 {
	if cand >= subject {
		return quantityFullWeight
	}
	if (subject-cand)/subject < 0.10 {
		return quantityCloseWeight
	}
	return 0
}

// freshnessScore rewards donations close to expiry: up to +5 for items
// expiring within hours, tapering to 0 at five days out. Expired items
// contribute 0, never a negative value.
func freshnessScore(now time.Time, expiry *time.Time) float64 {
	if expiry == nil {
		return 0
	}
	days := expiry.Sub(now).Hours() / 24
	if days <= 0 {
		return 0
	}
	if d := freshnessMaxDays - days; d > 0 {
		return d
	}
	return 0
}

// localityToken extracts the token after the first comma of an address,
// lowercased and trimmed. The tokenization is deliberately naive; no
// geocoding happens anywhere in the matching path.
func localityToken(addr string) string {
	_, rest, ok := strings.Cut(addr, ",")
	if !ok {
		return ""
	}
	if i := strings.Index(rest, ","); i >= 0 {
		rest = rest[:i]
	}
	return strings.ToLower(strings.TrimSpace(rest))
}

// parseQuantity parses a decimal-as-string quantity. Unparsable or
// negative values count as 0.
func parseQuantity(s string) float64 {
	q, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || q < 0 {
		return 0
	}
	return q
}

// donationExpiry returns the expiry of whichever side of the pair is
// the donation. Needs carry no expiry.
func donationExpiry(subject, cand Side) *time.Time {
	if cand.Expiry != nil {
		return cand.Expiry
	}
	return subject.Expiry
}
