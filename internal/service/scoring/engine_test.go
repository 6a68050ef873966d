package scoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func ptrTime(t time.Time) *time.Time { return &t }

func TestScore_TypeAndQuantityOnly(t *testing.T) {
	subject := Side{FoodType: "rice", Quantity: "10"}
	cand := Side{FoodType: "rice", Quantity: "10"}

	require.Equal(t, 15.0, Score(now, subject, cand))

	cand.FoodType = "beans"
	require.Equal(t, 5.0, Score(now, subject, cand))
}

func TestScore_QuantityBranches(t *testing.T) {
	tests := []struct {
		name     string
		subjQty  string
		candQty  string
		expected float64
	}{
		{"covers", "10", "12", 15},
		{"exact", "10", "10", 15},
		{"close deficit", "10", "9.5", 12},
		{"large deficit", "10", "5", 10},
		{"zero subject", "0", "0", 15},
		{"unparsable candidate", "10", "a lot", 10},
		{"unparsable subject", "junk", "0", 15},
		{"negative candidate", "10", "-3", 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			subject := Side{FoodType: "rice", Quantity: tc.subjQty}
			cand := Side{FoodType: "rice", Quantity: tc.candQty}
			require.Equal(t, tc.expected, Score(now, subject, cand))
		})
	}
}

func TestScore_Locality(t *testing.T) {
	subject := Side{FoodType: "bread", Quantity: "8", Address: "12 Main St, Lagos"}
	cand := Side{FoodType: "bread", Quantity: "10", Address: "Lagos, Nigeria"}

	// 10 type + 5 qty + 3 locality
	require.Equal(t, 18.0, Score(now, subject, cand))

	// no comma in subject address: no locality signal
	subject.Address = "12 Main St Lagos"
	require.Equal(t, 15.0, Score(now, subject, cand))

	// token not contained in candidate label
	subject.Address = "12 Main St, Abuja"
	require.Equal(t, 15.0, Score(now, subject, cand))
}

func TestScore_LocalityTokenIsSecondCommaToken(t *testing.T) {
	require.Equal(t, "lagos", localityToken("12 Main St, Lagos, Nigeria"))
	require.Equal(t, "lagos", localityToken("12 Main St, LAGOS"))
	require.Equal(t, "", localityToken("no commas at all"))
	require.Equal(t, "", localityToken("trailing comma,"))
}

func TestScore_Freshness(t *testing.T) {
	subject := Side{FoodType: "bread", Quantity: "1"}

	cand := Side{FoodType: "bread", Quantity: "1", Expiry: ptrTime(now.Add(24 * time.Hour))}
	require.InDelta(t, 19.0, Score(now, subject, cand), 0.001) // 10+5+4

	cand.Expiry = ptrTime(now.Add(time.Hour))
	require.InDelta(t, 15+5-1.0/24, Score(now, subject, cand), 0.001)

	// 5+ days out tapers to zero
	cand.Expiry = ptrTime(now.Add(6 * 24 * time.Hour))
	require.Equal(t, 15.0, Score(now, subject, cand))

	// already expired: zero, never negative
	cand.Expiry = ptrTime(now.Add(-24 * time.Hour))
	require.Equal(t, 15.0, Score(now, subject, cand))
}

func TestScore_FreshnessUsesDonationSideOfThePair(t *testing.T) {
	// donation as subject (donation -> needs direction)
	donation := Side{FoodType: "bread", Quantity: "1", Expiry: ptrTime(now.Add(24 * time.Hour))}
	need := Side{FoodType: "bread", Quantity: "1"}
	require.InDelta(t, 19.0, Score(now, donation, need), 0.001)
}

func TestScore_ScenarioBreadLagos(t *testing.T) {
	need := Side{FoodType: "bread", Quantity: "8", Address: "12 Main St, Lagos"}
	donation := Side{
		FoodType: "bread",
		Quantity: "10",
		Address:  "Lagos, Nigeria",
		Expiry:   ptrTime(now.Add(24 * time.Hour)),
	}

	got := Score(now, need, donation)
	require.InDelta(t, 22.0, got, 0.01) // 10 + 5 + 3 + ~4
}

func TestRank_StableOrderOnTies(t *testing.T) {
	subject := Side{FoodType: "rice", Quantity: "10"}

	ids := make([]uuid.UUID, 4)
	cands := make([]Candidate, 4)
	for i := range cands {
		ids[i] = uuid.New()
		cands[i] = Candidate{ID: ids[i], Side: Side{FoodType: "rice", Quantity: "10"}}
	}

	got := Rank(now, subject, cands)
	require.Len(t, got, 4)
	for i, m := range got {
		require.Equal(t, ids[i], m.ID, "tie order must match input order")
		require.Equal(t, 15.0, m.Score)
	}
}

func TestRank_TruncatesToTopK(t *testing.T) {
	subject := Side{FoodType: "rice", Quantity: "10"}

	var cands []Candidate
	for i := 0; i < 9; i++ {
		cands = append(cands, Candidate{
			ID:   uuid.New(),
			Side: Side{FoodType: "rice", Quantity: fmt.Sprintf("%d", i+2)},
		})
	}

	got := Rank(now, subject, cands)
	require.Len(t, got, TopK)
	for i := 1; i < len(got); i++ {
		require.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestRank_DoesNotFilterZeroScores(t *testing.T) {
	subject := Side{FoodType: "rice", Quantity: "10"}
	cands := []Candidate{
		{ID: uuid.New(), Side: Side{FoodType: "beans", Quantity: "1"}},
	}

	got := Rank(now, subject, cands)
	require.Len(t, got, 1)
	require.Equal(t, 0.0, got[0].Score)
}

func TestRank_EmptyInput(t *testing.T) {
	got := Rank(now, Side{FoodType: "rice"}, nil)
	require.Empty(t, got)
}

func TestRank_Deterministic(t *testing.T) {
	subject := Side{FoodType: "rice", Quantity: "10", Address: "1 A St, Accra"}
	cands := []Candidate{
		{ID: uuid.New(), Side: Side{FoodType: "rice", Quantity: "12", Address: "Accra depot"}},
		{ID: uuid.New(), Side: Side{FoodType: "rice", Quantity: "9.8"}},
		{ID: uuid.New(), Side: Side{FoodType: "rice", Quantity: "3", Expiry: ptrTime(now.Add(12 * time.Hour))}},
	}

	first := Rank(now, subject, cands)
	second := Rank(now, subject, cands)
	require.Equal(t, first, second)
}
