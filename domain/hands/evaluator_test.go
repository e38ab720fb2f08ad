package hands

import (
	"errors"
	"math/rand"
	"testing"

	poker "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazharichir/ofc/cards"
)

func mustEval(t *testing.T, s string) Evaluation {
	t.Helper()
	ev, err := EvaluateLine(cards.MustParse(s))
	require.NoError(t, err)
	return ev
}

func TestEvaluate5_Categories(t *testing.T) {
	tests := []struct {
		name     string
		hand     string
		category Category
		kickers  []int
		label    string
	}{
		{"royal flush", "Ah Kh Qh Jh Th", StraightFlush, []int{14}, "Royal Flush"},
		{"straight flush", "9s 8s 7s 6s 5s", StraightFlush, []int{9}, "Straight Flush"},
		{"steel wheel", "As 2s 3s 4s 5s", StraightFlush, []int{5}, "Straight Flush"},
		{"quads", "7h 7d 7c 7s Kh", Quads, []int{7, 13}, "Four of a Kind"},
		{"full house", "Kh Kd Kc 7s 7h", FullHouse, []int{13, 7}, "Full House"},
		{"flush", "Ad 9d 7d 4d 2d", Flush, []int{14, 9, 7, 4, 2}, "Flush"},
		{"straight", "9h 8d 7c 6s 5h", Straight, []int{9}, "Straight"},
		{"wheel", "Ah 2d 3c 4s 5h", Straight, []int{5}, "Straight"},
		{"broadway", "Ah Kd Qc Js Th", Straight, []int{14}, "Straight"},
		{"set", "Qh Qd Qc 9s 2h", Set, []int{12, 9, 2}, "Set"},
		{"two pair", "Jh Jd 4c 4s Ah", TwoPair, []int{11, 4, 14}, "Two Pair"},
		{"pair", "8h 8d Ac 9s 2h", Pair, []int{8, 14, 9, 2}, "Pair"},
		{"high card", "Kh Jd 8c 5s 3h", HighCard, []int{13, 11, 8, 5, 3}, "High Card K"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := mustEval(t, tt.hand)
			assert.Equal(t, tt.category, ev.Category)
			assert.Equal(t, tt.kickers, ev.Kickers)
			assert.Equal(t, tt.label, ev.Name)
			assert.Equal(t, tt.name == "royal flush", ev.Royal)
		})
	}
}

func TestEvaluate3_Categories(t *testing.T) {
	tests := []struct {
		hand     string
		category Category
		kickers  []int
		name     string
	}{
		{"7h 7d 7c", Set, []int{7}, "Set 777"},
		{"Jh Jd 2c", Pair, []int{11, 2}, "Pair JJ"},
		{"Ah Kd Qc", HighCard, []int{14, 13, 12}, "High Card A"},
	}

	for _, tt := range tests {
		t.Run(tt.hand, func(t *testing.T) {
			ev := mustEval(t, tt.hand)
			assert.Equal(t, tt.category, ev.Category)
			assert.Equal(t, tt.kickers, ev.Kickers)
			assert.Equal(t, tt.name, ev.Name)
		})
	}
}

func TestEvaluate_InvalidHandSize(t *testing.T) {
	_, err := Evaluate5(cards.MustParse("Ah Kh Qh"))
	assert.True(t, errors.Is(err, ErrInvalidHandSize))

	_, err = Evaluate3(cards.MustParse("Ah Kh Qh Jh"))
	assert.True(t, errors.Is(err, ErrInvalidHandSize))

	_, err = EvaluateLine(cards.MustParse("Ah Kh Qh Jh"))
	assert.True(t, errors.Is(err, ErrInvalidHandSize))

	_, err = EvaluateLine(nil)
	assert.True(t, errors.Is(err, ErrInvalidHandSize))
}

func TestHandValue(t *testing.T) {
	ev := mustEval(t, "Jh Jd 4c 4s Ah")
	assert.Equal(t, int64(3*10_000_000_000+11*100_000_000+4*1_000_000+14*10_000), ev.Value)
}

func TestWheelOrdering(t *testing.T) {
	wheel := mustEval(t, "Ah 2d 3c 4s 5h")
	sixHigh := mustEval(t, "2h 3d 4c 5s 6h")
	pair := mustEval(t, "Ah Ad Kc Qs Jh")

	assert.Equal(t, -1, Compare(wheel, sixHigh))
	assert.Equal(t, 1, Compare(wheel, pair))
}

func TestCategoriesNeverOverlap(t *testing.T) {
	// the weakest hand of each category beats the strongest hand of the one below
	ordered := []string{
		"7h 5d 4c 3s 2h", "Ah Kd Qc Js 9h", // high card
		"2h 2d 3c 4s 5h", "Ah Ad Kc Qs Jh", // pair
		"3h 3d 2c 2s 4h", "Ah Ad Kc Ks Qh", // two pair
		"2h 2d 2c 3s 4h", "Ah Ad Ac Ks Qh", // set
		"Ah 2d 3c 4s 5h", "Ah Kd Qc Js Th", // straight
		"7h 5h 4h 3h 2h", "Ah Kh Qh Jh 9h", // flush
		"2h 2d 2c 3s 3h", "Ah Ad Ac Ks Kh", // full house
		"2h 2d 2c 2s 3h", "Ah Ad Ac As Kh", // quads
		"Ah 2h 3h 4h 5h", "Ah Kh Qh Jh Th", // straight flush
	}

	for i := 1; i < len(ordered); i++ {
		lower := mustEval(t, ordered[i-1])
		higher := mustEval(t, ordered[i])
		assert.Equal(t, 1, Compare(higher, lower), "%s should beat %s", ordered[i], ordered[i-1])
		assert.GreaterOrEqual(t, higher.Category, lower.Category)
	}
}

func TestCompare_AntisymmetricAndReflexive(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		deck := cards.NewDeck52()
		deck.Shuffle(r)
		a, err := Evaluate5(deck[:5])
		require.NoError(t, err)
		b, err := Evaluate5(deck[5:10])
		require.NoError(t, err)

		assert.Equal(t, -Compare(b, a), Compare(a, b))
		assert.Equal(t, 0, Compare(a, a))
	}
}

func TestCompare_TieOnIdenticalRanks(t *testing.T) {
	a := mustEval(t, "Kh Kd 9c 5s 2h")
	b := mustEval(t, "Ks Kc 9d 5h 2c")
	assert.Equal(t, 0, Compare(a, b))
}

func libraryScore(t *testing.T, cs cards.Stack) int16 {
	t.Helper()
	pcs, err := toLibraryCards(cs)
	require.NoError(t, err)
	switch len(pcs) {
	case 5:
		var a5 [5]poker.Card
		copy(a5[:], pcs)
		return poker.Eval5(&a5)
	default:
		var a3 [3]poker.Card
		copy(a3[:], pcs)
		return poker.Eval3(&a3)
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

func TestCompare_AgreesWithLibrary(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	for _, size := range []int{3, 5} {
		for i := 0; i < 2000; i++ {
			deck := cards.NewDeck52()
			deck.Shuffle(r)
			left, right := deck[:size], deck[size:2*size]

			a, err := EvaluateLine(left)
			require.NoError(t, err)
			b, err := EvaluateLine(right)
			require.NoError(t, err)

			want := sign(int(libraryScore(t, left)) - int(libraryScore(t, right)))
			require.Equal(t, want, Compare(a, b), "%s vs %s", left, right)
		}
	}
}

func TestDescribe(t *testing.T) {
	ev := mustEval(t, "Ah Kh Qh Jh Th")
	assert.NotEmpty(t, Describe(ev))

	assert.Equal(t, "Pair JJ", Describe(Evaluation{Name: "Pair JJ"}))
}
