package hands

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lazharichir/ofc/cards"
)

// Category is the ordered strength class of a made hand
type Category int

const (
	HighCard Category = iota + 1
	Pair
	TwoPair
	Set
	Straight
	Flush
	FullHouse
	Quads
	StraightFlush
)

var categoryNames = map[Category]string{
	HighCard:      "High Card",
	Pair:          "Pair",
	TwoPair:       "Two Pair",
	Set:           "Set",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	Quads:         "Four of a Kind",
	StraightFlush: "Straight Flush",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ErrInvalidHandSize is returned when a line is evaluated with the wrong number of cards.
var ErrInvalidHandSize = errors.New("invalid hand size")

// Royalty is a bonus awarded for a strong made hand on a given line
type Royalty struct {
	Points int
	Label  string
}

// Evaluation is the result of scoring one complete line
type Evaluation struct {
	Category Category
	Value    int64       // total order: category first, then kickers
	Kickers  []int       // ranks in comparison order, highest priority first
	Name     string      // e.g. "Pair JJ", "Royal Flush"
	Royal    bool        // straight flush T-J-Q-K-A
	Royalty  *Royalty    // nil when the hand earns nothing
	Cards    cards.Stack // sorted by rank, highest first
}

const (
	categoryWeight int64 = 10_000_000_000 // 10^10
	kickerBase     int64 = 100
)

// handValue packs a category and up to five kickers into one comparable integer:
// category*10^10 + k0*100^4 + k1*100^3 + ...
func handValue(category Category, kickers []int) int64 {
	value := int64(category) * categoryWeight
	weight := categoryWeight / kickerBase
	for _, k := range kickers {
		value += int64(k) * weight
		weight /= kickerBase
	}
	return value
}

// sortCardsByRank sorts a copy of the cards by rank, highest first
func sortCardsByRank(hand []cards.Card) cards.Stack {
	result := make(cards.Stack, len(hand))
	copy(result, hand)

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Rank() > result[j].Rank()
	})

	return result
}

// rankGroup is a rank together with how many times it appears in a hand
type rankGroup struct {
	rank  int
	count int
}

// groupRanks returns rank groups ordered by count, then rank, both descending
func groupRanks(sorted cards.Stack) []rankGroup {
	counts := make(map[int]int, len(sorted))
	for _, c := range sorted {
		counts[c.Rank()]++
	}

	groups := make([]rankGroup, 0, len(counts))
	for rank, count := range counts {
		groups = append(groups, rankGroup{rank: rank, count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	return groups
}

func groupRanksOnly(groups []rankGroup) []int {
	ranks := make([]int, len(groups))
	for i, g := range groups {
		ranks[i] = g.rank
	}
	return ranks
}

func isFlush(sorted cards.Stack) bool {
	for _, c := range sorted[1:] {
		if c.Suit != sorted[0].Suit {
			return false
		}
	}
	return true
}

// straightHigh returns the high card of a straight, or 0 when the hand is not one.
// The wheel A-2-3-4-5 plays as five high.
func straightHigh(sorted cards.Stack) int {
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Rank() == sorted[i-1].Rank() {
			return 0
		}
	}

	high, low := sorted[0].Rank(), sorted[len(sorted)-1].Rank()
	if high-low == 4 {
		return high
	}
	if high == 14 && sorted[1].Rank() == 5 && low == 2 {
		return 5
	}

	return 0
}

// isRoyal reports whether the five ranks are exactly T, J, Q, K, A
func isRoyal(sorted cards.Stack) bool {
	want := []int{14, 13, 12, 11, 10}
	for i, c := range sorted {
		if c.Rank() != want[i] {
			return false
		}
	}
	return true
}

func allRanks(sorted cards.Stack) []int {
	ranks := make([]int, len(sorted))
	for i, c := range sorted {
		ranks[i] = c.Rank()
	}
	return ranks
}

func repeat(v cards.Value, n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += string(v)
	}
	return s
}

// Evaluate5 scores exactly five cards. The middle-line royalty is attached;
// callers scoring a bottom line should use BottomRoyalty instead.
func Evaluate5(hand []cards.Card) (Evaluation, error) {
	if len(hand) != 5 {
		return Evaluation{}, fmt.Errorf("%w: want 5 cards, got %d", ErrInvalidHandSize, len(hand))
	}

	sorted := sortCardsByRank(hand)
	groups := groupRanks(sorted)
	flush := isFlush(sorted)
	high := straightHigh(sorted)

	ev := Evaluation{Cards: sorted}

	switch {
	case flush && high > 0:
		ev.Category = StraightFlush
		ev.Kickers = []int{high}
		ev.Royal = isRoyal(sorted)
		ev.Name = StraightFlush.String()
		if ev.Royal {
			ev.Name = "Royal Flush"
		}

	case groups[0].count == 4:
		ev.Category = Quads
		ev.Kickers = groupRanksOnly(groups)
		ev.Name = Quads.String()

	case groups[0].count == 3 && groups[1].count == 2:
		ev.Category = FullHouse
		ev.Kickers = groupRanksOnly(groups)
		ev.Name = FullHouse.String()

	case flush:
		ev.Category = Flush
		ev.Kickers = allRanks(sorted)
		ev.Name = Flush.String()

	case high > 0:
		ev.Category = Straight
		ev.Kickers = []int{high}
		ev.Name = Straight.String()

	case groups[0].count == 3:
		ev.Category = Set
		ev.Kickers = groupRanksOnly(groups)
		ev.Name = Set.String()

	case groups[0].count == 2 && groups[1].count == 2:
		ev.Category = TwoPair
		ev.Kickers = groupRanksOnly(groups)
		ev.Name = TwoPair.String()

	case groups[0].count == 2:
		ev.Category = Pair
		ev.Kickers = groupRanksOnly(groups)
		ev.Name = Pair.String()

	default:
		ev.Category = HighCard
		ev.Kickers = allRanks(sorted)
		ev.Name = fmt.Sprintf("%s %s", HighCard, sorted[0].Value)
	}

	ev.Value = handValue(ev.Category, ev.Kickers)
	ev.Royalty = MiddleRoyalty(ev)

	return ev, nil
}

// Evaluate3 scores exactly three cards as they play on the top line:
// Set, Pair or High Card, with the top-line royalty attached.
func Evaluate3(hand []cards.Card) (Evaluation, error) {
	if len(hand) != 3 {
		return Evaluation{}, fmt.Errorf("%w: want 3 cards, got %d", ErrInvalidHandSize, len(hand))
	}

	sorted := sortCardsByRank(hand)
	groups := groupRanks(sorted)

	ev := Evaluation{Cards: sorted}

	switch groups[0].count {
	case 3:
		ev.Category = Set
		ev.Kickers = []int{groups[0].rank}
		ev.Name = fmt.Sprintf("%s %s", Set, repeat(cards.ValueOfRank(groups[0].rank), 3))
	case 2:
		ev.Category = Pair
		ev.Kickers = groupRanksOnly(groups)
		ev.Name = fmt.Sprintf("%s %s", Pair, repeat(cards.ValueOfRank(groups[0].rank), 2))
	default:
		ev.Category = HighCard
		ev.Kickers = allRanks(sorted)
		ev.Name = fmt.Sprintf("%s %s", HighCard, sorted[0].Value)
	}

	ev.Value = handValue(ev.Category, ev.Kickers)
	ev.Royalty = TopRoyalty(ev)

	return ev, nil
}

// EvaluateLine dispatches on the number of cards: 3 for the top line, 5 otherwise
func EvaluateLine(hand []cards.Card) (Evaluation, error) {
	switch len(hand) {
	case 3:
		return Evaluate3(hand)
	case 5:
		return Evaluate5(hand)
	default:
		return Evaluation{}, fmt.Errorf("%w: want 3 or 5 cards, got %d", ErrInvalidHandSize, len(hand))
	}
}

// Compare returns 1 when a is stronger than b, -1 when weaker and 0 on a tie
func Compare(a, b Evaluation) int {
	switch {
	case a.Value > b.Value:
		return 1
	case a.Value < b.Value:
		return -1
	default:
		return 0
	}
}
