package hands

import (
	"fmt"

	"github.com/lazharichir/ofc/cards"
)

// Bottom-line royalties, keyed by category
var bottomRoyalties = map[Category]int{
	Straight:      2,
	Flush:         4,
	FullHouse:     6,
	Quads:         10,
	StraightFlush: 15,
}

const bottomRoyalFlush = 25

// Middle-line royalties, keyed by category
var middleRoyalties = map[Category]int{
	Set:           2,
	Straight:      4,
	Flush:         8,
	FullHouse:     12,
	Quads:         20,
	StraightFlush: 30,
}

const middleRoyalFlush = 50

const (
	// MinTopPairRank is the lowest top pair that scores (66)
	MinTopPairRank = 6

	topPairBase = 1  // 66
	topSetBase  = 10 // 222
)

func newRoyalty(points int, name string) *Royalty {
	if points <= 0 {
		return nil
	}
	return &Royalty{Points: points, Label: fmt.Sprintf("+%d %s", points, name)}
}

func categoryRoyalty(ev Evaluation, table map[Category]int, royal int) *Royalty {
	if ev.Royal {
		return newRoyalty(royal, ev.Name)
	}
	return newRoyalty(table[ev.Category], ev.Name)
}

// BottomRoyalty returns the bottom-line bonus for a five card hand
func BottomRoyalty(ev Evaluation) *Royalty {
	return categoryRoyalty(ev, bottomRoyalties, bottomRoyalFlush)
}

// MiddleRoyalty returns the middle-line bonus for a five card hand
func MiddleRoyalty(ev Evaluation) *Royalty {
	return categoryRoyalty(ev, middleRoyalties, middleRoyalFlush)
}

// TopRoyalty returns the top-line bonus: pairs 66 (1) to AA (9), sets 222 (10) to AAA (22).
// Pairs below 66 never score.
func TopRoyalty(ev Evaluation) *Royalty {
	if len(ev.Kickers) == 0 {
		return nil
	}
	rank := ev.Kickers[0]
	value := cards.ValueOfRank(rank)

	switch ev.Category {
	case Set:
		return newRoyalty(topSetBase+rank-2, fmt.Sprintf("%s %s", Set, repeat(value, 3)))
	case Pair:
		if rank < MinTopPairRank {
			return nil
		}
		return newRoyalty(topPairBase+rank-MinTopPairRank, fmt.Sprintf("%s %s", Pair, repeat(value, 2)))
	default:
		return nil
	}
}

// PointsOrZero returns the royalty points, treating nil as zero
func (r *Royalty) PointsOrZero() int {
	if r == nil {
		return 0
	}
	return r.Points
}
