package domain

import (
	"github.com/lazharichir/ofc/domain/hands"
)

const (
	// ScoopBonus is added for winning all three lines against one opponent
	ScoopBonus = 3
	// FoulPenalty is what a clean board collects from a fouled one: three lines plus the scoop
	FoulPenalty = 3 + ScoopBonus
)

// ShowdownPairResult is the head-to-head outcome between two players.
// Lines holds 1 when A won the line, -1 when B did and 0 for a tie.
type ShowdownPairResult struct {
	PlayerA     string
	PlayerB     string
	Lines       map[Line]int
	ScoopA      bool
	ScoopB      bool
	LinePointsA int
	LinePointsB int
	RoyaltyA    int
	RoyaltyB    int
	NetA        int
	NetB        int
}

// SettlePair compares two players' boards. The players are not modified.
func SettlePair(a, b *Player) ShowdownPairResult {
	r := ShowdownPairResult{
		PlayerA:  a.ID,
		PlayerB:  b.ID,
		Lines:    make(map[Line]int, len(Lines)),
		RoyaltyA: a.RoyaltyTotal(),
		RoyaltyB: b.RoyaltyTotal(),
	}

	switch {
	case a.IsFoul && b.IsFoul:
		for _, line := range Lines {
			r.Lines[line] = 0
		}

	case b.IsFoul:
		for _, line := range Lines {
			r.Lines[line] = 1
		}
		r.ScoopA = true
		r.LinePointsA = FoulPenalty

	case a.IsFoul:
		for _, line := range Lines {
			r.Lines[line] = -1
		}
		r.ScoopB = true
		r.LinePointsB = FoulPenalty

	default:
		winsA, winsB := 0, 0
		for _, line := range Lines {
			outcome := compareLine(a.Combinations[line], b.Combinations[line])
			r.Lines[line] = outcome
			switch outcome {
			case 1:
				winsA++
			case -1:
				winsB++
			}
		}
		r.LinePointsA, r.LinePointsB = winsA, winsB
		if winsA == len(Lines) {
			r.ScoopA = true
			r.LinePointsA += ScoopBonus
		}
		if winsB == len(Lines) {
			r.ScoopB = true
			r.LinePointsB += ScoopBonus
		}
	}

	r.NetA = (r.LinePointsA + r.RoyaltyA) - (r.LinePointsB + r.RoyaltyB)
	r.NetB = -r.NetA
	return r
}

// compareLine treats a missing line as losing to a made one
func compareLine(a, b *hands.Evaluation) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return hands.Compare(*a, *b)
	}
}

// Settle settles every unordered pair of players in seat order and adds each
// pair's net to the players' LastRoundScoreChange. Scores are not touched.
func Settle(players []*Player, rules Rules) []ShowdownPairResult {
	var results []ShowdownPairResult

	for i := 0; i < len(players); i++ {
		for j := i + 1; j < len(players); j++ {
			a, b := players[i], players[j]
			r := SettlePair(a, b)
			if rules.CapNetToOpponentStake {
				r.NetA = capNet(r.NetA, a, b)
				r.NetB = -r.NetA
			}
			a.LastRoundScoreChange += r.NetA
			b.LastRoundScoreChange += r.NetB
			results = append(results, r)
		}
	}

	return results
}

// capNet clamps what the winner takes to what the loser still has this hand
func capNet(netA int, a, b *Player) int {
	switch {
	case netA > 0:
		return min(netA, remainingStake(b))
	case netA < 0:
		return -min(-netA, remainingStake(a))
	default:
		return 0
	}
}

func remainingStake(p *Player) int {
	return max(0, p.Score+p.LastRoundScoreChange)
}
