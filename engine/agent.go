package engine

import (
	"math"

	"hive/game"

	"golang.org/x/exp/rand"
)

// RandomAgent plays a uniformly random legal move.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) FindMove(state game.State) game.Move {
	moves := state.ValidMoves().Slice()
	if len(moves) == 0 {
		return game.Pass
	}
	return moves[a.rng.Intn(len(moves))]
}

// GreedyAgent looks one ply ahead and plays the move whose position scores
// best by the board metrics. Ties are broken at random.
type GreedyAgent struct {
	rng *rand.Rand
}

func NewGreedyAgent(seed uint64) *GreedyAgent {
	return &GreedyAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *GreedyAgent) FindMove(state game.State) game.Move {
	moves := state.ValidMoves().Slice()
	if len(moves) == 0 {
		return game.Pass
	}

	me := state.CurrentColor()
	best := math.MinInt
	var candidates []game.Move
	for _, m := range moves {
		state.TrustedPlay(m)
		score := Evaluate(state, me)
		if err := state.UndoLastMove(); err != nil {
			panic(err)
		}

		switch {
		case score > best:
			best = score
			candidates = append(candidates[:0], m)
		case score == best:
			candidates = append(candidates, m)
		}
	}
	return candidates[a.rng.Intn(len(candidates))]
}

// Evaluate scores state from c's point of view: crowding the enemy queen and
// keeping pieces mobile are good, a crowded own queen is bad.
func Evaluate(state game.State, c game.Color) int {
	if winner, ok := state.BoardState().Winner(); ok {
		if winner == c {
			return math.MaxInt
		}
		return math.MinInt + 1
	}
	if state.BoardState() == game.Draw {
		return 0
	}

	m := state.Metrics()
	score := 4 * (crowding(m, game.QueenOf(c.Opponent())) - crowding(m, game.QueenOf(c)))
	for _, name := range game.PiecesOf(c) {
		score += mobility(m.Pieces[name])
	}
	for _, name := range game.PiecesOf(c.Opponent()) {
		score -= mobility(m.Pieces[name])
	}
	return score
}

func crowding(m game.BoardMetrics, queen game.PieceName) int {
	p := m.Pieces[queen]
	return p.FriendlyNeighborCount + p.EnemyNeighborCount
}

func mobility(p game.PieceMetrics) int {
	return p.NoisyMoveCount + p.QuietMoveCount
}
