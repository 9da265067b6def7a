package game

// PieceMetrics describes one piece from its owner's point of view.
type PieceMetrics struct {
	InPlay                bool
	IsPinned              bool
	IsCovered             bool
	NoisyMoveCount        int
	QuietMoveCount        int
	FriendlyNeighborCount int
	EnemyNeighborCount    int
}

// BoardMetrics summarises a position for an evaluation function.
type BoardMetrics struct {
	BoardState   BoardState
	PiecesInPlay int
	PiecesInHand int
	Pieces       [NumPieceNames]PieceMetrics
}

// Metrics computes metrics for both colors. The board, its caches and the
// cache counters are left exactly as they were.
func (b *Board) Metrics() BoardMetrics {
	m := BoardMetrics{BoardState: b.state}
	b.collectMetrics(&m, b.CurrentColor())
	b.collectMetrics(&m, b.CurrentColor().Opponent())
	return m
}

// MetricsFor computes metrics for the pieces of color c only.
func (b *Board) MetricsFor(c Color) BoardMetrics {
	m := BoardMetrics{BoardState: b.state}
	b.collectMetrics(&m, c)
	return m
}

func (b *Board) collectMetrics(m *BoardMetrics, c Color) {
	if c == b.CurrentColor() {
		b.keepingCaches(func() {
			b.collectOwnMetrics(m, c)
		})
		return
	}
	b.asIfPassed(func() {
		b.collectOwnMetrics(m, c)
	})
}

// keepingCaches runs fn and then puts back the move caches and counters it saw.
func (b *Board) keepingCaches(fn func()) {
	savedCache := b.moveCache
	savedPlacements := b.placements
	savedQueenNeighbors := b.enemyQueenNeighbors
	savedStats := b.stats

	defer func() {
		b.moveCache = savedCache
		b.placements = savedPlacements
		b.enemyQueenNeighbors = savedQueenNeighbors
		b.stats = savedStats
	}()
	fn()
}

// asIfPassed runs fn with the side to move swapped, as if the current player
// had passed, then restores the ply, last moved piece, hash and caches.
func (b *Board) asIfPassed(fn func()) {
	b.keepingCaches(func() {
		savedLastMoved := b.lastMoved
		savedPly := b.ply
		savedHash := b.hash

		defer func() {
			b.lastMoved = savedLastMoved
			b.ply = savedPly
			b.hash = savedHash
		}()

		b.setLastMoved(NoPiece)
		b.setPly(b.ply + 1)
		fn()
	})
}

func (b *Board) collectOwnMetrics(m *BoardMetrics, c Color) {
	queenNeighbors := b.enemyQueenNeighborSet()
	for _, name := range PiecesOf(c) {
		if !b.expansions.Enabled(name) {
			continue
		}
		pm := PieceMetrics{InPlay: b.inPlay[name]}
		if !pm.InPlay {
			m.PiecesInHand++
			m.Pieces[name] = pm
			continue
		}
		m.PiecesInPlay++

		pos := b.positions[name]
		moves := b.ValidMovesFor(name)
		for mv := range moves.moves {
			// A throw is scored from the thrown piece's cell.
			_, originNearQueen := queenNeighbors[b.positions[mv.Piece].Ground()]
			_, destNearQueen := queenNeighbors[mv.Position.Ground()]
			if destNearQueen && !originNearQueen {
				pm.NoisyMoveCount++
			} else {
				pm.QuietMoveCount++
			}
		}
		pm.IsPinned = moves.Len() == 0
		pm.IsCovered = b.PieceAbove(name) != NoPiece

		for _, n := range pos.Ground().Neighbors() {
			top, ok := b.TopPieceAt(n)
			if !ok {
				continue
			}
			if top.Color() == c {
				pm.FriendlyNeighborCount++
			} else {
				pm.EnemyNeighborCount++
			}
		}
		m.Pieces[name] = pm
	}
}

// enemyQueenNeighborSet returns the ground cells around the opponent's queen.
func (b *Board) enemyQueenNeighborSet() map[Position]struct{} {
	if b.enemyQueenNeighbors != nil {
		return b.enemyQueenNeighbors
	}
	result := make(map[Position]struct{}, NumDirections)
	queen := QueenOf(b.CurrentColor().Opponent())
	if b.inPlay[queen] {
		for _, n := range b.positions[queen].Ground().Neighbors() {
			result[n] = struct{}{}
		}
	}
	b.enemyQueenNeighbors = result
	return result
}
