package game

import "fmt"

// CacheStats counts valid-move cache traffic per piece and bulk invalidations.
type CacheStats struct {
	Hits   [NumPieceNames]uint64
	Misses [NumPieceNames]uint64
	Resets uint64
}

// Board holds the pieces of one game and generates their legal moves.
// A Board is not safe for concurrent use.
type Board struct {
	expansions ExpansionPieces

	positions [NumPieceNames]Position
	inPlay    [NumPieceNames]bool
	// stacks maps a ground cell to its pieces, bottom first. Empty stacks are removed.
	stacks map[Position][]PieceName

	ply       int
	lastMoved PieceName
	state     BoardState
	hash      uint64

	moveCache           [NumPieceNames]*MoveSet
	placements          map[Position]struct{}
	enemyQueenNeighbors map[Position]struct{}
	stats               CacheStats
}

// NewBoard returns an empty board for the given expansions.
func NewBoard(expansions ExpansionPieces) *Board {
	b := &Board{
		expansions: expansions,
		stacks:     make(map[Position][]PieceName),
		lastMoved:  NoPiece,
		state:      NotStarted,
	}
	for i := range b.positions {
		b.positions[i] = InHand
	}
	return b
}

func (b *Board) Expansions() ExpansionPieces { return b.expansions }
func (b *Board) BoardState() BoardState      { return b.state }
func (b *Board) Ply() int                    { return b.ply }
func (b *Board) ZobristKey() uint64          { return b.hash }
func (b *Board) CacheStats() CacheStats      { return b.stats }

// CurrentColor is the color to move.
func (b *Board) CurrentColor() Color { return Color(b.ply % NumColors) }

// CurrentTurn is the turn number of the player to move, starting at 1.
func (b *Board) CurrentTurn() int { return 1 + b.ply/NumColors }

// LastPieceMoved returns the piece moved on the previous ply, or NoPiece.
// It is only tracked when the Pillbug expansion is enabled.
func (b *Board) LastPieceMoved() PieceName { return b.lastMoved }

func (b *Board) GameInProgress() bool { return !b.state.IsOver() }

// Piece returns a view of the named piece.
func (b *Board) Piece(name PieceName) Piece {
	return Piece{Name: name, Position: b.positions[name]}
}

// Pieces returns every piece that is in play, in enumeration order.
func (b *Board) Pieces() []Piece {
	var result []Piece
	for name := PieceName(0); name < NumPieceNames; name++ {
		if b.inPlay[name] {
			result = append(result, b.Piece(name))
		}
	}
	return result
}

func (b *Board) InPlay(name PieceName) bool { return name.Valid() && b.inPlay[name] }

// PieceAt returns the piece occupying exactly pos, or NoPiece.
func (b *Board) PieceAt(pos Position) PieceName {
	if pos.IsInHand() {
		return NoPiece
	}
	stack := b.stacks[pos.Ground()]
	if pos.Stack >= len(stack) {
		return NoPiece
	}
	return stack[pos.Stack]
}

func (b *Board) HasPieceAt(pos Position) bool { return b.PieceAt(pos) != NoPiece }

// TopPieceAt returns the highest piece of pos's stack.
func (b *Board) TopPieceAt(pos Position) (PieceName, bool) {
	stack := b.stacks[pos.Ground()]
	if len(stack) == 0 {
		return NoPiece, false
	}
	return stack[len(stack)-1], true
}

// stackHeight is the number of pieces in pos's stack, which is also the
// stack level a piece arriving there lands on.
func (b *Board) stackHeight(pos Position) int { return len(b.stacks[pos.Ground()]) }

// PieceAbove returns the piece directly on top of name, or NoPiece.
func (b *Board) PieceAbove(name PieceName) PieceName {
	if !b.InPlay(name) {
		return NoPiece
	}
	return b.PieceAt(b.positions[name].Above())
}

// PieceBelow returns the piece directly underneath name, or NoPiece.
func (b *Board) PieceBelow(name PieceName) PieceName {
	if !b.InPlay(name) {
		return NoPiece
	}
	below, ok := b.positions[name].Below()
	if !ok {
		return NoPiece
	}
	return b.PieceAt(below)
}

func (b *Board) isOnTop(name PieceName) bool {
	return b.inPlay[name] && b.PieceAbove(name) == NoPiece
}

func (b *Board) QueenInPlay(c Color) bool { return b.inPlay[QueenOf(c)] }

// CountInPlay returns how many pieces of color c are on the board.
func (b *Board) CountInPlay(c Color) int {
	n := 0
	for _, name := range PiecesOf(c) {
		if b.inPlay[name] {
			n++
		}
	}
	return n
}

// lift removes a top-of-stack piece from the board.
func (b *Board) lift(name PieceName) {
	pos := b.positions[name]
	hex := pos.Ground()
	stack := b.stacks[hex]
	if len(stack) == 0 || stack[len(stack)-1] != name {
		panic(fmt.Sprintf("lift %s: not on top of its stack", name))
	}
	if len(stack) == 1 {
		delete(b.stacks, hex)
	} else {
		b.stacks[hex] = stack[:len(stack)-1]
	}
	b.inPlay[name] = false
	b.positions[name] = InHand
	b.hash ^= pieceKey(name, pos)
}

// drop puts an off-board piece on top of pos's stack. pos.Stack must equal
// the current height of that stack.
func (b *Board) drop(name PieceName, pos Position) {
	hex := pos.Ground()
	stack := b.stacks[hex]
	if pos.Stack != len(stack) {
		panic(fmt.Sprintf("drop %s at %s: stack height is %d", name, pos, len(stack)))
	}
	b.stacks[hex] = append(stack, name)
	b.inPlay[name] = true
	b.positions[name] = pos
	b.hash ^= pieceKey(name, pos)
}

// movePiece relocates a piece. Passing InHand returns it to its owner's hand.
func (b *Board) movePiece(name PieceName, to Position) {
	if b.inPlay[name] {
		b.lift(name)
	}
	if !to.IsInHand() {
		b.drop(name, to)
	}
}

// withLifted runs fn with name temporarily off the board and puts it back
// on every exit path.
func (b *Board) withLifted(name PieceName, fn func(from Position)) {
	from := b.positions[name]
	b.lift(name)
	defer b.drop(name, from)
	fn(from)
}

func (b *Board) tracksLastMoved() bool { return b.expansions.Has(PillbugPieces) }

func (b *Board) setLastMoved(name PieceName) {
	if !b.tracksLastMoved() {
		return
	}
	b.hash ^= lastMovedKey(b.lastMoved) ^ lastMovedKey(name)
	b.lastMoved = name
}

// setPly changes the ply counter, flipping the side to move in the hash and
// dropping every cached move set.
func (b *Board) setPly(ply int) {
	if ply%NumColors != b.ply%NumColors {
		b.hash ^= zobristTurn
	}
	b.ply = ply
	b.resetCaches()
}

func (b *Board) resetCaches() {
	for i := range b.moveCache {
		b.moveCache[i] = nil
	}
	b.placements = nil
	b.enemyQueenNeighbors = nil
	b.stats.Resets++
}

// applyMove performs m without validation and advances the ply.
func (b *Board) applyMove(m Move) {
	if m.IsPass() {
		b.setLastMoved(NoPiece)
	} else {
		b.movePiece(m.Piece, m.Position)
		b.setLastMoved(m.Piece)
	}
	b.setPly(b.ply + 1)
	b.updateBoardState()
}

// revertMove puts piece back at from and rewinds the ply. lastMoved is the
// piece moved on the ply before the reverted one.
func (b *Board) revertMove(piece PieceName, from Position, lastMoved PieceName) {
	if piece != NoPiece {
		b.movePiece(piece, from)
	}
	b.setLastMoved(lastMoved)
	b.setPly(b.ply - 1)
	b.updateBoardState()
}

// queenNeighborCount returns the number of occupied cells around c's queen,
// or -1 if it is not in play.
func (b *Board) queenNeighborCount(c Color) int {
	queen := QueenOf(c)
	if !b.inPlay[queen] {
		return -1
	}
	n := 0
	for _, pos := range b.positions[queen].Ground().Neighbors() {
		if b.HasPieceAt(pos) {
			n++
		}
	}
	return n
}

func (b *Board) updateBoardState() {
	whiteLost := b.queenNeighborCount(White) == NumDirections
	blackLost := b.queenNeighborCount(Black) == NumDirections
	switch {
	case whiteLost && blackLost:
		b.state = Draw
	case whiteLost:
		b.state = BlackWins
	case blackLost:
		b.state = WhiteWins
	case b.ply == 0:
		b.state = NotStarted
	default:
		b.state = InProgress
	}
}

// IsOneHive reports whether all placed pieces form a single connected group.
func (b *Board) IsOneHive() bool {
	placed := 0
	var start Position
	for hex, stack := range b.stacks {
		placed += len(stack)
		start = hex
	}
	if placed == 0 {
		return true
	}

	visited := map[Position]struct{}{start: {}}
	queue := []Position{start}
	reached := 0
	for len(queue) > 0 {
		hex := queue[0]
		queue = queue[1:]
		reached += len(b.stacks[hex])
		for _, n := range hex.Neighbors() {
			if _, seen := visited[n]; seen || !b.HasPieceAt(n) {
				continue
			}
			visited[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return reached == placed
}

// CanMoveWithoutBreakingHive reports whether lifting name leaves one hive.
func (b *Board) CanMoveWithoutBreakingHive(name PieceName) bool {
	pos := b.positions[name]
	if pos.Stack > 0 {
		return true
	}

	// A piece whose occupied neighbours form one contiguous arc is never an
	// articulation point.
	neighbors := pos.Neighbors()
	transitions := 0
	prev := b.HasPieceAt(neighbors[0])
	for _, n := range neighbors[1:] {
		occupied := b.HasPieceAt(n)
		if occupied != prev {
			transitions++
		}
		prev = occupied
	}
	if transitions <= 2 {
		return true
	}

	intact := false
	b.withLifted(name, func(Position) {
		intact = b.IsOneHive()
	})
	return intact
}
