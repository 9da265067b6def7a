package game

// ValidMovesFor returns the legal moves of name for the side to move. The
// result is cached until the ply changes and must not be modified.
func (b *Board) ValidMovesFor(name PieceName) *MoveSet {
	if !name.Valid() {
		return NewMoveSet()
	}
	if cached := b.moveCache[name]; cached != nil {
		b.stats.Hits[name]++
		return cached
	}
	b.stats.Misses[name]++
	moves := b.computeValidMoves(name)
	b.moveCache[name] = moves
	return moves
}

// ValidMoves returns every legal move for the side to move, or only Pass when
// no piece can act. A finished game has no moves.
func (b *Board) ValidMoves() *MoveSet {
	moves := NewMoveSet()
	if b.state.IsOver() {
		return moves
	}
	for _, name := range PiecesOf(b.CurrentColor()) {
		moves.AddAll(b.ValidMovesFor(name))
	}
	if moves.Len() == 0 {
		moves.Add(Pass)
	}
	return moves
}

// placingPieceInOrder reports whether the previous piece of name's bug type
// is already in play.
func (b *Board) placingPieceInOrder(name PieceName) bool {
	prev := name.Predecessor()
	return prev == NoPiece || b.inPlay[prev]
}

func (b *Board) computeValidMoves(name PieceName) *MoveSet {
	moves := NewMoveSet()
	color := b.CurrentColor()
	if b.state.IsOver() || !b.expansions.Enabled(name) || name.Color() != color || !b.placingPieceInOrder(name) {
		return moves
	}

	if !b.inPlay[name] {
		b.addPlacements(moves, name)
		return moves
	}

	if name == b.lastMoved || !b.inPlay[QueenOf(color)] || !b.isOnTop(name) {
		return moves
	}
	if b.CanMoveWithoutBreakingHive(name) {
		b.addMovesAs(moves, name, name.Bug(), false)
	} else if bug := name.Bug(); bug == Mosquito || bug == Pillbug {
		// A pinned pillbug, or a mosquito touching one, may still throw.
		b.addMovesAs(moves, name, bug, true)
	}
	return moves
}

func (b *Board) addPlacements(moves *MoveSet, name PieceName) {
	isQueen := name.Bug() == QueenBee
	switch b.ply {
	case 0:
		if !isQueen {
			moves.Add(Move{Piece: name, Position: Origin})
		}
	case 1:
		if !isQueen {
			for _, pos := range Origin.Neighbors() {
				moves.Add(Move{Piece: name, Position: pos})
			}
		}
	default:
		if b.CurrentTurn() == 4 && !b.QueenInPlay(name.Color()) && !isQueen {
			return
		}
		for pos := range b.validPlacements() {
			moves.Add(Move{Piece: name, Position: pos})
		}
	}
}

// validPlacements returns the empty ground cells touching the mover's pieces
// and no enemy piece.
func (b *Board) validPlacements() map[Position]struct{} {
	if b.placements != nil {
		return b.placements
	}
	color := b.CurrentColor()
	result := make(map[Position]struct{})
	rejected := make(map[Position]struct{})
	for hex, stack := range b.stacks {
		if stack[len(stack)-1].Color() != color {
			continue
		}
		for _, candidate := range hex.Neighbors() {
			if b.HasPieceAt(candidate) {
				continue
			}
			if _, seen := result[candidate]; seen {
				continue
			}
			if _, seen := rejected[candidate]; seen {
				continue
			}
			if b.touchesColor(candidate, color.Opponent()) {
				rejected[candidate] = struct{}{}
				continue
			}
			result[candidate] = struct{}{}
		}
	}
	b.placements = result
	return result
}

func (b *Board) touchesColor(pos Position, c Color) bool {
	for _, n := range pos.Neighbors() {
		if top, ok := b.TopPieceAt(n); ok && top.Color() == c {
			return true
		}
	}
	return false
}

// addMovesAs adds the moves mover can make using bug's movement rules.
// With specialOnly set only the pillbug throw is generated.
func (b *Board) addMovesAs(moves *MoveSet, mover PieceName, bug BugType, specialOnly bool) {
	switch bug {
	case QueenBee:
		if !specialOnly {
			b.addSlides(moves, mover, 1)
		}
	case Spider:
		if !specialOnly {
			b.addSpiderMoves(moves, mover)
		}
	case Beetle:
		if !specialOnly {
			b.addBeetleMoves(moves, mover)
		}
	case Grasshopper:
		if !specialOnly {
			b.addGrasshopperMoves(moves, mover)
		}
	case SoldierAnt:
		if !specialOnly {
			b.addSlides(moves, mover, 0)
		}
	case Ladybug:
		if !specialOnly {
			b.addLadybugMoves(moves, mover)
		}
	case Pillbug:
		if !specialOnly {
			b.addSlides(moves, mover, 1)
		}
		b.addPillbugThrows(moves, mover)
	case Mosquito:
		b.addMosquitoMoves(moves, mover, specialOnly)
	}
}

// slideDistances walks from the lifted piece's cell along legal slides and
// returns the shortest slide distance of every reachable cell. maxDepth 0
// means unbounded.
func (b *Board) slideDistances(name PieceName, maxDepth int) map[Position]int {
	var distances map[Position]int
	b.withLifted(name, func(from Position) {
		distances = map[Position]int{from: 0}
		var walk func(pos Position, depth int)
		walk = func(pos Position, depth int) {
			if maxDepth > 0 && depth >= maxDepth {
				return
			}
			for d := Direction(0); d < NumDirections; d++ {
				next := pos.Neighbor(d)
				if b.HasPieceAt(next) || !b.canSlide(pos, d) {
					continue
				}
				if best, seen := distances[next]; seen && (maxDepth == 0 || best <= depth+1) {
					continue
				}
				distances[next] = depth + 1
				walk(next, depth+1)
			}
		}
		walk(from, 0)
		delete(distances, from)
	})
	return distances
}

// canSlide reports whether a ground piece at pos may slide in direction d:
// exactly one of the two cells flanking that edge must be occupied.
func (b *Board) canSlide(pos Position, d Direction) bool {
	return b.HasPieceAt(pos.Neighbor(d.Left())) != b.HasPieceAt(pos.Neighbor(d.Right()))
}

func (b *Board) addSlides(moves *MoveSet, name PieceName, maxDepth int) {
	for pos := range b.slideDistances(name, maxDepth) {
		moves.Add(Move{Piece: name, Position: pos})
	}
}

// addSpiderMoves keeps the slides of length three that are not reachable in fewer steps.
func (b *Board) addSpiderMoves(moves *MoveSet, name PieceName) {
	upToThree, upToTwo := NewMoveSet(), NewMoveSet()
	for pos, dist := range b.slideDistances(name, 3) {
		m := Move{Piece: name, Position: pos}
		upToThree.Add(m)
		if dist <= 2 {
			upToTwo.Add(m)
		}
	}
	moves.AddAll(upToThree.Except(upToTwo))
}

func (b *Board) addGrasshopperMoves(moves *MoveSet, name PieceName) {
	from := b.positions[name].Ground()
	for d := Direction(0); d < NumDirections; d++ {
		landing := from.Neighbor(d)
		if !b.HasPieceAt(landing) {
			continue
		}
		for b.HasPieceAt(landing) {
			landing = landing.Neighbor(d)
		}
		moves.Add(Move{Piece: name, Position: landing})
	}
}

// beetleStep returns where a lifted piece standing at from lands when it
// moves in direction d, and whether the step is allowed. The step is blocked
// when both flanking stacks are taller than both the take-off and landing
// heights, or when it would leave the piece touching nothing.
func (b *Board) beetleStep(from Position, d Direction) (Position, bool) {
	dest := from.Ground().Neighbor(d)
	current := from.Stack
	destination := b.stackHeight(dest)
	left := b.stackHeight(from.Neighbor(d.Left()))
	right := b.stackHeight(from.Neighbor(d.Right()))

	if current == 0 && destination == 0 && left == 0 && right == 0 {
		return dest, false
	}
	if destination < left && destination < right && current < left && current < right {
		return dest, false
	}
	return dest.WithStack(destination), true
}

// beetleSteps lists every allowed single step of a lifted piece at from.
func (b *Board) beetleSteps(from Position) []Position {
	var result []Position
	for d := Direction(0); d < NumDirections; d++ {
		if dest, ok := b.beetleStep(from, d); ok {
			result = append(result, dest)
		}
	}
	return result
}

func (b *Board) addBeetleMoves(moves *MoveSet, name PieceName) {
	b.withLifted(name, func(from Position) {
		for _, dest := range b.beetleSteps(from) {
			moves.Add(Move{Piece: name, Position: dest})
		}
	})
}

// addLadybugMoves chains three beetle steps: two across the top of the hive
// and one down to an empty ground cell.
func (b *Board) addLadybugMoves(moves *MoveSet, name PieceName) {
	b.withLifted(name, func(from Position) {
		for _, first := range b.beetleSteps(from) {
			if first.Stack == 0 {
				continue
			}
			for _, second := range b.beetleSteps(first) {
				if second.Stack == 0 {
					continue
				}
				for _, third := range b.beetleSteps(second) {
					if third.Stack == 0 && third != from {
						moves.Add(Move{Piece: name, Position: third})
					}
				}
			}
		}
	})
}

func (b *Board) addMosquitoMoves(moves *MoveSet, name PieceName, specialOnly bool) {
	pos := b.positions[name]
	if pos.Stack > 0 {
		if !specialOnly {
			b.addBeetleMoves(moves, name)
		}
		return
	}

	var copied [NumBugTypes]bool
	for _, n := range pos.Neighbors() {
		top, ok := b.TopPieceAt(n)
		if !ok {
			continue
		}
		bug := top.Bug()
		if bug == Mosquito || copied[bug] {
			continue
		}
		copied[bug] = true
		if specialOnly && bug != Pillbug {
			continue
		}
		b.addMovesAs(moves, name, bug, specialOnly)
	}
}

// addPillbugThrows moves an adjacent ground piece over thrower onto any empty
// cell around thrower.
func (b *Board) addPillbugThrows(moves *MoveSet, thrower PieceName) {
	pos := b.positions[thrower]
	if pos.Stack > 0 {
		return
	}
	above := pos.Above()
	for d := Direction(0); d < NumDirections; d++ {
		stack := b.stacks[pos.Neighbor(d)]
		if len(stack) != 1 {
			continue
		}
		target := stack[0]
		if target == b.lastMoved || !b.CanMoveWithoutBreakingHive(target) {
			continue
		}
		b.withLifted(target, func(from Position) {
			if _, ok := b.beetleStep(from, d.Opposite()); !ok {
				return
			}
			for _, dest := range b.beetleSteps(above) {
				if dest.Stack == 0 && dest != from {
					moves.Add(Move{Piece: target, Position: dest})
				}
			}
		})
	}
}
