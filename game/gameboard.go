package game

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// GameBoard is a Board with a move history: it validates moves, undoes
// them and clones itself by replaying the history.
type GameBoard struct {
	*Board
	history BoardHistory
	// start is the board string a GameBoard loaded from a position began at.
	start string
}

func NewGameBoard(expansions ExpansionPieces) *GameBoard {
	return &GameBoard{Board: NewBoard(expansions)}
}

// FromPosition reports whether g was loaded from a board string, in which
// case its history only reaches back to that position.
func (g *GameBoard) FromPosition() bool { return g.start != "" }

// Play validates m against the legal moves of the side to move and plays it.
// An illegal move leaves the board untouched and returns an *IllegalMoveError.
func (g *GameBoard) Play(m Move) error {
	if g.state.IsOver() {
		return g.reject(m, GameIsOver)
	}
	if g.ValidMoves().Contains(m) {
		g.TrustedPlay(m)
		return nil
	}
	return g.reject(m, g.explainIllegal(m))
}

// PlayString parses s against the current board and plays it.
func (g *GameBoard) PlayString(s string) error {
	m, err := g.ParseMove(s)
	if err != nil {
		return err
	}
	return g.Play(m)
}

func (g *GameBoard) Pass() error { return g.Play(Pass) }

func (g *GameBoard) reject(m Move, kind IllegalMoveKind) error {
	log.Debug().Str("move", g.MoveString(m)).Stringer("reason", kind).Msg("rejected move")
	return &IllegalMoveError{Move: m, Kind: kind}
}

// explainIllegal finds the most specific rule a move outside the legal set breaks.
func (g *GameBoard) explainIllegal(m Move) IllegalMoveKind {
	if m.IsPass() {
		return PassWithValidMoves
	}
	name := m.Piece
	if !name.Valid() {
		return PieceNotEnabled
	}
	if name.Color() != g.CurrentColor() {
		return WrongColor
	}
	if !g.expansions.Enabled(name) {
		return PieceNotEnabled
	}
	if m.Position.IsInHand() {
		return ReturnToHand
	}

	isQueen := name.Bug() == QueenBee
	queenInPlay := g.QueenInPlay(name.Color())
	if !g.inPlay[name] {
		switch {
		case isQueen && g.CurrentTurn() == 1:
			return QueenOnFirstTurn
		case !isQueen && !queenInPlay && g.CurrentTurn() == 4:
			return QueenDeadline
		case !g.placingPieceInOrder(name):
			return OutOfOrder
		case g.HasPieceAt(m.Position.Ground()):
			return Occupied
		}
		return Unreachable
	}

	switch {
	case !queenInPlay:
		return MoveBeforeQueen
	case name == g.lastMoved:
		return LastMoved
	case g.positions[name] == m.Position:
		return SamePosition
	case !g.isOnTop(name):
		return Covered
	case g.HasPieceAt(m.Position):
		return Occupied
	case !g.CanMoveWithoutBreakingHive(name):
		return BreaksHive
	}
	return Unreachable
}

// TrustedPlay plays m without checking it. It is meant for replaying known
// legal moves and for search.
func (g *GameBoard) TrustedPlay(m Move) {
	from := InHand
	if !m.IsPass() {
		from = g.positions[m.Piece]
	}
	moveString := g.MoveString(m)
	g.applyMove(m)
	g.history.Add(m, from, moveString)
}

// UndoLastMove takes back the newest move.
func (g *GameBoard) UndoLastMove() error {
	item, ok := g.history.UndoLast()
	if !ok {
		return ErrNoHistory
	}
	g.revertMove(item.Move.Piece, item.From, g.history.lastMovedPiece())
	return nil
}

// UndoMoves takes back the newest n moves. Nothing is undone if the history
// is shorter than n.
func (g *GameBoard) UndoMoves(n int) error {
	if n < 0 || n > g.history.Len() {
		return errors.Wrapf(ErrNoHistory, "cannot undo %d of %d moves", n, g.history.Len())
	}
	for i := 0; i < n; i++ {
		if err := g.UndoLastMove(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns an independent board built by replaying the history from
// the starting position.
func (g *GameBoard) Clone() *GameBoard {
	c := g.newStart()
	for _, item := range g.history.items {
		c.TrustedPlay(item.Move)
	}
	return c
}

func (g *GameBoard) History() []BoardHistoryItem { return g.history.Items() }

func (g *GameBoard) LastMove() (BoardHistoryItem, bool) { return g.history.Last() }

func (g *GameBoard) newStart() *GameBoard {
	if g.start == "" {
		return NewGameBoard(g.expansions)
	}
	c, err := ParseGameBoardString(g.start)
	if err != nil {
		// start came from BoardString of a board that parsed once already.
		panic(err)
	}
	return c
}
