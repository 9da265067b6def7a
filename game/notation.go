package game

import (
	"strings"

	"github.com/pkg/errors"
)

const passToken = "pass"

// relativeSymbol describes how a destination in a given direction from the
// reference piece is written: the symbol and whether it precedes the name.
type relativeSymbol struct {
	symbol byte
	before bool
}

// Indexed by the direction from the reference piece to the destination.
var relativeSymbols = [NumDirections]relativeSymbol{
	East:      {'-', false},
	NorthEast: {'/', false},
	NorthWest: {'\\', true},
	West:      {'-', true},
	SouthWest: {'/', true},
	SouthEast: {'\\', false},
}

func directionForSymbol(symbol byte, before bool) (Direction, bool) {
	for d, rs := range relativeSymbols {
		if rs.symbol == symbol && rs.before == before {
			return Direction(d), true
		}
	}
	return 0, false
}

func isRelativeSymbol(c byte) bool { return c == '-' || c == '/' || c == '\\' }

// MoveString formats m in relative notation against the current board,
// e.g. "wS1", "bG1 -wQ", "wB1 bA2" or "pass". Moves that cannot be described
// relative to another piece fall back to the canonical form.
func (b *Board) MoveString(m Move) string {
	if m.IsPass() {
		return passToken
	}
	piece := m.Piece.String()
	if m.Position == Origin && b.onlyPieceInPlay(m.Piece) {
		return piece
	}

	if below, ok := m.Position.Below(); ok {
		if ref := b.PieceAt(below); ref != NoPiece && ref != m.Piece {
			return piece + " " + ref.String()
		}
		return m.String()
	}

	for d := Direction(0); d < NumDirections; d++ {
		refHex := m.Position.Neighbor(d)
		ref := b.referencePieceAt(refHex, m.Piece)
		if ref == NoPiece {
			continue
		}
		rs := relativeSymbols[d.Opposite()]
		if rs.before {
			return piece + " " + string(rs.symbol) + ref.String()
		}
		return piece + " " + ref.String() + string(rs.symbol)
	}
	return m.String()
}

// onlyPieceInPlay reports whether no piece other than name is on the board.
func (b *Board) onlyPieceInPlay(name PieceName) bool {
	for other := PieceName(0); other < NumPieceNames; other++ {
		if other != name && b.inPlay[other] {
			return false
		}
	}
	return true
}

// referencePieceAt returns the top piece of hex ignoring mover.
func (b *Board) referencePieceAt(hex Position, mover PieceName) PieceName {
	stack := b.stacks[hex.Ground()]
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] != mover {
			return stack[i]
		}
	}
	return NoPiece
}

// ParseMove parses a move in relative or canonical notation.
func (b *Board) ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, passToken) {
		return Pass, nil
	}

	if open := strings.IndexByte(s, '['); open >= 0 {
		if !strings.HasSuffix(s, "]") {
			return Pass, newParseError(MoveToken, s)
		}
		name, err := ParsePieceName(s[:open])
		if err != nil {
			return Pass, errors.Wrapf(newParseError(MoveToken, s), "%v", err)
		}
		pos, err := ParsePosition(s[open+1 : len(s)-1])
		if err != nil {
			return Pass, errors.Wrapf(newParseError(MoveToken, s), "%v", err)
		}
		return Move{Piece: name, Position: pos}, nil
	}

	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return Pass, newParseError(MoveToken, s)
	}
	name, err := ParsePieceName(fields[0])
	if err != nil {
		return Pass, errors.Wrapf(newParseError(MoveToken, s), "%v", err)
	}
	if len(fields) == 1 {
		return Move{Piece: name, Position: Origin}, nil
	}

	ref := fields[1]
	var dir Direction
	relative := false
	switch {
	case isRelativeSymbol(ref[0]):
		dir, relative = directionForSymbol(ref[0], true)
		ref = ref[1:]
	case isRelativeSymbol(ref[len(ref)-1]):
		dir, relative = directionForSymbol(ref[len(ref)-1], false)
		ref = ref[:len(ref)-1]
	}
	refName, err := ParsePieceName(ref)
	if err != nil {
		return Pass, errors.Wrapf(newParseError(MoveToken, s), "%v", err)
	}
	if !b.InPlay(refName) {
		return Pass, errors.Wrapf(newParseError(MoveToken, s), "%s is not in play", refName)
	}

	hex := b.positions[refName].Ground()
	if relative {
		hex = hex.Neighbor(dir)
	}
	height := b.stackHeight(hex)
	if top, ok := b.TopPieceAt(hex); ok && top == name {
		height--
	}
	return Move{Piece: name, Position: hex.WithStack(height)}, nil
}
