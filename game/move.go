package game

// Move places or moves Piece to Position. The pass move has Piece == NoPiece.
type Move struct {
	Piece    PieceName
	Position Position
}

// Pass is the move played when the side to move has no other option.
var Pass = Move{Piece: NoPiece, Position: InHand}

func (m Move) IsPass() bool { return m.Piece == NoPiece }

// String returns the canonical form, e.g. "wS1[1,-1,0]", or "pass".
func (m Move) String() string {
	if m.IsPass() {
		return passToken
	}
	return m.Piece.String() + "[" + m.Position.String() + "]"
}

func compareMoves(a, b Move) int {
	switch {
	case a.Piece != b.Piece:
		return int(a.Piece) - int(b.Piece)
	case a.Position.Q != b.Position.Q:
		return a.Position.Q - b.Position.Q
	case a.Position.R != b.Position.R:
		return a.Position.R - b.Position.R
	}
	return a.Position.Stack - b.Position.Stack
}
