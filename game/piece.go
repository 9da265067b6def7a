package game

// Piece is a read-only view of one piece on a board.
type Piece struct {
	Name     PieceName
	Position Position
}

func (p Piece) Color() Color { return p.Name.Color() }
func (p Piece) Bug() BugType { return p.Name.Bug() }
func (p Piece) InPlay() bool { return !p.Position.IsInHand() }

// String returns "wQ[0,0,0]" for a placed piece and the bare short name otherwise.
func (p Piece) String() string {
	if !p.InPlay() {
		return p.Name.String()
	}
	return Move{Piece: p.Name, Position: p.Position}.String()
}
