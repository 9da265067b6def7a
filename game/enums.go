package game

import (
	"fmt"
	"strings"

	"hive/utils"
)

type Color int

const (
	White Color = iota
	Black
)

// NumColors is the number of players.
const NumColors = 2

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opponent returns the other color.
func (c Color) Opponent() Color { return 1 - c }

func parseColor(s string) (Color, bool) {
	switch s {
	case "White":
		return White, true
	case "Black":
		return Black, true
	}
	return White, false
}

// BugType is one of the eight movement rule-sets.
type BugType int

const (
	QueenBee BugType = iota
	Spider
	Beetle
	Grasshopper
	SoldierAnt
	Mosquito
	Ladybug
	Pillbug
)

// NumBugTypes is the number of distinct bug types.
const NumBugTypes = 8

var bugTypeNames = [NumBugTypes]string{"QueenBee", "Spider", "Beetle", "Grasshopper", "SoldierAnt", "Mosquito", "Ladybug", "Pillbug"}

func (b BugType) String() string {
	if b < 0 || b >= NumBugTypes {
		return fmt.Sprintf("BugType(%d)", int(b))
	}
	return bugTypeNames[b]
}

// PieceName identifies one of the 28 pieces of the full game.
type PieceName int

const (
	WhiteQueenBee PieceName = iota
	WhiteSpider1
	WhiteSpider2
	WhiteBeetle1
	WhiteBeetle2
	WhiteGrasshopper1
	WhiteGrasshopper2
	WhiteGrasshopper3
	WhiteSoldierAnt1
	WhiteSoldierAnt2
	WhiteSoldierAnt3
	WhiteMosquito
	WhiteLadybug
	WhitePillbug
	BlackQueenBee
	BlackSpider1
	BlackSpider2
	BlackBeetle1
	BlackBeetle2
	BlackGrasshopper1
	BlackGrasshopper2
	BlackGrasshopper3
	BlackSoldierAnt1
	BlackSoldierAnt2
	BlackSoldierAnt3
	BlackMosquito
	BlackLadybug
	BlackPillbug

	// NoPiece marks the pass move and "no piece moved yet".
	NoPiece PieceName = -1
)

// NumPieceNames is the number of piece identities.
const NumPieceNames = 28

const piecesPerColor = NumPieceNames / NumColors

type pieceInfo struct {
	shortName string
	bug       BugType
	// predecessor must be in play before this piece may be placed.
	predecessor PieceName
}

var pieceTable = buildPieceTable()

func buildPieceTable() [NumPieceNames]pieceInfo {
	layout := [piecesPerColor]struct {
		suffix      string
		bug         BugType
		predecessor int
	}{
		{"Q", QueenBee, -1},
		{"S1", Spider, -1},
		{"S2", Spider, 1},
		{"B1", Beetle, -1},
		{"B2", Beetle, 3},
		{"G1", Grasshopper, -1},
		{"G2", Grasshopper, 5},
		{"G3", Grasshopper, 6},
		{"A1", SoldierAnt, -1},
		{"A2", SoldierAnt, 8},
		{"A3", SoldierAnt, 9},
		{"M", Mosquito, -1},
		{"L", Ladybug, -1},
		{"P", Pillbug, -1},
	}
	var table [NumPieceNames]pieceInfo
	for c, prefix := range []string{"w", "b"} {
		for i, entry := range layout {
			info := pieceInfo{shortName: prefix + entry.suffix, bug: entry.bug, predecessor: NoPiece}
			if entry.predecessor >= 0 {
				info.predecessor = PieceName(c*piecesPerColor + entry.predecessor)
			}
			table[c*piecesPerColor+i] = info
		}
	}
	return table
}

// PieceNames lists every identity in enumeration order.
var PieceNames = func() []PieceName {
	names := make([]PieceName, NumPieceNames)
	for i := range names {
		names[i] = PieceName(i)
	}
	return names
}()

var shortNames = func() []string {
	names := make([]string, NumPieceNames)
	for i, info := range pieceTable {
		names[i] = info.shortName
	}
	return names
}()

// Valid reports whether n is one of the 28 identities.
func (n PieceName) Valid() bool { return n >= 0 && n < NumPieceNames }

// Color returns the owner of the piece.
func (n PieceName) Color() Color {
	if n >= BlackQueenBee {
		return Black
	}
	return White
}

// Bug returns the movement rule-set of the piece.
func (n PieceName) Bug() BugType { return pieceTable[n].bug }

// Predecessor returns the piece of the same bug type that must be in play
// before n may be placed, or NoPiece.
func (n PieceName) Predecessor() PieceName {
	if !n.Valid() {
		return NoPiece
	}
	return pieceTable[n].predecessor
}

func (n PieceName) String() string {
	if !n.Valid() {
		return "none"
	}
	return pieceTable[n].shortName
}

// ParsePieceName parses a short name such as "wQ" or "bA2".
func ParsePieceName(s string) (PieceName, error) {
	idx := utils.FindIndex(shortNames, strings.TrimSpace(s))
	if idx < 0 {
		return NoPiece, newParseError(PieceToken, s)
	}
	return PieceName(idx), nil
}

// QueenOf returns the queen bee of the given color.
func QueenOf(c Color) PieceName {
	if c == White {
		return WhiteQueenBee
	}
	return BlackQueenBee
}

// PiecesOf returns the identities owned by c in enumeration order.
func PiecesOf(c Color) []PieceName {
	start := int(c) * piecesPerColor
	return PieceNames[start : start+piecesPerColor]
}

// ExpansionPieces is a set of optional bug types enabled for a game.
type ExpansionPieces uint8

const (
	Base            ExpansionPieces = 0
	MosquitoPieces  ExpansionPieces = 1 << 0
	LadybugPieces   ExpansionPieces = 1 << 1
	PillbugPieces   ExpansionPieces = 1 << 2
	AllExpansions                   = MosquitoPieces | LadybugPieces | PillbugPieces
	baseGameTypeTag                 = "Base"
)

// Has reports whether every flag in other is enabled.
func (e ExpansionPieces) Has(other ExpansionPieces) bool { return e&other == other }

// Enabled reports whether piece n may be used under these expansions.
func (e ExpansionPieces) Enabled(n PieceName) bool {
	if !n.Valid() {
		return false
	}
	switch n.Bug() {
	case Mosquito:
		return e.Has(MosquitoPieces)
	case Ladybug:
		return e.Has(LadybugPieces)
	case Pillbug:
		return e.Has(PillbugPieces)
	}
	return true
}

// String returns the game type, e.g. "Base" or "Base+MLP".
func (e ExpansionPieces) String() string {
	if e == Base {
		return baseGameTypeTag
	}
	var sb strings.Builder
	sb.WriteString(baseGameTypeTag)
	sb.WriteByte('+')
	if e.Has(MosquitoPieces) {
		sb.WriteByte('M')
	}
	if e.Has(LadybugPieces) {
		sb.WriteByte('L')
	}
	if e.Has(PillbugPieces) {
		sb.WriteByte('P')
	}
	return sb.String()
}

// ParseExpansionPieces parses a game type string.
func ParseExpansionPieces(s string) (ExpansionPieces, error) {
	s = strings.TrimSpace(s)
	if s == baseGameTypeTag {
		return Base, nil
	}
	flags, ok := strings.CutPrefix(s, baseGameTypeTag+"+")
	if !ok || flags == "" {
		return Base, newParseError(GameTypeToken, s)
	}
	var e ExpansionPieces
	for _, ch := range flags {
		var flag ExpansionPieces
		switch ch {
		case 'M':
			flag = MosquitoPieces
		case 'L':
			flag = LadybugPieces
		case 'P':
			flag = PillbugPieces
		default:
			return Base, newParseError(GameTypeToken, s)
		}
		if e.Has(flag) {
			return Base, newParseError(GameTypeToken, s)
		}
		e |= flag
	}
	return e, nil
}

// BoardState is the outcome status of a game.
type BoardState int

const (
	NotStarted BoardState = iota
	InProgress
	Draw
	WhiteWins
	BlackWins
)

var boardStateNames = [...]string{"NotStarted", "InProgress", "Draw", "WhiteWins", "BlackWins"}

func (s BoardState) String() string {
	if s < 0 || int(s) >= len(boardStateNames) {
		return fmt.Sprintf("BoardState(%d)", int(s))
	}
	return boardStateNames[s]
}

// IsOver reports whether the state is terminal.
func (s BoardState) IsOver() bool { return s == Draw || s == WhiteWins || s == BlackWins }

// Winner returns the winning color, if any.
func (s BoardState) Winner() (Color, bool) {
	switch s {
	case WhiteWins:
		return White, true
	case BlackWins:
		return Black, true
	}
	return White, false
}

// ParseBoardState parses a board state name.
func ParseBoardState(s string) (BoardState, error) {
	idx := utils.FindIndex(boardStateNames[:], strings.TrimSpace(s))
	if idx < 0 {
		return NotStarted, newParseError(BoardStateToken, s)
	}
	return BoardState(idx), nil
}
