package game

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const tokenSeparator = ";"

func (b *Board) header() string {
	return b.expansions.String() + tokenSeparator +
		b.state.String() + tokenSeparator +
		b.CurrentColor().String() + "[" + strconv.Itoa(b.CurrentTurn()) + "]"
}

// BoardString serialises the placed pieces, e.g.
// "Base;InProgress;White[2];wQ[0,0,0];bQ[1,-1,0]".
func (b *Board) BoardString() string {
	var sb strings.Builder
	sb.WriteString(b.header())
	for _, p := range b.Pieces() {
		sb.WriteString(tokenSeparator)
		sb.WriteString(p.String())
	}
	return sb.String()
}

// GameString serialises the header followed by every move played.
func (g *GameBoard) GameString() string {
	var sb strings.Builder
	sb.WriteString(g.header())
	for _, item := range g.history.items {
		sb.WriteString(tokenSeparator)
		sb.WriteString(item.MoveString)
	}
	return sb.String()
}

type boardHeader struct {
	expansions ExpansionPieces
	state      BoardState
	color      Color
	turn       int
}

func (h boardHeader) ply() int { return (h.turn-1)*NumColors + int(h.color) }

func parseHeader(tokens []string) (boardHeader, error) {
	var h boardHeader
	if len(tokens) < 3 {
		return h, newParseError(BoardToken, strings.Join(tokens, tokenSeparator))
	}
	var err error
	if h.expansions, err = ParseExpansionPieces(tokens[0]); err != nil {
		return h, err
	}
	if h.state, err = ParseBoardState(tokens[1]); err != nil {
		return h, err
	}

	turnToken := strings.TrimSpace(tokens[2])
	open := strings.IndexByte(turnToken, '[')
	if open < 0 || !strings.HasSuffix(turnToken, "]") {
		return h, newParseError(TurnToken, turnToken)
	}
	color, ok := parseColor(turnToken[:open])
	if !ok {
		return h, newParseError(TurnToken, turnToken)
	}
	turn, convErr := strconv.Atoi(turnToken[open+1 : len(turnToken)-1])
	if convErr != nil {
		return h, errors.Wrapf(newParseError(TurnToken, turnToken), "%v", convErr)
	}
	if turn < 1 {
		return h, newParseError(TurnToken, turnToken)
	}
	h.color, h.turn = color, turn
	return h, nil
}

// ParseBoardString rebuilds a board from BoardString output. Pieces may be
// listed in any order; a piece is placed once the stack beneath it exists.
// Boards that split the hive are rejected with ErrNotOneHive.
func ParseBoardString(s string) (*Board, error) {
	tokens := strings.Split(strings.TrimSpace(s), tokenSeparator)
	h, err := parseHeader(tokens)
	if err != nil {
		return nil, err
	}

	b := NewBoard(h.expansions)
	var pending []Piece
	var seen [NumPieceNames]bool
	cells := make(map[Position]PieceName)
	for _, token := range tokens[3:] {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if !strings.Contains(token, "[") {
			return nil, newParseError(BoardToken, token)
		}
		m, err := b.ParseMove(token)
		if err != nil {
			return nil, errors.Wrap(err, "board piece")
		}
		if !h.expansions.Enabled(m.Piece) {
			return nil, errors.Wrapf(newParseError(BoardToken, token), "%s is not enabled in %s", m.Piece, h.expansions)
		}
		if seen[m.Piece] {
			return nil, errors.Wrapf(newParseError(BoardToken, token), "%s listed twice", m.Piece)
		}
		if other, taken := cells[m.Position]; taken {
			return nil, errors.Wrapf(newParseError(BoardToken, token), "%s already holds %s", m.Position, other)
		}
		seen[m.Piece] = true
		cells[m.Position] = m.Piece
		pending = append(pending, Piece{Name: m.Piece, Position: m.Position})
	}

	for len(pending) > 0 {
		var deferred []Piece
		for _, p := range pending {
			if b.stackHeight(p.Position) == p.Position.Stack {
				b.drop(p.Name, p.Position)
			} else {
				deferred = append(deferred, p)
			}
		}
		if len(deferred) == len(pending) {
			return nil, errors.Wrapf(newParseError(BoardToken, s), "%s has nothing beneath it", deferred[0])
		}
		pending = deferred
	}

	if !b.IsOneHive() {
		return nil, ErrNotOneHive
	}
	b.setPly(h.ply())
	b.updateBoardState()
	if b.state != h.state {
		return nil, errors.Wrapf(newParseError(BoardStateToken, tokens[1]), "pieces give %s", b.state)
	}
	return b, nil
}

// ParseGameBoardString loads a GameBoard from BoardString output. The
// returned board has an empty history: moves played before the position
// cannot be undone.
func ParseGameBoardString(s string) (*GameBoard, error) {
	b, err := ParseBoardString(s)
	if err != nil {
		return nil, err
	}
	return &GameBoard{Board: b, start: b.BoardString()}, nil
}

// ParseGameString replays a GameString and checks the result against its header.
func ParseGameString(s string) (*GameBoard, error) {
	tokens := strings.Split(strings.TrimSpace(s), tokenSeparator)
	h, err := parseHeader(tokens)
	if err != nil {
		return nil, err
	}

	g := NewGameBoard(h.expansions)
	for i, token := range tokens[3:] {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if err := g.PlayString(token); err != nil {
			return nil, errors.Wrapf(err, "move %d %q", i+1, token)
		}
	}

	if g.state != h.state {
		return nil, errors.Wrapf(newParseError(BoardStateToken, tokens[1]), "moves give %s", g.state)
	}
	if g.ply != h.ply() {
		return nil, errors.Wrapf(newParseError(TurnToken, tokens[2]), "moves give %s[%d]", g.CurrentColor(), g.CurrentTurn())
	}
	return g, nil
}
