package game

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrParse        = errors.New("parse error")
	ErrNoHistory    = errors.New("no moves to undo")
	ErrInvalidDepth = errors.New("perft depth must not be negative")
	ErrNotOneHive   = errors.New("pieces do not form one hive")
	ErrGameOver     = errors.New("game is over")
)

// IllegalMoveKind names the rule an attempted move violates.
type IllegalMoveKind int

const (
	Unreachable IllegalMoveKind = iota
	GameIsOver
	PassWithValidMoves
	WrongColor
	PieceNotEnabled
	ReturnToHand
	QueenOnFirstTurn
	MoveBeforeQueen
	QueenDeadline
	OutOfOrder
	Occupied
	LastMoved
	SamePosition
	Covered
	BreaksHive
)

var illegalMoveReasons = map[IllegalMoveKind]string{
	Unreachable:        "the piece cannot reach that position",
	GameIsOver:         "the game is over",
	PassWithValidMoves: "you can't pass when you have valid moves",
	WrongColor:         "it's not that player's turn",
	PieceNotEnabled:    "that piece is not enabled in this game",
	ReturnToHand:       "you can't put a piece back into your hand",
	QueenOnFirstTurn:   "you can't play your queen bee on your first turn",
	MoveBeforeQueen:    "you can't move a piece in play until you've played your queen bee",
	QueenDeadline:      "you must play your queen bee on or before your fourth turn",
	OutOfOrder:         "pieces of the same bug type must be played in order",
	Occupied:           "a piece already exists at that position",
	LastMoved:          "that piece was moved last turn",
	SamePosition:       "you can't move a piece to its current position",
	Covered:            "that piece has another piece on top of it",
	BreaksHive:         "moving that piece would break the hive",
}

func (k IllegalMoveKind) String() string {
	if reason, ok := illegalMoveReasons[k]; ok {
		return reason
	}
	return fmt.Sprintf("IllegalMoveKind(%d)", int(k))
}

// IllegalMoveError carries the rejected move and the most specific rule it broke.
type IllegalMoveError struct {
	Move Move
	Kind IllegalMoveKind
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Move, e.Kind)
}

func (e *IllegalMoveError) Is(target error) bool { return target == ErrIllegalMove }

// TokenKind identifies what a parser was reading when it failed.
type TokenKind int

const (
	PositionToken TokenKind = iota
	PieceToken
	MoveToken
	BoardToken
	GameTypeToken
	BoardStateToken
	TurnToken
)

var tokenKindNames = [...]string{"position", "piece", "move", "board", "game type", "board state", "turn"}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
	return tokenKindNames[k]
}

// ParseError reports a malformed token.
type ParseError struct {
	Kind  TokenKind
	Token string
}

func newParseError(kind TokenKind, token string) *ParseError {
	return &ParseError{Kind: kind, Token: token}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Kind, e.Token)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }
