package gamemaster

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"hive/game"
	"hive/meta"
	"hive/utils"

	"github.com/rs/zerolog/log"
)

var ErrNoGame = errors.New("no game in progress")

// Update describes one change to the board, in the order it happened.
type Update struct {
	Move       game.Move
	MoveString string // empty for undo updates
	Undone     bool
	Board      string
	State      game.BoardState
	ZobristKey uint64
}

// UpdateGetter returns the next pending update, or false when there is none.
type UpdateGetter func() (Update, bool)

// Engine is the verb set a command protocol drives.
type Engine interface {
	NewGame(arg string) (string, UpdateGetter, error)
	Play(moveString string) (string, error)
	Pass() (string, error)
	ValidMoves() (string, error)
	Undo(n int) (string, error)
}

type localEngine struct {
	mu       sync.Mutex
	board    *game.GameBoard
	updateCh chan Update
	closed   bool
}

var _ Engine = (*localEngine)(nil)

func NewLocalEngine() *localEngine {
	return &localEngine{}
}

// NewGame starts a game. arg is empty (base game), a game type such as
// "Base+MLP", a full game string to resume, or a board string to start from.
func (e *localEngine) NewGame(arg string) (string, UpdateGetter, error) {
	board, err := newBoard(strings.TrimSpace(arg))
	if err != nil {
		log.Warn().Err(err).Str("arg", arg).Msg("rejected new game")
		return "", nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.board = board
	e.updateCh = make(chan Update, meta.UPDATE_BUFFER)
	e.closed = false
	log.Info().Msgf("new %s game at turn %d", board.Expansions(), board.CurrentTurn())

	return e.status(), e.nextUpdate, nil
}

func newBoard(arg string) (*game.GameBoard, error) {
	if arg == "" {
		return game.NewGameBoard(game.Base), nil
	}
	if !strings.Contains(arg, ";") {
		expansions, err := game.ParseExpansionPieces(arg)
		if err != nil {
			return nil, err
		}
		return game.NewGameBoard(expansions), nil
	}
	board, err := game.ParseGameString(arg)
	if err == nil {
		return board, nil
	}
	if board, boardErr := game.ParseGameBoardString(arg); boardErr == nil {
		return board, nil
	}
	return nil, err
}

// status is the game string, or the board string for games loaded from a
// position since their history does not reach back to an empty board.
func (e *localEngine) status() string {
	if e.board.FromPosition() {
		return e.board.BoardString()
	}
	return e.board.GameString()
}

func (e *localEngine) nextUpdate() (Update, bool) {
	e.mu.Lock()
	ch := e.updateCh
	e.mu.Unlock()
	if ch == nil {
		return Update{}, false
	}

	select {
	case u, ok := <-ch:
		return u, ok
	default:
		return Update{}, false
	}
}

func (e *localEngine) Play(moveString string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.board == nil {
		return "", ErrNoGame
	}

	move, err := e.board.ParseMove(moveString)
	if err != nil {
		log.Warn().Err(err).Msg("rejected move string")
		return "", fmt.Errorf("play %q: %w", moveString, err)
	}
	// Format before playing: relative notation depends on the board.
	formatted := e.board.MoveString(move)
	if err := e.board.Play(move); err != nil {
		log.Warn().Err(err).Msg("rejected move")
		return "", fmt.Errorf("play %q: %w", moveString, err)
	}

	e.publish(Update{Move: move, MoveString: formatted})
	return e.status(), nil
}

func (e *localEngine) Pass() (string, error) {
	return e.Play(game.Pass.String())
}

// ValidMoves lists the moves of the side to move, separated by ';'.
func (e *localEngine) ValidMoves() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.board == nil {
		return "", ErrNoGame
	}

	moves := utils.Map(e.board.ValidMoves().Slice(), e.board.MoveString)
	return strings.Join(moves, ";"), nil
}

func (e *localEngine) Undo(n int) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.board == nil {
		return "", ErrNoGame
	}

	if err := e.board.UndoMoves(n); err != nil {
		log.Warn().Err(err).Int("moves", n).Msg("rejected undo")
		return "", fmt.Errorf("undo %d: %w", n, err)
	}
	if e.closed {
		// Undoing out of a finished game reopens the update stream.
		e.updateCh = make(chan Update, meta.UPDATE_BUFFER)
		e.closed = false
	}

	e.publish(Update{Undone: true})
	return e.status(), nil
}

// publish fills in the board fields and queues u. The stream is closed after
// the update that ends the game. Callers hold e.mu.
func (e *localEngine) publish(u Update) {
	u.Board = e.board.BoardString()
	u.State = e.board.BoardState()
	u.ZobristKey = e.board.ZobristKey()

	select {
	case e.updateCh <- u:
	default:
		log.Warn().Msgf("update buffer full, dropping update for %q", u.MoveString)
	}

	if u.State.IsOver() {
		log.Info().Msgf("game over: %s", u.State)
		close(e.updateCh)
		e.closed = true
	}
}
