package engine

import (
	"context"
	"fmt"
	"time"

	"hive/experiments/metrics"
	"hive/game"
	"hive/meta"

	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

// WithMaxMoves caps the number of plies before the game is abandoned.
func WithMaxMoves(moves int) Option {
	return func(e *Engine) {
		if moves > 0 {
			e.maxMoves = moves
		}
	}
}

func WithCollector(c metrics.Collector) Option {
	return func(e *Engine) {
		if c != nil {
			e.collector = c
		}
	}
}

// WithBoard starts from an existing game instead of an empty board.
func WithBoard(board *game.GameBoard) Option {
	return func(e *Engine) {
		if board != nil {
			e.Board = board
		}
	}
}

type Engine struct {
	Board     *game.GameBoard
	players   [game.NumColors]Agent
	maxMoves  int
	collector metrics.Collector
}

func LocalEngine(expansions game.ExpansionPieces, white, black Agent, options ...Option) *Engine {
	if white == nil || black == nil {
		panic("need an agent for each color")
	}
	e := &Engine{ // Default values
		Board:     game.NewGameBoard(expansions),
		players:   [game.NumColors]Agent{white, black},
		maxMoves:  meta.MAX_TURNS,
		collector: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run lets the agents take turns until the game ends, the move cap is hit or
// ctx is done. Agent moves are validated; an illegal one stops the game.
func (e *Engine) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		Expansions: e.Board.Expansions(),
		StartTime:  time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting a %s game", e.Board.CurrentColor(), e.Board.Expansions())

	finish := func() {
		gameMetric.EndTime = time.Now()
		gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
		gameMetric.Result = e.Board.BoardState()
		gameMetric.ZobristKey = e.Board.ZobristKey()
	}

	for step := 1; e.Board.GameInProgress() && step <= e.maxMoves; step++ {
		if err := ctx.Err(); err != nil {
			finish()
			return gameMetric, moveMetrics, err
		}

		color := e.Board.CurrentColor()
		start := time.Now()
		validMoves := e.Board.ValidMoves().Len()
		move := e.players[color].FindMove(e.Board)
		moveString := e.Board.MoveString(move)
		if err := e.Board.Play(move); err != nil {
			finish()
			return gameMetric, moveMetrics, fmt.Errorf("%s agent played %q: %w", color, moveString, err)
		}

		e.collector.AddMove(move.IsPass())
		gameMetric.TotalMoves++
		if move.IsPass() {
			gameMetric.Passes++
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:       step,
			Color:      color,
			Move:       moveString,
			ValidMoves: validMoves,
			Duration:   time.Since(start),
		})
	}

	finish()
	e.collector.AddGame(gameMetric)
	if gameMetric.Result.IsOver() {
		log.Info().Msgf("game ended after %d moves: %s", gameMetric.TotalMoves, gameMetric.Result)
	} else {
		log.Info().Msgf("stopped after %d moves (no winner yet)", gameMetric.TotalMoves)
	}
	return gameMetric, moveMetrics, nil
}
