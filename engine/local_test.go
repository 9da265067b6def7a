package engine

import (
	"context"
	"math"
	"testing"

	"hive/experiments/metrics"
	"hive/game"

	"github.com/stretchr/testify/require"
)

// beforeLastMove leaves black one ant crawl away from surrounding the white queen.
func beforeLastMove(t *testing.T) *game.GameBoard {
	t.Helper()
	g := game.NewGameBoard(game.Base)
	for _, s := range []string{
		"wG1[0,0,0]", "bG1[1,-1,0]",
		"wQ[-1,1,0]", "bQ[2,-2,0]",
		"wS1[0,1,-1]", "bS1[3,-3,0]",
		"wS2[-1,2,-1]", "bS2[3,-2,-1]",
		"wB1[-2,2,0]", "bA1[3,-4,1]",
		"wB2[-2,1,1]",
	} {
		require.NoError(t, g.PlayString(s), s)
	}
	return g
}

type passingAgent struct{}

func (passingAgent) FindMove(game.State) game.Move { return game.Pass }

func TestRandomSelfPlay(t *testing.T) {
	for seed := uint64(1); seed <= 3; seed++ {
		collector := metrics.NewCollector()
		collector.Start(1)
		e := LocalEngine(game.AllExpansions, NewRandomAgent(seed), NewRandomAgent(seed+100),
			WithMaxMoves(80), WithCollector(collector))

		gameMetric, moveMetrics, err := e.Run(context.Background())
		require.NoError(t, err)
		require.Len(t, moveMetrics, gameMetric.TotalMoves)
		require.Equal(t, e.Board.Ply(), gameMetric.TotalMoves)
		require.LessOrEqual(t, gameMetric.TotalMoves, 80)
		require.Equal(t, e.Board.BoardState(), gameMetric.Result)
		require.Equal(t, e.Board.ComputeZobrist(), gameMetric.ZobristKey)
		require.True(t, e.Board.IsOneHive())

		for i, m := range moveMetrics {
			require.Equal(t, i+1, m.Step)
			require.Equal(t, game.Color(i%game.NumColors), m.Color, "Colors should alternate")
			require.Positive(t, m.ValidMoves)
		}

		batch := collector.Complete()
		require.Equal(t, 1, batch.Games)
		require.Equal(t, gameMetric.TotalMoves, batch.Moves)
		require.Equal(t, gameMetric.Passes, batch.Passes)
	}
}

func TestGreedyAgentTakesTheWin(t *testing.T) {
	board := beforeLastMove(t)
	before := board.BoardString()
	agent := NewGreedyAgent(1)

	move := agent.FindMove(board)
	require.Equal(t, before, board.BoardString(), "Looking ahead should leave the board as it was")
	require.Equal(t, game.Move{Piece: game.BlackSoldierAnt1, Position: game.Position{Q: -1, R: 1}}, move)

	e := LocalEngine(game.Base, NewRandomAgent(1), agent, WithBoard(board))
	gameMetric, moveMetrics, err := e.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, game.BlackWins, gameMetric.Result)
	require.Len(t, moveMetrics, 1)
	require.Equal(t, game.Black, moveMetrics[0].Color)
}

func TestEvaluate(t *testing.T) {
	board := beforeLastMove(t)
	require.NoError(t, board.PlayString("bA1[-1,0,1]"))
	require.Equal(t, math.MaxInt, Evaluate(board, game.Black))
	require.Less(t, Evaluate(board, game.White), 0)

	start := game.NewGameBoard(game.Base)
	require.NoError(t, start.PlayString("wS1"))
	require.NoError(t, start.PlayString("bS1 wS1-"))
	require.Zero(t, Evaluate(start, game.White), "A symmetric opening scores even")
}

func TestRunErrors(t *testing.T) {
	t.Run("illegal agent move", func(t *testing.T) {
		e := LocalEngine(game.Base, passingAgent{}, passingAgent{})
		_, moveMetrics, err := e.Run(context.Background())
		require.ErrorIs(t, err, game.ErrIllegalMove)
		require.Empty(t, moveMetrics)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e := LocalEngine(game.Base, NewRandomAgent(1), NewRandomAgent(2))
		_, moveMetrics, err := e.Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
		require.Empty(t, moveMetrics)
		require.Equal(t, 0, e.Board.Ply())
	})

	t.Run("missing agent", func(t *testing.T) {
		require.Panics(t, func() { LocalEngine(game.Base, nil, NewRandomAgent(1)) })
	})
}
