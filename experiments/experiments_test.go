package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"hive/game"

	"github.com/stretchr/testify/require"
)

func TestRunPerftExperiment(t *testing.T) {
	out := t.TempDir()
	records, err := RunPerftExperiment(context.Background(), game.NewGameBoard(game.Base), 3, []int{1, 2, 4}, out)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, r := range records {
		require.Equal(t, i+1, r.ID)
		require.Equal(t, uint64(1440), r.Nodes)
		require.Equal(t, 3, r.Depth)
	}

	files, err := filepath.Glob(filepath.Join(out, "perft", "*", "perft_records.csv"))
	require.NoError(t, err)
	require.Len(t, files, 1)
}

func TestRunPerftExperimentCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	records, err := RunPerftExperiment(ctx, game.NewGameBoard(game.Base), 3, DefaultGoroutines, "")
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, records)
}

func TestRunThroughputExperiment(t *testing.T) {
	config := SelfPlayConfig{Expansions: game.AllExpansions, Games: 6, Goroutines: 3, MaxMoves: 40, Seed: 5}

	result, err := RunThroughputExperiment(context.Background(), config, "")
	require.NoError(t, err)
	require.Equal(t, 6, result.Batch.Games)
	require.Len(t, result.Games, 6)
	require.Len(t, result.Moves, result.Batch.Moves)

	total := 0
	for i, g := range result.Games {
		require.Equal(t, i+1, g.ID)
		require.LessOrEqual(t, g.TotalMoves, 40)
		total += g.TotalMoves
	}
	require.Equal(t, total, result.Batch.Moves)

	t.Run("independent of the worker count", func(t *testing.T) {
		config.Goroutines = 1
		sequential, err := RunThroughputExperiment(context.Background(), config, "")
		require.NoError(t, err)
		for i := range result.Games {
			require.Equal(t, result.Games[i].ZobristKey, sequential.Games[i].ZobristKey)
			require.Equal(t, result.Games[i].Result, sequential.Games[i].Result)
		}
	})

	t.Run("stores records", func(t *testing.T) {
		out := t.TempDir()
		config.Games = 2
		_, err := RunThroughputExperiment(context.Background(), config, out)
		require.NoError(t, err)

		dirs, err := os.ReadDir(filepath.Join(out, "selfplay"))
		require.NoError(t, err)
		require.Len(t, dirs, 1)
		for _, name := range []string{"batch.csv", "game_records.csv", "move_records.csv"} {
			require.FileExists(t, filepath.Join(out, "selfplay", dirs[0].Name(), name))
		}
	})
}
