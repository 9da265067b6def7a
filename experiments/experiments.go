package experiments

import (
	"context"
	"fmt"
	"time"

	"hive/experiments/metrics"
	"hive/game"

	"github.com/rs/zerolog/log"
)

// DefaultGoroutines are the worker counts compared by the perft experiment.
var DefaultGoroutines = []int{1, 2, 4, 8, 16, 32}

// RunPerftExperiment times a parallel perft of start at depth once per
// goroutine count. Every run must count the same nodes. If out is not empty
// the records are also stored as CSV under it.
func RunPerftExperiment(ctx context.Context, start *game.GameBoard, depth int, goroutines []int, out string) ([]metrics.PerftRecord, error) {
	log.Info().Msgf("starting perft experiment at depth %d on %s...", depth, start.Expansions())

	records := make([]metrics.PerftRecord, 0, len(goroutines))
	for i, n := range goroutines {
		log.Info().Msgf("starting run %d of %d with %d goroutines...", i+1, len(goroutines), n)

		begin := time.Now()
		nodes, err := start.ParallelPerft(ctx, depth, n)
		if err != nil {
			return records, fmt.Errorf("perft with %d goroutines: %w", n, err)
		}
		if i > 0 && nodes != records[0].Nodes {
			return records, fmt.Errorf("perft with %d goroutines counted %d nodes, %d goroutines counted %d",
				n, nodes, records[0].Goroutines, records[0].Nodes)
		}

		record := metrics.PerftRecord{
			ID:         i + 1,
			Expansions: start.Expansions(),
			Depth:      depth,
			Goroutines: n,
			Nodes:      nodes,
			Duration:   time.Since(begin),
		}
		records = append(records, record)
		log.Info().Msgf("completed run %d of %d: %d nodes in %s (%.0f nodes/s)",
			i+1, len(goroutines), nodes, record.Duration, record.NodesPerSecond())
	}

	log.Info().Msg("completed perft experiment")

	if out == "" {
		return records, nil
	}
	writer, err := metrics.NewWriter(out, "perft")
	if err != nil {
		return records, err
	}
	if err := writer.WritePerftRecords(records); err != nil {
		return records, err
	}
	log.Info().Msgf("stored perft records in %s", writer.Dir())
	return records, nil
}
