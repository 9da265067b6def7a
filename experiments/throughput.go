package experiments

import (
	"context"
	"fmt"
	"sync"

	"hive/engine"
	"hive/experiments/metrics"
	"hive/game"
	"hive/meta"

	"github.com/rs/zerolog/log"
)

type SelfPlayConfig struct {
	Expansions game.ExpansionPieces
	Games      int
	Goroutines int
	MaxMoves   int
	Seed       uint64
	Greedy     bool // greedy agents instead of random ones
}

// SelfPlayResult holds everything a self-play batch produced.
type SelfPlayResult struct {
	Batch metrics.BatchMetric
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
}

// RunThroughputExperiment plays config.Games self-play games spread over
// config.Goroutines workers. Game i is seeded from config.Seed and i, so a
// batch replays identically whatever the worker count. If out is not empty
// the records are also stored as CSV under it.
func RunThroughputExperiment(ctx context.Context, config SelfPlayConfig, out string) (SelfPlayResult, error) {
	if config.Goroutines <= 0 {
		config.Goroutines = meta.GO_ROUTINES
	}
	if config.MaxMoves <= 0 {
		config.MaxMoves = meta.MAX_TURNS
	}
	log.Info().Msgf("starting self-play experiment: %d %s games on %d goroutines...",
		config.Games, config.Expansions, config.Goroutines)

	task := make(chan int, config.Games)
	for i := 0; i < config.Games; i++ {
		task <- i
	}
	close(task)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	collector := metrics.NewCollector()
	collector.Start(config.Goroutines)
	games := make([]metrics.GameRecord, config.Games)
	moves := make([][]metrics.MoveMetric, config.Games)

	var firstErr error
	var errOnce sync.Once
	var wg sync.WaitGroup
	for i := 0; i < config.Goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for id := range task {
				seed := config.Seed + 2*uint64(id)
				white, black := newAgents(config.Greedy, seed)
				e := engine.LocalEngine(config.Expansions, white, black,
					engine.WithMaxMoves(config.MaxMoves), engine.WithCollector(collector))

				gameMetric, moveMetrics, err := e.Run(ctx)
				if err != nil {
					errOnce.Do(func() {
						firstErr = fmt.Errorf("game %d: %w", id+1, err)
						cancel()
					})
					return
				}
				games[id] = metrics.GameRecord{ID: id + 1, Seed: seed, GameMetric: gameMetric}
				moves[id] = moveMetrics
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return SelfPlayResult{}, firstErr
	}

	result := SelfPlayResult{Batch: collector.Complete(), Games: games}
	for id, moveMetrics := range moves {
		for _, mm := range moveMetrics {
			result.Moves = append(result.Moves, metrics.MoveRecord{Game: id + 1, MoveMetric: mm})
		}
	}
	log.Info().Msgf("completed self-play experiment: %+v", result.Batch)

	if out == "" {
		return result, nil
	}
	return result, store(out, result)
}

func newAgents(greedy bool, seed uint64) (engine.Agent, engine.Agent) {
	if greedy {
		return engine.NewGreedyAgent(seed), engine.NewGreedyAgent(seed + 1)
	}
	return engine.NewRandomAgent(seed), engine.NewRandomAgent(seed + 1)
}

func store(out string, result SelfPlayResult) error {
	writer, err := metrics.NewWriter(out, "selfplay")
	if err != nil {
		return err
	}

	if err := writer.WriteBatch(result.Batch); err != nil {
		return err
	}
	if err := writer.WriteGameRecords(result.Games); err != nil {
		return err
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(result.Moves); err != nil {
		return err
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}
