package game

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// Perft counts the leaf nodes of the move tree depth plies deep. A cancelled
// context yields (0, ctx.Err()), never a partial count.
func (g *GameBoard) Perft(ctx context.Context, depth int) (uint64, error) {
	if depth < 0 {
		return 0, ErrInvalidDepth
	}
	return g.perft(ctx, depth)
}

func (g *GameBoard) perft(ctx context.Context, depth int) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if depth == 0 {
		return 1, nil
	}
	moves := g.ValidMoves().Slice()
	if depth == 1 {
		return uint64(len(moves)), nil
	}

	var nodes uint64
	for _, m := range moves {
		g.TrustedPlay(m)
		n, err := g.perft(ctx, depth-1)
		if undoErr := g.UndoLastMove(); undoErr != nil {
			panic(undoErr)
		}
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

// ParallelPerft splits the root moves over goroutines workers, each searching
// its own clone of the board.
func (g *GameBoard) ParallelPerft(ctx context.Context, depth, goroutines int) (uint64, error) {
	if depth < 0 {
		return 0, ErrInvalidDepth
	}
	if depth <= 1 || goroutines <= 1 {
		return g.Perft(ctx, depth)
	}

	moves := g.ValidMoves().Slice()
	task := make(chan Move, len(moves))
	for _, m := range moves {
		task <- m
	}
	close(task)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var nodes atomic.Uint64
	var firstErr error
	var errOnce sync.Once
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for m := range task {
				branch := g.Clone()
				branch.TrustedPlay(m)
				n, err := branch.perft(ctx, depth-1)
				if err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					return
				}
				nodes.Add(n)
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		log.Debug().Err(firstErr).Int("depth", depth).Msg("parallel perft cancelled")
		return 0, firstErr
	}
	log.Debug().Int("depth", depth).Int("branches", len(moves)).Uint64("nodes", nodes.Load()).Msg("parallel perft done")
	return nodes.Load(), nil
}

// PerftDivide returns the perft count below each root move, keyed by its
// notation string.
func (g *GameBoard) PerftDivide(ctx context.Context, depth int) (map[string]uint64, error) {
	if depth < 1 {
		return nil, ErrInvalidDepth
	}
	result := make(map[string]uint64)
	for _, m := range g.ValidMoves().Slice() {
		moveString := g.MoveString(m)
		g.TrustedPlay(m)
		n, err := g.perft(ctx, depth-1)
		if undoErr := g.UndoLastMove(); undoErr != nil {
			panic(undoErr)
		}
		if err != nil {
			return nil, err
		}
		result[moveString] = n
	}
	return result, nil
}
