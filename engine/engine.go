package engine

import (
	"context"

	"hive/experiments/metrics"
	"hive/game"
)

// Runner plays one game to the end or to its move cap.
type Runner interface {
	Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error)
}

// Agent picks the move to play. state is only borrowed for the call: an
// agent may play and undo moves on it but must leave it as it found it.
type Agent interface {
	FindMove(state game.State) game.Move
}

var _ Runner = (*Engine)(nil)
