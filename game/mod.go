// Package game implements the rules of Hive: the stacked hex board, the
// legal moves of every bug, the one-hive rule, Zobrist hashing, history with
// undo, and perft.
package game

import "context"

// State is the contract a search or a game driver relies on. *GameBoard
// implements it.
type State interface {
	CurrentColor() Color
	BoardState() BoardState
	ValidMoves() *MoveSet
	Play(Move) error
	TrustedPlay(Move)
	UndoLastMove() error
	ZobristKey() uint64
	MoveString(Move) string
	Metrics() BoardMetrics
}

var _ State = (*GameBoard)(nil)

// Perfter counts move-tree leaves.
type Perfter interface {
	Perft(ctx context.Context, depth int) (uint64, error)
	ParallelPerft(ctx context.Context, depth, goroutines int) (uint64, error)
}

var _ Perfter = (*GameBoard)(nil)
