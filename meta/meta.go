// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines used by parallel perft.
const GO_ROUTINES = 8

// MAX_TURNS caps the number of plies of a self-play game.
const MAX_TURNS = 300

// ZOBRIST_POSITIONS is the number of cells around the origin with a precomputed key row.
const ZOBRIST_POSITIONS = 1024

// ZOBRIST_MAX_STACK bounds the stack level of precomputed cells.
const ZOBRIST_MAX_STACK = 4

// ZOBRIST_SEED seeds the key table so hashes are stable across runs.
const ZOBRIST_SEED = 0x5eed_4a11

// UPDATE_BUFFER is the number of game updates kept for a slow reader.
const UPDATE_BUFFER = 64
