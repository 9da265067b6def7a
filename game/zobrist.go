package game

import (
	"hive/meta"

	"golang.org/x/exp/rand"
)

// Zobrist keys. Cells near the origin draw from a fixed-seed table; cells
// outside it derive their key by mixing the coordinates.
var (
	zobristCells     map[Position]int
	zobristPiece     [][NumPieceNames]uint64
	zobristTurn      uint64
	zobristLastMoved [NumPieceNames]uint64
)

func init() {
	initZobrist(meta.ZOBRIST_POSITIONS, meta.ZOBRIST_MAX_STACK, meta.ZOBRIST_SEED)
}

func initZobrist(count, maxStack int, seed uint64) {
	rnd := rand.New(rand.NewSource(seed))

	cells := UniquePositions(count, maxStack)
	zobristCells = make(map[Position]int, len(cells))
	zobristPiece = make([][NumPieceNames]uint64, len(cells))
	for i, cell := range cells {
		zobristCells[cell] = i
		for p := 0; p < NumPieceNames; p++ {
			zobristPiece[i][p] = rnd.Uint64()
		}
	}

	zobristTurn = rnd.Uint64()
	for p := 0; p < NumPieceNames; p++ {
		zobristLastMoved[p] = rnd.Uint64()
	}
}

func pieceKey(name PieceName, pos Position) uint64 {
	if i, ok := zobristCells[pos]; ok {
		return zobristPiece[i][name]
	}
	h := uint64(name)
	h = mix64(h ^ uint64(int64(pos.Q))*0x9e3779b97f4a7c15)
	h = mix64(h ^ uint64(int64(pos.R))*0xc2b2ae3d27d4eb4f)
	return mix64(h ^ uint64(pos.Stack)*0x165667b19e3779f9)
}

// splitmix64 finalizer
func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func lastMovedKey(name PieceName) uint64 {
	if !name.Valid() {
		return 0
	}
	return zobristLastMoved[name]
}

// ComputeZobrist calculates the hash of the board from scratch. It always
// equals ZobristKey on a consistent board.
func (b *Board) ComputeZobrist() uint64 {
	var key uint64
	for name := PieceName(0); name < NumPieceNames; name++ {
		if b.inPlay[name] {
			key ^= pieceKey(name, b.positions[name])
		}
	}
	if b.CurrentColor() == Black {
		key ^= zobristTurn
	}
	if b.tracksLastMoved() {
		key ^= lastMovedKey(b.lastMoved)
	}
	return key
}
