package game

import "slices"

// MoveSet is an unordered collection of distinct moves.
type MoveSet struct {
	moves map[Move]struct{}
}

func NewMoveSet(moves ...Move) *MoveSet {
	s := &MoveSet{moves: make(map[Move]struct{}, len(moves))}
	for _, m := range moves {
		s.Add(m)
	}
	return s
}

func (s *MoveSet) Add(m Move) { s.moves[m] = struct{}{} }

// AddAll merges other into s.
func (s *MoveSet) AddAll(other *MoveSet) {
	for m := range other.moves {
		s.moves[m] = struct{}{}
	}
}

func (s *MoveSet) Remove(m Move) { delete(s.moves, m) }

// Except returns the moves of s that are not in other.
func (s *MoveSet) Except(other *MoveSet) *MoveSet {
	result := NewMoveSet()
	for m := range s.moves {
		if !other.Contains(m) {
			result.Add(m)
		}
	}
	return result
}

func (s *MoveSet) Contains(m Move) bool {
	_, ok := s.moves[m]
	return ok
}

func (s *MoveSet) Len() int { return len(s.moves) }

// Slice returns the moves ordered by piece, then position.
func (s *MoveSet) Slice() []Move {
	result := make([]Move, 0, len(s.moves))
	for m := range s.moves {
		result = append(result, m)
	}
	slices.SortFunc(result, compareMoves)
	return result
}

func (s *MoveSet) Clone() *MoveSet {
	c := &MoveSet{moves: make(map[Move]struct{}, len(s.moves))}
	c.AddAll(s)
	return c
}
