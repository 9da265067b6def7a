package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Direction is one of the six lateral neighbour directions of a hex cell.
// Consecutive directions are adjacent, so the cells flanking an edge in
// direction d lie in directions d-1 and d+1.
type Direction int

const (
	East Direction = iota
	NorthEast
	NorthWest
	West
	SouthWest
	SouthEast
)

// NumDirections is the number of lateral neighbours of a cell.
const NumDirections = 6

var directionNames = [NumDirections]string{"East", "NorthEast", "NorthWest", "West", "SouthWest", "SouthEast"}

func (d Direction) String() string {
	if d < 0 || d >= NumDirections {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Left returns the direction counter-clockwise of d.
func (d Direction) Left() Direction { return (d + 1) % NumDirections }

// Right returns the direction clockwise of d.
func (d Direction) Right() Direction { return (d + NumDirections - 1) % NumDirections }

// Opposite returns the direction pointing back along d.
func (d Direction) Opposite() Direction { return (d + 3) % NumDirections }

// Axial unit offsets, indexed by Direction.
var neighborDeltas = [NumDirections][2]int{
	{1, 0},
	{1, -1},
	{0, -1},
	{-1, 0},
	{-1, 1},
	{0, 1},
}

// Position is a cell of the hive: an axial hex coordinate plus a stack level.
// The third cube axis is derived, so the cube coordinates always sum to zero.
type Position struct {
	Q     int
	R     int
	Stack int
}

// Origin is the cell where the first piece of every game is placed.
var Origin = Position{}

// InHand is the position of a piece that has not been placed.
var InHand = Position{Stack: -1}

// IsInHand reports whether p is the in-hand sentinel.
func (p Position) IsInHand() bool { return p.Stack < 0 }

// X, Y and Z return the cube coordinates of the cell.
func (p Position) X() int { return p.Q }
func (p Position) Y() int { return -p.Q - p.R }
func (p Position) Z() int { return p.R }

// Neighbor returns the adjacent cell in direction d at the same stack level.
func (p Position) Neighbor(d Direction) Position {
	delta := neighborDeltas[d]
	return Position{Q: p.Q + delta[0], R: p.R + delta[1], Stack: p.Stack}
}

// Neighbors returns the six lateral neighbours in Direction order.
func (p Position) Neighbors() [NumDirections]Position {
	var result [NumDirections]Position
	for d := Direction(0); d < NumDirections; d++ {
		result[d] = p.Neighbor(d)
	}
	return result
}

// Above returns the cell directly on top of p.
func (p Position) Above() Position {
	return Position{Q: p.Q, R: p.R, Stack: p.Stack + 1}
}

// Below returns the cell directly underneath p. It reports false at ground level.
func (p Position) Below() (Position, bool) {
	if p.Stack == 0 {
		return p, false
	}
	return Position{Q: p.Q, R: p.R, Stack: p.Stack - 1}, true
}

// Ground returns the ground-level cell of p's stack.
func (p Position) Ground() Position {
	return Position{Q: p.Q, R: p.R}
}

// WithStack returns p's lateral cell at the given stack level.
func (p Position) WithStack(stack int) Position {
	return Position{Q: p.Q, R: p.R, Stack: stack}
}

// SameHex reports whether p and other are in the same stack.
func (p Position) SameHex(other Position) bool {
	return p.Q == other.Q && p.R == other.R
}

// DirectionTo returns the direction from p to a laterally adjacent cell.
func (p Position) DirectionTo(other Position) (Direction, bool) {
	dq, dr := other.Q-p.Q, other.R-p.R
	for d, delta := range neighborDeltas {
		if delta[0] == dq && delta[1] == dr {
			return Direction(d), true
		}
	}
	return 0, false
}

// IsTouching reports whether other is one of p's lateral neighbours, or
// directly above or below p.
func (p Position) IsTouching(other Position) bool {
	if p.SameHex(other) {
		return other.Stack == p.Stack+1 || other.Stack == p.Stack-1
	}
	if other.Stack != p.Stack {
		return false
	}
	_, ok := p.DirectionTo(other)
	return ok
}

// String formats the cell as "x,y,z", with ",stack" appended above ground.
func (p Position) String() string {
	s := strconv.Itoa(p.X()) + "," + strconv.Itoa(p.Y()) + "," + strconv.Itoa(p.Z())
	if p.Stack > 0 {
		s += "," + strconv.Itoa(p.Stack)
	}
	return s
}

// ParsePosition parses the "x,y,z[,stack]" form produced by String.
func ParsePosition(s string) (Position, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Position{}, newParseError(PositionToken, s)
	}
	var coords [4]int
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return Position{}, errors.Wrapf(newParseError(PositionToken, s), "coordinate %q", part)
		}
		coords[i] = v
	}
	if coords[0]+coords[1]+coords[2] != 0 {
		return Position{}, errors.Wrap(newParseError(PositionToken, s), "cube coordinates must sum to zero")
	}
	if coords[3] < 0 {
		return Position{}, errors.Wrap(newParseError(PositionToken, s), "negative stack")
	}
	return Position{Q: coords[0], R: coords[2], Stack: coords[3]}, nil
}

// UniquePositions flood-fills outward from the origin over lateral neighbours
// and the cells above and below, collecting up to count distinct cells whose
// stack level does not exceed maxStack. Cells are returned in discovery order.
func UniquePositions(count, maxStack int) []Position {
	if count <= 0 {
		return nil
	}
	result := make([]Position, 0, count)
	seen := map[Position]struct{}{Origin: {}}
	queue := []Position{Origin}
	for len(queue) > 0 && len(result) < count {
		current := queue[0]
		queue = queue[1:]
		result = append(result, current)

		neighbors := current.Neighbors()
		next := append(make([]Position, 0, NumDirections+2), neighbors[:]...)
		if current.Stack < maxStack {
			next = append(next, current.Above())
		}
		if below, ok := current.Below(); ok {
			next = append(next, below)
		}
		for _, n := range next {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return result
}
