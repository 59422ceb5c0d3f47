package agent

import "fmt"

// Position is a grid cell. x grows east, y grows north.
type Position struct {
	X, Y int
}

func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func GetManhattanDistance(p1, p2 Position) int {
	return abs(p1.X-p2.X) + abs(p1.Y-p2.Y)
}

// Nearest returns the first candidate with the smallest Manhattan distance
// from origin. ok is false when candidates is empty.
func Nearest(origin Position, candidates []Position) (nearest Position, ok bool) {
	best := -1
	for _, c := range candidates {
		dist := GetManhattanDistance(origin, c)
		if best < 0 || dist < best {
			best = dist
			nearest = c
		}
	}
	return nearest, best >= 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
