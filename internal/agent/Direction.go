package agent

import "strings"

// Direction is a move pacman can submit on a tick.
type Direction string

const (
	North Direction = "North"
	South Direction = "South"
	East  Direction = "East"
	West  Direction = "West"
	Stop  Direction = "Stop"
)

// Compass lists the four moving directions in the order hosts report them.
var Compass = []Direction{North, South, East, West}

var deltas = map[Direction]Position{
	North: {X: 0, Y: 1},
	South: {X: 0, Y: -1},
	East:  {X: 1, Y: 0},
	West:  {X: -1, Y: 0},
	Stop:  {X: 0, Y: 0},
}

// Delta returns the unit step for d. North grows y.
func (d Direction) Delta() Position {
	return deltas[d]
}

func (d Direction) Reverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return Stop
	}
}

// Valid reports whether d is one of the five known directions.
func (d Direction) Valid() bool {
	_, ok := deltas[d]
	return ok
}

// ParseDirection accepts the canonical names case-insensitively.
func ParseDirection(s string) (Direction, bool) {
	for d := range deltas {
		if strings.EqualFold(string(d), s) {
			return d, true
		}
	}
	return Stop, false
}

// Actions is the set of legal directions for one tick, in host order.
type Actions []Direction

func (a Actions) Contains(d Direction) bool {
	for _, candidate := range a {
		if candidate == d {
			return true
		}
	}
	return false
}

// WithoutStop drops Stop when at least one other action remains.
// The receiver is never modified.
func (a Actions) WithoutStop() Actions {
	moving := make(Actions, 0, len(a))
	for _, d := range a {
		if d != Stop {
			moving = append(moving, d)
		}
	}
	if len(moving) == 0 {
		return a
	}
	return moving
}
