package agent

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
)

// HungryAgent heads for the nearest pellet by Manhattan distance.
//
// It does no path search: when both moves toward the pellet are blocked it
// keeps its previous heading, or picks a random one, and can oscillate in
// dead ends.
type HungryAgent struct {
	rng    *rand.Rand
	logger *log.Logger
	memory *Memory
}

func NewHungryAgent(rng *rand.Rand, logger *log.Logger) *HungryAgent {
	return &HungryAgent{
		rng:    rng,
		logger: logger,
		memory: NewMemory(),
	}
}

func (a *HungryAgent) ChooseAction(sensor Sensor) Direction {
	legal := sensor.LegalActions()
	pacman := sensor.Position()
	a.memory.Geometry(sensor)

	if target, ok := Nearest(pacman, sensor.Food()); ok {
		if dir, ok := towards(pacman, target, legal); ok {
			a.logger.Debug("heading for pellet", "pacman", pacman, "pellet", target, "direction", dir)
			a.memory.Last = dir
			return commit(dir, legal, a.memory, a.rng)
		}
	}

	if a.memory.Last != Stop && legal.Contains(a.memory.Last) {
		return commit(a.memory.Last, legal, a.memory, a.rng)
	}

	pick := pickRandom(legal, a.rng)
	a.memory.Last = pick
	return commit(pick, legal, a.memory, a.rng)
}

// Target returns the pellet the agent would aim for from the sensed state.
func (a *HungryAgent) Target(sensor Sensor) (Position, bool) {
	return Nearest(sensor.Position(), sensor.Food())
}

func (a *HungryAgent) Geometry() *Geometry {
	return a.memory.geometry
}

func (a *HungryAgent) PreferredDirection() Direction {
	return a.memory.Last
}

// towards checks the x axis before the y axis and returns the first move
// that closes distance to target and is legal right now.
func towards(from, target Position, legal Actions) (Direction, bool) {
	switch {
	case target.X > from.X && legal.Contains(East):
		return East, true
	case target.X < from.X && legal.Contains(West):
		return West, true
	case target.Y > from.Y && legal.Contains(North):
		return North, true
	case target.Y < from.Y && legal.Contains(South):
		return South, true
	}
	return Stop, false
}
