package agent

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
)

// SensingAgent never moves. It logs everything pacman can sense.
type SensingAgent struct {
	logger *log.Logger
}

func NewSensingAgent(logger *log.Logger) *SensingAgent {
	return &SensingAgent{logger: logger}
}

func (a *SensingAgent) ChooseAction(sensor Sensor) Direction {
	legal := sensor.LegalActions()
	pacman := sensor.Position()
	ghosts := sensor.Ghosts()

	distances := make([]int, len(ghosts))
	for i, ghost := range ghosts {
		distances[i] = GetManhattanDistance(pacman, ghost)
	}

	a.logger.Info("sensed",
		"legal", legal,
		"pacman", pacman,
		"ghosts", ghosts,
		"ghost_distances", distances,
		"capsules", sensor.Capsules(),
		"food", len(sensor.Food()),
		"walls", len(sensor.Walls()),
	)
	return commit(Stop, legal, nil, nil)
}

// SurvivalAgent measures how far the ghosts are but does not act on it.
type SurvivalAgent struct {
	logger *log.Logger
}

func NewSurvivalAgent(logger *log.Logger) *SurvivalAgent {
	return &SurvivalAgent{logger: logger}
}

func (a *SurvivalAgent) ChooseAction(sensor Sensor) Direction {
	legal := sensor.LegalActions()
	pacman := sensor.Position()
	ghosts := sensor.Ghosts()

	nearest := -1
	for _, ghost := range ghosts {
		dist := GetManhattanDistance(pacman, ghost)
		if nearest < 0 || dist < nearest {
			nearest = dist
		}
	}

	spread := -1
	if len(ghosts) >= 2 {
		spread = GetManhattanDistance(ghosts[0], ghosts[1])
	}

	a.logger.Debug("ghost distances", "nearest", nearest, "ghost_spread", spread)
	return commit(Stop, legal, nil, nil)
}

// GoWestAgent tries to reach the left edge of the maze, sliding north or
// south when west is blocked.
type GoWestAgent struct {
	rng *rand.Rand
}

func NewGoWestAgent(rng *rand.Rand) *GoWestAgent {
	return &GoWestAgent{rng: rng}
}

func (a *GoWestAgent) ChooseAction(sensor Sensor) Direction {
	legal := sensor.LegalActions()

	direction := West
	if !legal.Contains(West) {
		if legal.Contains(North) {
			direction = North
		} else if legal.Contains(South) {
			direction = South
		}
	}
	return commit(direction, legal, nil, a.rng)
}
