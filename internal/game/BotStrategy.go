package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/Mshel/pacagents/internal/agent"
)

var ErrUnknownGhostStrategy = errors.New("unknown ghost strategy")

// Strategy picks a ghost's next move from the moves it may take this tick.
// validMoves is never empty.
type Strategy interface {
	getNextBestDirection(ghost *Ghost, pacman agent.Position, validMoves agent.Actions, rng *rand.Rand) agent.Direction
}

// RandomStrategy wanders uniformly.
type RandomStrategy struct{}

func (s *RandomStrategy) getNextBestDirection(_ *Ghost, _ agent.Position, validMoves agent.Actions, rng *rand.Rand) agent.Direction {
	return validMoves[rng.IntN(len(validMoves))]
}

// ChaseStrategy closes in on pacman, or runs from it while scared. With
// probability 1-Focus it makes a random move instead.
type ChaseStrategy struct {
	Focus float64
}

func (s *ChaseStrategy) getNextBestDirection(ghost *Ghost, pacman agent.Position, validMoves agent.Actions, rng *rand.Rand) agent.Direction {
	if rng.Float64() >= s.Focus {
		return validMoves[rng.IntN(len(validMoves))]
	}

	flee := ghost.IsScared()
	bestDir := validMoves[0]
	bestDist := agent.GetManhattanDistance(ghost.Location.Add(bestDir.Delta()), pacman)
	for _, dir := range validMoves[1:] {
		dist := agent.GetManhattanDistance(ghost.Location.Add(dir.Delta()), pacman)
		if (flee && dist > bestDist) || (!flee && dist < bestDist) {
			bestDir, bestDist = dir, dist
		}
	}
	return bestDir
}

var ghostStrategies = map[string]func() Strategy{
	"random": func() Strategy { return &RandomStrategy{} },
	"chase":  func() Strategy { return &ChaseStrategy{Focus: 0.8} },
}

// GetGhostStrategy resolves a strategy by name. The empty name means random.
func GetGhostStrategy(name string) (Strategy, error) {
	if name == "" {
		name = "random"
	}
	build, ok := ghostStrategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGhostStrategy, name)
	}
	return build(), nil
}

func GhostStrategyNames() []string {
	names := make([]string, 0, len(ghostStrategies))
	for name := range ghostStrategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
