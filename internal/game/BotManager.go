package game

import (
	"math/rand/v2"

	"github.com/Mshel/pacagents/internal/agent"
)

// BotMaster drives the ghosts. A ghost never stops and only turns back when
// it is in a dead end; its strategy chooses among the remaining moves.
type BotMaster struct {
	rng      *rand.Rand
	strategy Strategy
}

func NewBotMaster(rng *rand.Rand, strategy Strategy) *BotMaster {
	if strategy == nil {
		strategy = &RandomStrategy{}
	}
	return &BotMaster{rng: rng, strategy: strategy}
}

func (bm *BotMaster) processBots(layout *Layout, ghosts []*Ghost, pacman agent.Position) {
	for _, ghost := range ghosts {
		ghost.UpdateDirection(bm.getNextDirection(layout, ghost, pacman))
	}
}

func (bm *BotMaster) getNextDirection(layout *Layout, ghost *Ghost, pacman agent.Position) agent.Direction {
	validMoves := ghostLegalActions(layout, ghost)
	if len(validMoves) == 0 {
		return agent.Stop
	}
	return bm.strategy.getNextBestDirection(ghost, pacman, validMoves, bm.rng)
}

func ghostLegalActions(layout *Layout, ghost *Ghost) agent.Actions {
	var open agent.Actions
	for _, dir := range agent.Compass {
		if !layout.IsWall(ghost.Location.Add(dir.Delta())) {
			open = append(open, dir)
		}
	}

	reverse := ghost.CurrentDirection.Reverse()
	if reverse == agent.Stop || len(open) <= 1 {
		return open
	}

	forward := make(agent.Actions, 0, len(open))
	for _, dir := range open {
		if dir != reverse {
			forward = append(forward, dir)
		}
	}
	return forward
}
