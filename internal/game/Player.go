package game

import "github.com/Mshel/pacagents/internal/agent"

// Ghost is one adversary in the maze.
type Ghost struct {
	Location         agent.Position
	Start            agent.Position
	CurrentDirection agent.Direction
	ScaredTicks      int
}

func CreateNewGhost(spawnPoint agent.Position) *Ghost {
	return &Ghost{
		Location:         spawnPoint,
		Start:            spawnPoint,
		CurrentDirection: agent.Stop,
	}
}

func (g *Ghost) IsScared() bool {
	return g.ScaredTicks > 0
}

// respawn sends an eaten ghost back to its start.
func (g *Ghost) respawn() {
	g.Location = g.Start
	g.CurrentDirection = agent.Stop
	g.ScaredTicks = 0
}

func (g *Ghost) UpdateDirection(newDir agent.Direction) {
	g.CurrentDirection = newDir
	g.Location = g.Location.Add(newDir.Delta())
	if g.ScaredTicks > 0 {
		g.ScaredTicks--
	}
}
