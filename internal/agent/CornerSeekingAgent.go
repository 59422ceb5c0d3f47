package agent

import "github.com/charmbracelet/log"

// CornerSeekingAgent caches the maze geometry and the corners of the map
// but has no route planner yet, so it always stays put.
type CornerSeekingAgent struct {
	logger  *log.Logger
	memory  *Memory
	corners []Position
	mapped  bool
}

func NewCornerSeekingAgent(logger *log.Logger) *CornerSeekingAgent {
	return &CornerSeekingAgent{logger: logger, memory: NewMemory()}
}

func (a *CornerSeekingAgent) ChooseAction(sensor Sensor) Direction {
	legal := sensor.LegalActions()
	geometry := a.memory.Geometry(sensor)
	if !a.mapped {
		a.corners = sensor.Corners()
		a.mapped = true
		a.logger.Debug("mapped maze", "corners", a.corners, "open_cells", len(geometry.openSpace))
	}
	return commit(Stop, legal, nil, nil)
}

func (a *CornerSeekingAgent) Geometry() *Geometry {
	return a.memory.geometry
}

func (a *CornerSeekingAgent) Corners() []Position {
	return append([]Position(nil), a.corners...)
}
