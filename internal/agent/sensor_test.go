package agent

import "math/rand/v2"

type fakeSensor struct {
	legal    Actions
	pacman   Position
	food     []Position
	walls    []Position
	capsules []Position
	ghosts   []Position
	corners  []Position
}

func (s *fakeSensor) LegalActions() Actions {
	return append(Actions(nil), s.legal...)
}
func (s *fakeSensor) Position() Position   { return s.pacman }
func (s *fakeSensor) Food() []Position     { return append([]Position(nil), s.food...) }
func (s *fakeSensor) Walls() []Position    { return append([]Position(nil), s.walls...) }
func (s *fakeSensor) Capsules() []Position { return append([]Position(nil), s.capsules...) }
func (s *fakeSensor) Ghosts() []Position   { return append([]Position(nil), s.ghosts...) }
func (s *fakeSensor) Corners() []Position  { return append([]Position(nil), s.corners...) }

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// boxWalls returns the border of a width x height maze.
func boxWalls(width, height int) []Position {
	var walls []Position
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				walls = append(walls, Position{X: x, Y: y})
			}
		}
	}
	return walls
}
