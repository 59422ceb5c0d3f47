package agent

// Memory is the per-episode state an agent carries between ticks.
// It belongs to exactly one agent instance.
type Memory struct {
	Last     Direction
	geometry *Geometry
}

func NewMemory() *Memory {
	return &Memory{Last: Stop}
}

// Geometry returns the cached maze geometry, building it from the sensor's
// walls on the first call. Walls are static for an episode so later calls
// never look at the sensor again.
func (m *Memory) Geometry(sensor Sensor) *Geometry {
	if m.geometry == nil {
		m.geometry = NewGeometry(sensor.Walls())
	}
	return m.geometry
}

// Geometry holds the wall set of a maze and the open cells derived from it.
type Geometry struct {
	walls     []Position
	wallSet   map[Position]struct{}
	openSpace []Position
	maxX      int
	maxY      int
}

// NewGeometry scans the rectangle [0,maxX]x[0,maxY] implied by the walls
// and collects every cell that is not a wall.
func NewGeometry(walls []Position) *Geometry {
	g := &Geometry{
		walls:   append([]Position(nil), walls...),
		wallSet: make(map[Position]struct{}, len(walls)),
	}
	for _, w := range walls {
		g.wallSet[w] = struct{}{}
		g.maxX = max(g.maxX, w.X)
		g.maxY = max(g.maxY, w.Y)
	}
	if len(walls) == 0 {
		return g
	}

	for x := 0; x <= g.maxX; x++ {
		for y := 0; y <= g.maxY; y++ {
			p := Position{X: x, Y: y}
			if !g.IsWall(p) {
				g.openSpace = append(g.openSpace, p)
			}
		}
	}
	return g
}

func (g *Geometry) IsWall(p Position) bool {
	_, ok := g.wallSet[p]
	return ok
}

// Walls returns a copy of the cached wall list.
func (g *Geometry) Walls() []Position {
	return append([]Position(nil), g.walls...)
}

// OpenSpace returns a copy of the cached open cells in x-major order.
func (g *Geometry) OpenSpace() []Position {
	return append([]Position(nil), g.openSpace...)
}

// Bounds returns the largest x and y seen in the wall layout.
func (g *Geometry) Bounds() (maxX, maxY int) {
	return g.maxX, g.maxY
}
