package agent

// Sensor is the read-only view of the world an agent gets each tick.
// Implementations must return a consistent snapshot for the whole tick
// and must not let callers mutate host state through returned slices.
type Sensor interface {
	LegalActions() Actions
	Position() Position
	// Food is enumerated in a stable order; ties in nearest-food
	// selection go to the earliest entry.
	Food() []Position
	Walls() []Position
	Capsules() []Position
	Ghosts() []Position
	Corners() []Position
}
