package agent

import "math/rand/v2"

// RandomishAgent keeps going in the last direction it picked and only makes
// a new random choice once that direction is blocked.
type RandomishAgent struct {
	rng    *rand.Rand
	memory *Memory
}

func NewRandomishAgent(rng *rand.Rand) *RandomishAgent {
	return &RandomishAgent{rng: rng, memory: NewMemory()}
}

func (a *RandomishAgent) ChooseAction(sensor Sensor) Direction {
	legal := sensor.LegalActions().WithoutStop()
	if legal.Contains(a.memory.Last) {
		return commit(a.memory.Last, legal, a.memory, a.rng)
	}

	pick := pickRandom(legal, a.rng)
	a.memory.Last = pick
	return commit(pick, legal, a.memory, a.rng)
}

// LastDirection exposes the remembered direction.
func (a *RandomishAgent) LastDirection() Direction {
	return a.memory.Last
}
