package agent

import "math/rand/v2"

// RandomAgent picks a fresh random move every tick.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(rng *rand.Rand) *RandomAgent {
	return &RandomAgent{rng: rng}
}

func (a *RandomAgent) ChooseAction(sensor Sensor) Direction {
	legal := sensor.LegalActions()
	return commit(pickRandom(legal, a.rng), legal, nil, a.rng)
}
