// Package agent holds the decision policies that steer pacman through a maze.
//
// Every policy implements Agent: it reads the tick's snapshot through a
// Sensor and returns one Direction from that tick's legal set. A policy
// instance lives for exactly one episode; hosts build a fresh one with New.
package agent

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/charmbracelet/log"
)

type Agent interface {
	ChooseAction(sensor Sensor) Direction
}

var ErrUnknownAgent = errors.New("unknown agent")

type settings struct {
	rng    *rand.Rand
	logger *log.Logger
	script string
}

type Option func(*settings)

// WithRand sets the random source used for exploration picks.
func WithRand(rng *rand.Rand) Option {
	return func(s *settings) { s.rng = rng }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithScript sets the Lua source for the scripted agent. Other agents ignore it.
func WithScript(source string) Option {
	return func(s *settings) { s.script = source }
}

type factory func(s settings) Agent

var registry = map[string]factory{
	"random":    func(s settings) Agent { return NewRandomAgent(s.rng) },
	"randomish": func(s settings) Agent { return NewRandomishAgent(s.rng) },
	"hungry":    func(s settings) Agent { return NewHungryAgent(s.rng, s.logger) },
	"corner":    func(s settings) Agent { return NewCornerSeekingAgent(s.logger) },
	"sensing":   func(s settings) Agent { return NewSensingAgent(s.logger) },
	"survival":  func(s settings) Agent { return NewSurvivalAgent(s.logger) },
	"gowest":    func(s settings) Agent { return NewGoWestAgent(s.rng) },
	"scripted":  func(s settings) Agent { return NewScriptedAgent(s.script, s.rng, s.logger) },
}

// New builds a fresh agent with empty memory.
func New(name string, opts ...Option) (Agent, error) {
	build, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, name)
	}

	s := settings{}
	for _, opt := range opts {
		opt(&s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return build(s), nil
}

// Names lists the registered agents in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// commit is the last step of every policy. It returns choice when legal and
// otherwise falls back to the remembered direction, a random legal move, or
// Stop, in that order.
func commit(choice Direction, legal Actions, mem *Memory, rng *rand.Rand) Direction {
	if legal.Contains(choice) {
		return choice
	}
	if mem != nil && mem.Last != Stop && legal.Contains(mem.Last) {
		return mem.Last
	}
	return pickRandom(legal, rng)
}

// pickRandom draws uniformly from legal, leaving out Stop when anything
// else is available.
func pickRandom(legal Actions, rng *rand.Rand) Direction {
	options := legal.WithoutStop()
	if len(options) == 0 {
		return Stop
	}
	if rng == nil {
		return options[rand.IntN(len(options))]
	}
	return options[rng.IntN(len(options))]
}
