package game

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/Mshel/pacagents/internal/agent"
)

// EpisodeSpec says which agent plays which layout with which seed.
type EpisodeSpec struct {
	Agent  string
	Layout string
	Seed   uint64
	Script string
	Ghosts string
}

type Result struct {
	Agent    string
	Layout   string
	Seed     uint64
	Score    int
	Outcome  Outcome
	Ticks    int
	FoodLeft int
	Duration time.Duration
}

func (r Result) Won() bool {
	return r.Outcome == Won
}

// Episode is one run of one agent instance through one maze.
type Episode struct {
	spec     EpisodeSpec
	state    *State
	agent    agent.Agent
	maxTicks int
	logger   *log.Logger
	started  time.Time
}

// NewEpisode builds the world and a fresh agent for spec. The seed drives
// both the ghosts and the agent's random picks so runs are repeatable.
func NewEpisode(spec EpisodeSpec, maxTicks int, logger *log.Logger) (*Episode, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}

	layout, err := LoadLayout(spec.Layout)
	if err != nil {
		return nil, err
	}
	ghosts, err := GetGhostStrategy(spec.Ghosts)
	if err != nil {
		return nil, err
	}

	episodeLogger := logger.With("agent", spec.Agent, "layout", spec.Layout, "seed", spec.Seed)
	pacman, err := agent.New(spec.Agent,
		agent.WithRand(rand.New(rand.NewPCG(spec.Seed, 2))),
		agent.WithLogger(episodeLogger),
		agent.WithScript(spec.Script),
	)
	if err != nil {
		return nil, err
	}

	return &Episode{
		spec:     spec,
		state:    NewStateWithGhosts(layout, rand.New(rand.NewPCG(spec.Seed, 1)), ghosts),
		agent:    pacman,
		maxTicks: maxTicks,
		logger:   episodeLogger,
		started:  time.Now(),
	}, nil
}

func (e *Episode) State() *State {
	return e.state
}

func (e *Episode) Done() bool {
	return e.state.Outcome() != Running
}

// Step runs one tick: sense, decide, submit.
func (e *Episode) Step() error {
	if e.Done() {
		return ErrEpisodeOver
	}

	action := e.agent.ChooseAction(e.state)
	if err := e.state.Apply(action); err != nil {
		return fmt.Errorf("tick %d: %w", e.state.Ticks()+1, err)
	}

	if !e.Done() && e.state.Ticks() >= e.maxTicks {
		e.state.timeOut()
	}
	if e.Done() {
		e.logger.Debug("episode finished", "outcome", e.state.Outcome(), "score", e.state.Score(), "ticks", e.state.Ticks())
	}
	return nil
}

// Run steps until the episode ends or ctx is cancelled.
func (e *Episode) Run(ctx context.Context) (Result, error) {
	for !e.Done() {
		select {
		case <-ctx.Done():
			return e.Result(), ctx.Err()
		default:
		}

		if err := e.Step(); err != nil {
			return e.Result(), err
		}
	}
	return e.Result(), nil
}

func (e *Episode) Result() Result {
	return Result{
		Agent:    e.spec.Agent,
		Layout:   e.spec.Layout,
		Seed:     e.spec.Seed,
		Score:    e.state.Score(),
		Outcome:  e.state.Outcome(),
		Ticks:    e.state.Ticks(),
		FoodLeft: e.state.FoodLeft(),
		Duration: time.Since(e.started),
	}
}

// ResultStore persists finished episodes.
type ResultStore interface {
	SaveResult(ctx context.Context, result Result) error
}

// GameManager runs episodes for the CLI and the UI.
type GameManager struct {
	MaxTicks int
	Workers  int
	Store    ResultStore
	Logger   *log.Logger
}

func NewGameManager(maxTicks, workers int, store ResultStore, logger *log.Logger) *GameManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &GameManager{
		MaxTicks: maxTicks,
		Workers:  workers,
		Store:    store,
		Logger:   logger,
	}
}

func (gm *GameManager) NewEpisode(spec EpisodeSpec) (*Episode, error) {
	return NewEpisode(spec, gm.MaxTicks, gm.Logger)
}

// RunEpisode plays one episode to the end and stores its result.
func (gm *GameManager) RunEpisode(ctx context.Context, spec EpisodeSpec) (Result, error) {
	episode, err := gm.NewEpisode(spec)
	if err != nil {
		return Result{}, err
	}

	result, err := episode.Run(ctx)
	if err != nil {
		return result, fmt.Errorf("episode %s/%s seed %d: %w", spec.Agent, spec.Layout, spec.Seed, err)
	}

	if err := gm.Record(ctx, result); err != nil {
		return result, err
	}
	gm.Logger.Info("episode complete", "agent", result.Agent, "layout", result.Layout,
		"seed", result.Seed, "outcome", result.Outcome, "score", result.Score, "ticks", result.Ticks)
	return result, nil
}

// Record saves result when a store is configured.
func (gm *GameManager) Record(ctx context.Context, result Result) error {
	if gm.Store == nil {
		return nil
	}
	if err := gm.Store.SaveResult(ctx, result); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// RunBatch plays every spec on at most Workers goroutines. Each episode owns
// its agent, so no agent is ever shared between goroutines. Results keep
// the order of specs.
func (gm *GameManager) RunBatch(ctx context.Context, specs []EpisodeSpec) ([]Result, error) {
	results := make([]Result, len(specs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(gm.Workers)
	for i, spec := range specs {
		group.Go(func() error {
			result, err := gm.RunEpisode(groupCtx, spec)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
