package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/Mshel/pacagents/internal/agent"
)

var (
	ErrIllegalAction = errors.New("illegal action")
	ErrEpisodeOver   = errors.New("episode is over")
)

type Outcome int

const (
	Running Outcome = iota
	Won
	Lost
	TimedOut
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case TimedOut:
		return "timed out"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Cell is what occupies a maze square, ignoring pacman and ghosts.
type Cell int

const (
	EmptyCell Cell = iota
	WallCell
	FoodCell
	CapsuleCell
)

// State is the authoritative world for one episode. It implements
// agent.Sensor; every query returns a fresh copy.
type State struct {
	layout          *Layout
	pacman          agent.Position
	pacmanDirection agent.Direction
	food            map[agent.Position]struct{}
	capsules        map[agent.Position]struct{}
	ghosts          []*Ghost
	botMaster       *BotMaster
	score           int
	ticks           int
	outcome         Outcome
}

// NewState starts an episode on layout with randomly wandering ghosts.
func NewState(layout *Layout, rng *rand.Rand) *State {
	return NewStateWithGhosts(layout, rng, &RandomStrategy{})
}

func NewStateWithGhosts(layout *Layout, rng *rand.Rand, ghosts Strategy) *State {
	s := &State{
		layout:          layout,
		pacman:          layout.PacmanStart,
		pacmanDirection: agent.Stop,
		food:            make(map[agent.Position]struct{}, len(layout.Food)),
		capsules:        make(map[agent.Position]struct{}, len(layout.Capsules)),
		botMaster:       NewBotMaster(rng, ghosts),
	}
	for _, p := range layout.Food {
		s.food[p] = struct{}{}
	}
	for _, p := range layout.Capsules {
		s.capsules[p] = struct{}{}
	}
	for _, p := range layout.GhostStarts {
		s.ghosts = append(s.ghosts, CreateNewGhost(p))
	}
	return s
}

// LegalActions lists the open compass moves in North, South, East, West
// order followed by Stop, which is always legal.
func (s *State) LegalActions() agent.Actions {
	legal := make(agent.Actions, 0, len(agent.Compass)+1)
	for _, dir := range agent.Compass {
		if !s.layout.IsWall(s.pacman.Add(dir.Delta())) {
			legal = append(legal, dir)
		}
	}
	return append(legal, agent.Stop)
}

func (s *State) Position() agent.Position {
	return s.pacman
}

// Food lists the remaining pellets in x-major order.
func (s *State) Food() []agent.Position {
	return sortedKeys(s.food)
}

func (s *State) Walls() []agent.Position {
	return s.layout.Walls()
}

func (s *State) Capsules() []agent.Position {
	return sortedKeys(s.capsules)
}

func (s *State) Ghosts() []agent.Position {
	positions := make([]agent.Position, len(s.ghosts))
	for i, ghost := range s.ghosts {
		positions[i] = ghost.Location
	}
	return positions
}

func (s *State) Corners() []agent.Position {
	return s.layout.Corners()
}

func (s *State) Layout() *Layout {
	return s.layout
}

func (s *State) Score() int {
	return s.score
}

func (s *State) Ticks() int {
	return s.ticks
}

func (s *State) Outcome() Outcome {
	return s.outcome
}

func (s *State) FoodLeft() int {
	return len(s.food)
}

func (s *State) PacmanDirection() agent.Direction {
	return s.pacmanDirection
}

// GhostAt reports whether a ghost stands on p and whether it is scared.
func (s *State) GhostAt(p agent.Position) (present bool, scared bool) {
	for _, ghost := range s.ghosts {
		if ghost.Location == p {
			present = true
			scared = scared || ghost.IsScared()
		}
	}
	return present, scared
}

func (s *State) Cell(p agent.Position) Cell {
	if s.layout.IsWall(p) {
		return WallCell
	}
	if _, ok := s.food[p]; ok {
		return FoodCell
	}
	if _, ok := s.capsules[p]; ok {
		return CapsuleCell
	}
	return EmptyCell
}

// Apply submits pacman's move for this tick. A move outside the current
// legal set is rejected and leaves the state untouched.
func (s *State) Apply(dir agent.Direction) error {
	if s.outcome != Running {
		return ErrEpisodeOver
	}
	legal := s.LegalActions()
	if !legal.Contains(dir) {
		return fmt.Errorf("%w: %q not in %v", ErrIllegalAction, dir, legal)
	}

	s.ticks++
	s.score -= ScoreTickPenalty
	s.pacmanDirection = dir
	s.pacman = s.pacman.Add(dir.Delta())

	if _, ok := s.food[s.pacman]; ok {
		delete(s.food, s.pacman)
		s.score += ScoreFood
		if len(s.food) == 0 {
			s.score += ScoreWin
			s.outcome = Won
			return nil
		}
	}
	if _, ok := s.capsules[s.pacman]; ok {
		delete(s.capsules, s.pacman)
		for _, ghost := range s.ghosts {
			ghost.ScaredTicks = ScaredTicks
		}
	}

	if s.resolveCollisions() {
		return nil
	}
	s.botMaster.processBots(s.layout, s.ghosts, s.pacman)
	s.resolveCollisions()
	return nil
}

// timeOut ends a running episode that hit its tick limit.
func (s *State) timeOut() {
	if s.outcome == Running {
		s.outcome = TimedOut
	}
}

// resolveCollisions handles every ghost sharing pacman's cell and reports
// whether pacman was caught.
func (s *State) resolveCollisions() bool {
	for _, ghost := range s.ghosts {
		if ghost.Location != s.pacman {
			continue
		}
		if ghost.IsScared() {
			s.score += ScoreGhostEaten
			ghost.respawn()
			continue
		}
		s.score -= ScoreLose
		s.outcome = Lost
		return true
	}
	return false
}

func sortedKeys(set map[agent.Position]struct{}) []agent.Position {
	positions := make([]agent.Position, 0, len(set))
	for p := range set {
		positions = append(positions, p)
	}
	sortPositions(positions)
	return positions
}
