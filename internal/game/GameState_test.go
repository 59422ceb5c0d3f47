package game

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mshel/pacagents/internal/agent"
)

func newTestState(t *testing.T, text string) *State {
	t.Helper()
	layout, err := ParseLayout("test", strings.NewReader(text))
	require.NoError(t, err)
	return NewState(layout, rand.New(rand.NewPCG(1, 1)))
}

func TestState_LegalActionsOrder(t *testing.T) {
	state := newTestState(t, "%%%%%\n%   %\n% P %\n%  .%\n%%%%%\n")
	assert.Equal(t, agent.Actions{agent.North, agent.South, agent.East, agent.West, agent.Stop}, state.LegalActions())

	state = newTestState(t, corridorLayout)
	assert.Equal(t, agent.Actions{agent.East, agent.Stop}, state.LegalActions())
}

func TestState_ApplyRejectsIllegalMove(t *testing.T) {
	state := newTestState(t, corridorLayout)

	err := state.Apply(agent.West)
	assert.True(t, errors.Is(err, ErrIllegalAction))
	assert.Equal(t, 0, state.Ticks())
	assert.Equal(t, agent.Position{X: 1, Y: 1}, state.Position())
}

func TestState_EatingLastPelletWins(t *testing.T) {
	state := newTestState(t, "%%%%%\n%P. %\n%%%%%\n")

	require.NoError(t, state.Apply(agent.East))
	assert.Equal(t, Won, state.Outcome())
	assert.Equal(t, -ScoreTickPenalty+ScoreFood+ScoreWin, state.Score())
	assert.Empty(t, state.Food())
	assert.True(t, errors.Is(state.Apply(agent.Stop), ErrEpisodeOver))
}

func TestState_GhostCatchesPacman(t *testing.T) {
	// the ghost's only move is west, onto pacman
	state := newTestState(t, "%%%%%\n%.PG%\n%%%%%\n")

	require.NoError(t, state.Apply(agent.Stop))
	assert.Equal(t, Lost, state.Outcome())
	assert.Equal(t, -ScoreTickPenalty-ScoreLose, state.Score())
}

func TestState_CapsuleMakesGhostsEdible(t *testing.T) {
	state := newTestState(t, "%%%%%%%\n%Po  G%\n%.%%%%%\n%%%%%%%\n")

	require.NoError(t, state.Apply(agent.East))
	present, scared := state.GhostAt(agent.Position{X: 4, Y: 2})
	assert.True(t, present)
	assert.True(t, scared)
	assert.Empty(t, state.Capsules())

	// the ghost walks into pacman while still scared
	require.NoError(t, state.Apply(agent.East))
	assert.Equal(t, Running, state.Outcome())
	assert.Equal(t, -2*ScoreTickPenalty+ScoreGhostEaten, state.Score())
	present, scared = state.GhostAt(agent.Position{X: 5, Y: 2})
	assert.True(t, present, "eaten ghost goes back to its start")
	assert.False(t, scared)
}

func TestState_SensorSnapshotsAreCopies(t *testing.T) {
	state := newTestState(t, "%%%%%\n%P..%\n%%%%%\n")

	food := state.Food()
	food[0] = agent.Position{X: 9, Y: 9}
	assert.Equal(t, []agent.Position{{X: 2, Y: 1}, {X: 3, Y: 1}}, state.Food())

	require.NoError(t, state.Apply(agent.East))
	assert.Equal(t, []agent.Position{{X: 3, Y: 1}}, state.Food())
	assert.Equal(t, FoodCell, state.Cell(agent.Position{X: 3, Y: 1}))
	assert.Equal(t, EmptyCell, state.Cell(agent.Position{X: 2, Y: 1}))
	assert.Equal(t, WallCell, state.Cell(agent.Position{X: 0, Y: 1}))
}

func TestGhostLegalActions_NoReverseUnlessForced(t *testing.T) {
	layout, err := ParseLayout("cross", strings.NewReader("%%%%%\n%% %%\n%PG %\n%% %%\n%%%%%\n"))
	require.NoError(t, err)

	ghost := CreateNewGhost(agent.Position{X: 2, Y: 2})
	ghost.CurrentDirection = agent.East
	moves := ghostLegalActions(layout, ghost)
	assert.NotContains(t, moves, agent.West)
	assert.ElementsMatch(t, agent.Actions{agent.North, agent.South, agent.East}, moves)

	deadEnd := CreateNewGhost(agent.Position{X: 3, Y: 2})
	deadEnd.CurrentDirection = agent.East
	assert.Equal(t, agent.Actions{agent.West}, ghostLegalActions(layout, deadEnd))
}
