package agent

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNew_UnknownAgent(t *testing.T) {
	_, err := New("pathfinder")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownAgent))
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"corner", "gowest", "hungry", "random", "randomish", "scripted", "sensing", "survival"}, Names())
	for _, name := range Names() {
		a, err := New(name)
		require.NoError(t, err, name)
		assert.NotNil(t, a, name)
	}
}

func TestNew_FreshMemoryPerInstance(t *testing.T) {
	first, err := New("randomish", WithRand(seeded(1)))
	require.NoError(t, err)
	first.ChooseAction(&fakeSensor{legal: Actions{East, Stop}})

	second, err := New("randomish", WithRand(seeded(1)))
	require.NoError(t, err)
	assert.Equal(t, East, first.(*RandomishAgent).LastDirection())
	assert.Equal(t, Stop, second.(*RandomishAgent).LastDirection())
}

func TestEveryAgent_OnlyStopLegal(t *testing.T) {
	sensor := &fakeSensor{
		legal:  Actions{Stop},
		pacman: Position{X: 1, Y: 1},
		food:   []Position{{X: 3, Y: 1}},
		walls:  boxWalls(5, 3),
		ghosts: []Position{{X: 3, Y: 1}},
	}
	for _, name := range Names() {
		a, err := New(name, WithRand(seeded(4)), WithLogger(log.New(io.Discard)))
		require.NoError(t, err)
		assert.Equal(t, Stop, a.ChooseAction(sensor), name)
	}
}

func genPosition(maxX, maxY int) *rapid.Generator[Position] {
	return rapid.Custom(func(t *rapid.T) Position {
		return Position{
			X: rapid.IntRange(1, maxX-1).Draw(t, "x"),
			Y: rapid.IntRange(1, maxY-1).Draw(t, "y"),
		}
	})
}

func TestEveryAgent_ReturnsLegalAction(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.SampledFrom(Names()).Draw(rt, "agent")
		a, err := New(name, WithRand(seeded(rapid.Uint64().Draw(rt, "seed"))), WithLogger(log.New(io.Discard)))
		require.NoError(rt, err)

		walls := boxWalls(10, 8)
		ticks := rapid.IntRange(1, 8).Draw(rt, "ticks")
		for i := 0; i < ticks; i++ {
			legal := Actions(rapid.SliceOfDistinct(rapid.SampledFrom([]Direction{North, South, East, West, Stop}),
				func(d Direction) Direction { return d }).Draw(rt, "legal"))
			sensor := &fakeSensor{
				legal:   legal,
				pacman:  genPosition(10, 8).Draw(rt, "pacman"),
				food:    rapid.SliceOfN(genPosition(10, 8), 0, 6).Draw(rt, "food"),
				walls:   walls,
				ghosts:  rapid.SliceOfN(genPosition(10, 8), 0, 3).Draw(rt, "ghosts"),
				corners: []Position{{X: 0, Y: 0}, {X: 9, Y: 0}, {X: 0, Y: 7}, {X: 9, Y: 7}},
			}

			got := a.ChooseAction(sensor)
			if len(legal) == 0 {
				assert.Equal(rt, Stop, got)
				continue
			}
			assert.Contains(rt, legal, got, "agent %s", name)
		}
	})
}

func TestCommit(t *testing.T) {
	rng := seeded(1)
	mem := NewMemory()

	assert.Equal(t, North, commit(North, Actions{North, Stop}, mem, rng))

	mem.Last = West
	assert.Equal(t, West, commit(East, Actions{West, North, Stop}, mem, rng))

	mem.Last = Stop
	assert.Equal(t, North, commit(East, Actions{North, Stop}, mem, rng))
	assert.Equal(t, Stop, commit(East, Actions{Stop}, mem, rng))
	assert.Equal(t, Stop, commit(East, nil, nil, nil))
}
