package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActions_WithoutStop(t *testing.T) {
	legal := Actions{North, Stop, East}
	assert.Equal(t, Actions{North, East}, legal.WithoutStop())
	assert.Equal(t, Actions{North, Stop, East}, legal, "receiver must not change")

	assert.Equal(t, Actions{Stop}, Actions{Stop}.WithoutStop())
	assert.Empty(t, Actions{}.WithoutStop())
}

func TestActions_Contains(t *testing.T) {
	legal := Actions{North, South}
	assert.True(t, legal.Contains(North))
	assert.False(t, legal.Contains(East))
	assert.False(t, Actions(nil).Contains(Stop))
}

func TestDirection_ReverseAndDelta(t *testing.T) {
	for _, d := range Compass {
		assert.Equal(t, d, d.Reverse().Reverse())
		back := d.Delta().Add(d.Reverse().Delta())
		assert.Equal(t, Position{}, back)
	}
	assert.Equal(t, Stop, Stop.Reverse())
	assert.Equal(t, Position{X: 0, Y: 1}, North.Delta())
}

func TestParseDirection(t *testing.T) {
	d, ok := ParseDirection("west")
	assert.True(t, ok)
	assert.Equal(t, West, d)

	_, ok = ParseDirection("up")
	assert.False(t, ok)
}
