package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetManhattanDistance(t *testing.T) {
	assert.Equal(t, 0, GetManhattanDistance(Position{X: 3, Y: 3}, Position{X: 3, Y: 3}))
	assert.Equal(t, 6, GetManhattanDistance(Position{X: 0, Y: 0}, Position{X: 3, Y: 3}))
	assert.Equal(t, 7, GetManhattanDistance(Position{X: -2, Y: 1}, Position{X: 1, Y: -3}))
}

func TestNearest(t *testing.T) {
	origin := Position{X: 0, Y: 0}

	target, ok := Nearest(origin, []Position{{X: 1, Y: 1}, {X: 3, Y: 3}})
	assert.True(t, ok)
	assert.Equal(t, Position{X: 1, Y: 1}, target)

	t.Run("first minimum wins ties", func(t *testing.T) {
		target, ok := Nearest(origin, []Position{{X: 4, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: 0}, {X: 1, Y: 1}})
		assert.True(t, ok)
		assert.Equal(t, Position{X: 0, Y: 2}, target)
	})

	t.Run("empty candidates", func(t *testing.T) {
		_, ok := Nearest(origin, nil)
		assert.False(t, ok)
	})
}
