package main

import (
	"bytes"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mshel/pacagents/internal/game"
)

func TestConnectionLimiter(t *testing.T) {
	limiter := newConnectionLimiter(2)

	count, ok := limiter.acquire("10.0.0.1")
	assert.True(t, ok)
	assert.Equal(t, 1, count)
	_, ok = limiter.acquire("10.0.0.1")
	assert.True(t, ok)

	count, ok = limiter.acquire("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, 2, count)

	_, ok = limiter.acquire("10.0.0.2")
	assert.True(t, ok)

	assert.Equal(t, 1, limiter.release("10.0.0.1"))
	assert.Equal(t, 0, limiter.release("10.0.0.1"))
	assert.NotContains(t, limiter.ipCounter, "10.0.0.1")
}

func TestConnectionLimiter_Concurrent(t *testing.T) {
	limiter := newConnectionLimiter(5)

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := limiter.acquire("10.0.0.9"); ok {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, accepted)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "no episodes", summarize(nil))
	assert.Equal(t, "1/2 won, average score 250.0", summarize([]game.Result{
		{Score: 600, Outcome: game.Won},
		{Score: -100, Outcome: game.Lost},
	}))
}

func TestRunAndScoresCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "results.db")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"run", "--agent", "hungry", "--layout", "tinyMaze", "--episodes", "3", "--max-ticks", "200", "--db", db, "--log-level", "error"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "/3 won")

	out.Reset()
	rootCmd.SetArgs([]string{"scores", "--db", db, "--log-level", "error"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "3 episodes recorded")
	assert.Contains(t, out.String(), "hungry")
}
