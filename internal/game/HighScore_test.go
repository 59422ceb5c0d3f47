package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHighScoreService(t *testing.T) *HighScoreService {
	t.Helper()
	service, err := NewHighScoreService(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { service.Close() })
	return service
}

func TestHighScoreService_SaveAndRank(t *testing.T) {
	service := newTestHighScoreService(t)
	ctx := context.Background()

	results := []Result{
		{Agent: "random", Layout: "tinyMaze", Seed: 1, Score: -120, Outcome: TimedOut, Ticks: 120},
		{Agent: "hungry", Layout: "tinyMaze", Seed: 2, Score: 512, Outcome: Won, Ticks: 18},
		{Agent: "hungry", Layout: "tinyMaze", Seed: 3, Score: 512, Outcome: Won, Ticks: 12},
	}
	for _, result := range results {
		require.NoError(t, service.SaveResult(ctx, result))
	}

	count, err := service.GetTotalScoreCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	scores, err := service.GetHighScores(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, uint64(3), scores[0].Seed)
	assert.Equal(t, uint64(2), scores[1].Seed)
	assert.Equal(t, "random", scores[2].Agent)
	assert.Equal(t, "timed out", scores[2].Outcome)
	assert.False(t, scores[0].CreatedAt.IsZero())

	page, err := service.GetHighScores(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "random", page[0].Agent)
}

func TestHighScoreService_AgentSummaries(t *testing.T) {
	service := newTestHighScoreService(t)
	ctx := context.Background()

	for _, result := range []Result{
		{Agent: "hungry", Layout: "smallClassic", Score: 900, Outcome: Won, Ticks: 300},
		{Agent: "hungry", Layout: "smallClassic", Score: -300, Outcome: Lost, Ticks: 80},
		{Agent: "gowest", Layout: "smallClassic", Score: -520, Outcome: Lost, Ticks: 20},
	} {
		require.NoError(t, service.SaveResult(ctx, result))
	}

	summaries, err := service.GetAgentSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	hungry := summaries[0]
	assert.Equal(t, "hungry", hungry.Agent)
	assert.Equal(t, 2, hungry.Episodes)
	assert.Equal(t, 1, hungry.Wins)
	assert.InDelta(t, 300.0, hungry.AverageScore, 0.001)
	assert.Equal(t, 900, hungry.BestScore)
	assert.InDelta(t, 0.5, hungry.WinRate(), 0.001)

	assert.Equal(t, "gowest", summaries[1].Agent)
	assert.Zero(t, summaries[1].WinRate())
}

func TestHighScoreService_EmptyTable(t *testing.T) {
	service := newTestHighScoreService(t)

	scores, err := service.GetHighScores(context.Background(), 5, 0)
	require.NoError(t, err)
	assert.Empty(t, scores)

	summaries, err := service.GetAgentSummaries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summaries)
	assert.Zero(t, AgentSummary{}.WinRate())
}

func TestGameManager_RecordsIntoSqlite(t *testing.T) {
	service := newTestHighScoreService(t)
	gm := NewGameManager(100, 2, service, nil)

	_, err := gm.RunBatch(context.Background(), []EpisodeSpec{
		{Agent: "hungry", Layout: "tinyMaze", Seed: 1},
		{Agent: "random", Layout: "tinyMaze", Seed: 1},
	})
	require.NoError(t, err)

	count, err := service.GetTotalScoreCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
