package game

const (
	ScoreTickPenalty = 1
	ScoreFood        = 10
	ScoreGhostEaten  = 200
	ScoreWin         = 500
	ScoreLose        = 500

	// ScaredTicks is how long a capsule keeps the ghosts edible.
	ScaredTicks = 40

	DefaultMaxTicks = 2000
	DefaultWorkers  = 4
)
