package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 means seed from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Seconds  int  // Elapsed game time
	GameOver bool // Whether the game has ended
	Won      bool // Whether it ended in a win
	Paused   bool // Whether the timer is stopped by the player
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// GameSummary describes a finished game for the statistics screen and storage.
type GameSummary struct {
	Difficulty string
	Won        bool
	Seconds    int
	Flags      int
	Numbers    int
	Empties    int
}
