package core

// RuntimeConfig is what the front end tells a game when (re)starting it.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters, 0 when headless
	ScreenH  int   // Screen height in characters, 0 when headless
	TickRate int   // Moves per second
	Seed     int64 // Food placement seed
}

// GameState is the part of a game's state the front end acts on.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by every Step.
type StepResult struct {
	State GameState
}
