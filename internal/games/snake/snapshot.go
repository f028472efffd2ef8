package snake

import "github.com/vovakirdan/snake-astar/internal/grid"

// GameStateType represents the current game state.
type GameStateType string

const (
	StateRunning     GameStateType = "running"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and
// trace recording.
type Snapshot struct {
	Tick      uint64
	Mode      Mode
	Score     int
	SnakeLen  int
	Head      grid.Cell
	Food      grid.Cell
	Dir       grid.Direction
	State     GameStateType
	EndReason EndReason

	// Autopilot decision that produced the last move. Source is empty when
	// the last move was steered manually.
	Source  string
	PathLen int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StateRunning
	switch {
	case g.gameOver:
		state = StateGameOver
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	}

	var head grid.Cell
	if len(g.body) > 0 {
		head = g.body[0]
	}

	s := Snapshot{
		Tick:      g.tick,
		Mode:      g.mode,
		Score:     g.score,
		SnakeLen:  len(g.body),
		Head:      head,
		Food:      g.food,
		Dir:       g.direction,
		State:     state,
		EndReason: g.endReason,
	}
	if g.hasDecision {
		s.Source = g.lastDecision.Source.String()
		s.PathLen = len(g.lastDecision.Path)
	}
	return s
}
