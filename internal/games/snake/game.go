package snake

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/vovakirdan/snake-astar/internal/config"
	"github.com/vovakirdan/snake-astar/internal/core"
	"github.com/vovakirdan/snake-astar/internal/grid"
	"github.com/vovakirdan/snake-astar/internal/policy"
	"github.com/vovakirdan/snake-astar/internal/registry"
)

// Mode selects who steers the snake.
type Mode string

const (
	ModeManual Mode = "manual"
	ModeAI     Mode = "ai"
)

// Label returns the mode name shown in the HUD.
func (m Mode) Label() string {
	if m == ModeAI {
		return "AI (A*)"
	}
	return "Manual"
}

// EndReason says why a game ended.
type EndReason string

const (
	EndNone      EndReason = ""
	EndWall      EndReason = "wall"
	EndSelf      EndReason = "self"
	EndTickLimit EndReason = "tick_limit"
)

const hudHeight = 1

// Game implements the snake game on a fixed grid.
type Game struct {
	cfg    config.SnakeConfig
	mapper grid.Mapper
	policy *policy.Policy
	rng    *rand.Rand

	mode      Mode
	tick      uint64
	score     int
	body      []grid.Cell // Head at index 0
	direction grid.Direction
	food      grid.Cell

	lastDecision policy.Decision
	hasDecision  bool

	gameOver  bool
	endReason EndReason
	paused    bool
	tooSmall  bool

	screenW int
	screenH int
}

var (
	activeMu     sync.RWMutex
	activeConfig = config.DefaultSnakeConfig()
)

// SetConfig sets the configuration used by games created through the
// registry.
func SetConfig(cfg config.SnakeConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	activeMu.Lock()
	activeConfig = cfg
	activeMu.Unlock()
	return nil
}

// ActiveConfig returns the configuration used by registry-created games.
func ActiveConfig() config.SnakeConfig {
	activeMu.RLock()
	defer activeMu.RUnlock()
	return activeConfig
}

// New creates a game for cfg starting in the given mode.
func New(cfg config.SnakeConfig, mode Mode) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m, err := cfg.Mapper()
	if err != nil {
		return nil, err
	}
	return &Game{
		cfg:    cfg,
		mapper: m,
		policy: policy.New(m),
		mode:   mode,
	}, nil
}

func newRegistered(mode Mode) registry.Game {
	g, err := New(ActiveConfig(), mode)
	if err != nil {
		// SetConfig only accepts valid configs, so this is the default.
		g, _ = New(config.DefaultSnakeConfig(), mode)
	}
	return g
}

func init() {
	registry.Register("snake", func() registry.Game {
		return newRegistered(ModeManual)
	})
	registry.Register("snake_ai", func() registry.Game {
		return newRegistered(ModeAI)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeAI {
		return "snake_ai"
	}
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeAI {
		return "Snake (A* autopilot)"
	}
	return "Snake"
}

// Mapper returns the grid the game is played on.
func (g *Game) Mapper() grid.Mapper {
	return g.mapper
}

// Reset initializes/restarts the game. The mode is kept across resets.
// A zero screen size means the game runs headless.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.gameOver = false
	g.endReason = EndNone
	g.paused = false
	g.hasDecision = false
	g.lastDecision = policy.Decision{}

	// Validated in New.
	g.body, _ = g.cfg.StartBody()
	g.direction, _ = g.cfg.StartDirection()

	g.spawnFood()
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the game to a new screen size without resetting it.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	if w <= 0 && h <= 0 {
		g.tooSmall = false
		return
	}
	w0, h0 := g.RequiredScreen()
	g.tooSmall = w < w0 || h < h0
}

// RequiredScreen returns the smallest screen that fits the playfield.
func (g *Game) RequiredScreen() (w, h int) {
	b := g.mapper.Bounds()
	return b.Cols + 2, b.Rows + 2 + hudHeight
}

// spawnFood places food at a random cell in [1, Cols) x [1, Rows).
// The cell may lie under the body.
func (g *Game) spawnFood() {
	b := g.mapper.Bounds()
	col, row := 0, 0
	if b.Cols > 1 {
		col = 1 + g.rng.Intn(b.Cols-1)
	}
	if b.Rows > 1 {
		row = 1 + g.rng.Intn(b.Rows-1)
	}
	g.food = grid.Cell{Col: col, Row: row}
}

// SetFood moves the food to c. Used by tools and tests that need a fixed
// layout.
func (g *Game) SetFood(c grid.Cell) error {
	if !g.mapper.InBounds(c) {
		return fmt.Errorf("snake: food %v out of bounds: %w", c, grid.ErrInvalidInput)
	}
	g.food = c
	return nil
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if input.Has(core.ActionRestart) {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionAutopilot) {
		g.ToggleMode()
	}

	if input.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.mode == ModeAI {
		g.Tick(g.decide(), true)
	} else {
		dir, ok := requestedDirection(input)
		g.hasDecision = false
		g.Tick(dir, ok)
	}

	return core.StepResult{State: g.State()}
}

// ToggleMode switches between manual and AI control.
func (g *Game) ToggleMode() {
	if g.mode == ModeAI {
		g.mode = ModeManual
		g.hasDecision = false
		return
	}
	g.mode = ModeAI
}

// Mode returns who is steering.
func (g *Game) Mode() Mode {
	return g.mode
}

func requestedDirection(input core.InputFrame) (grid.Direction, bool) {
	switch {
	case input.Has(core.ActionUp):
		return grid.Up, true
	case input.Has(core.ActionDown):
		return grid.Down, true
	case input.Has(core.ActionLeft):
		return grid.Left, true
	case input.Has(core.ActionRight):
		return grid.Right, true
	}
	return grid.Right, false
}

// decide asks the policy for the next move and remembers the decision.
func (g *Game) decide() grid.Direction {
	body := g.mapper.CellsToPixels(g.body)
	d, err := g.policy.NextMove(body[0], g.mapper.ToPixel(g.food), body)
	if err != nil {
		d = policy.Decision{Direction: g.direction, Source: policy.SourceFallback}
	}
	g.lastDecision = d
	g.hasDecision = true
	return d.Direction
}

// Tick applies one move. A requested reversal of the current direction is
// ignored. The head advances, food is eaten or the tail drops, and the game
// ends when the new head leaves the grid or lands on another segment.
func (g *Game) Tick(requested grid.Direction, hasRequest bool) {
	if g.gameOver {
		return
	}
	g.tick++

	if hasRequest && requested != g.direction.Opposite() {
		g.direction = requested
	}

	head := g.body[0].Step(g.direction)
	g.body = append([]grid.Cell{head}, g.body...)

	if head == g.food {
		g.score += g.cfg.FoodPoints
		g.spawnFood()
	} else {
		g.body = g.body[:len(g.body)-1]
	}

	switch {
	case !g.mapper.InBounds(head):
		g.gameOver = true
		g.endReason = EndWall
	case g.hitsBody(head):
		g.gameOver = true
		g.endReason = EndSelf
	}
}

func (g *Game) hitsBody(head grid.Cell) bool {
	for _, seg := range g.body[1:] {
		if seg == head {
			return true
		}
	}
	return false
}

// End stops the game with the given reason. Used by runners that cap the
// number of ticks.
func (g *Game) End(reason EndReason) {
	if g.gameOver {
		return
	}
	g.gameOver = true
	g.endReason = reason
}

// Body returns a copy of the body cells, head first.
func (g *Game) Body() []grid.Cell {
	out := make([]grid.Cell, len(g.body))
	copy(out, g.body)
	return out
}

// Food returns the food cell.
func (g *Game) Food() grid.Cell {
	return g.food
}

// LastDecision returns the most recent autopilot decision, if any.
func (g *Game) LastDecision() (policy.Decision, bool) {
	return g.lastDecision, g.hasDecision
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		w, h := g.RequiredScreen()
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d, resize or use --fit", w, h))
		return
	}

	ox, oy := g.fieldOrigin(dst)
	b := g.mapper.Bounds()
	dst.DrawBox(core.NewRect(ox-1, oy-1, b.Cols+2, b.Rows+2))

	if g.mode == ModeAI && g.hasDecision && g.cfg.ShowPath {
		g.renderPath(dst, ox, oy)
	}
	g.renderSnake(dst, ox, oy)
	dst.SetColored(ox+g.food.Col, oy+g.food.Row, '*', core.ColorYellow)

	switch {
	case g.gameOver:
		g.renderOverlay(dst, fmt.Sprintf("Final Score: %d", g.score), "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// fieldOrigin returns the screen position of cell (0,0), centering the
// playfield horizontally below the HUD.
func (g *Game) fieldOrigin(dst *core.Screen) (x, y int) {
	w, _ := g.RequiredScreen()
	return max((dst.Width()-w)/2, 0) + 1, hudHeight + 1
}

// renderHUD draws the top status line.
func (g *Game) renderHUD(dst *core.Screen) {
	left := fmt.Sprintf(" Score: %d", g.score)
	dst.DrawTextColored(0, 0, left, core.ColorBrightWhite)

	right := "Mode: " + g.mode.Label()
	if g.mode == ModeAI && g.hasDecision {
		right += " [" + g.lastDecision.Source.String() + "]"
	}
	right += " "
	dst.DrawTextRight(0, right, core.ColorYellow)
}

// renderPath draws the followed route, brightest near the head.
func (g *Game) renderPath(dst *core.Screen, ox, oy int) {
	path := g.lastDecision.Path
	for i := 1; i < len(path); i++ {
		c := g.mapper.ToGrid(path[i])
		color := core.ColorBlue
		if i > 5 {
			color = core.ColorGray
		}
		dst.SetColored(ox+c.Col, oy+c.Row, '·', color)
	}
}

// renderSnake draws the snake, skipping a head that left the grid.
func (g *Game) renderSnake(dst *core.Screen, ox, oy int) {
	for i := len(g.body) - 1; i >= 0; i-- {
		seg := g.body[i]
		if !g.mapper.InBounds(seg) {
			continue
		}
		if i == 0 {
			dst.SetColored(ox+seg.Col, oy+seg.Row, '@', core.ColorBrightGreen)
		} else {
			dst.SetColored(ox+seg.Col, oy+seg.Row, 'o', core.ColorGreen)
		}
	}
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	screen := core.NewRect(0, 0, dst.Width(), dst.Height())
	box := screen.Center(max(len(line1), len(line2))+4, 5)

	dst.Fill(box)
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Score: %d, Mode: %s\n", g.tick, g.score, g.mode)
	fmt.Fprintf(&b, "Snake len: %d, Direction: %s\n", len(g.body), g.direction)
	if len(g.body) > 0 {
		fmt.Fprintf(&b, "Head: %v, Food: %v\n", g.body[0], g.food)
	}
	fmt.Fprintf(&b, "GameOver: %v (%s), Paused: %v\n", g.gameOver, g.endReason, g.paused)
	return b.String()
}
