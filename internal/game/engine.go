// Package game implements the snake game core: the snake and food models and
// the tick-driven engine state machine. The engine owns no timer and spawns
// no goroutines; a driver calls Tick at the interval given by the current
// speed and renders from Snapshot.
package game

import (
	"math/rand"
	"sync"
	"time"

	"github.com/ar90n/textual-snake-game/internal/geom"
)

// Engine orchestrates the game: it advances the snake, detects collisions,
// places food and tracks score, speed and status. All entry points are
// serialized by one mutex so the engine is safe to drive from a loop that
// runs beside other goroutines (e.g. an SSH window-resize watcher).
type Engine struct {
	mu sync.Mutex

	board Board
	rng   *rand.Rand

	snake   *Snake
	food    geom.Position
	pending geom.Direction
	score   int
	speed   Speed
	status  Status
	tick    uint64
}

// Snapshot is a read-only copy of the game state for rendering and tests.
// Segments is a fresh slice on every call; mutating it does not affect the
// engine.
type Snapshot struct {
	Board    Board
	Segments []geom.Position
	Food     geom.Position
	Score    int
	Speed    Speed
	Status   Status
	Tick     uint64
}

// New creates an engine with a fresh game on the configured board. It returns
// ErrBoardTooSmall when the board cannot fit the initial snake with margin.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e := &Engine{
		board: Board{Width: cfg.Width, Height: cfg.Height},
		rng:   rand.New(rand.NewSource(seed)),
		speed: cfg.Speed,
	}
	e.start()
	return e, nil
}

// start places a fresh snake and food and rewinds score and status. Callers
// must hold the mutex (or be the constructor).
func (e *Engine) start() {
	e.snake = NewSnake(e.board.Center(), InitialSnakeLength)
	e.pending = e.snake.Direction()
	e.food, _ = placeFood(e.rng, e.board, e.snake)
	e.score = 0
	e.status = StatusRunning
	e.tick = 0
}

// Tick advances the game by one step. Calls are ignored unless the game is
// running, so a driver may keep its timer firing while paused or after the
// game ends.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != StatusRunning {
		return
	}
	e.tick++

	// Adopt the buffered direction. The reversal check repeats here so two
	// inputs arriving within one tick cannot chain into a 180-degree turn.
	e.snake.SetDirection(e.pending)

	next := e.snake.NextHead()
	if !e.board.Contains(next) {
		e.status = StatusGameOver
		return
	}

	ate := next == e.food
	if e.snake.HitsSelf(next, ate) {
		e.status = StatusGameOver
		return
	}
	e.snake.Advance(ate)

	if ate {
		e.score += FoodReward
		food, ok := placeFood(e.rng, e.board, e.snake)
		if !ok {
			// Snake fills the board: nothing left to eat.
			e.status = StatusWon
			return
		}
		e.food = food
	}
}

// SetDirection buffers a direction change for the next tick. Ignored unless
// running, and ignored when d would reverse the current direction.
func (e *Engine) SetDirection(d geom.Direction) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status != StatusRunning {
		return
	}
	if d == e.snake.Direction().Opposite() {
		return
	}
	e.pending = d
}

// Pause suspends the game. Ticks are no-ops while paused.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status == StatusRunning {
		e.status = StatusPaused
	}
}

// Resume continues a paused game.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status == StatusPaused {
		e.status = StatusRunning
	}
}

// TogglePause flips between running and paused. Terminal states are left
// untouched.
func (e *Engine) TogglePause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.status {
	case StatusRunning:
		e.status = StatusPaused
	case StatusPaused:
		e.status = StatusRunning
	}
}

// Reset restarts the game from any state: fresh snake, fresh food, score 0,
// status running. Speed is kept, as it is a player preference rather than
// game state.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.start()
}

// SetSpeed stores the tick speed. Valid in any state; the driver reads it
// back from snapshots to adjust its timer.
func (e *Engine) SetSpeed(s Speed) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.speed = s
}

// Snapshot returns a copy of the current game state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		Board:    e.board,
		Segments: e.snake.Segments(),
		Food:     e.food,
		Score:    e.score,
		Speed:    e.speed,
		Status:   e.status,
		Tick:     e.tick,
	}
}
