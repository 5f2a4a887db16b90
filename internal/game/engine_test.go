package game

import (
	"errors"
	"testing"

	"github.com/ar90n/textual-snake-game/internal/geom"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(Config{Width: 10, Height: 10, Speed: SpeedNormal, Seed: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func TestNewEngineInitialState(t *testing.T) {
	e := newTestEngine(t)
	snap := e.Snapshot()

	if snap.Status != StatusRunning {
		t.Errorf("status = %v, want running", snap.Status)
	}
	if snap.Score != 0 {
		t.Errorf("score = %d, want 0", snap.Score)
	}
	if len(snap.Segments) != InitialSnakeLength {
		t.Errorf("length = %d, want %d", len(snap.Segments), InitialSnakeLength)
	}
	if snap.Segments[0] != geom.P(5, 5) {
		t.Errorf("head = %v, want the board center (5,5)", snap.Segments[0])
	}
	if !snap.Board.Contains(snap.Food) {
		t.Errorf("food %v out of bounds", snap.Food)
	}
	for _, seg := range snap.Segments {
		if seg == snap.Food {
			t.Errorf("food %v placed on the snake", snap.Food)
		}
	}
}

func TestNewEngineRejectsTinyBoard(t *testing.T) {
	_, err := New(Config{Width: 2, Height: 2})
	if !errors.Is(err, ErrBoardTooSmall) {
		t.Errorf("err = %v, want ErrBoardTooSmall", err)
	}
}

func TestTickMovesWithoutGrowth(t *testing.T) {
	e := newTestEngine(t)
	if e.Snapshot().Food == geom.P(6, 5) {
		e.food = geom.P(0, 0) // Keep the path ahead clear for this test
	}

	e.Tick()
	snap := e.Snapshot()

	if snap.Segments[0] != geom.P(6, 5) {
		t.Errorf("head = %v, want (6,5)", snap.Segments[0])
	}
	if len(snap.Segments) != 3 {
		t.Errorf("length = %d, want 3", len(snap.Segments))
	}
	if snap.Score != 0 {
		t.Errorf("score = %d, want 0", snap.Score)
	}
	if snap.Tick != 1 {
		t.Errorf("tick = %d, want 1", snap.Tick)
	}
}

func TestTickEatsFood(t *testing.T) {
	e := newTestEngine(t)
	e.food = geom.P(6, 5) // Directly in front of the head

	e.Tick()
	snap := e.Snapshot()

	if len(snap.Segments) != 4 {
		t.Errorf("length = %d, want 4", len(snap.Segments))
	}
	if snap.Score != FoodReward {
		t.Errorf("score = %d, want %d", snap.Score, FoodReward)
	}
	if snap.Status != StatusRunning {
		t.Errorf("status = %v, want running", snap.Status)
	}
	if snap.Food == geom.P(6, 5) {
		t.Error("food was not replaced after being eaten")
	}
	for _, seg := range snap.Segments {
		if seg == snap.Food {
			t.Errorf("new food %v overlaps the snake", snap.Food)
		}
	}
}

func TestScoreIsMultipleOfReward(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 3; i++ {
		e.food = e.snake.NextHead()
		e.Tick()
	}
	if got := e.Snapshot().Score; got != 3*FoodReward {
		t.Errorf("score = %d, want %d", got, 3*FoodReward)
	}
}

func TestReversalIgnored(t *testing.T) {
	e := newTestEngine(t)
	e.food = geom.P(0, 0)

	e.SetDirection(geom.Left)
	e.Tick()

	if head := e.Snapshot().Segments[0]; head != geom.P(6, 5) {
		t.Errorf("head = %v, want (6,5): reversal must be ignored", head)
	}
}

func TestReversalIgnoredAtLengthOne(t *testing.T) {
	e := newTestEngine(t)
	e.snake = NewSnake(geom.P(5, 5), 1)
	e.food = geom.P(0, 0)

	e.SetDirection(geom.Left)
	e.Tick()

	if head := e.Snapshot().Segments[0]; head != geom.P(6, 5) {
		t.Errorf("head = %v, want (6,5): snake must continue right", head)
	}
}

func TestDoubleTurnWithinOneTickCannotReverse(t *testing.T) {
	e := newTestEngine(t)
	e.food = geom.P(0, 0)

	// Reversal is checked against the applied direction, not the buffered
	// one, so Up followed by Left within one tick cannot chain into a
	// 180-degree turn onto the neck.
	e.SetDirection(geom.Up)
	e.SetDirection(geom.Left)
	e.Tick()

	if head := e.Snapshot().Segments[0]; head == geom.P(4, 5) {
		t.Errorf("head = %v: snake reversed into its neck", head)
	}
}

func TestWallCollisionEndsGame(t *testing.T) {
	e := newTestEngine(t)
	e.food = geom.P(0, 0)

	// Head starts at (5,5) moving right on a 10-wide board: four ticks to
	// reach x=9, the fifth hits the wall.
	for i := 0; i < 4; i++ {
		e.Tick()
	}
	if snap := e.Snapshot(); snap.Status != StatusRunning || snap.Segments[0] != geom.P(9, 5) {
		t.Fatalf("status = %v head = %v before the wall", snap.Status, snap.Segments[0])
	}

	e.Tick()
	snap := e.Snapshot()
	if snap.Status != StatusGameOver {
		t.Errorf("status = %v, want game over", snap.Status)
	}
	// The snake does not move into the wall
	if snap.Segments[0] != geom.P(9, 5) {
		t.Errorf("head = %v, want (9,5)", snap.Segments[0])
	}
}

func TestSelfCollisionEndsGame(t *testing.T) {
	e := newTestEngine(t)
	e.snake = NewSnake(geom.P(5, 5), 5)
	e.food = geom.P(0, 0)

	e.SetDirection(geom.Up)
	e.Tick()
	e.SetDirection(geom.Left)
	e.Tick()
	e.SetDirection(geom.Down)
	e.Tick() // Runs into the body below

	if got := e.Snapshot().Status; got != StatusGameOver {
		t.Errorf("status = %v, want game over", got)
	}
}

func TestTailChaseIsLegalThroughEngine(t *testing.T) {
	e := newTestEngine(t)
	e.snake = &Snake{
		segments: []geom.Position{{X: 2, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 2}, {X: 2, Y: 2}},
		dir:      geom.Left,
	}
	e.pending = geom.Down
	e.food = geom.P(0, 0)

	e.Tick() // Head chases the tail into (2,2)

	snap := e.Snapshot()
	if snap.Status != StatusRunning {
		t.Fatalf("status = %v: tail chase must not end the game", snap.Status)
	}
	if snap.Segments[0] != geom.P(2, 2) {
		t.Errorf("head = %v, want (2,2)", snap.Segments[0])
	}
}

func TestNoTicksAfterGameOver(t *testing.T) {
	e := newTestEngine(t)
	e.food = geom.P(0, 0)
	for i := 0; i < 10; i++ {
		e.Tick()
	}
	over := e.Snapshot()
	if over.Status != StatusGameOver {
		t.Fatalf("status = %v, want game over", over.Status)
	}

	e.Tick()
	e.SetDirection(geom.Up)
	e.Tick()
	after := e.Snapshot()

	if after.Tick != over.Tick {
		t.Errorf("tick advanced from %d to %d after game over", over.Tick, after.Tick)
	}
	if after.Segments[0] != over.Segments[0] {
		t.Errorf("head moved after game over")
	}
}

func TestPauseFreezesState(t *testing.T) {
	e := newTestEngine(t)
	e.Pause()

	before := e.Snapshot()
	for i := 0; i < 5; i++ {
		e.Tick()
	}
	after := e.Snapshot()

	if after.Status != StatusPaused {
		t.Errorf("status = %v, want paused", after.Status)
	}
	if after.Tick != before.Tick || after.Score != before.Score ||
		after.Segments[0] != before.Segments[0] || after.Food != before.Food {
		t.Error("state changed while paused")
	}

	// Direction input is ignored while paused
	e.SetDirection(geom.Up)
	e.Resume()
	e.Tick()
	if head := e.Snapshot().Segments[0]; head != geom.P(6, 5) {
		t.Errorf("head = %v after resume, want (6,5): paused input must be dropped", head)
	}
}

func TestResumeOnlyAffectsPaused(t *testing.T) {
	e := newTestEngine(t)
	e.food = geom.P(0, 0)
	for i := 0; i < 10; i++ {
		e.Tick()
	}
	e.Resume() // Game over is not resumable
	if got := e.Snapshot().Status; got != StatusGameOver {
		t.Errorf("status = %v, want game over", got)
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	e := newTestEngine(t)

	// Play: eat food a few times, turn, change speed, then die.
	for i := 0; i < 4; i++ {
		e.food = e.snake.NextHead()
		e.Tick()
	}
	e.SetSpeed(SpeedFast)
	e.food = geom.P(0, 0)
	for i := 0; i < 10; i++ {
		e.Tick()
	}
	if e.Snapshot().Status != StatusGameOver {
		t.Fatal("expected the game to be over before reset")
	}

	e.Reset()
	snap := e.Snapshot()

	if snap.Status != StatusRunning {
		t.Errorf("status = %v, want running", snap.Status)
	}
	if snap.Score != 0 {
		t.Errorf("score = %d, want 0", snap.Score)
	}
	if len(snap.Segments) != InitialSnakeLength {
		t.Errorf("length = %d, want %d", len(snap.Segments), InitialSnakeLength)
	}
	if snap.Segments[0] != geom.P(5, 5) {
		t.Errorf("head = %v, want (5,5)", snap.Segments[0])
	}
	if snap.Tick != 0 {
		t.Errorf("tick = %d, want 0", snap.Tick)
	}
	// Speed is a player preference and survives reset
	if snap.Speed != SpeedFast {
		t.Errorf("speed = %v, want fast", snap.Speed)
	}
}

func TestBoardFullIsWin(t *testing.T) {
	e, err := New(Config{Width: 5, Height: 3, Seed: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Serpentine covering every cell except (0,0), head at (1,0) moving
	// left, food on the last free cell.
	e.snake = &Snake{
		segments: []geom.Position{
			{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0},
			{X: 4, Y: 1}, {X: 3, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1},
			{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}, {X: 4, Y: 2},
		},
		dir: geom.Left,
	}
	e.pending = geom.Left
	e.food = geom.P(0, 0)
	e.score = 0

	e.Tick()
	snap := e.Snapshot()

	if snap.Status != StatusWon {
		t.Errorf("status = %v, want won", snap.Status)
	}
	if len(snap.Segments) != 15 {
		t.Errorf("length = %d, want the full board (15)", len(snap.Segments))
	}
	if snap.Score != FoodReward {
		t.Errorf("score = %d, want %d", snap.Score, FoodReward)
	}
}

func TestSnakeNeverExceedsBoardCells(t *testing.T) {
	e, err := New(Config{Width: 5, Height: 3, Seed: 7})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Feed the snake every tick along a safe serpentine until the game
	// ends one way or the other.
	for i := 0; i < 100 && !e.Snapshot().Status.Terminal(); i++ {
		e.food = e.snake.NextHead()
		if !e.board.Contains(e.food) {
			break
		}
		e.Tick()
		if got := e.snake.Length(); got > e.board.Cells() {
			t.Fatalf("snake length %d exceeds board cells %d", got, e.board.Cells())
		}
	}
}

func TestSetSpeedInAnyState(t *testing.T) {
	e := newTestEngine(t)

	e.Pause()
	e.SetSpeed(SpeedSlow)
	if got := e.Snapshot().Speed; got != SpeedSlow {
		t.Errorf("speed = %v while paused, want slow", got)
	}

	e.Resume()
	e.food = geom.P(0, 0)
	for i := 0; i < 10; i++ {
		e.Tick()
	}
	e.SetSpeed(SpeedFast)
	if got := e.Snapshot().Speed; got != SpeedFast {
		t.Errorf("speed = %v after game over, want fast", got)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	e := newTestEngine(t)
	snap := e.Snapshot()
	snap.Segments[0] = geom.P(0, 0)

	if e.Snapshot().Segments[0] != geom.P(5, 5) {
		t.Error("mutating a snapshot changed the engine")
	}
}

func TestDeterministicFoodSequence(t *testing.T) {
	run := func() []geom.Position {
		e, err := New(Config{Width: 10, Height: 10, Seed: 99})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		var foods []geom.Position
		foods = append(foods, e.Snapshot().Food)
		for i := 0; i < 3; i++ {
			e.food = e.snake.NextHead()
			e.Tick()
			foods = append(foods, e.Snapshot().Food)
		}
		return foods
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("food %d differs between identically seeded games: %v vs %v", i, a[i], b[i])
		}
	}
}
