package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ar90n/textual-snake-game/internal/geom"
)

// Game configuration constants.
// All tunable game parameters are centralized here for easy adjustment.

// Scoring
const (
	// FoodReward is the score granted per food eaten.
	FoodReward = 10
)

// Snake
const (
	// InitialSnakeLength is the number of segments a fresh snake starts with.
	InitialSnakeLength = 3
)

// Board limits. The board must fit the initial snake horizontally with room
// to turn, and leave at least one free row above and below it.
const (
	MinBoardWidth  = InitialSnakeLength + 2
	MinBoardHeight = 3
)

// Defaults matching the classic 20x15 board.
const (
	DefaultBoardWidth  = 20
	DefaultBoardHeight = 15
)

// Food placement
const (
	// placementAttempts bounds rejection sampling before falling back to
	// exhaustive free-cell enumeration.
	placementAttempts = 64
)

// ErrBoardTooSmall is returned by New when the configured board cannot fit
// the initial snake with margin.
var ErrBoardTooSmall = errors.New("board too small")

// Board holds the playable grid bounds. A position is on the board when
// 0 <= x < Width and 0 <= y < Height.
type Board struct {
	Width  int
	Height int
}

// Contains reports whether p lies within the board bounds.
func (b Board) Contains(p geom.Position) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// Cells returns the total number of cells on the board.
func (b Board) Cells() int {
	return b.Width * b.Height
}

// Center returns the central cell of the board.
func (b Board) Center() geom.Position {
	return geom.Position{X: b.Width / 2, Y: b.Height / 2}
}

// Speed selects how often the driver should tick the engine. The engine only
// stores the value; the loop owns the timer.
type Speed int

const (
	SpeedSlow Speed = iota
	SpeedNormal
	SpeedFast
)

// Interval returns the tick interval for this speed.
func (s Speed) Interval() time.Duration {
	switch s {
	case SpeedSlow:
		return 200 * time.Millisecond
	case SpeedFast:
		return 70 * time.Millisecond
	default:
		return 120 * time.Millisecond
	}
}

// String returns the speed name as used on the CLI.
func (s Speed) String() string {
	switch s {
	case SpeedSlow:
		return "slow"
	case SpeedFast:
		return "fast"
	default:
		return "normal"
	}
}

// ParseSpeed converts CLI text to a Speed.
func ParseSpeed(text string) (Speed, error) {
	switch strings.ToLower(text) {
	case "slow":
		return SpeedSlow, nil
	case "normal":
		return SpeedNormal, nil
	case "fast":
		return SpeedFast, nil
	default:
		return SpeedNormal, fmt.Errorf("unknown speed %q (want slow, normal or fast)", text)
	}
}

// Status is the engine state machine phase.
type Status int

const (
	StatusRunning Status = iota
	StatusPaused
	StatusGameOver
	// StatusWon marks the board-full terminal state: no free cell remains
	// for food, so the snake cannot grow further.
	StatusWon
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game over"
	case StatusWon:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further ticks will be processed.
func (s Status) Terminal() bool {
	return s == StatusGameOver || s == StatusWon
}

// Config holds the engine construction parameters.
type Config struct {
	Width  int
	Height int
	Speed  Speed
	// Seed for food placement. Zero means seed from the current time.
	Seed int64
}

// DefaultConfig returns a config for the default board at normal speed.
func DefaultConfig() Config {
	return Config{
		Width:  DefaultBoardWidth,
		Height: DefaultBoardHeight,
		Speed:  SpeedNormal,
	}
}

// Validate checks that the board is large enough to play on.
func (c Config) Validate() error {
	if c.Width < MinBoardWidth || c.Height < MinBoardHeight {
		return fmt.Errorf("%w: got %dx%d, need at least %dx%d",
			ErrBoardTooSmall, c.Width, c.Height, MinBoardWidth, MinBoardHeight)
	}
	return nil
}
