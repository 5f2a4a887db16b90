// Package loop drives the game: it reads input, ticks the engine at the
// interval set by the current speed, and draws each frame.
package loop

import (
	"bufio"
	"io"
	"time"

	"github.com/ar90n/textual-snake-game/internal/draw"
	"github.com/ar90n/textual-snake-game/internal/game"
	"github.com/ar90n/textual-snake-game/internal/geom"
	"github.com/ar90n/textual-snake-game/internal/input"
)

const targetFPS = 30
const targetFrameTime = time.Second / targetFPS

// maxTickBacklog caps how far the tick accumulator may fall behind, so a
// stalled frame produces a couple of catch-up ticks instead of a burst.
const maxTickBacklog = 3

// Options configures a Loop.
type Options struct {
	// TermSizeFunc reports the terminal size. Defaults to the size of
	// os.Stdout.
	TermSizeFunc draw.TermSizeFunc
	// IdleWarn and IdleDisconnect enable idle-session handling when
	// positive: after IdleWarn without input a warning is shown, after
	// IdleDisconnect the loop exits. Used by the SSH server.
	IdleWarn       time.Duration
	IdleDisconnect time.Duration
}

// Loop owns one game session: an engine, an input stream and a terminal.
type Loop struct {
	engine       *game.Engine
	board        game.Board
	stream       *input.Stream
	writer       io.Writer
	cw           *draw.ChunkWriter
	renderer     *draw.BoardRenderer
	termSizeFunc draw.TermSizeFunc

	idleWarn       time.Duration
	idleDisconnect time.Duration
	lastInput      time.Time
	isIdle         bool

	running   bool
	tickDebt  time.Duration
	prevFits  bool
	prevCover bool // An overlay covered the board last frame
}

// New creates a loop driving engine with input from r and output to w.
func New(engine *game.Engine, r *bufio.Reader, w io.Writer, opts Options) *Loop {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	board := engine.Snapshot().Board
	return &Loop{
		engine:         engine,
		board:          board,
		stream:         input.StartStream(r),
		writer:         w,
		cw:             draw.NewChunkWriter(w, 0, 0),
		renderer:       draw.NewBoardRenderer(board),
		termSizeFunc:   termSizeFunc,
		idleWarn:       opts.IdleWarn,
		idleDisconnect: opts.IdleDisconnect,
		lastInput:      time.Now(),
		running:        true,
		prevFits:       true,
	}
}

// Run blocks until the player quits, the input stream closes, or the idle
// deadline passes.
func (l *Loop) Run() error {
	draw.HideCursor(l.writer)
	defer draw.ShowCursor(l.writer)
	draw.ClearScreen(l.writer)

	lastTime := time.Now()

	for l.running {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		l.processInput()
		if l.stream.Closed() {
			break
		}

		// ===== UPDATE PHASE =====
		l.advance(delta)

		// ===== DRAW PHASE =====
		if err := l.drawFrame(); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(l.writer)
	return nil
}

// processInput drains pending input and forwards commands to the engine.
func (l *Loop) processInput() {
	in := input.ReadInput(l.stream)

	if len(in.Pressed) > 0 {
		l.lastInput = time.Now()
		l.isIdle = false
	} else if l.idleDisconnect > 0 && time.Since(l.lastInput) > l.idleDisconnect {
		l.running = false
		return
	} else if l.idleWarn > 0 && time.Since(l.lastInput) > l.idleWarn {
		l.isIdle = true
	}

	if in.Quit {
		l.running = false
		return
	}

	if in.Up {
		l.engine.SetDirection(geom.Up)
	}
	if in.Down {
		l.engine.SetDirection(geom.Down)
	}
	if in.Left {
		l.engine.SetDirection(geom.Left)
	}
	if in.Right {
		l.engine.SetDirection(geom.Right)
	}
	if in.Pause {
		l.engine.TogglePause()
	}
	if in.Reset {
		l.engine.Reset()
		l.tickDebt = 0
	}
	switch in.Speed {
	case 1:
		l.engine.SetSpeed(game.SpeedSlow)
	case 2:
		l.engine.SetSpeed(game.SpeedNormal)
	case 3:
		l.engine.SetSpeed(game.SpeedFast)
	}
}

// advance accumulates frame time and ticks the engine whenever a full speed
// interval has elapsed. The accumulator is dropped while the game is not
// running so resuming does not replay the paused time.
func (l *Loop) advance(delta time.Duration) {
	snap := l.engine.Snapshot()
	if snap.Status != game.StatusRunning {
		l.tickDebt = 0
		return
	}

	interval := snap.Speed.Interval()
	l.tickDebt += delta
	if l.tickDebt > time.Duration(maxTickBacklog)*interval {
		l.tickDebt = time.Duration(maxTickBacklog) * interval
	}
	for l.tickDebt >= interval {
		l.engine.Tick()
		l.tickDebt -= interval
	}
}
