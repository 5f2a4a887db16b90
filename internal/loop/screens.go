package loop

import (
	"fmt"
	"time"

	"github.com/ar90n/textual-snake-game/internal/draw"
	"github.com/ar90n/textual-snake-game/internal/game"
)

// drawFrame lays out and renders the current snapshot, plus the HUD and any
// status overlay.
func (l *Loop) drawFrame() error {
	termWidth, termHeight, err := l.termSizeFunc()
	if err != nil {
		return err
	}

	fits := l.renderer.Layout(termWidth, termHeight)
	if fits != l.prevFits {
		// Transition between board and too-small notice leaves stale
		// content; start from a blank screen.
		l.cw.WriteString("\033[H\033[2J")
		l.renderer.MarkDirty()
		l.prevFits = fits
	}

	if !fits {
		l.drawTooSmall(termWidth, termHeight)
		return l.cw.Flush()
	}

	l.cw.SetOffset(l.renderer.OffsetCol(), l.renderer.OffsetRow())

	snap := l.engine.Snapshot()
	cover := l.isIdle || snap.Status != game.StatusRunning

	// Overlay text can spill past the border on small boards, so when one
	// disappears start from a blank screen before repainting.
	if l.prevCover && !cover {
		l.cw.WriteString("\033[H\033[2J")
		l.renderer.MarkDirty()
	}
	l.prevCover = cover

	l.renderer.Render(l.cw, snap)
	l.drawHUD(snap)

	switch {
	case l.isIdle:
		l.drawIdleWarning()
	case snap.Status == game.StatusPaused:
		l.drawCentered(-1, "P A U S E D")
		l.drawCentered(1, "press P to resume")
	case snap.Status == game.StatusGameOver:
		l.drawCentered(-1, "G A M E   O V E R")
		l.drawCentered(1, fmt.Sprintf("final score %d", snap.Score))
		l.drawCentered(2, "press R to restart, Q to quit")
	case snap.Status == game.StatusWon:
		l.drawCentered(-1, "Y O U   W I N")
		l.drawCentered(1, fmt.Sprintf("the board is full - score %d", snap.Score))
		l.drawCentered(2, "press R to restart, Q to quit")
	}

	return l.cw.Flush()
}

// drawHUD draws score and speed on the line below the board.
func (l *Loop) drawHUD(snap game.Snapshot) {
	row := snap.Board.Height + 3
	width := snap.Board.Width*draw.CellWidth + 2

	score := fmt.Sprintf(" score %d ", snap.Score)
	speed := fmt.Sprintf(" %s ", snap.Speed)

	// Pad between the two so stale longer text is overwritten.
	gap := width - len(score) - len(speed)
	if gap < 1 {
		gap = 1
	}
	l.cw.MoveCursor(1, row)
	l.cw.WriteString(score)
	for i := 0; i < gap; i++ {
		l.cw.WriteRune(' ')
	}
	l.cw.WriteString(speed)
}

// drawCentered writes text centered horizontally over the board, offset
// rowDelta rows from the board's vertical center.
func (l *Loop) drawCentered(rowDelta int, text string) {
	inner := l.board.Width * draw.CellWidth
	col := (inner+2)/2 - len(text)/2
	if col < 2 {
		col = 2
	}
	row := (l.board.Height+2)/2 + rowDelta
	l.cw.WriteAt(col, row, text)
}

// drawIdleWarning warns an idle session about the coming disconnect.
func (l *Loop) drawIdleWarning() {
	remaining := l.idleDisconnect - time.Since(l.lastInput)
	if remaining < 0 {
		remaining = 0
	}
	l.drawCentered(-1, "are you still there?")
	l.drawCentered(1, fmt.Sprintf("disconnecting in %ds, press any key", int(remaining.Seconds())))
}

// drawTooSmall tells the player the terminal cannot fit the board.
func (l *Loop) drawTooSmall(termWidth, termHeight int) {
	l.cw.SetOffset(0, 0)
	msg := "terminal too small for the board"
	col := termWidth/2 - len(msg)/2
	if col < 1 {
		col = 1
	}
	l.cw.WriteAt(col, termHeight/2, msg)
}
