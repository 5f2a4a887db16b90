package draw

import (
	"strings"
	"testing"

	"github.com/ar90n/textual-snake-game/internal/game"
	"github.com/ar90n/textual-snake-game/internal/geom"
)

func testSnapshot() game.Snapshot {
	return game.Snapshot{
		Board:    game.Board{Width: 5, Height: 3},
		Segments: []geom.Position{{X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		Food:     geom.Position{X: 4, Y: 0},
		Status:   game.StatusRunning,
	}
}

func TestLayoutFitsAndCenters(t *testing.T) {
	r := NewBoardRenderer(game.Board{Width: 5, Height: 3})

	if !r.Layout(80, 24) {
		t.Fatal("5x3 board must fit in an 80x24 terminal")
	}
	// Bordered area is 12 columns (5*2+2) by 5 rows
	if got := r.OffsetCol(); got != (80-12)/2 {
		t.Errorf("OffsetCol() = %d, want %d", got, (80-12)/2)
	}
	if got := r.OffsetRow(); got != (24-5)/2 {
		t.Errorf("OffsetRow() = %d, want %d", got, (24-5)/2)
	}
}

func TestLayoutRejectsTinyTerminal(t *testing.T) {
	r := NewBoardRenderer(game.Board{Width: 20, Height: 15})
	if r.Layout(10, 5) {
		t.Error("a 20x15 board cannot fit in a 10x5 terminal")
	}
	if r.Fits() {
		t.Error("Fits() must report the last layout result")
	}
}

func TestRenderDrawsGlyphsAndBorder(t *testing.T) {
	var sb strings.Builder
	cw := NewChunkWriter(&sb, 0, 0)

	r := NewBoardRenderer(game.Board{Width: 5, Height: 3})
	r.Layout(40, 10)
	cw.SetOffset(r.OffsetCol(), r.OffsetRow())
	r.Render(cw, testSnapshot())
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	out := sb.String()

	for _, want := range []string{glyphHead, glyphBody, glyphFood, "┌", "┘", "│"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderBorderOnlyOnce(t *testing.T) {
	var sb strings.Builder
	cw := NewChunkWriter(&sb, 0, 0)

	r := NewBoardRenderer(game.Board{Width: 5, Height: 3})
	r.Layout(40, 10)
	r.Render(cw, testSnapshot())
	_ = cw.Flush()

	sb.Reset()
	r.Render(cw, testSnapshot())
	_ = cw.Flush()

	if strings.Contains(sb.String(), "┌") {
		t.Error("border redrawn without a layout change")
	}

	// A layout change marks the border dirty again
	r.Layout(60, 20)
	sb.Reset()
	r.Render(cw, testSnapshot())
	_ = cw.Flush()
	if !strings.Contains(sb.String(), "┌") {
		t.Error("border not redrawn after a layout change")
	}
}
