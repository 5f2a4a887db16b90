package draw

import (
	"strings"

	"github.com/ar90n/textual-snake-game/internal/game"
	"github.com/ar90n/textual-snake-game/internal/geom"
)

// CellWidth is how many terminal columns one board cell occupies. Two
// columns per cell keeps cells roughly square, since terminal rows are about
// twice as tall as columns are wide.
const CellWidth = 2

// Cell glyphs, CellWidth columns each.
const (
	glyphHead  = "██"
	glyphBody  = "▓▓"
	glyphFood  = "()"
	glyphEmpty = "  "
)

// BoardRenderer draws a game snapshot as a bordered cell grid centered in
// the terminal. It repaints every cell each frame, which overwrites stale
// content without full-screen clears; the border is only redrawn after a
// layout change.
type BoardRenderer struct {
	board game.Board

	offsetCol int // 0-based terminal columns left of the border
	offsetRow int // 0-based terminal rows above the border
	fits      bool
	dirty     bool // Border needs redrawing
}

// NewBoardRenderer creates a renderer for the given board.
func NewBoardRenderer(board game.Board) *BoardRenderer {
	return &BoardRenderer{board: board, dirty: true}
}

// innerWidth is the bordered area width in terminal columns.
func (r *BoardRenderer) innerWidth() int {
	return r.board.Width * CellWidth
}

// Layout recomputes centering offsets for the given terminal size and
// reports whether the board fits. Call it every frame; it is cheap and only
// marks the border dirty when something changed.
func (r *BoardRenderer) Layout(termWidth, termHeight int) bool {
	needW := r.innerWidth() + 2 // Side borders
	needH := r.board.Height + 2 // Top/bottom borders
	// One spare row below the border for the HUD.
	fits := termWidth >= needW && termHeight >= needH+1

	offsetCol := (termWidth - needW) / 2
	offsetRow := (termHeight - needH) / 2

	if fits != r.fits || offsetCol != r.offsetCol || offsetRow != r.offsetRow {
		r.dirty = true
	}
	r.fits = fits
	r.offsetCol = offsetCol
	r.offsetRow = offsetRow
	return fits
}

// Fits reports whether the terminal was large enough at the last Layout.
func (r *BoardRenderer) Fits() bool {
	return r.fits
}

// OffsetCol returns the column offset computed by Layout.
func (r *BoardRenderer) OffsetCol() int {
	return r.offsetCol
}

// OffsetRow returns the row offset computed by Layout.
func (r *BoardRenderer) OffsetRow() int {
	return r.offsetRow
}

// MarkDirty forces a border redraw on the next Render (e.g. after the
// terminal was cleared).
func (r *BoardRenderer) MarkDirty() {
	r.dirty = true
}

// Render draws the border and every board cell to cw. The writer's offset
// must match this renderer's offsets; coordinates passed to cw are 1-based
// within the bordered area.
func (r *BoardRenderer) Render(cw *ChunkWriter, snap game.Snapshot) {
	if r.dirty {
		r.renderBorder(cw)
		r.dirty = false
	}

	occupied := make(map[geom.Position]string, len(snap.Segments)+1)
	occupied[snap.Food] = glyphFood
	for i := len(snap.Segments) - 1; i >= 1; i-- {
		occupied[snap.Segments[i]] = glyphBody
	}
	occupied[snap.Segments[0]] = glyphHead

	for y := 0; y < r.board.Height; y++ {
		cw.MoveCursor(2, y+2) // Past the left border, below the top border
		for x := 0; x < r.board.Width; x++ {
			glyph, ok := occupied[geom.Position{X: x, Y: y}]
			if !ok {
				glyph = glyphEmpty
			}
			cw.WriteString(glyph)
		}
	}
}

// renderBorder draws the box border around the board area.
func (r *BoardRenderer) renderBorder(cw *ChunkWriter) {
	inner := r.innerWidth()
	bar := strings.Repeat("─", inner)

	cw.MoveCursor(1, 1)
	cw.WriteString("┌" + bar + "┐")
	for y := 0; y < r.board.Height; y++ {
		cw.WriteAt(1, y+2, "│")
		cw.WriteAt(inner+2, y+2, "│")
	}
	cw.MoveCursor(1, r.board.Height+2)
	cw.WriteString("└" + bar + "┘")
}
