package minesweeper

import (
	"fmt"

	"github.com/vovakirdan/tui-mines/internal/core"
	"github.com/vovakirdan/tui-mines/internal/mines"
)

const (
	cellWidth = 2 // glyph plus one space
	hudHeight = 3
	minWidth  = 36
)

// layout places the board on the screen and maps clicks back to cells.
// It always describes the board as generated, even after a difficulty
// change that has not been applied yet.
type layout struct {
	box    core.Rect // board frame
	width  int       // columns
	height int       // rows
	fits   bool
}

func newLayout(screenW, screenH, cols, rows int) layout {
	boxW := cols*cellWidth + 3
	boxH := rows + 2
	l := layout{
		box:    core.NewRect((screenW-boxW)/2, hudHeight, boxW, boxH),
		width:  cols,
		height: rows,
	}
	// HUD above, status and controls below.
	l.fits = screenW >= max(boxW, minWidth) && screenH >= hudHeight+boxH+3
	return l
}

// cellPos returns the screen position of the glyph for column x, row y.
func (l layout) cellPos(x, y int) (int, int) {
	return l.box.X + 2 + x*cellWidth, l.box.Y + 1 + y
}

// cellAt maps a screen position to a board cell. Both the glyph and the
// space after it belong to the cell.
func (l layout) cellAt(sx, sy int) (int, int, bool) {
	dx := sx - l.box.X - 2
	y := sy - l.box.Y - 1
	if dx < 0 || y < 0 || y >= l.height {
		return 0, 0, false
	}
	x := dx / cellWidth
	if x >= l.width {
		return 0, 0, false
	}
	return x, y, true
}

var numberColors = [...]core.Color{
	1: core.ColorBrightBlue,
	2: core.ColorGreen,
	3: core.ColorRed,
	4: core.ColorBlue,
	5: core.ColorOrange,
	6: core.ColorCyan,
	7: core.ColorMagenta,
	8: core.ColorGray,
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderStatus(dst)

	if g.paused {
		g.drawOverlay(dst, "PAUSED", "Press P to resume")
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.runtime.ScreenH / 2
	dst.DrawTextCentered(y-1, "Window too small")
	need := fmt.Sprintf("Need %dx%d", max(g.layout.box.W, minWidth), hudHeight+g.layout.box.H+3)
	dst.DrawTextCentered(y, need)
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws difficulty, clock, flag count and input mode.
func (g *Game) renderHUD(dst *core.Screen) {
	title := fmt.Sprintf("MINESWEEPER - %s", g.choice)
	dst.DrawTextCentered(0, title)

	left := fmt.Sprintf("Flags: %d/%d", g.engine.GameBoardCounter(mines.Flag), g.engine.NumberOfMines())
	if g.cfg.Display.ShowTimer {
		left = fmt.Sprintf("Time: %3d  %s", g.engine.TimeCounter(), left)
	}
	x := (g.runtime.ScreenW - minWidth) / 2
	dst.DrawText(x, 1, left)

	mode, color := "REVEAL", core.ColorGreen
	if g.engine.IsFlagModeOn() {
		mode, color = "FLAG", core.ColorYellow
	}
	dst.DrawTextColor(x+minWidth-len(mode), 1, mode, color)
}

// renderBoard draws the frame, every cell and the cursor.
func (g *Game) renderBoard(dst *core.Screen) {
	dst.DrawBox(g.layout.box)

	lost := g.engine.IsLost()
	for y := 0; y < g.layout.height; y++ {
		for x := 0; x < g.layout.width; x++ {
			px, py := g.layout.cellPos(x, y)
			r, c := g.cellGlyph(x, y, lost)
			dst.SetColored(px, py, r, c)
		}
	}

	if g.engine.IsOver() {
		return
	}
	px, py := g.layout.cellPos(g.cursorX, g.cursorY)
	cursor := core.ColorBrightGreen
	if g.engine.IsFlagModeOn() {
		cursor = core.ColorYellow
	}
	dst.SetColored(px-1, py, '[', cursor)
	dst.SetColored(px+1, py, ']', cursor)
}

// cellGlyph picks the rune and colour for one cell. After a loss every mine
// is shown.
func (g *Game) cellGlyph(x, y int, lost bool) (rune, core.Color) {
	state := g.engine.FieldContent(x, y)
	if lost && g.engine.IsMine(x, y) && state != mines.Flag {
		return '*', core.ColorBrightRed
	}

	switch state {
	case mines.Empty:
		return ' ', core.ColorDefault
	case mines.Number:
		n := g.engine.MinesNearby(x, y)
		return rune('0' + n), numberColors[n]
	case mines.Flag:
		return 'F', core.ColorYellow
	case mines.Mine:
		return '*', core.ColorBrightRed
	default:
		return '·', core.ColorGray
	}
}

// renderStatus draws the outcome line and the controls below the board.
func (g *Game) renderStatus(dst *core.Screen) {
	y := g.layout.box.Bottom() + 1

	switch {
	case g.engine.IsWon():
		dst.DrawTextCentered(y, fmt.Sprintf("YOU WIN! %d seconds", g.engine.TimeCounter()))
		g.colorRow(dst, y, core.ColorBrightGreen)
		dst.DrawTextCentered(y+1, "R: New board | B: Menu | Q: Quit")
	case g.engine.IsLost():
		dst.DrawTextCentered(y, "BOOM! You hit a mine")
		g.colorRow(dst, y, core.ColorBrightRed)
		dst.DrawTextCentered(y+1, "R: New board | B: Menu | Q: Quit")
	default:
		dst.DrawTextCentered(y+1, g.Controls())
	}
}

// colorRow recolours the non-blank cells of row y.
func (g *Game) colorRow(dst *core.Screen, y int, c core.Color) {
	for x := 0; x < dst.Width(); x++ {
		if r := dst.Get(x, y); r != ' ' {
			dst.SetColored(x, y, r, c)
		}
	}
}

// drawOverlay draws a centered text box over the board.
func (g *Game) drawOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	cx, cy := g.layout.box.Center()
	box := core.NewRect(cx-(maxLen+4)/2, cy-(len(lines)+2)/2, maxLen+4, len(lines)+2)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, line := range lines {
		dst.DrawText(cx-len(line)/2, box.Y+1+i, line)
	}
}
