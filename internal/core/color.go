package core

// Color is the foreground colour of a screen cell.
// The platform maps each value to an ANSI colour code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightBlue
	ColorOrange
	ColorGray
)

// Cell is one character of the screen buffer together with its colour.
type Cell struct {
	Rune  rune
	Color Color
}

// blankCell is what cleared and out-of-bounds cells hold.
var blankCell = Cell{Rune: ' ', Color: ColorDefault}
