package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors.
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
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Board palette.
const (
	ColorSnakeHead = ColorBrightCyan
	ColorSnakeBody = ColorCyan
	ColorFood      = ColorBrightMagenta
	ColorBorder    = ColorBlue
	ColorGridDot   = ColorGray
	ColorPopup     = ColorBrightYellow
	ColorHUD       = ColorBrightWhite
	ColorDim       = ColorGray
	ColorAlert     = ColorBrightRed
)
