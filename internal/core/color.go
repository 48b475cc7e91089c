package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors for game elements.
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
	ColorBrightBlue
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// PlayerColor returns the colour conventionally used for a side.
func PlayerColor(p PlayerID) Color {
	switch p {
	case Player1:
		return ColorBrightBlue
	case Player2:
		return ColorBrightRed
	default:
		return ColorWhite
	}
}
