package core

// Action represents a semantic shell action, abstracted from physical key presses.
// Paddle movement is not an action: it always travels as a PointerEvent.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - previous option (configuration screen)
	ActionDown           // S, Down arrow - next option (configuration screen)
	ActionLeft           // A, Left arrow - previous value
	ActionRight          // D, Right arrow - next value
	ActionConfirm        // Enter, Space - start the round
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - back to configuration after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionMute           // M key - toggle audio
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionMute:
		return "Mute"
	default:
		return "Unknown"
	}
}

// PlayerID identifies one side of a local two-player surface.
// Player1 owns the upper half of the field, Player2 the lower half.
type PlayerID int

const (
	NoPlayer PlayerID = 0
	Player1  PlayerID = 1
	Player2  PlayerID = 2
)

// Opponent returns the other side.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

// Point is one contact position in device coordinates (pixels or cells).
type Point struct {
	ClientX, ClientY float64
}

// SurfaceRect is the bounding rectangle of the render surface in device coordinates.
type SurfaceRect struct {
	Left, Top     float64
	Width, Height float64
}

// PointerEvent carries every active contact of a pointer/touch event together with
// the geometry needed to map it into logical field coordinates.
type PointerEvent struct {
	Points  []Point
	Surface SurfaceRect
	Logical Vec2 // Logical field size (width, height)
}

// IdentitySurface returns a surface whose device coordinates equal logical ones.
// Keyboard and autopilot input use it to feed the router directly.
func IdentitySurface(logical Vec2) SurfaceRect {
	return SurfaceRect{Width: logical.X, Height: logical.Y}
}

// ToLogical maps a device point to logical coordinates with
// scale = logicalSize / surfaceSize. ok is false for degenerate surfaces.
func (e PointerEvent) ToLogical(p Point) (pos Vec2, ok bool) {
	if e.Surface.Width <= 0 || e.Surface.Height <= 0 || e.Logical.X <= 0 || e.Logical.Y <= 0 {
		return Vec2{}, false
	}
	scaleX := e.Logical.X / e.Surface.Width
	scaleY := e.Logical.Y / e.Surface.Height
	return Vec2{
		X: (p.ClientX - e.Surface.Left) * scaleX,
		Y: (p.ClientY - e.Surface.Top) * scaleY,
	}, true
}
