package quill

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// PointerEvent carries a single pointer-down/drag/up/move occurrence.
// Point is in canvas (world) coordinates.
type PointerEvent struct {
	Point     Vec2
	Time      time.Time
	Button    MouseButton
	Modifiers KeyModifiers
}

// KeyEvent carries a single key-down or key-up occurrence.
//
// FromTextInput marks events originating from a focused text-input control
// (such as the editing overlay); the tool never intercepts those, so typed
// characters reach the control untouched.
type KeyEvent struct {
	Key           ebiten.Key
	Time          time.Time
	Modifiers     KeyModifiers
	FromTextInput bool
}
