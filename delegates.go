package quill

import "github.com/hajimehoshi/ebiten/v2"

// SelectionDelegate handles box-based select/move/resize of already-selected
// items. The tool delegates to it; it never reimplements its behavior.
//
// OnPointerDown reports whether the delegate accepted the event (the press
// landed on its bounds decoration or a selected item and a box interaction
// started). clone and multiselect mirror the host editor's alt/shift gestures.
type SelectionDelegate interface {
	OnPointerDown(evt PointerEvent, clone, multiselect bool, opts HitOptions) bool
	OnPointerDrag(evt PointerEvent)
	OnPointerUp(evt PointerEvent)
	// OnSelectionChanged tells the delegate the app-level selection changed
	// so it can rebuild its bounds decoration.
	OnSelectionChanged(items []Item)
	// RemoveBoundsDecoration tears down any bounds decoration, e.g. when the
	// tool deactivates.
	RemoveBoundsDecoration()
}

// NudgeDelegate applies keyboard micro-movement to the current selection.
type NudgeDelegate interface {
	OnKeyUp(evt KeyEvent)
}

// --- Reference implementations ---

// BoxSelection is a minimal SelectionDelegate: click-and-drag moves the
// selected entities as a group. Hosts with a full manipulation tool (resize
// handles, rotation) plug in their own delegate instead.
type BoxSelection struct {
	hits HitTester

	selected  []Item
	dragging  bool
	last      Vec2
	decorated bool
}

// NewBoxSelection creates a box selection delegate querying the given tester.
func NewBoxSelection(hits HitTester) *BoxSelection {
	return &BoxSelection{hits: hits}
}

// OnPointerDown accepts the press when it hits a selected item or decoration
// under opts, starting a move interaction.
func (b *BoxSelection) OnPointerDown(evt PointerEvent, clone, multiselect bool, opts HitOptions) bool {
	if _, ok := b.hits.HitTest(evt.Point, opts); !ok {
		return false
	}
	b.dragging = true
	b.last = evt.Point
	return true
}

// OnPointerDrag moves the selected entities by the pointer delta.
func (b *BoxSelection) OnPointerDrag(evt PointerEvent) {
	if !b.dragging {
		return
	}
	dx := evt.Point.X - b.last.X
	dy := evt.Point.Y - b.last.Y
	b.last = evt.Point
	for _, it := range b.selected {
		if e, ok := it.(*TextEntity); ok {
			e.TopLeft.X += dx
			e.TopLeft.Y += dy
		}
	}
}

// OnPointerUp ends the move interaction.
func (b *BoxSelection) OnPointerUp(evt PointerEvent) {
	b.dragging = false
}

// OnSelectionChanged replaces the tracked selection and shows the bounds
// decoration when it is non-empty.
func (b *BoxSelection) OnSelectionChanged(items []Item) {
	b.selected = items
	b.decorated = len(items) > 0
}

// RemoveBoundsDecoration hides the bounds decoration.
func (b *BoxSelection) RemoveBoundsDecoration() {
	b.decorated = false
}

// Decorated reports whether the bounds decoration is currently shown.
func (b *BoxSelection) Decorated() bool { return b.decorated }

// Selected returns the items the delegate is tracking.
func (b *BoxSelection) Selected() []Item { return b.selected }

// ArrowNudger is a minimal NudgeDelegate: arrow keys move every selected
// text entity by a fixed step.
type ArrowNudger struct {
	Step      float64       // world units per key press; 0 means 1
	Selection func() []Item // current app-level selection
}

// OnKeyUp nudges the selection for arrow keys; other keys are ignored.
func (n *ArrowNudger) OnKeyUp(evt KeyEvent) {
	step := n.Step
	if step == 0 {
		step = 1
	}
	var dx, dy float64
	switch evt.Key {
	case ebiten.KeyArrowLeft:
		dx = -step
	case ebiten.KeyArrowRight:
		dx = step
	case ebiten.KeyArrowUp:
		dy = -step
	case ebiten.KeyArrowDown:
		dy = step
	default:
		return
	}
	if n.Selection == nil {
		return
	}
	for _, it := range n.Selection() {
		if e, ok := it.(*TextEntity); ok {
			e.TopLeft.X += dx
			e.TopLeft.Y += dy
		}
	}
}
