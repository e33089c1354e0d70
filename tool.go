package quill

import (
	"fmt"
	"os"
)

// EntityStore is where the tool creates and prunes text entities. Canvas
// implements it; hosts with their own scene graph provide their own.
type EntityStore interface {
	AddEntity(e *TextEntity)
	RemoveEntity(id uint32)
}

// ToolConfig wires the tool's collaborators. Hits and Store are required;
// nil Selection/Nudge fall back to inert defaults, nil Zoom means zoom 1.
type ToolConfig struct {
	Hits      HitTester
	Store     EntityStore
	Selection SelectionDelegate
	Nudge     NudgeDelegate
	Overlay   Overlay
	Host      Host

	// Style is applied to newly created entities and mirrored to the overlay.
	Style Style
	// Font and FontSize are stamped onto newly created entities.
	Font     Font
	FontSize float64

	// Zoom reports the current view zoom, used to keep hit slop constant in
	// screen pixels.
	Zoom func() float64
	// ViewOrigin reports the canvas viewport's screen origin for overlay
	// placement.
	ViewOrigin func() Vec2
}

// pointerSession tracks whether the primary button has been held since a
// handled pointer-down. Owned by the tool instance, never process-wide.
type pointerSession struct {
	active bool
}

// Tool is the interaction controller for text annotations: it owns the mode
// state machine, receives all raw events from the host's dispatch, and
// composes hit testing, gesture classification, the selection and nudge
// delegates, and the overlay bridge.
//
// All methods run synchronously inside the host's event dispatch; nothing
// here is safe for concurrent use.
type Tool struct {
	hits      HitTester
	store     EntityStore
	selection SelectionDelegate
	nudge     NudgeDelegate
	sync      *OverlaySync
	guides    *GuideRenderer
	host      Host
	style     Style
	font      Font
	fontSize  float64
	zoom      func() float64

	mode    Mode
	bound   *TextEntity
	clicks  DoubleClickDetector
	session pointerSession
	cursor  Cursor
	debug   bool
}

// NewTool creates a text annotation tool in ModeNone.
func NewTool(cfg ToolConfig) *Tool {
	t := &Tool{
		hits:      cfg.Hits,
		store:     cfg.Store,
		selection: cfg.Selection,
		nudge:     cfg.Nudge,
		guides:    NewGuideRenderer(),
		host:      cfg.Host,
		style:     cfg.Style,
		font:      cfg.Font,
		fontSize:  cfg.FontSize,
		zoom:      cfg.Zoom,
	}
	if t.selection == nil {
		t.selection = inertSelection{}
	}
	if t.nudge == nil {
		t.nudge = inertNudge{}
	}
	t.sync = NewOverlaySync(cfg.Overlay, t.guides, &t.host, cfg.ViewOrigin)
	return t
}

// Mode returns the current interaction mode.
func (t *Tool) Mode() Mode { return t.mode }

// Cursor returns the pointer affordance from the last hover test.
func (t *Tool) Cursor() Cursor { return t.cursor }

// Guides returns the guide renderer, for the host's draw pass.
func (t *Tool) Guides() *GuideRenderer { return t.guides }

// Editing returns the entity currently bound for editing, if any.
func (t *Tool) Editing() (*TextEntity, bool) { return t.bound, t.bound != nil }

// Style returns the style applied to new entities.
func (t *Tool) Style() Style { return t.style }

// SetStyle replaces the style applied to new entities.
func (t *Tool) SetStyle(s Style) { t.style = s }

// SetDebug enables mode-transition logging to stderr.
func (t *Tool) SetDebug(enabled bool) { t.debug = enabled }

func (t *Tool) setMode(m Mode) {
	if t.debug && m != t.mode {
		_, _ = fmt.Fprintf(os.Stderr, "[quill] mode: %s -> %s\n", t.mode, m)
	}
	t.mode = m
}

func (t *Tool) zoomFactor() float64 {
	if t.zoom == nil {
		return 1
	}
	return t.zoom()
}

// OnPointerDown runs the pointer-down decision ladder. Non-primary buttons
// are ignored outright.
func (t *Tool) OnPointerDown(evt PointerEvent) {
	if evt.Button != MouseButtonLeft {
		return
	}

	// A previous edit abandoned with empty content leaves nothing behind.
	if t.bound != nil && t.bound.Empty() {
		t.store.RemoveEntity(t.bound.ID)
		t.bound = nil
		t.host.update()
	}

	double := t.clicks.Classify(evt)

	boundsOpts := contentHitOptions(SelectedOrHelper, t.zoomFactor())
	boundsHit, hasBoundsHit := t.hits.HitTest(evt.Point, boundsOpts)

	// Double-click on a selected annotation re-enters editing. When the
	// topmost hit is a bounds decoration drawn over the annotation, resolve
	// through it to the selected text underneath.
	var rebound *TextEntity
	if double && t.mode == ModeSelect && hasBoundsHit {
		rebound, _ = boundsHit.Item.(*TextEntity)
		if rebound == nil {
			for _, h := range t.hits.HitTestAll(evt.Point, boundsOpts) {
				if e, ok := h.Item.(*TextEntity); ok {
					rebound = e
					break
				}
			}
		}
	}

	switch {
	case rebound != nil:
		t.host.clearSelected()
		t.bound = rebound
		t.setMode(ModeTextEdit)

	case t.selection.OnPointerDown(evt, false, false, boundsOpts):
		t.setMode(ModeSelect)

	default:
		t.host.clearSelected()

		textOpts := contentHitOptions(UnselectedText, t.zoomFactor())
		var textHit *TextEntity
		if hit, ok := t.hits.HitTest(evt.Point, textOpts); ok {
			textHit, _ = hit.Item.(*TextEntity)
		}
		if textHit != nil {
			t.bound = textHit
			t.setMode(ModeTextEdit)
		} else if t.mode == ModeTextEdit && t.bound != nil {
			// Clicking away from a live edit finalizes it into a selection.
			t.bound.Selected = true
			items := []Item{t.bound}
			t.selection.OnSelectionChanged(items)
			t.host.setSelected(items)
			t.bound = nil
			t.setMode(ModeSelect)
			t.host.update()
		} else if t.mode == ModeTextEdit {
			t.setMode(ModeNone)
		} else {
			e := NewTextEntity(evt.Point, t.style, t.font, t.fontSize)
			t.store.AddEntity(e)
			t.bound = e
			t.setMode(ModeTextEdit)
			t.host.update()
		}
	}

	if t.mode == ModeTextEdit && t.bound != nil {
		t.sync.BeginEdit(t.bound, t.onOverlayInput)
	} else {
		t.sync.EndEdit()
	}

	t.session.active = true
}

// OnPointerDrag forwards to the selection delegate while a select-mode press
// session is live; no-op otherwise.
func (t *Tool) OnPointerDrag(evt PointerEvent) {
	if t.mode == ModeSelect && t.session.active {
		t.selection.OnPointerDrag(evt)
	}
}

// OnPointerUp forwards to the selection delegate in select mode, then ends
// the press session.
func (t *Tool) OnPointerUp(evt PointerEvent) {
	if t.mode == ModeSelect && t.session.active {
		t.selection.OnPointerUp(evt)
	}
	t.session.active = false
}

// OnPointerMove updates the hover affordance: an I-beam over editable text,
// the default pointer elsewhere. Pure side effect, never a mode change.
func (t *Tool) OnPointerMove(evt PointerEvent) {
	opts := contentHitOptions(UnselectedText, t.zoomFactor())
	cursor := CursorDefault
	if _, ok := t.hits.HitTest(evt.Point, opts); ok {
		cursor = CursorText
	}
	if cursor != t.cursor {
		t.cursor = cursor
		t.host.setCursor(cursor)
	}
}

// OnKeyUp forwards arrow-key nudges to the nudge delegate in select mode.
func (t *Tool) OnKeyUp(evt KeyEvent) {
	if t.mode == ModeSelect {
		t.nudge.OnKeyUp(evt)
	}
}

// OnKeyDown ignores events from a focused text-input control so typed
// characters reach it untouched. Otherwise key-down shares the key-up nudge
// path.
func (t *Tool) OnKeyDown(evt KeyEvent) {
	if evt.FromTextInput {
		return
	}
	if t.mode == ModeSelect {
		t.nudge.OnKeyUp(evt)
	}
}

// onOverlayInput mirrors the overlay's value into the bound entity and
// retracks the guide. Registered with the overlay by BeginEdit.
func (t *Tool) onOverlayInput(value string) {
	if t.mode != ModeTextEdit || t.bound == nil {
		return
	}
	t.bound.Content = value
	t.guides.Refresh(t.bound)
	t.host.update()
}

// Deactivate finalizes everything when the host switches tools away: bounds
// decoration removed, an empty bound entity pruned, the edit session ended.
func (t *Tool) Deactivate() {
	t.selection.RemoveBoundsDecoration()
	if t.bound != nil && t.bound.Empty() {
		t.store.RemoveEntity(t.bound.ID)
	}
	t.bound = nil
	t.sync.EndEdit()
	t.setMode(ModeNone)
	t.session.active = false
	t.host.update()
}

// --- Inert delegate fallbacks ---

type inertSelection struct{}

func (inertSelection) OnPointerDown(PointerEvent, bool, bool, HitOptions) bool { return false }
func (inertSelection) OnPointerDrag(PointerEvent)                              {}
func (inertSelection) OnPointerUp(PointerEvent)                                {}
func (inertSelection) OnSelectionChanged([]Item)                               {}
func (inertSelection) RemoveBoundsDecoration()                                 {}

type inertNudge struct{}

func (inertNudge) OnKeyUp(KeyEvent) {}
