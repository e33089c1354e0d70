package quill

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rivo/uniseg"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	caretBlinkDuration = 0.5 // seconds per fade phase
	keyRepeatDelay     = 30  // frames before a held key repeats
	keyRepeatInterval  = 3   // frames between repeats once held
)

// fieldHandler is one registered input listener.
type fieldHandler struct {
	id uint32
	fn func(string)
}

// fieldHandle implements ListenerHandle for TextField listeners.
type fieldHandle struct {
	field *TextField
	id    uint32
}

// Remove unregisters the listener. Safe to call more than once.
func (h fieldHandle) Remove() {
	if h.field == nil {
		return
	}
	s := h.field.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = fieldHandler{}
			h.field.handlers = s[:len(s)-1]
			return
		}
	}
}

// TextField is an Ebitengine-backed Overlay: a focusable single-caret text
// input drawn above the canvas with an arbitrary affine transform, so it can
// sit exactly over a rotated or scaled in-scene annotation.
//
// Call Update every frame to capture keyboard input and Draw every frame to
// render. Caret movement is grapheme-cluster aware, and the usual clipboard
// shortcuts (Ctrl/Cmd+C, X, V) work.
type TextField struct {
	face *text.GoTextFace

	value     string
	caret     int // byte offset into value
	visible   bool
	focused   bool
	transform Matrix
	channels  map[string]string
	fillColor Color

	handlers []fieldHandler
	nextID   uint32

	runeBuf    []rune
	blink      *gween.Tween
	blinkOn    bool
	caretAlpha float64
}

// NewTextField creates a hidden, unfocused text field rendering with face.
// A nil face is allowed; the field then measures with a fixed advance and
// draws only its caret.
func NewTextField(face *text.GoTextFace) *TextField {
	return &TextField{
		face:       face,
		transform:  IdentityMatrix,
		channels:   make(map[string]string),
		fillColor:  ColorBlack,
		blink:      gween.New(1, 0, caretBlinkDuration, ease.InOutQuad),
		blinkOn:    true,
		caretAlpha: 1,
	}
}

// --- Overlay interface ---

// Value returns the field's current text.
func (f *TextField) Value() string { return f.value }

// SetValue replaces the field's text and moves the caret to the end.
// Programmatic sets never fire input listeners.
func (f *TextField) SetValue(s string) {
	f.value = s
	f.caret = len(s)
}

// SetVisible shows or hides the field.
func (f *TextField) SetVisible(v bool) { f.visible = v }

// Focus gives the field keyboard focus.
func (f *TextField) Focus() { f.focused = true }

// Blur removes keyboard focus.
func (f *TextField) Blur() { f.focused = false }

// Focused reports whether the field has keyboard focus. Hosts use this to
// mark key events as originating from a text input.
func (f *TextField) Focused() bool { return f.focused }

// SetTransform positions the field in screen space.
func (f *TextField) SetTransform(m Matrix) { f.transform = m.OrIdentity() }

// Transform returns the field's screen transform.
func (f *TextField) Transform() Matrix { return f.transform }

// SetChannel sets one named style property. Fill-color channels update the
// draw color; everything else is retained for host inspection.
func (f *TextField) SetChannel(name, value string) {
	f.channels[name] = value
	switch name {
	case "color", "fill", "-webkit-text-fill-color":
		if c, err := ParseColor(value); err == nil && value != "" && value != "none" {
			f.fillColor = c
		}
	}
}

// Channel returns the last value set for a named style property.
func (f *TextField) Channel(name string) string { return f.channels[name] }

// OnInput subscribes fn to user edits. The returned handle removes exactly
// this subscription.
func (f *TextField) OnInput(fn func(string)) ListenerHandle {
	f.nextID++
	id := f.nextID
	f.handlers = append(f.handlers, fieldHandler{id: id, fn: fn})
	return fieldHandle{field: f, id: id}
}

// TypeString inserts s at the caret as if the user typed it, firing input
// listeners. Used by scripted interaction tests.
func (f *TextField) TypeString(s string) {
	if s == "" {
		return
	}
	f.insert(s)
}

// --- Per-frame processing ---

// Update captures keyboard input while focused and advances the caret blink.
// dt is in seconds.
func (f *TextField) Update(dt float32) {
	f.updateBlink(dt)
	if !f.visible || !f.focused {
		return
	}

	f.runeBuf = ebiten.AppendInputChars(f.runeBuf[:0])
	if len(f.runeBuf) > 0 {
		var b strings.Builder
		for _, r := range f.runeBuf {
			if r >= ' ' {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			f.insert(b.String())
		}
	}

	if repeatTriggered(ebiten.KeyEnter) {
		f.insert("\n")
	}
	if repeatTriggered(ebiten.KeyBackspace) {
		f.backspace()
	}
	if repeatTriggered(ebiten.KeyDelete) {
		f.deleteForward()
	}
	if repeatTriggered(ebiten.KeyArrowLeft) {
		f.caret = prevBoundary(f.value, f.caret)
		f.resetBlink()
	}
	if repeatTriggered(ebiten.KeyArrowRight) {
		f.caret = nextBoundary(f.value, f.caret)
		f.resetBlink()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		f.caret = 0
		f.resetBlink()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		f.caret = len(f.value)
		f.resetBlink()
	}

	if shortcutPressed() {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyC):
			_ = clipboard.WriteAll(f.value)
		case inpututil.IsKeyJustPressed(ebiten.KeyX):
			if err := clipboard.WriteAll(f.value); err == nil {
				f.value = ""
				f.caret = 0
				f.fire()
			}
		case inpututil.IsKeyJustPressed(ebiten.KeyV):
			if s, err := clipboard.ReadAll(); err == nil && s != "" {
				f.insert(s)
			}
		}
	}
}

// Draw renders the field's text and caret onto dst.
func (f *TextField) Draw(dst *ebiten.Image) {
	if !f.visible {
		return
	}
	m := f.transform

	if f.face != nil && f.value != "" {
		op := &text.DrawOptions{}
		op.GeoM.SetElement(0, 0, m[0])
		op.GeoM.SetElement(1, 0, m[1])
		op.GeoM.SetElement(0, 1, m[2])
		op.GeoM.SetElement(1, 1, m[3])
		op.GeoM.SetElement(0, 2, m[4])
		op.GeoM.SetElement(1, 2, m[5])
		op.ColorScale.Scale(
			float32(f.fillColor.R),
			float32(f.fillColor.G),
			float32(f.fillColor.B),
			float32(f.fillColor.A),
		)
		op.LineSpacing = f.lineHeight()
		text.Draw(dst, f.value, f.face, op)
	}

	if f.focused && f.caretAlpha > 0.05 {
		cx, cy := f.caretPos()
		lh := f.lineHeight()
		top := m.Apply(Vec2{cx, cy})
		bottom := m.Apply(Vec2{cx, cy + lh})
		col := Color{
			R: f.fillColor.R,
			G: f.fillColor.G,
			B: f.fillColor.B,
			A: f.fillColor.A * f.caretAlpha,
		}.toRGBA()
		vector.StrokeLine(dst,
			float32(top.X), float32(top.Y),
			float32(bottom.X), float32(bottom.Y),
			1, col, true)
	}
}

// --- Editing primitives ---

func (f *TextField) insert(s string) {
	f.value = f.value[:f.caret] + s + f.value[f.caret:]
	f.caret += len(s)
	f.resetBlink()
	f.fire()
}

func (f *TextField) backspace() {
	if f.caret == 0 {
		return
	}
	prev := prevBoundary(f.value, f.caret)
	f.value = f.value[:prev] + f.value[f.caret:]
	f.caret = prev
	f.resetBlink()
	f.fire()
}

func (f *TextField) deleteForward() {
	if f.caret >= len(f.value) {
		return
	}
	next := nextBoundary(f.value, f.caret)
	f.value = f.value[:f.caret] + f.value[next:]
	f.resetBlink()
	f.fire()
}

func (f *TextField) fire() {
	for _, h := range f.handlers {
		h.fn(f.value)
	}
}

func (f *TextField) lineHeight() float64 {
	if f.face == nil {
		return defaultFontSize * 1.2
	}
	m := f.face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// caretPos returns the caret's local position: the advance of the current
// line's prefix, at the current line's top.
func (f *TextField) caretPos() (x, y float64) {
	before := f.value[:f.caret]
	lineStart := strings.LastIndexByte(before, '\n') + 1
	line := before[lineStart:]
	lineIndex := strings.Count(before, "\n")
	if f.face != nil {
		x = text.Advance(line, f.face)
	} else {
		x = defaultFontSize * 0.6 * float64(len([]rune(line)))
	}
	return x, float64(lineIndex) * f.lineHeight()
}

// --- Caret blink ---

func (f *TextField) updateBlink(dt float32) {
	a, done := f.blink.Update(dt)
	f.caretAlpha = float64(a)
	if done {
		// Reverse the fade for a smooth pulse.
		if f.blinkOn {
			f.blink = gween.New(0, 1, caretBlinkDuration, ease.InOutQuad)
		} else {
			f.blink = gween.New(1, 0, caretBlinkDuration, ease.InOutQuad)
		}
		f.blinkOn = !f.blinkOn
	}
}

func (f *TextField) resetBlink() {
	f.blink = gween.New(1, 0, caretBlinkDuration, ease.InOutQuad)
	f.blinkOn = true
	f.caretAlpha = 1
}

// --- Grapheme boundaries ---

// prevBoundary returns the byte offset of the grapheme-cluster boundary
// preceding pos.
func prevBoundary(s string, pos int) int {
	if pos <= 0 {
		return 0
	}
	prev := 0
	rest := s
	off := 0
	state := -1
	for len(rest) > 0 {
		cluster, tail, _, next := uniseg.StepString(rest, state)
		if off+len(cluster) >= pos {
			return prev
		}
		prev = off + len(cluster)
		off += len(cluster)
		rest = tail
		state = next
	}
	return prev
}

// nextBoundary returns the byte offset of the grapheme-cluster boundary
// following pos.
func nextBoundary(s string, pos int) int {
	if pos >= len(s) {
		return len(s)
	}
	cluster, _, _, _ := uniseg.StepString(s[pos:], -1)
	return pos + len(cluster)
}

// --- Key repeat ---

// repeatTriggered reports whether key fired this frame under the standard
// initial-delay/interval repeat scheme.
func repeatTriggered(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0
}

// shortcutPressed reports whether the platform clipboard modifier is held.
func shortcutPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}
