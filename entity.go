package quill

import "strings"

// Font is the interface for text measurement. Implementations wrap whatever
// text engine the host renders with.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// Item is a hit-testable scene object. The tool only ever binds *TextEntity
// items for editing; anything else (selection handles, other shape kinds) is
// opaque to it beyond this interface.
type Item interface {
	ItemID() uint32
	ItemBounds() Rect
	ItemSelected() bool
}

// HelperItem marks transient decoration items (selection handles, bounds
// paths) that the bounding-box hit test should always match.
type HelperItem interface {
	Item
	Helper()
}

// --- ID counter ---

// entityIDCounter is a plain counter; quill is single-threaded, so no atomic.
var entityIDCounter uint32

func nextEntityID() uint32 {
	entityIDCounter++
	return entityIDCounter
}

// --- TextEntity ---

// TextEntity is a text annotation in the scene: the unit bound to the overlay
// while editing. A single flat struct; collaborators mutate its
// exported fields directly inside the host's event dispatch.
type TextEntity struct {
	ID       uint32
	TopLeft  Vec2
	Content  string
	Font     Font
	FontSize float64
	// Transform is the entity's affine transform. The zero value means
	// identity (see Matrix.OrIdentity).
	Transform Matrix
	Opacity   float64
	Selected  bool
	Style     Style
}

// NewTextEntity creates an empty text entity at the given top-left position
// with the given style, ready for binding to the overlay.
func NewTextEntity(topLeft Vec2, style Style, font Font, fontSize float64) *TextEntity {
	return &TextEntity{
		ID:       nextEntityID(),
		TopLeft:  topLeft,
		Font:     font,
		FontSize: fontSize,
		Opacity:  1,
		Style:    style,
	}
}

// ItemID returns the entity's scene identifier.
func (e *TextEntity) ItemID() uint32 { return e.ID }

// ItemSelected reports whether the entity is part of the app-level selection.
func (e *TextEntity) ItemSelected() bool { return e.Selected }

// ItemBounds returns the entity's world-space axis-aligned bounding box.
// The measured content box is transformed about its own origin by the
// linear part of the entity transform, then offset by TopLeft plus the
// transform's translation. Renderers and the overlay place the text the
// same way, so hit bounds always cover the drawn glyphs. An empty entity
// still has a minimal box so it stays clickable and the guide has
// something to outline.
func (e *TextEntity) ItemBounds() Rect {
	w, h := e.measure()
	local := Rect{Width: w, Height: h}
	t := e.Transform.OrIdentity()
	if t.IsIdentity() {
		local.X = e.TopLeft.X
		local.Y = e.TopLeft.Y
		return local
	}
	shift := t.Translation()
	box := transformBounds(t.Linear(), local)
	box.X += e.TopLeft.X + shift.X
	box.Y += e.TopLeft.Y + shift.Y
	return box
}

// Empty reports whether the entity's content is empty after trimming
// whitespace. Empty entities are pruned rather than left in the scene.
func (e *TextEntity) Empty() bool {
	return strings.TrimSpace(e.Content) == ""
}

// measure returns the content box size, falling back to a FontSize-based
// estimate when no Font is attached.
func (e *TextEntity) measure() (w, h float64) {
	if e.Font != nil && e.Content != "" {
		return e.Font.MeasureString(e.Content)
	}
	size := e.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	if e.Content == "" {
		// Minimal caret-sized box for a fresh entity.
		return size / 2, size * 1.2
	}
	return size * 0.6 * float64(len([]rune(e.Content))), size * 1.2
}

// defaultFontSize is used when an entity has no explicit font size.
const defaultFontSize = 16.0
