package quill

// Overlay is the host-provided editable text surface layered above the
// canvas. While an edit session is live the tool owns it exclusively: it
// positions it over the (hidden) in-scene entity, mirrors the entity's style
// onto it, and listens for content changes.
//
// SetValue must not fire input listeners; only user edits do.
type Overlay interface {
	Value() string
	SetValue(string)
	SetVisible(bool)
	Focus()
	Blur()
	// SetTransform positions the overlay in screen space. The matrix carries
	// both the translation and any rotation/scale/skew of the entity.
	SetTransform(Matrix)
	// SetChannel sets one named style property (see overlayStyleChannels).
	SetChannel(name, value string)
	// OnInput subscribes a content-change listener fired on every user edit
	// with the overlay's current value.
	OnInput(fn func(value string)) ListenerHandle
}

// ListenerHandle removes a previously registered listener. Remove must be
// safe to call more than once.
type ListenerHandle interface {
	Remove()
}

// TypingOverlay is an Overlay that can simulate user typing. Unlike SetValue,
// TypeString fires input listeners. Scripted interaction tests require it.
type TypingOverlay interface {
	Overlay
	TypeString(s string)
}

// Host bundles the application-level callbacks the tool reports through.
// Nil fields are simply skipped.
type Host struct {
	// SetSelectedItems replaces the app-level selection.
	SetSelectedItems func(items []Item)
	// ClearSelectedItems empties the app-level selection.
	ClearSelectedItems func()
	// OnUpdate fires after any visible scene mutation so the host can redraw
	// or re-serialize.
	OnUpdate func()
	// SetTextEditTarget reports which entity is being edited (ok=false when
	// no edit is live), for any "what is being edited" UI.
	SetTextEditTarget func(id uint32, ok bool)
	// SetCursor reports the pointer affordance to display.
	SetCursor func(Cursor)
}

func (h *Host) setSelected(items []Item) {
	if h.SetSelectedItems != nil {
		h.SetSelectedItems(items)
	}
}

func (h *Host) clearSelected() {
	if h.ClearSelectedItems != nil {
		h.ClearSelectedItems()
	}
}

func (h *Host) update() {
	if h.OnUpdate != nil {
		h.OnUpdate()
	}
}

func (h *Host) setEditTarget(id uint32, ok bool) {
	if h.SetTextEditTarget != nil {
		h.SetTextEditTarget(id, ok)
	}
}

func (h *Host) setCursor(c Cursor) {
	if h.SetCursor != nil {
		h.SetCursor(c)
	}
}

// OverlaySync is the bidirectional bridge between a text entity and the
// overlay surface: it aligns the overlay over the entity, mirrors style and
// content both ways, and manages the input listener's lifecycle.
type OverlaySync struct {
	overlay    Overlay
	guides     *GuideRenderer
	host       *Host
	viewOrigin func() Vec2

	entity *TextEntity
	handle ListenerHandle
}

// NewOverlaySync creates the bridge. viewOrigin reports the canvas viewport's
// screen origin and may be nil when the viewport starts at the screen origin.
func NewOverlaySync(overlay Overlay, guides *GuideRenderer, host *Host, viewOrigin func() Vec2) *OverlaySync {
	return &OverlaySync{
		overlay:    overlay,
		guides:     guides,
		host:       host,
		viewOrigin: viewOrigin,
	}
}

// Editing returns the entity currently bound to the overlay, if any.
func (s *OverlaySync) Editing() (*TextEntity, bool) {
	return s.entity, s.entity != nil
}

// BeginEdit binds e to the overlay and starts an edit session. Any previous
// session is finalized first, so the overlay is only ever bound to one entity
// and input listeners never accumulate.
func (s *OverlaySync) BeginEdit(e *TextEntity, onInput func(value string)) {
	s.EndEdit()

	s.entity = e
	s.guides.Show(e)
	s.host.setEditTarget(e.ID, true)

	// The overlay renders the live text; hide the scene copy so the text is
	// not drawn twice.
	e.Opacity = 0

	s.overlay.SetTransform(overlayPlacement(e, s.origin()))
	applyStyle(s.overlay, e.Style)

	s.overlay.SetValue(e.Content)
	s.overlay.SetVisible(true)
	s.overlay.Focus()
	s.handle = s.overlay.OnInput(onInput)
}

// EndEdit finalizes the current edit session: removes the guide, clears the
// edit-target notification, restores the entity's opacity, hides the overlay,
// and removes the exact listener registered in BeginEdit. Safe to call when
// no session is live.
func (s *OverlaySync) EndEdit() {
	s.guides.Clear()
	s.host.setEditTarget(0, false)

	if s.entity != nil {
		s.entity.Opacity = 1
		s.entity = nil
	}

	s.overlay.SetVisible(false)
	s.overlay.Blur()
	if s.handle != nil {
		s.handle.Remove()
		s.handle = nil
	}
}

func (s *OverlaySync) origin() Vec2 {
	if s.viewOrigin != nil {
		return s.viewOrigin()
	}
	return Vec2{}
}

// overlayPlacement computes the overlay's screen transform so it visually
// matches the in-scene text: translate by the viewport origin plus the
// entity's top-left; a non-identity entity transform contributes its
// translation and its linear part (rotation/scale/skew). A plain translate
// suffices for the identity case.
func overlayPlacement(e *TextEntity, origin Vec2) Matrix {
	t := e.Transform.OrIdentity()
	base := origin.Add(e.TopLeft)
	if t.IsIdentity() {
		return Translate(base.X, base.Y)
	}
	shift := t.Translation()
	return Translate(base.X+shift.X, base.Y+shift.Y).Mul(t.Linear())
}
