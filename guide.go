package quill

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// guidePadding is the gap in world units between the entity's content box
	// and the dashed outline.
	guidePadding = 4.0
	// guideFadeDuration is how long the outline takes to fade in, in seconds.
	guideFadeDuration = 0.15
)

// guideDashPattern is the fixed on/off dash lengths for the outline.
var guideDashPattern = [2]float64{4, 4}

// Guide is the transient dashed outline shown around the entity being edited.
// Never persisted; it exists only while an edit session is live.
type Guide struct {
	entityID uint32
	corners  [4]Vec2 // padded content box corners, world space, clockwise
	alpha    float64
	fade     *gween.Tween
	color    Color
}

// EntityID returns the id of the entity this guide outlines.
func (g *Guide) EntityID() uint32 { return g.entityID }

// GuideRenderer owns guide lifecycle: at most one guide exists at any time,
// keyed by entity id so guide and entity never hold references to each other.
type GuideRenderer struct {
	guides map[uint32]*Guide
}

// NewGuideRenderer creates an empty guide renderer.
func NewGuideRenderer() *GuideRenderer {
	return &GuideRenderer{guides: make(map[uint32]*Guide)}
}

// Show removes any existing guide and creates a fresh one around the entity.
func (r *GuideRenderer) Show(e *TextEntity) *Guide {
	r.Clear()
	g := &Guide{
		entityID: e.ID,
		fade:     gween.New(0, 1, guideFadeDuration, ease.OutQuad),
		color:    Color{R: 0.35, G: 0.55, B: 1, A: 1},
	}
	g.corners = guideCorners(e)
	r.guides[e.ID] = g
	return g
}

// Refresh recomputes the guide outline for e to track its current content
// bounds. No-op when e has no guide.
func (r *GuideRenderer) Refresh(e *TextEntity) {
	g, ok := r.guides[e.ID]
	if !ok {
		return
	}
	g.corners = guideCorners(e)
}

// Remove deletes the guide for the given entity id, if present.
func (r *GuideRenderer) Remove(entityID uint32) {
	delete(r.guides, entityID)
}

// Clear deletes all guides.
func (r *GuideRenderer) Clear() {
	for id := range r.guides {
		delete(r.guides, id)
	}
}

// Active returns the current guide, if one exists.
func (r *GuideRenderer) Active() (*Guide, bool) {
	for _, g := range r.guides {
		return g, true
	}
	return nil, false
}

// Update advances the fade-in animation. dt is in seconds.
func (r *GuideRenderer) Update(dt float32) {
	for _, g := range r.guides {
		if g.fade == nil {
			continue
		}
		a, done := g.fade.Update(dt)
		g.alpha = float64(a)
		if done {
			g.fade = nil
			g.alpha = 1
		}
	}
}

// Draw renders all guides as dashed outlines onto dst. view maps world
// coordinates to screen coordinates.
func (r *GuideRenderer) Draw(dst *ebiten.Image, view Matrix) {
	for _, g := range r.guides {
		c := g.color
		if c.A*g.alpha <= 0 {
			continue
		}
		col := Color{R: c.R, G: c.G, B: c.B, A: c.A * g.alpha}.toRGBA()
		for i := 0; i < 4; i++ {
			p0 := view.Apply(g.corners[i])
			p1 := view.Apply(g.corners[(i+1)%4])
			drawDashedLine(dst, p0, p1, col)
		}
	}
}

// guideCorners computes the padded, transformed outline corners for e. The
// local content box rotates about its own origin and is then offset by
// TopLeft plus the transform's translation, the same convention ItemBounds
// and the overlay placement use, so the outline hugs the drawn text.
func guideCorners(e *TextEntity) [4]Vec2 {
	w, h := e.measure()
	local := Rect{Width: w, Height: h}.Expand(guidePadding)
	t := e.Transform.OrIdentity()
	lin := t.Linear()
	off := e.TopLeft.Add(t.Translation())
	corners := [4]Vec2{
		lin.Apply(Vec2{local.X, local.Y}),
		lin.Apply(Vec2{local.X + local.Width, local.Y}),
		lin.Apply(Vec2{local.X + local.Width, local.Y + local.Height}),
		lin.Apply(Vec2{local.X, local.Y + local.Height}),
	}
	for i := range corners {
		corners[i].X += off.X
		corners[i].Y += off.Y
	}
	return corners
}

// drawDashedLine strokes p0→p1 with the fixed dash pattern.
func drawDashedLine(dst *ebiten.Image, p0, p1 Vec2, col colorRGBA) {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	length := math.Hypot(dx, dy)
	if length <= 0 {
		return
	}
	ux := dx / length
	uy := dy / length
	on := guideDashPattern[0]
	off := guideDashPattern[1]
	for pos := 0.0; pos < length; pos += on + off {
		end := pos + on
		if end > length {
			end = length
		}
		vector.StrokeLine(dst,
			float32(p0.X+ux*pos), float32(p0.Y+uy*pos),
			float32(p0.X+ux*end), float32(p0.Y+uy*end),
			1, col, true)
	}
}
