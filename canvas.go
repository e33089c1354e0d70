package quill

// Canvas is a minimal front-to-back item store with hit testing. It gives the
// tool a usable default scene; hosts with their own scene graph implement
// HitTester and EntityStore themselves and skip this type entirely.
//
// Items are stored in paint order (back to front); hit tests walk the slice
// backward so the topmost item wins, matching painter-order traversal.
type Canvas struct {
	items      []Item
	zoom       float64
	viewOrigin Vec2
}

// NewCanvas creates an empty canvas at zoom 1.
func NewCanvas() *Canvas {
	return &Canvas{zoom: 1}
}

// Add appends an item on top of the paint order.
func (c *Canvas) Add(it Item) {
	c.items = append(c.items, it)
}

// Remove deletes the item with the given id. No-op if absent.
func (c *Canvas) Remove(id uint32) {
	for i, it := range c.items {
		if it.ItemID() == id {
			copy(c.items[i:], c.items[i+1:])
			c.items[len(c.items)-1] = nil
			c.items = c.items[:len(c.items)-1]
			return
		}
	}
}

// Items returns the backing slice in paint order. Callers must not reorder it.
func (c *Canvas) Items() []Item { return c.items }

// Zoom returns the current view zoom factor.
func (c *Canvas) Zoom() float64 { return c.zoom }

// SetZoom sets the view zoom factor. Values <= 0 are clamped to 1.
func (c *Canvas) SetZoom(z float64) {
	if z <= 0 {
		z = 1
	}
	c.zoom = z
}

// ViewOrigin returns the canvas viewport's screen origin: the screen-space
// offset added to overlay placement so it lines up with the scene.
func (c *Canvas) ViewOrigin() Vec2 { return c.viewOrigin }

// SetViewOrigin sets the viewport's screen origin.
func (c *Canvas) SetViewOrigin(o Vec2) { c.viewOrigin = o }

// --- EntityStore ---

// AddEntity adds a text entity to the scene.
func (c *Canvas) AddEntity(e *TextEntity) { c.Add(e) }

// RemoveEntity removes the entity with the given id from the scene.
func (c *Canvas) RemoveEntity(id uint32) { c.Remove(id) }

// --- HitTester ---

// HitTest returns the topmost item at p matching opts, if any.
func (c *Canvas) HitTest(p Vec2, opts HitOptions) (Hit, bool) {
	for i := len(c.items) - 1; i >= 0; i-- {
		if c.match(c.items[i], p, opts) {
			return Hit{Item: c.items[i], Point: p}, true
		}
	}
	return Hit{}, false
}

// HitTestAll returns all items at p matching opts, front-to-back.
func (c *Canvas) HitTestAll(p Vec2, opts HitOptions) []Hit {
	var hits []Hit
	for i := len(c.items) - 1; i >= 0; i-- {
		if c.match(c.items[i], p, opts) {
			hits = append(hits, Hit{Item: c.items[i], Point: p})
		}
	}
	return hits
}

// match tests a single item against the query. Guides are not items on the
// canvas, so IncludeGuides has no effect here.
func (c *Canvas) match(it Item, p Vec2, opts HitOptions) bool {
	if opts.Predicate != nil && !opts.Predicate(it) {
		return false
	}
	return it.ItemBounds().Expand(opts.Tolerance).Contains(p.X, p.Y)
}
