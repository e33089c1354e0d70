package quill

import "time"

// DoubleClickThreshold is the maximum gap between two pointer-downs for the
// second one to classify as a double-click. Pairs spaced exactly this far
// apart are NOT double-clicks.
const DoubleClickThreshold = 250 * time.Millisecond

// DoubleClickDetector classifies pointer-downs as single or double clicks by
// timestamp delta. State is per-instance so independent tools (and tests)
// never interfere with each other.
type DoubleClickDetector struct {
	lastDown time.Time
	hasLast  bool
}

// Classify reports whether evt is the second click of a double-click, then
// records evt as the new last pointer-down. The record is updated
// unconditionally, whatever the classification.
func (d *DoubleClickDetector) Classify(evt PointerEvent) bool {
	double := d.hasLast && evt.Time.Sub(d.lastDown) < DoubleClickThreshold
	d.lastDown = evt.Time
	d.hasLast = true
	return double
}

// Reset forgets the last pointer-down.
func (d *DoubleClickDetector) Reset() {
	d.hasLast = false
	d.lastDown = time.Time{}
}
