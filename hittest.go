package quill

// baseHitTolerance is the hit slop in screen pixels at zoom 1. The effective
// world-space tolerance is baseHitTolerance / zoom, so the slop stays constant
// on screen regardless of zoom level.
const baseHitTolerance = 6.0

// Predicate filters items during a hit test. Predicates are explicit strategy
// values passed in HitOptions, not ad hoc closures at call sites; the two the
// tool uses are SelectedOrHelper and UnselectedText.
type Predicate func(Item) bool

// SelectedOrHelper matches decoration helper items and items that are part of
// the current selection. This is the bounding-box hit test filter.
func SelectedOrHelper(it Item) bool {
	if _, ok := it.(HelperItem); ok {
		return true
	}
	return it.ItemSelected()
}

// UnselectedText matches text entities that are not currently selected.
// This is the filter for "click a text annotation to start editing it".
func UnselectedText(it Item) bool {
	e, ok := it.(*TextEntity)
	return ok && !e.Selected
}

// Hit is a single hit-test match.
type Hit struct {
	Item  Item
	Point Vec2 // the queried point
}

// HitOptions configures a hit test query.
type HitOptions struct {
	Predicate     Predicate
	Tolerance     float64 // world-space slop around item bounds
	IncludeGuides bool    // whether transient guides are hit-testable
	MatchFill     bool
	MatchStroke   bool
	MatchSegments bool
	MatchCurves   bool
}

// HitTester answers point-in-scene queries. Matches are returned in
// front-to-back order: the topmost item first.
type HitTester interface {
	HitTest(p Vec2, opts HitOptions) (Hit, bool)
	HitTestAll(p Vec2, opts HitOptions) []Hit
}

// contentHitOptions builds the standard options for hit-testing text content
// at the given predicate and zoom level.
func contentHitOptions(pred Predicate, zoom float64) HitOptions {
	if zoom <= 0 {
		zoom = 1
	}
	return HitOptions{
		Predicate:   pred,
		Tolerance:   baseHitTolerance / zoom,
		MatchFill:   true,
		MatchStroke: true,
	}
}
