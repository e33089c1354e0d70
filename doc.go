// Package quill is the interaction layer for text annotations in 2D scene
// editors built on [Ebitengine].
//
// Quill turns raw pointer and keyboard events into transitions between
// "select an existing annotation" and "edit its text", and keeps an editable
// overlay surface visually and behaviorally synchronized with the in-scene
// text entity it edits, including the affine math to sit the overlay exactly
// over a rotated or scaled annotation.
//
// # Quick start
//
// Create a [Tool] with your scene's collaborators and feed it events from
// your game loop:
//
//	canvas := quill.NewCanvas()
//	field := quill.NewTextField(face)
//	tool := quill.NewTool(quill.ToolConfig{
//		Hits:    canvas,
//		Store:   canvas,
//		Overlay: field,
//		Style:   quill.DefaultStyle,
//	})
//
//	// in Update:
//	tool.OnPointerDown(quill.PointerEvent{Point: p, Time: time.Now(), Button: quill.MouseButtonLeft})
//
// Clicking empty canvas creates a new annotation and opens it for editing;
// clicking an existing annotation edits it; clicking away finalizes the edit
// into a selection. A dashed [Guide] outlines whatever is being edited.
//
// # Collaborators
//
// The tool composes, and never reimplements, four external contracts:
// [HitTester] answers point-in-scene queries, [SelectionDelegate] handles
// box-based select/move of already-selected items, [NudgeDelegate] applies
// arrow-key micro-movement, and [Overlay] is the editable text surface.
// [Canvas], [BoxSelection], [ArrowNudger], and [TextField] are ready-made
// implementations; hosts with their own scene graph substitute their own.
//
// Everything runs synchronously inside the host's event dispatch. A Tool is
// single-threaded and all its state is per-instance, so independent tools
// coexist freely.
//
// [Ebitengine]: https://ebitengine.org
package quill
