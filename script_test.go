package quill

import (
	"strings"
	"testing"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "type", "text": "Hi"},
		{"action": "wait", "ms": 300},
		{"action": "key", "key": "left"}
	]}`)

	s, err := LoadScript(data)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if len(s.steps) != 4 {
		t.Fatalf("got %d steps, want 4", len(s.steps))
	}
	if s.steps[0].action != "click" || s.steps[0].x != 50 {
		t.Errorf("step 0 = %+v", s.steps[0])
	}
	if s.steps[1].text != "Hi" {
		t.Errorf("step 1 text = %q", s.steps[1].text)
	}
	if s.steps[2].ms != 300 {
		t.Errorf("step 2 ms = %d", s.steps[2].ms)
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"invalid json", `{"steps": [`, "invalid JSON"},
		{"missing steps", `{"actions": []}`, "steps"},
		{"empty steps", `{"steps": []}`, "no steps"},
		{"step without action", `{"steps": [{"x": 1}]}`, "no action"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.in))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestScriptRunnerAnnotationFlow(t *testing.T) {
	f := newFixture()
	runner := NewScriptRunner(f.tool, f.overlay)

	script, err := LoadScript([]byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "type", "text": "Hi"},
		{"action": "click", "x": 300, "y": 300}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}

	if err := runner.Run(script); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if f.tool.Mode() != ModeSelect {
		t.Errorf("mode = %v, want %v", f.tool.Mode(), ModeSelect)
	}
	if n := len(f.canvas.Items()); n != 1 {
		t.Fatalf("canvas has %d items, want 1", n)
	}
	e := f.canvas.Items()[0].(*TextEntity)
	if e.Content != "Hi" || !e.Selected {
		t.Errorf("entity content=%q selected=%v, want Hi/true", e.Content, e.Selected)
	}
}

func TestScriptRunnerDoubleClickEditsSelected(t *testing.T) {
	f := newFixture()
	f.selection.accept = true
	e := textAt(100, 100, "note", true)
	f.canvas.AddEntity(e)
	runner := NewScriptRunner(f.tool, f.overlay)

	script, err := LoadScript([]byte(`{"steps": [
		{"action": "click", "x": 110, "y": 105},
		{"action": "doubleclick", "x": 110, "y": 105}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if err := runner.Run(script); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if f.tool.Mode() != ModeTextEdit {
		t.Errorf("mode = %v, want %v", f.tool.Mode(), ModeTextEdit)
	}
	bound, _ := f.tool.Editing()
	if bound != e {
		t.Error("double-click did not bind the selected entity")
	}
}

func TestScriptRunnerConsecutiveClicksAreNotDoubles(t *testing.T) {
	f := newFixture()
	runner := NewScriptRunner(f.tool, f.overlay)

	// Two separate clicks at the same point: the step gap keeps them apart,
	// so the second click must not re-enter editing via the double path.
	script, err := LoadScript([]byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "click", "x": 300, "y": 300}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if err := runner.Run(script); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Empty entity created by the first click is pruned by the second.
	if n := len(f.canvas.Items()); n != 0 {
		t.Errorf("canvas has %d items, want 0", n)
	}
	if f.tool.Mode() != ModeNone {
		t.Errorf("mode = %v, want %v", f.tool.Mode(), ModeNone)
	}
}

func TestScriptRunnerDeactivate(t *testing.T) {
	f := newFixture()
	runner := NewScriptRunner(f.tool, f.overlay)

	script, err := LoadScript([]byte(`{"steps": [
		{"action": "click", "x": 50, "y": 50},
		{"action": "deactivate"}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if err := runner.Run(script); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if n := len(f.canvas.Items()); n != 0 {
		t.Errorf("canvas has %d items after deactivate, want 0", n)
	}
	if f.tool.Mode() != ModeNone {
		t.Errorf("mode = %v, want %v", f.tool.Mode(), ModeNone)
	}
}

func TestScriptRunnerUnknownAction(t *testing.T) {
	f := newFixture()
	runner := NewScriptRunner(f.tool, f.overlay)

	script, err := LoadScript([]byte(`{"steps": [{"action": "explode"}]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if err := runner.Run(script); err == nil {
		t.Error("expected an error for an unknown action")
	}
}

func TestScriptRunnerUnknownKey(t *testing.T) {
	f := newFixture()
	runner := NewScriptRunner(f.tool, f.overlay)

	script, err := LoadScript([]byte(`{"steps": [{"action": "key", "key": "banana"}]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if err := runner.Run(script); err == nil || !strings.Contains(err.Error(), "banana") {
		t.Errorf("err = %v, want mention of the unknown key", err)
	}
}
