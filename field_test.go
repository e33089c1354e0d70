package quill

import "testing"

func TestFieldSetValueDoesNotFireListeners(t *testing.T) {
	f := NewTextField(nil)
	fired := 0
	f.OnInput(func(string) { fired++ })

	f.SetValue("hello")

	if fired != 0 {
		t.Errorf("SetValue fired %d listeners, want 0", fired)
	}
	if f.Value() != "hello" {
		t.Errorf("Value() = %q, want %q", f.Value(), "hello")
	}
	if f.caret != len("hello") {
		t.Errorf("caret = %d, want end of value", f.caret)
	}
}

func TestFieldTypeStringFiresListeners(t *testing.T) {
	f := NewTextField(nil)
	var got []string
	f.OnInput(func(v string) { got = append(got, v) })

	f.TypeString("Hi")
	f.TypeString("!")

	if f.Value() != "Hi!" {
		t.Errorf("Value() = %q, want %q", f.Value(), "Hi!")
	}
	if len(got) != 2 || got[0] != "Hi" || got[1] != "Hi!" {
		t.Errorf("listener saw %v, want [Hi Hi!]", got)
	}
}

func TestFieldHandleRemoveIsIdempotent(t *testing.T) {
	f := NewTextField(nil)
	fired := 0
	h := f.OnInput(func(string) { fired++ })
	keep := 0
	f.OnInput(func(string) { keep++ })

	h.Remove()
	h.Remove() // second remove must not disturb other listeners

	f.TypeString("x")
	if fired != 0 {
		t.Errorf("removed listener fired %d times", fired)
	}
	if keep != 1 {
		t.Errorf("surviving listener fired %d times, want 1", keep)
	}
}

func TestFieldInsertAtCaret(t *testing.T) {
	f := NewTextField(nil)
	f.SetValue("ac")
	f.caret = 1

	f.insert("b")

	if f.Value() != "abc" {
		t.Errorf("Value() = %q, want %q", f.Value(), "abc")
	}
	if f.caret != 2 {
		t.Errorf("caret = %d, want 2", f.caret)
	}
}

func TestFieldBackspaceRemovesGraphemeCluster(t *testing.T) {
	f := NewTextField(nil)
	f.SetValue("aé") // "a" + "é" as e + combining acute

	f.backspace()

	if f.Value() != "a" {
		t.Errorf("Value() = %q, want %q (whole cluster removed)", f.Value(), "a")
	}

	f.backspace()
	if f.Value() != "" {
		t.Errorf("Value() = %q, want empty", f.Value())
	}

	// Backspace at the start is a no-op.
	f.backspace()
	if f.Value() != "" || f.caret != 0 {
		t.Error("backspace on empty field changed state")
	}
}

func TestFieldDeleteForward(t *testing.T) {
	f := NewTextField(nil)
	f.SetValue("ab")
	f.caret = 0

	f.deleteForward()

	if f.Value() != "b" || f.caret != 0 {
		t.Errorf("Value()=%q caret=%d, want b/0", f.Value(), f.caret)
	}

	f.caret = 1
	f.deleteForward() // at end: no-op
	if f.Value() != "b" {
		t.Errorf("delete at end changed value to %q", f.Value())
	}
}

func TestGraphemeBoundaries(t *testing.T) {
	// "a", then "e" + combining acute (a 3-byte cluster), then "b".
	s := "aéb"

	tests := []struct {
		name string
		fn   func(string, int) int
		pos  int
		want int
	}{
		{"next from start", nextBoundary, 0, 1},
		{"next over cluster", nextBoundary, 1, 4},
		{"next at end", nextBoundary, 5, 5},
		{"prev from end", prevBoundary, 5, 4},
		{"prev over cluster", prevBoundary, 4, 1},
		{"prev at start", prevBoundary, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(s, tt.pos); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFieldSetChannelUpdatesFillColor(t *testing.T) {
	f := NewTextField(nil)

	f.SetChannel("fill", "#f00")
	if f.fillColor.R < 0.99 || f.fillColor.G > 0.01 {
		t.Errorf("fillColor = %+v after fill=#f00", f.fillColor)
	}

	// "none" leaves the previous draw color in place.
	f.SetChannel("fill", "none")
	if f.fillColor.R < 0.99 {
		t.Errorf("fillColor reset by none: %+v", f.fillColor)
	}

	// Unrelated channels are retained but never touch the draw color.
	f.SetChannel("stroke", "#00f")
	if f.Channel("stroke") != "#00f" {
		t.Errorf("stroke channel = %q", f.Channel("stroke"))
	}
	if f.fillColor.B > 0.01 {
		t.Errorf("stroke channel changed fill color: %+v", f.fillColor)
	}
}

func TestFieldCaretPosition(t *testing.T) {
	f := NewTextField(nil) // nil face: fixed advance of defaultFontSize*0.6
	f.SetValue("ab\ncd")

	f.caret = 4 // after "c" on the second line
	x, y := f.caretPos()
	if x != defaultFontSize*0.6 {
		t.Errorf("caret x = %v, want one advance", x)
	}
	if y != f.lineHeight() {
		t.Errorf("caret y = %v, want one line height", y)
	}

	f.caret = 0
	x, y = f.caretPos()
	if x != 0 || y != 0 {
		t.Errorf("caret at origin = (%v, %v), want (0, 0)", x, y)
	}
}

func TestFieldBlinkPulses(t *testing.T) {
	f := NewTextField(nil)
	if f.caretAlpha != 1 {
		t.Fatalf("initial caret alpha = %v, want 1", f.caretAlpha)
	}
	// One full fade-out phase.
	for i := 0; i < 31; i++ {
		f.updateBlink(1.0 / 60)
	}
	if f.caretAlpha > 0.05 {
		t.Errorf("caret alpha after fade-out = %v, want ~0", f.caretAlpha)
	}
	// And back in.
	for i := 0; i < 31; i++ {
		f.updateBlink(1.0 / 60)
	}
	if f.caretAlpha < 0.95 {
		t.Errorf("caret alpha after fade-in = %v, want ~1", f.caretAlpha)
	}
}
