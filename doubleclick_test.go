package quill

import (
	"testing"
	"time"
)

func downAt(t time.Time) PointerEvent {
	return PointerEvent{Time: t, Button: MouseButtonLeft}
}

func TestDoubleClickClassification(t *testing.T) {
	base := time.Unix(1000, 0)

	tests := []struct {
		name string
		gap  time.Duration
		want bool
	}{
		{"instant", 0, true},
		{"fast", 100 * time.Millisecond, true},
		{"just under threshold", DoubleClickThreshold - time.Millisecond, true},
		{"exactly threshold", DoubleClickThreshold, false},
		{"slow", time.Second, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d DoubleClickDetector
			d.Classify(downAt(base))
			if got := d.Classify(downAt(base.Add(tt.gap))); got != tt.want {
				t.Errorf("second click after %v classified %v, want %v", tt.gap, got, tt.want)
			}
		})
	}
}

func TestFirstClickNeverDouble(t *testing.T) {
	var d DoubleClickDetector
	if d.Classify(downAt(time.Unix(1000, 0))) {
		t.Error("very first click classified as double")
	}
}

func TestLastDownUpdatedUnconditionally(t *testing.T) {
	var d DoubleClickDetector
	base := time.Unix(1000, 0)

	d.Classify(downAt(base))
	// Second click far outside the threshold: not a double, but it still
	// becomes the new reference point.
	if d.Classify(downAt(base.Add(time.Second))) {
		t.Fatal("slow second click classified as double")
	}
	if !d.Classify(downAt(base.Add(time.Second + 100*time.Millisecond))) {
		t.Error("third click 100ms after the second not classified as double")
	}
}

func TestTripleClickChain(t *testing.T) {
	// Three rapid clicks: the second and third both classify as double,
	// since the reference updates on every down.
	var d DoubleClickDetector
	base := time.Unix(1000, 0)

	d.Classify(downAt(base))
	if !d.Classify(downAt(base.Add(100 * time.Millisecond))) {
		t.Error("second rapid click not double")
	}
	if !d.Classify(downAt(base.Add(200 * time.Millisecond))) {
		t.Error("third rapid click not double")
	}
}

func TestDetectorReset(t *testing.T) {
	var d DoubleClickDetector
	base := time.Unix(1000, 0)

	d.Classify(downAt(base))
	d.Reset()
	if d.Classify(downAt(base.Add(50 * time.Millisecond))) {
		t.Error("click after Reset classified as double")
	}
}

func TestDetectorsAreIndependent(t *testing.T) {
	var a, b DoubleClickDetector
	base := time.Unix(1000, 0)

	a.Classify(downAt(base))
	if b.Classify(downAt(base.Add(50 * time.Millisecond))) {
		t.Error("detector b saw detector a's click")
	}
}
