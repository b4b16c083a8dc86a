package timeline

import (
	"math"
	"testing"
)

func fixedSurface(left, width float64) SurfaceProvider {
	return SurfaceFunc(func() Surface { return Surface{Left: left, Width: width} })
}

func TestPixelToTime(t *testing.T) {
	m := NewMapper(fixedSurface(0, 1000), func() float64 { return 120 })

	tests := []struct {
		px   float64
		want float64
	}{
		{0, 0},
		{250, 30},
		{500, 60},
		{1000, 120},
		{-50, 0},    // left of surface clamps to 0
		{1500, 120}, // right of surface clamps to duration
	}
	for _, tt := range tests {
		if got := m.PixelToTime(tt.px); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("PixelToTime(%v) = %v, want %v", tt.px, got, tt.want)
		}
	}
}

func TestPixelToTimeWithSurfaceOffset(t *testing.T) {
	m := NewMapper(fixedSurface(200, 800), func() float64 { return 60 })
	if got := m.PixelToTime(600); math.Abs(got-30) > 1e-9 {
		t.Errorf("PixelToTime(600) = %v, want 30", got)
	}
}

func TestTimeToPixel(t *testing.T) {
	m := NewMapper(fixedSurface(0, 1000), func() float64 { return 120 })
	if got := m.TimeToPixel(30); math.Abs(got-250) > 1e-9 {
		t.Errorf("TimeToPixel(30) = %v, want 250", got)
	}
}

func TestDegenerateDuration(t *testing.T) {
	for _, d := range []float64{0, -5} {
		dur := d
		m := NewMapper(fixedSurface(0, 1000), func() float64 { return dur })
		if m.Valid() {
			t.Errorf("Valid() = true with duration %v", dur)
		}
		if got := m.PixelToTime(500); got != 0 {
			t.Errorf("PixelToTime(500) = %v with duration %v, want 0", got, dur)
		}
		if got := m.TimeToPixel(10); got != 0 {
			t.Errorf("TimeToPixel(10) = %v with duration %v, want 0", got, dur)
		}
	}
}

func TestDegenerateSurface(t *testing.T) {
	m := NewMapper(fixedSurface(0, 0), func() float64 { return 60 })
	if m.Valid() {
		t.Error("Valid() = true with zero-width surface")
	}
	if got := m.PixelToTime(10); got != 0 {
		t.Errorf("PixelToTime(10) = %v, want 0", got)
	}
}

func TestProviderQueriedPerConversion(t *testing.T) {
	width := 1000.0
	m := NewMapper(SurfaceFunc(func() Surface { return Surface{Width: width} }), func() float64 { return 100 })

	if got := m.PixelToTime(500); math.Abs(got-50) > 1e-9 {
		t.Fatalf("PixelToTime(500) = %v, want 50", got)
	}

	// Simulate a reflow between events; the mapper must pick it up.
	width = 500
	if got := m.PixelToTime(500); math.Abs(got-100) > 1e-9 {
		t.Fatalf("PixelToTime(500) after reflow = %v, want 100", got)
	}
}

func TestClamp(t *testing.T) {
	m := NewMapper(fixedSurface(0, 1000), func() float64 { return 100 })
	if got := m.Clamp(-1); got != 0 {
		t.Errorf("Clamp(-1) = %v, want 0", got)
	}
	if got := m.Clamp(150); got != 100 {
		t.Errorf("Clamp(150) = %v, want 100", got)
	}
	if got := m.Clamp(42); got != 42 {
		t.Errorf("Clamp(42) = %v, want 42", got)
	}
}
