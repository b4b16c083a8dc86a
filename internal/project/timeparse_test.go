package project

import (
	"math"
	"testing"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		fps  float64
		want float64
	}{
		{"1:30", 30, 90},
		{"0:05", 30, 5},
		{"1:02:05", 30, 3725},
		{"150", 30, 5},   // frames at 30fps
		{"150", 25, 6},   // frames at 25fps
		{"150", 0, 5},    // fps fallback
		{" 1:30 ", 30, 90},
	}
	for _, tt := range tests {
		got, err := ParseTime(tt.in, tt.fps)
		if err != nil {
			t.Errorf("ParseTime(%q) error: %v", tt.in, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ParseTime(%q, %v) = %v, want %v", tt.in, tt.fps, got, tt.want)
		}
	}
}

func TestParseTimeInvalid(t *testing.T) {
	for _, in := range []string{"", "a:b", "1:2:3:4", "-5", "1:-30", "abc"} {
		if _, err := ParseTime(in, 30); err == nil {
			t.Errorf("ParseTime(%q) accepted invalid input", in)
		}
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{90, "1:30"},
		{89.6, "1:30"}, // rounds to whole seconds
		{3725, "1:02:05"},
		{-3, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.in); got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, sec := range []float64{0, 5, 59, 60, 90, 3599, 3600, 3725} {
		got, err := ParseTime(FormatTime(sec), 30)
		if err != nil {
			t.Fatalf("round trip %v: %v", sec, err)
		}
		if got != sec {
			t.Errorf("round trip %v → %v", sec, got)
		}
	}
}
