package project

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTime parses a time mark into seconds. Accepted forms, matching what
// the downstream pipeline reads:
//
//	"1:30"     minutes:seconds
//	"1:02:05"  hours:minutes:seconds
//	"150"      frame count at the given rate
//
// A non-positive fps falls back to DefaultFPS.
func ParseTime(s string, fps float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty time mark")
	}
	if fps <= 0 {
		fps = DefaultFPS
	}

	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		switch len(parts) {
		case 2:
			min, err1 := strconv.Atoi(parts[0])
			sec, err2 := strconv.Atoi(parts[1])
			if err1 != nil || err2 != nil || min < 0 || sec < 0 {
				return 0, fmt.Errorf("invalid time mark %q", s)
			}
			return float64(min*60 + sec), nil
		case 3:
			h, err1 := strconv.Atoi(parts[0])
			min, err2 := strconv.Atoi(parts[1])
			sec, err3 := strconv.Atoi(parts[2])
			if err1 != nil || err2 != nil || err3 != nil || h < 0 || min < 0 || sec < 0 {
				return 0, fmt.Errorf("invalid time mark %q", s)
			}
			return float64(h*3600 + min*60 + sec), nil
		default:
			return 0, fmt.Errorf("invalid time mark %q", s)
		}
	}

	frames, err := strconv.ParseFloat(s, 64)
	if err != nil || frames < 0 {
		return 0, fmt.Errorf("invalid time mark %q", s)
	}
	return frames / fps, nil
}

// FormatTime renders seconds as "m:ss", or "h:mm:ss" from one hour up,
// rounding to whole seconds.
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds + 0.5)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
