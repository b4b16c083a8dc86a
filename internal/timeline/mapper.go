// Package timeline converts between the media time domain and the pixel
// domain of the rendered timeline surface.
package timeline

// Surface is the measured geometry of the timeline surface, in pixels.
// Left is the surface's offset within the event coordinate space; Width is
// the rendered width of the track area.
type Surface struct {
	Left  float64
	Width float64
}

// SurfaceProvider reports the current surface geometry. The surface can
// reflow between input events, so the mapper queries the provider on every
// conversion instead of caching a rectangle.
type SurfaceProvider interface {
	Surface() Surface
}

// SurfaceFunc adapts a function to the SurfaceProvider interface.
type SurfaceFunc func() Surface

func (f SurfaceFunc) Surface() Surface { return f() }

// Mapper maps media times in [0, duration] onto surface pixels and back.
type Mapper struct {
	provider SurfaceProvider
	duration func() float64
}

// NewMapper creates a mapper over the given geometry provider. The duration
// callback is polled per conversion so the mapper tracks media changes.
func NewMapper(provider SurfaceProvider, duration func() float64) *Mapper {
	return &Mapper{provider: provider, duration: duration}
}

// Duration returns the current media duration in seconds.
func (m *Mapper) Duration() float64 {
	return m.duration()
}

// Valid reports whether conversions are meaningful. A non-positive duration
// or a degenerate surface suspends all mapping.
func (m *Mapper) Valid() bool {
	return m.duration() > 0 && m.provider.Surface().Width > 0
}

// TimeToPixel converts a media time to an x offset relative to the surface
// left edge. Returns 0 when the mapper is degenerate.
func (m *Mapper) TimeToPixel(t float64) float64 {
	d := m.duration()
	s := m.provider.Surface()
	if d <= 0 || s.Width <= 0 {
		return 0
	}
	return (t / d) * s.Width
}

// PixelToTime converts an absolute event x coordinate to a media time,
// clamped to [0, duration]. Returns 0 when the mapper is degenerate.
func (m *Mapper) PixelToTime(px float64) float64 {
	d := m.duration()
	s := m.provider.Surface()
	if d <= 0 || s.Width <= 0 {
		return 0
	}
	frac := (px - s.Left) / s.Width
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return frac * d
}

// Clamp constrains a time to [0, duration].
func (m *Mapper) Clamp(t float64) float64 {
	if t < 0 {
		return 0
	}
	if d := m.duration(); t > d {
		return d
	}
	return t
}
