// Package core defines the shared types, errors, and normalization rules
// for formula image metrics.
package core

import (
	"errors"
	"math"
	"strconv"
)

// Parse failure taxonomy. Callers test with errors.Is.
var (
	// ErrOutOfBounds reports a read past the end of the supplied bytes.
	ErrOutOfBounds = errors.New("read out of bounds")
	// ErrInvalidEncoding reports malformed base64 or percent-encoded input.
	ErrInvalidEncoding = errors.New("invalid encoding")
	// ErrNoMetrics is the expected outcome for images that carry no metrics.
	// It is never surfaced to an element; sizing is skipped instead.
	ErrNoMetrics = errors.New("no metrics found")
)

// ReferenceDPI is the display resolution all metrics are normalized to.
const ReferenceDPI = 96

// Value is an optional metric. The zero Value is absent.
type Value struct {
	V  float64
	OK bool
}

// Some returns a present Value holding v.
func Some(v float64) Value { return Value{V: v, OK: true} }

// String renders present values without a trailing ".0" and absent ones as "-".
func (v Value) String() string {
	if !v.OK {
		return "-"
	}
	return FormatNumber(v.V)
}

// RawMetrics holds whatever a format parser recovered from a payload.
type RawMetrics struct {
	Width    Value // pixel width (PNG IHDR, SVG width, legacy cw)
	Height   Value // pixel height (PNG IHDR, SVG height, legacy ch)
	Baseline Value // pixels from the bottom edge to the text baseline
	DPI      Value // source resolution (PNG pHYs, legacy dpi)
}

// HasMetrics reports whether m is usable. Width is the presence marker.
func (m RawMetrics) HasMetrics() bool { return m.Width.OK }

// Geometry is the final, 96-DPI-normalized size of a formula image.
type Geometry struct {
	Width  float64
	Height float64
	Offset Value // -(height - baseline); absent when no baseline was found
}

// VerticalAlign renders the CSS vertical-align value for g, e.g. "-10px".
// The literal leading "-" precedes the positive height-baseline difference.
// The second result is false when g has no baseline.
func (g Geometry) VerticalAlign() (string, bool) {
	if !g.Offset.OK {
		return "", false
	}
	return "-" + FormatNumber(-g.Offset.V) + "px", true
}

// Normalize converts raw metrics into display geometry. When a non-zero DPI
// is present, width, height and baseline are rescaled to ReferenceDPI. The
// second result is false when m carries no width.
func Normalize(m RawMetrics) (Geometry, bool) {
	if !m.HasMetrics() {
		return Geometry{}, false
	}
	width, height, baseline := m.Width.V, m.Height.V, m.Baseline.V
	if m.DPI.OK && m.DPI.V != 0 {
		scale := ReferenceDPI / m.DPI.V
		width *= scale
		height *= scale
		baseline *= scale
	}

	g := Geometry{Width: width, Height: height}
	if m.Baseline.OK {
		g.Offset = Some(-(height - baseline))
	}
	return g, true
}

// FormatNumber renders v the way attribute values are written: integers
// without a fraction, everything else with the shortest exact form.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseNumber parses an attribute or query value. Empty and non-numeric
// strings yield an absent Value.
func ParseNumber(s string) Value {
	if s == "" {
		return Value{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Some(v)
}
