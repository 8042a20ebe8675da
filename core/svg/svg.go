// Package svg reads formula metrics from the attributes the rendering
// service writes on its SVG output.
//
// The markup is not parsed as XML. Each attribute is located by the first
// occurrence of its name in the text, which matches the service's fixed
// output where the root <svg> element carries them first.
package svg

import (
	"strings"

	"github.com/ankit-chaubey/formula-metrics/core"
)

// Attribute names written by the rendering service.
const (
	AttrHeight   = "height"
	AttrWidth    = "width"
	AttrBaseline = "wrs:baseline"
)

// Metrics extracts width, height and baseline from svg. A missing or
// non-numeric width yields RawMetrics without metrics. SVG output carries
// no DPI.
func Metrics(svg string) core.RawMetrics {
	var m core.RawMetrics
	width, ok := Attr(svg, AttrWidth)
	if !ok {
		return m
	}
	m.Width = core.ParseNumber(width)
	if !m.Width.OK {
		return core.RawMetrics{}
	}
	if height, ok := Attr(svg, AttrHeight); ok {
		m.Height = core.ParseNumber(height)
	}
	if baseline, ok := Attr(svg, AttrBaseline); ok {
		m.Baseline = core.ParseNumber(baseline)
	}
	return m
}

// Attr returns the quoted value following the first `name="` in svg.
func Attr(svg, name string) (string, bool) {
	marker := name + `="`
	i := strings.Index(svg, marker)
	if i < 0 {
		return "", false
	}
	rest := svg[i+len(marker):]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}
