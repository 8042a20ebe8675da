// Package sizer turns a rendering-service payload into formula geometry
// and applies it to an image element.
//
// A payload is measured in four steps: the parser is chosen once from the
// response kind and the configured image format and save mode, the payload
// is parsed into raw metrics, the metrics are normalized to 96 DPI, and
// width, height and vertical-align are written to the element together.
// Payloads without metrics, or that fail to parse, leave the element as it
// was.
package sizer

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/ankit-chaubey/formula-metrics/core"
	"github.com/ankit-chaubey/formula-metrics/core/b64"
	"github.com/ankit-chaubey/formula-metrics/core/config"
	"github.com/ankit-chaubey/formula-metrics/core/element"
	"github.com/ankit-chaubey/formula-metrics/core/legacy"
	"github.com/ankit-chaubey/formula-metrics/core/logging"
	"github.com/ankit-chaubey/formula-metrics/core/png"
	"github.com/ankit-chaubey/formula-metrics/core/svg"
)

// Source is the parser a payload is routed to.
type Source int

const (
	SourceLegacyURL Source = iota // query string of an image URL
	SourceSVGBase64               // base64-encoded SVG markup
	SourceSVGText                 // SVG markup as text
	SourcePNGBase64               // base64-encoded PNG, only its prefix is decoded
)

func (s Source) String() string {
	switch s {
	case SourceLegacyURL:
		return "legacy-url"
	case SourceSVGBase64:
		return "svg-base64"
	case SourceSVGText:
		return "svg-text"
	case SourcePNGBase64:
		return "png-base64"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// SelectSource picks the parser for a payload. jsonLike is true when the
// payload is image data rather than a plain image URL.
func SelectSource(jsonLike bool, s config.Settings) Source {
	switch {
	case !jsonLike:
		return SourceLegacyURL
	case s.IsSVG() && s.IsBase64():
		return SourceSVGBase64
	case s.IsSVG():
		return SourceSVGText
	default:
		return SourcePNGBase64
	}
}

// State is a stage of one measurement.
type State int

const (
	Idle State = iota
	SelectingFormat
	Parsing
	Normalizing
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case SelectingFormat:
		return "selecting-format"
	case Parsing:
		return "parsing"
	case Normalizing:
		return "normalizing"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result describes one measurement. State is the last stage reached: Done
// on success, otherwise the stage that failed or found no metrics.
type Result struct {
	Source   Source
	State    State
	Raw      core.RawMetrics
	Geometry core.Geometry
}

// Sizer measures payloads under a fixed configuration. The zero Sizer uses
// config.Default.
type Sizer struct {
	Settings config.Settings
}

// New returns a Sizer for s.
func New(s config.Settings) *Sizer { return &Sizer{Settings: s} }

func (z *Sizer) settings() config.Settings {
	if z.Settings == (config.Settings{}) {
		return config.Default()
	}
	return z.Settings
}

// Measure selects the parser for payload and measures it.
func (z *Sizer) Measure(payload string, jsonLike bool) (Result, error) {
	return z.MeasureSource(payload, SelectSource(jsonLike, z.settings()))
}

// MeasureSource measures payload with the parser for src. It returns
// core.ErrNoMetrics when the payload carries no width.
func (z *Sizer) MeasureSource(payload string, src Source) (Result, error) {
	r := Result{Source: src, State: Parsing}

	raw, err := parse(payload, src)
	if err != nil {
		return r, fmt.Errorf("%s payload: %w", src, err)
	}
	r.Raw = raw

	r.State = Normalizing
	g, ok := core.Normalize(raw)
	if !ok {
		return r, core.ErrNoMetrics
	}
	r.Geometry = g
	r.State = Done
	return r, nil
}

func parse(payload string, src Source) (core.RawMetrics, error) {
	switch src {
	case SourceLegacyURL:
		return legacy.Metrics(payload), nil
	case SourceSVGBase64:
		b, err := b64.Decode(payload, 0)
		if err != nil {
			return core.RawMetrics{}, err
		}
		return svg.Metrics(string(b)), nil
	case SourceSVGText:
		return svg.Metrics(payload), nil
	case SourcePNGBase64:
		b, err := b64.Decode(payload, b64.PNGPrefixLen)
		if err != nil {
			return core.RawMetrics{}, err
		}
		return png.Metrics(b)
	default:
		return core.RawMetrics{}, fmt.Errorf("unknown source %d", int(src))
	}
}

// Apply measures payload and writes width, height and vertical-align to el.
// It reports whether anything was written. Nothing is written when the
// payload has no metrics or fails to parse.
func (z *Sizer) Apply(el element.Element, payload string, jsonLike bool) bool {
	return z.applySource(el, payload, SelectSource(jsonLike, z.settings()))
}

func (z *Sizer) applySource(el element.Element, payload string, src Source) bool {
	log := logging.Logger()

	r, err := z.MeasureSource(payload, src)
	switch {
	case errors.Is(err, core.ErrNoMetrics):
		log.Debug("formula image carries no metrics", slog.String("source", src.String()))
		return false
	case err != nil:
		log.Warn("formula image metrics unreadable",
			slog.String("source", src.String()),
			slog.String("state", r.State.String()),
			slog.Any("error", err))
		return false
	}

	g := r.Geometry
	el.SetAttr(element.AttrWidth, core.FormatNumber(g.Width))
	el.SetAttr(element.AttrHeight, core.FormatNumber(g.Height))
	if va, ok := g.VerticalAlign(); ok {
		element.SetStyle(el, "vertical-align", va)
	}
	log.Debug("formula image sized",
		slog.String("source", src.String()),
		slog.Float64("width", g.Width),
		slog.Float64("height", g.Height))
	return true
}

// FixAfterResize restores a formula image's intrinsic size after an editor
// resized it. The explicit size and style are dropped, max-width is pinned
// to none, and the metrics embedded in the image's own src are applied
// again. It reports whether geometry was applied.
func (z *Sizer) FixAfterResize(el element.Element) bool {
	el.RemoveAttr(element.AttrStyle)
	el.RemoveAttr(element.AttrWidth)
	el.RemoveAttr(element.AttrHeight)
	element.SetStyle(el, "max-width", "none")

	src, _ := el.Attr(element.AttrSrc)
	if !strings.Contains(src, "data:image") {
		return z.applySource(el, src, SourceLegacyURL)
	}

	if z.settings().IsSVG() {
		if len(src) < len(core.SVGDataURIPrefix) {
			return false
		}
		text, err := url.PathUnescape(src[len(core.SVGDataURIPrefix):])
		if err != nil {
			logging.Logger().Warn("formula image src is not percent-encoded",
				slog.Any("error", fmt.Errorf("%w: %v", core.ErrInvalidEncoding, err)))
			return false
		}
		return z.applySource(el, text, SourceSVGText)
	}

	if len(src) < len(core.PNGDataURIPrefix) {
		return false
	}
	return z.applySource(el, src[len(core.PNGDataURIPrefix):], SourcePNGBase64)
}
