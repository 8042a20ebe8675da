// Package element is the attribute store the sizer writes formula geometry
// into. Attrs backs it with a map, HTMLImage with an x/net/html node.
package element

import "strings"

// Element is an image whose attributes can be read and written.
type Element interface {
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
}

// Attribute names read or written on formula images.
const (
	AttrSrc    = "src"
	AttrWidth  = "width"
	AttrHeight = "height"
	AttrStyle  = "style"
	AttrAlt    = "alt"
	AttrRole   = "role"

	AttrMathML       = "data-mathml"
	AttrCustomEditor = "data-custom-editor"
)

// metricsAttrs is copied verbatim by CopyMetricsAttrs.
var metricsAttrs = []string{
	AttrMathML, AttrCustomEditor, AttrAlt, AttrHeight, AttrWidth, AttrStyle, AttrSrc, AttrRole,
}

// CopyMetricsAttrs copies the formula attributes present on src onto dst.
// Attributes absent on src are left untouched on dst. Values are not parsed.
func CopyMetricsAttrs(dst, src Element) {
	for _, name := range metricsAttrs {
		if v, ok := src.Attr(name); ok {
			dst.SetAttr(name, v)
		}
	}
}

// Attrs is an in-memory Element.
type Attrs map[string]string

func (a Attrs) Attr(name string) (string, bool) {
	v, ok := a[strings.ToLower(name)]
	return v, ok
}

func (a Attrs) SetAttr(name, value string) { a[strings.ToLower(name)] = value }

func (a Attrs) RemoveAttr(name string) { delete(a, strings.ToLower(name)) }

// ─── style ──────────────────────────────────────────────────────────────────

type declaration struct {
	prop  string
	value string
}

func parseStyle(s string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{prop: prop, value: strings.TrimSpace(value)})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.prop + ": " + d.value + ";"
	}
	return strings.Join(parts, " ")
}

// Style returns the value of one CSS property from el's style attribute.
func Style(el Element, prop string) (string, bool) {
	s, _ := el.Attr(AttrStyle)
	prop = strings.ToLower(prop)
	for _, d := range parseStyle(s) {
		if d.prop == prop {
			return d.value, true
		}
	}
	return "", false
}

// SetStyle sets one CSS property in el's style attribute, keeping the other
// declarations in place.
func SetStyle(el Element, prop, value string) {
	s, _ := el.Attr(AttrStyle)
	decls := parseStyle(s)
	prop = strings.ToLower(prop)
	for i := range decls {
		if decls[i].prop == prop {
			decls[i].value = value
			el.SetAttr(AttrStyle, formatStyle(decls))
			return
		}
	}
	el.SetAttr(AttrStyle, formatStyle(append(decls, declaration{prop: prop, value: value})))
}
