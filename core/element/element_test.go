package element

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrs(t *testing.T) {
	a := Attrs{}
	a.SetAttr("Width", "10")
	v, ok := a.Attr("width")
	assert.True(t, ok)
	assert.Equal(t, "10", v)

	a.RemoveAttr("WIDTH")
	_, ok = a.Attr("width")
	assert.False(t, ok)
}

func TestSetStyle(t *testing.T) {
	a := Attrs{AttrStyle: "color: red;max-width:100%"}

	SetStyle(a, "max-width", "none")
	SetStyle(a, "vertical-align", "-10px")

	assert.Equal(t, "color: red; max-width: none; vertical-align: -10px;", a[AttrStyle])
	v, ok := Style(a, "Vertical-Align")
	assert.True(t, ok)
	assert.Equal(t, "-10px", v)
}

func TestSetStyle_Empty(t *testing.T) {
	a := Attrs{}
	SetStyle(a, "max-width", "none")
	assert.Equal(t, "max-width: none;", a[AttrStyle])

	_, ok := Style(a, "vertical-align")
	assert.False(t, ok)
}

func TestCopyMetricsAttrs(t *testing.T) {
	src := Attrs{
		AttrSrc:    "data:image/png;base64,AAAA",
		AttrWidth:  "120",
		AttrHeight: "40",
		AttrStyle:  "vertical-align: -10px;",
		AttrMathML: "«math»",
		AttrAlt:    "x squared",
		"class":    "Wirisformula",
		"id":       "f1",
	}
	dst := Attrs{"id": "f2", AttrRole: "math"}

	CopyMetricsAttrs(dst, src)

	assert.Equal(t, Attrs{
		AttrSrc:    "data:image/png;base64,AAAA",
		AttrWidth:  "120",
		AttrHeight: "40",
		AttrStyle:  "vertical-align: -10px;",
		AttrMathML: "«math»",
		AttrAlt:    "x squared",
		AttrRole:   "math",
		"id":       "f2",
	}, dst)
}

const page = `<p>Energy <img class="Wirisformula x" src="a.png" width="5" style="color: red">` +
	` and <img src="photo.jpg"></p>`

func TestFindFormulaImages(t *testing.T) {
	doc, err := ParseHTML(strings.NewReader(page))
	require.NoError(t, err)

	imgs := FindFormulaImages(doc, DefaultFormulaClass)
	require.Len(t, imgs, 1)
	src, _ := imgs[0].Attr("SRC")
	assert.Equal(t, "a.png", src)

	assert.Len(t, FindFormulaImages(doc, ""), 2)
}

func TestHTMLImage_Mutations(t *testing.T) {
	doc, err := ParseHTML(strings.NewReader(page))
	require.NoError(t, err)
	img := FindFormulaImages(doc, DefaultFormulaClass)[0]

	img.RemoveAttr(AttrWidth)
	img.SetAttr(AttrHeight, "40")
	SetStyle(img, "vertical-align", "-10px")

	_, ok := img.Attr(AttrWidth)
	assert.False(t, ok)

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, doc))
	out := buf.String()
	assert.Contains(t, out, `height="40"`)
	assert.Contains(t, out, `style="color: red; vertical-align: -10px;"`)
	assert.NotContains(t, out, `width="5"`)
	assert.Contains(t, out, `<img src="photo.jpg"/>`)
}
