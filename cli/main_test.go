package main

import (
	"bytes"
	"encoding/json"
	"image"
	stdpng "image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankit-chaubey/formula-metrics/core"
	"github.com/ankit-chaubey/formula-metrics/core/png"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0644))
	return p
}

func grayPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, stdpng.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestStripVerbose(t *testing.T) {
	args, v := stripVerbose([]string{"-json", "-v", "a.svg"})
	assert.True(t, v)
	assert.Equal(t, []string{"-json", "a.svg"}, args)

	_, v = stripVerbose([]string{"a.svg"})
	assert.False(t, v)
}

func TestSize_JSON(t *testing.T) {
	dir := t.TempDir()
	stamped, err := png.Stamp(grayPNG(t, 200, 60), core.RawMetrics{Baseline: core.Some(50), DPI: core.Some(192)})
	require.NoError(t, err)

	paths := []string{
		writeFile(t, dir, "f.svg", []byte(`<svg width="80" height="20" wrs:baseline="15"></svg>`)),
		writeFile(t, dir, "f.png", stamped),
		writeFile(t, dir, "f.url", []byte("https://host/showimage?cw=10&ch=4&cb=3\n")),
		writeFile(t, dir, "plain.svg", []byte(`<svg height="20"></svg>`)),
		filepath.Join(dir, "missing.png"),
	}

	var out bytes.Buffer
	require.NoError(t, runSize(append([]string{"-json"}, paths...), &out))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, len(paths))

	assert.Equal(t, true, got[0]["found"])
	assert.Equal(t, 80.0, got[0]["width"])
	assert.Equal(t, "-5px", got[0]["verticalAlign"])

	assert.Equal(t, true, got[1]["found"])
	assert.InDelta(t, 100.0, got[1]["width"], 1e-9)
	assert.InDelta(t, 30.0, got[1]["height"], 1e-9)

	assert.Equal(t, true, got[2]["found"])
	assert.Equal(t, 10.0, got[2]["width"])

	assert.Equal(t, false, got[3]["found"])
	assert.NotContains(t, got[3], "error")

	assert.Equal(t, false, got[4]["found"])
	assert.Contains(t, got[4], "error")
}

func TestSize_NoFiles(t *testing.T) {
	assert.Error(t, runSize(nil, &bytes.Buffer{}))
}

func TestResize(t *testing.T) {
	dir := t.TempDir()
	page := `<p><img class="Wirisformula" width="900" src="https://host/showimage?cw=30&amp;ch=12&amp;cb=9"><img src="photo.jpg" width="5"></p>`
	in := writeFile(t, dir, "page.html", []byte(page))
	outPath := filepath.Join(dir, "out.html")

	require.NoError(t, runResize([]string{"-in", in, "-out", outPath}, &bytes.Buffer{}))

	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(got), `width="30"`)
	assert.Contains(t, string(got), `height="12"`)
	assert.Contains(t, string(got), `vertical-align: -3px;`)
	assert.Contains(t, string(got), `<img src="photo.jpg" width="5"/>`)
}

func TestStampThenInspect(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "a.png", grayPNG(t, 40, 20))
	outPath := filepath.Join(dir, "b.png")

	var out bytes.Buffer
	require.NoError(t, runStamp([]string{"-in", in, "-out", outPath, "-baseline", "14", "-dpi", "96"}, &out))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	m, err := png.Metrics(data)
	require.NoError(t, err)
	assert.Equal(t, core.Some(14), m.Baseline)
	assert.Equal(t, core.Some(96), m.DPI)

	out.Reset()
	require.NoError(t, runInspect([]string{outPath}, &out))
	assert.Contains(t, out.String(), "baSE")
	assert.Contains(t, out.String(), "width=40 height=20 baseline=14 dpi=96")
	assert.Contains(t, out.String(), "vertical-align -6px")
}

func TestInspect_NotPNG(t *testing.T) {
	p := writeFile(t, t.TempDir(), "x.png", []byte("not a png"))
	assert.ErrorIs(t, runInspect([]string{p}, &bytes.Buffer{}), png.ErrNotPNG)
}
