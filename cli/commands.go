package main

import (
	"bytes"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ankit-chaubey/formula-metrics/core"
	"github.com/ankit-chaubey/formula-metrics/core/config"
	"github.com/ankit-chaubey/formula-metrics/core/element"
	"github.com/ankit-chaubey/formula-metrics/core/png"
	"github.com/ankit-chaubey/formula-metrics/core/sizer"
)

// settingsFlags registers -config, -format and -save-mode on fs.
func settingsFlags(fs *flag.FlagSet) func() (config.Settings, error) {
	path := fs.String("config", "", "YAML settings file (imageFormat, saveMode)")
	format := fs.String("format", "", "override imageFormat: svg or png")
	saveMode := fs.String("save-mode", "", "override saveMode: base64 or xml")
	return func() (config.Settings, error) {
		s, err := config.Load(*path)
		if err != nil {
			return s, err
		}
		if *format != "" {
			s.ImageFormat = *format
		}
		if *saveMode != "" {
			s.SaveMode = *saveMode
		}
		return s, nil
	}
}

// ─── size ───────────────────────────────────────────────────────────────────

func runSize(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("size", flag.ContinueOnError)
	settings := settingsFlags(fs)
	jsonOut := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("size: no files given")
	}
	s, err := settings()
	if err != nil {
		return err
	}

	reports := measureFiles(sizer.New(s), fs.Args())
	p := core.NewPrinter(*jsonOut)
	p.Writer = stdout
	return p.PrintReports(reports)
}

// measureFiles measures every path concurrently. Each goroutine owns its
// slot in the result, failures are reported per file.
func measureFiles(z *sizer.Sizer, paths []string) []core.Report {
	reports := make([]core.Report, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			reports[i] = measureFile(z, path)
			return nil
		})
	}
	_ = g.Wait()
	return reports
}

func measureFile(z *sizer.Sizer, path string) core.Report {
	r := core.Report{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		r.Err = err
		return r
	}

	r.Format = core.DetectFormat(path, data)
	payload, src, err := payloadFor(z, r.Format, data)
	if err != nil {
		r.Err = err
		return r
	}

	res, err := z.MeasureSource(payload, src)
	switch {
	case errors.Is(err, core.ErrNoMetrics):
	case err != nil:
		r.Err = err
	default:
		r.Found = true
	}
	r.Raw = res.Raw
	r.Geometry = res.Geometry
	return r
}

// payloadFor turns a file's contents into the payload and parser the
// sizer expects. Files of unknown format go through the configured route.
func payloadFor(z *sizer.Sizer, format core.FormatID, data []byte) (string, sizer.Source, error) {
	text := strings.TrimSpace(string(data))
	switch format {
	case core.FmtPNG:
		switch {
		case bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}):
			return base64.StdEncoding.EncodeToString(data), sizer.SourcePNGBase64, nil
		case strings.HasPrefix(text, core.PNGDataURIPrefix):
			return text[len(core.PNGDataURIPrefix):], sizer.SourcePNGBase64, nil
		default:
			return text, sizer.SourcePNGBase64, nil
		}
	case core.FmtSVG:
		if strings.HasPrefix(text, core.SVGDataURIPrefix) {
			svg, err := url.PathUnescape(text[len(core.SVGDataURIPrefix):])
			if err != nil {
				return "", 0, fmt.Errorf("%w: %v", core.ErrInvalidEncoding, err)
			}
			return svg, sizer.SourceSVGText, nil
		}
		return text, sizer.SourceSVGText, nil
	case core.FmtURL:
		return text, sizer.SourceLegacyURL, nil
	default:
		return text, sizer.SelectSource(true, z.Settings), nil
	}
}

// ─── resize ─────────────────────────────────────────────────────────────────

func runResize(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("resize", flag.ContinueOnError)
	settings := settingsFlags(fs)
	in := fs.String("in", "", "HTML file holding formula images")
	out := fs.String("out", "", "output file (default stdout)")
	class := fs.String("class", element.DefaultFormulaClass, "class marking formula images")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("resize: -in is required")
	}
	s, err := settings()
	if err != nil {
		return err
	}

	f, err := os.Open(*in)
	if err != nil {
		return err
	}
	defer f.Close()
	doc, err := element.ParseHTML(f)
	if err != nil {
		return err
	}

	z := sizer.New(s)
	imgs := element.FindFormulaImages(doc, *class)
	fixed := 0
	for _, img := range imgs {
		if z.FixAfterResize(img) {
			fixed++
		}
	}

	var buf bytes.Buffer
	if err := element.RenderHTML(&buf, doc); err != nil {
		return err
	}
	if *out == "" {
		_, err = stdout.Write(buf.Bytes())
	} else {
		err = os.WriteFile(*out, buf.Bytes(), 0644)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "resized %d of %d formula images\n", fixed, len(imgs))
	return nil
}

// ─── stamp ──────────────────────────────────────────────────────────────────

func runStamp(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("stamp", flag.ContinueOnError)
	in := fs.String("in", "", "source PNG")
	out := fs.String("out", "", "destination PNG (default: in place)")
	baseline := fs.Int("baseline", -1, "baseline in pixels from the bottom edge")
	dpi := fs.Int("dpi", 0, "source resolution; 0 writes no pHYs chunk")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return errors.New("stamp: -in is required")
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	var m core.RawMetrics
	if *baseline >= 0 {
		m.Baseline = core.Some(float64(*baseline))
	}
	if *dpi > 0 {
		m.DPI = core.Some(float64(*dpi))
	}
	stamped, err := png.Stamp(data, m)
	if err != nil {
		return err
	}

	dst := *out
	if dst == "" {
		dst = *in
	}
	if err := os.WriteFile(dst, stamped, 0644); err != nil {
		return err
	}
	p := core.NewPrinter(false)
	p.Writer = stdout
	p.PrintSuccess(fmt.Sprintf("stamped %s (baseline=%s dpi=%s)", dst, m.Baseline, m.DPI))
	return nil
}

// ─── inspect ────────────────────────────────────────────────────────────────

func runInspect(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return errors.New("inspect: exactly one PNG file expected")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	chunks, err := png.Chunks(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "File  : %s\n", args[0])
	fmt.Fprintln(stdout, "── Chunks ──")
	for _, c := range chunks {
		fmt.Fprintf(stdout, "  %-6s %d bytes\n", c.Type, len(c.Data))
	}

	raw, err := png.Metrics(data)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, "── Metrics ──")
	fmt.Fprintf(stdout, "  width=%s height=%s baseline=%s dpi=%s\n", raw.Width, raw.Height, raw.Baseline, raw.DPI)
	if g, ok := core.Normalize(raw); ok {
		fmt.Fprintf(stdout, "  display %s x %s", core.FormatNumber(g.Width), core.FormatNumber(g.Height))
		if va, ok := g.VerticalAlign(); ok {
			fmt.Fprintf(stdout, ", vertical-align %s", va)
		}
		fmt.Fprintln(stdout)
	}

	texts, err := png.Text(data)
	if err != nil {
		return err
	}
	if len(texts) > 0 {
		fmt.Fprintln(stdout, "── Text ──")
		for _, f := range texts {
			fmt.Fprintf(stdout, "  [%s] %s: %s\n", f.Chunk, f.Key, f.Value)
		}
	}

	fields, err := png.EXIF(data)
	if err != nil {
		return err
	}
	if len(fields) > 0 {
		fmt.Fprintln(stdout, "── EXIF ──")
		for _, f := range fields {
			fmt.Fprintf(stdout, "  %-30s %s\n", f.Name+":", f.Value)
		}
	}
	return nil
}
