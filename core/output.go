package core

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Report is one measured payload as shown by the CLI.
type Report struct {
	Path     string
	Format   FormatID
	Raw      RawMetrics
	Geometry Geometry
	Found    bool  // false when the payload carried no metrics
	Err      error // parse failure, if any
}

// Printer handles all display output for the CLI.
type Printer struct {
	JSON   bool
	Writer io.Writer
}

// NewPrinter creates a default Printer writing to stdout.
func NewPrinter(jsonMode bool) *Printer {
	return &Printer{JSON: jsonMode, Writer: os.Stdout}
}

// PrintReports renders reports in input order.
func (p *Printer) PrintReports(rs []Report) error {
	if p.JSON {
		return p.printJSON(rs)
	}
	for _, r := range rs {
		p.printText(r)
	}
	return nil
}

func (p *Printer) printText(r Report) {
	fmt.Fprintf(p.Writer, "File  : %s\n", r.Path)
	fmt.Fprintf(p.Writer, "Format: %s\n", r.Format)
	switch {
	case r.Err != nil:
		fmt.Fprintf(p.Writer, "(parse failed: %v)\n\n", r.Err)
		return
	case !r.Found:
		fmt.Fprint(p.Writer, "(no metrics found)\n\n")
		return
	}
	fmt.Fprintf(p.Writer, "  %-16s w=%s h=%s baseline=%s dpi=%s\n", "raw:",
		r.Raw.Width, r.Raw.Height, r.Raw.Baseline, r.Raw.DPI)
	fmt.Fprintf(p.Writer, "  %-16s %s x %s\n", "size:",
		FormatNumber(r.Geometry.Width), FormatNumber(r.Geometry.Height))
	if va, ok := r.Geometry.VerticalAlign(); ok {
		fmt.Fprintf(p.Writer, "  %-16s %s\n", "vertical-align:", va)
	}
	fmt.Fprintln(p.Writer)
}

func (p *Printer) printJSON(rs []Report) error {
	type jsonReport struct {
		File          string   `json:"file"`
		Format        FormatID `json:"format"`
		Found         bool     `json:"found"`
		Error         string   `json:"error,omitempty"`
		Width         *float64 `json:"width,omitempty"`
		Height        *float64 `json:"height,omitempty"`
		Offset        *float64 `json:"offset,omitempty"`
		DPI           *float64 `json:"dpi,omitempty"`
		VerticalAlign string   `json:"verticalAlign,omitempty"`
	}

	out := make([]jsonReport, 0, len(rs))
	for _, r := range rs {
		jr := jsonReport{File: r.Path, Format: r.Format, Found: r.Found}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		}
		if r.Found {
			w, h := r.Geometry.Width, r.Geometry.Height
			jr.Width, jr.Height = &w, &h
			if r.Geometry.Offset.OK {
				o := r.Geometry.Offset.V
				jr.Offset = &o
			}
			if r.Raw.DPI.OK {
				d := r.Raw.DPI.V
				jr.DPI = &d
			}
			jr.VerticalAlign, _ = r.Geometry.VerticalAlign()
		}
		out = append(out, jr)
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.Writer, string(b))
	return err
}

// PrintSuccess prints a success message.
func (p *Printer) PrintSuccess(msg string) {
	fmt.Fprintln(p.Writer, "✓ "+msg)
}

// PrintInfo prints an info line (suppressed in JSON mode).
func (p *Printer) PrintInfo(msg string) {
	if !p.JSON {
		fmt.Fprintln(p.Writer, msg)
	}
}

// PrintError prints an error to stderr.
func PrintError(msg string) {
	fmt.Fprintln(os.Stderr, "✗ Error: "+msg)
}

// ParseKV parses a "key=value" pair, splitting on the first "=".
// Pairs without "=" or with an empty key are rejected.
func ParseKV(s string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(s, "=")
	if !ok || key == "" {
		return "", "", false
	}
	return key, value, true
}
