// Package legacy reads formula metrics from the query string of an image
// URL, the response shape of older rendering services.
package legacy

import (
	"net/url"
	"strings"

	"github.com/ankit-chaubey/formula-metrics/core"
)

// Query keys carrying metrics.
const (
	KeyWidth    = "cw"
	KeyHeight   = "ch"
	KeyBaseline = "cb"
	KeyDPI      = "dpi"
)

// ParseQuery maps the query string of rawURL to its key/value pairs. Pairs
// without "=" are ignored, "+" decodes to a space, and a value that is not
// valid percent-encoding is kept verbatim. Later keys overwrite earlier ones.
func ParseQuery(rawURL string) map[string]string {
	out := map[string]string{}
	i := strings.IndexByte(rawURL, '?')
	if i <= 0 {
		return out
	}
	for _, pair := range strings.Split(rawURL[i+1:], "&") {
		key, value, ok := core.ParseKV(pair)
		if !ok {
			continue
		}
		value = strings.ReplaceAll(value, "+", " ")
		if decoded, err := url.PathUnescape(value); err == nil {
			value = decoded
		}
		out[key] = value
	}
	return out
}

// Metrics returns the metrics carried by rawURL's cw, ch, cb and dpi keys.
func Metrics(rawURL string) core.RawMetrics {
	q := ParseQuery(rawURL)
	return core.RawMetrics{
		Width:    core.ParseNumber(q[KeyWidth]),
		Height:   core.ParseNumber(q[KeyHeight]),
		Baseline: core.ParseNumber(q[KeyBaseline]),
		DPI:      core.ParseNumber(q[KeyDPI]),
	}
}
