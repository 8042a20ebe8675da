// Package b64 decodes standard base64 payloads, optionally stopping after a
// fixed number of output bytes.
package b64

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/ankit-chaubey/formula-metrics/core"
)

// PNGPrefixLen is the number of decoded bytes that covers the PNG signature
// and the IHDR, baSE and pHYs chunks of a rendered formula.
const PNGPrefixLen = 88

// Decode decodes standard base64 text. When max > 0 at most max bytes are
// produced and only the input needed for them is examined. Padded and
// unpadded input are both accepted.
func Decode(s string, max int) ([]byte, error) {
	s = strings.TrimRight(s, "=")
	if max > 0 {
		// 4 input characters per 3 output bytes
		if n := (max + 2) / 3 * 4; len(s) > n {
			s = s[:n]
		}
	}

	out, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", core.ErrInvalidEncoding, err)
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out, nil
}
