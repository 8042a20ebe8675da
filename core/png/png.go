// Package png extracts formula metrics from the chunk stream of a PNG
// rendered by the formula service, and stamps metrics into PNGs.
package png

import (
	"fmt"
	"math"

	"github.com/ankit-chaubey/formula-metrics/core"
	"github.com/ankit-chaubey/formula-metrics/core/cursor"
)

// Chunk types consumed by Metrics, as big-endian integers of their tags.
const (
	TypeIHDR uint32 = 0x49484452 // "IHDR"
	TypeBASE uint32 = 0x62615345 // "baSE"
	TypePHYS uint32 = 0x70485973 // "pHYs"
)

const (
	signatureLen = 8
	crcLen       = 4

	// inches per meter, pHYs stores pixels per meter
	metersToInches = 39.37
)

// Metrics walks the chunks of data, which starts at the PNG signature, and
// returns the metrics found in IHDR, baSE and pHYs. data may be a prefix of
// the image: a chunk header or uninterpreted chunk cut by the end of data
// ends the walk. A truncated signature or IHDR, baSE or pHYs body returns
// core.ErrOutOfBounds.
func Metrics(data []byte) (core.RawMetrics, error) {
	var m core.RawMetrics
	c := cursor.New(data)

	if err := c.Skip(signatureLen); err != nil {
		return m, fmt.Errorf("png signature: %w", err)
	}

	for c.Remaining() >= 4 {
		length, err := c.ReadUint32()
		if err != nil {
			return m, err
		}
		if c.Remaining() < 4 {
			// chunk header cut by the end of a prefix
			return m, nil
		}
		typ, err := c.ReadUint32()
		if err != nil {
			return m, err
		}

		switch typ {
		case TypeIHDR:
			err = readHeader(c, &m)
		case TypeBASE:
			err = readBaseline(c, &m)
		case TypePHYS:
			err = readResolution(c, &m)
		default:
			if uint64(length)+crcLen > uint64(c.Remaining()) {
				return m, nil
			}
			err = c.Skip(int(length))
		}
		if err != nil {
			return m, fmt.Errorf("png chunk %s: %w", chunkName(typ), err)
		}

		if err := c.Skip(crcLen); err != nil {
			return m, fmt.Errorf("png chunk %s crc: %w", chunkName(typ), err)
		}
	}
	return m, nil
}

// readHeader reads width and height, then skips bit depth, color type,
// compression, filter and interlace.
func readHeader(c *cursor.Cursor, m *core.RawMetrics) error {
	w, err := c.ReadUint32()
	if err != nil {
		return err
	}
	h, err := c.ReadUint32()
	if err != nil {
		return err
	}
	if err := c.Skip(5); err != nil {
		return err
	}
	m.Width = core.Some(float64(w))
	m.Height = core.Some(float64(h))
	return nil
}

func readBaseline(c *cursor.Cursor, m *core.RawMetrics) error {
	b, err := c.ReadUint32()
	if err != nil {
		return err
	}
	m.Baseline = core.Some(float64(b))
	return nil
}

// readResolution reads the X pixels-per-meter value as DPI, then skips the
// Y value and the unit specifier.
func readResolution(c *cursor.Cursor, m *core.RawMetrics) error {
	ppm, err := c.ReadUint32()
	if err != nil {
		return err
	}
	if err := c.Skip(4); err != nil {
		return err
	}
	if _, err := c.ReadByte(); err != nil {
		return err
	}
	m.DPI = core.Some(PPMToDPI(ppm))
	return nil
}

// PPMToDPI converts a pHYs pixels-per-meter value to whole dots per inch.
func PPMToDPI(ppm uint32) float64 {
	return roundHalfUp(float64(ppm) / metersToInches)
}

// DPIToPPM is the inverse used when stamping a pHYs chunk.
func DPIToPPM(dpi float64) uint32 {
	return uint32(roundHalfUp(dpi * metersToInches))
}

// roundHalfUp rounds .5 towards +Inf like Math.round.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func chunkName(typ uint32) string {
	b := []byte{byte(typ >> 24), byte(typ >> 16), byte(typ >> 8), byte(typ)}
	for _, ch := range b {
		if ch < 0x20 || ch > 0x7E {
			return fmt.Sprintf("0x%08X", typ)
		}
	}
	return string(b)
}
