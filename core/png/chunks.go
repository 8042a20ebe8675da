package png

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/ankit-chaubey/formula-metrics/core"
	"github.com/ankit-chaubey/formula-metrics/core/cursor"
)

// ErrNotPNG is returned when data does not start with the PNG signature.
var ErrNotPNG = errors.New("not a valid PNG")

var signature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// Chunk is one length-prefixed, typed unit of a PNG stream.
type Chunk struct {
	Type string
	Data []byte
}

// Chunks splits a complete PNG into its chunks, stopping after IEND.
func Chunks(data []byte) ([]Chunk, error) {
	if !bytes.HasPrefix(data, signature) {
		return nil, ErrNotPNG
	}
	c := cursor.New(data)
	if err := c.Skip(signatureLen); err != nil {
		return nil, err
	}

	var chunks []Chunk
	for c.Remaining() > 0 {
		length, err := c.ReadUint32()
		if err != nil {
			return chunks, err
		}
		typ, err := c.ReadBytes(4)
		if err != nil {
			return chunks, err
		}
		if uint64(length) > uint64(c.Remaining()) {
			return chunks, fmt.Errorf("chunk %q: %w", typ, core.ErrOutOfBounds)
		}
		body, err := c.ReadBytes(int(length))
		if err != nil {
			return chunks, err
		}
		if err := c.Skip(crcLen); err != nil {
			return chunks, fmt.Errorf("chunk %q crc: %w", typ, err)
		}
		chunks = append(chunks, Chunk{Type: string(typ), Data: body})
		if string(typ) == "IEND" {
			break
		}
	}
	return chunks, nil
}

// Encode writes chunks back out as a PNG stream with fresh CRCs.
func Encode(chunks []Chunk) []byte {
	var buf bytes.Buffer
	buf.Write(signature)
	for _, c := range chunks {
		writeChunk(&buf, c.Type, c.Data)
	}
	return buf.Bytes()
}

func writeChunk(w *bytes.Buffer, typ string, data []byte) {
	var word [4]byte
	binary.BigEndian.PutUint32(word[:], uint32(len(data)))
	w.Write(word[:])
	w.WriteString(typ)
	w.Write(data)

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	binary.BigEndian.PutUint32(word[:], crc.Sum32())
	w.Write(word[:])
}

// Stamp returns a copy of the PNG in data carrying m's baseline and DPI as
// baSE and pHYs chunks placed directly after IHDR. Existing baSE and pHYs
// chunks are dropped. Width and height come from IHDR and are not changed.
func Stamp(data []byte, m core.RawMetrics) ([]byte, error) {
	chunks, err := Chunks(data)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 || chunks[0].Type != "IHDR" {
		return nil, fmt.Errorf("%w: IHDR must be the first chunk", ErrNotPNG)
	}

	var added []Chunk
	if m.Baseline.OK {
		body := make([]byte, 4)
		binary.BigEndian.PutUint32(body, uint32(m.Baseline.V))
		added = append(added, Chunk{Type: "baSE", Data: body})
	}
	if m.DPI.OK && m.DPI.V > 0 {
		body := make([]byte, 9)
		ppm := DPIToPPM(m.DPI.V)
		binary.BigEndian.PutUint32(body[0:4], ppm)
		binary.BigEndian.PutUint32(body[4:8], ppm)
		body[8] = 1 // unit: meter
		added = append(added, Chunk{Type: "pHYs", Data: body})
	}

	out := make([]Chunk, 0, len(chunks)+len(added))
	out = append(out, chunks[0])
	out = append(out, added...)
	for _, c := range chunks[1:] {
		if c.Type == "baSE" || c.Type == "pHYs" {
			continue
		}
		out = append(out, c)
	}
	return Encode(out), nil
}
