package png

import "bytes"

// TextField is a keyword/value pair from a tEXt or iTXt chunk. Formula
// renderers use these to carry the source MathML next to the pixels.
type TextField struct {
	Chunk string
	Key   string
	Value string
}

// Text returns the uncompressed textual chunks of a complete PNG in stream
// order. Compressed iTXt values are skipped.
func Text(data []byte) ([]TextField, error) {
	chunks, err := Chunks(data)
	if err != nil {
		return nil, err
	}

	var fields []TextField
	for _, c := range chunks {
		switch c.Type {
		case "tEXt":
			// keyword\0value
			key, val, ok := bytes.Cut(c.Data, []byte{0})
			if !ok || len(key) == 0 {
				continue
			}
			fields = append(fields, TextField{Chunk: c.Type, Key: string(key), Value: string(val)})
		case "iTXt":
			// keyword\0flag method language\0translated\0text
			key, rest, ok := bytes.Cut(c.Data, []byte{0})
			if !ok || len(key) == 0 || len(rest) < 2 || rest[0] != 0 {
				continue
			}
			rest = rest[2:]
			if _, rest, ok = bytes.Cut(rest, []byte{0}); !ok {
				continue
			}
			if _, rest, ok = bytes.Cut(rest, []byte{0}); !ok {
				continue
			}
			fields = append(fields, TextField{Chunk: c.Type, Key: string(key), Value: string(rest)})
		}
	}
	return fields, nil
}
