package png

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// ExifField is one decoded tag of an eXIf chunk.
type ExifField struct {
	Name  string
	Value string
}

// EXIF decodes the eXIf chunk of a complete PNG. It returns nil fields and
// no error when the image has no eXIf chunk.
func EXIF(data []byte) ([]ExifField, error) {
	chunks, err := Chunks(data)
	if err != nil {
		return nil, err
	}
	for _, c := range chunks {
		if c.Type != "eXIf" {
			continue
		}
		x, err := exif.Decode(bytes.NewReader(c.Data))
		if err != nil {
			return nil, fmt.Errorf("decoding eXIf chunk: %w", err)
		}
		w := &exifWalker{}
		if err := x.Walk(w); err != nil {
			return nil, err
		}
		sort.Slice(w.fields, func(i, j int) bool { return w.fields[i].Name < w.fields[j].Name })
		return w.fields, nil
	}
	return nil, nil
}

type exifWalker struct {
	fields []ExifField
}

func (w *exifWalker) Walk(name exif.FieldName, tag *tiff.Tag) error {
	val := tag.String()
	// string tags come back quoted
	if len(val) >= 2 && val[0] == '"' && val[len(val)-1] == '"' {
		val = val[1 : len(val)-1]
	}
	w.fields = append(w.fields, ExifField{Name: string(name), Value: val})
	return nil
}
