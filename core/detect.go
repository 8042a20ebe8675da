package core

import (
	"bytes"
	"path/filepath"
	"strings"
)

// FormatID enumerates the payload formats a rendering service produces.
type FormatID string

const (
	FmtPNG     FormatID = "png"
	FmtSVG     FormatID = "svg"
	FmtURL     FormatID = "url" // legacy query-string response
	FmtUnknown FormatID = "unknown"
)

// Data-URI prefixes carried by formula image src attributes.
const (
	SVGDataURIPrefix = "data:image/svg+xml;charset=utf8,"
	PNGDataURIPrefix = "data:image/png;base64,"
)

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// extMap maps lowercase extensions to format IDs.
var extMap = map[string]FormatID{
	".png": FmtPNG,
	".svg": FmtSVG,
	".url": FmtURL,
	".txt": FmtURL,
}

// DetectFormat returns the FormatID of a payload, first by looking at its
// leading bytes and falling back to the extension of name.
func DetectFormat(name string, data []byte) FormatID {
	if id := detectMagic(data); id != FmtUnknown {
		return id
	}
	if id, ok := extMap[strings.ToLower(filepath.Ext(name))]; ok {
		return id
	}
	return FmtUnknown
}

func detectMagic(b []byte) FormatID {
	trimmed := bytes.TrimLeft(b, " \t\r\n\xef\xbb\xbf")
	switch {
	case bytes.HasPrefix(b, pngSignature):
		return FmtPNG
	// base64 of the PNG signature
	case bytes.HasPrefix(trimmed, []byte("iVBORw0KGgo")):
		return FmtPNG
	case bytes.HasPrefix(trimmed, []byte(PNGDataURIPrefix)):
		return FmtPNG
	case bytes.HasPrefix(trimmed, []byte("<svg")), bytes.HasPrefix(trimmed, []byte("<?xml")):
		return FmtSVG
	case bytes.HasPrefix(trimmed, []byte(SVGDataURIPrefix)):
		return FmtSVG
	case bytes.HasPrefix(trimmed, []byte("http://")), bytes.HasPrefix(trimmed, []byte("https://")):
		return FmtURL
	}
	return FmtUnknown
}
