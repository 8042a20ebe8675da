// Package config holds the two editor settings that select how a formula
// payload is parsed: the image format and the save mode.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Recognised setting values. Any other image format is treated as raster,
// any other save mode as non-base64.
const (
	FormatSVG = "svg"
	FormatPNG = "png"

	SaveBase64 = "base64"
	SaveXML    = "xml"
)

// Environment overrides, applied after the file is read.
const (
	EnvImageFormat = "FORMULA_IMAGE_FORMAT"
	EnvSaveMode    = "FORMULA_SAVE_MODE"
)

// Settings is the configuration the sizer queries.
type Settings struct {
	ImageFormat string `yaml:"imageFormat"`
	SaveMode    string `yaml:"saveMode"`
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{ImageFormat: FormatPNG, SaveMode: SaveXML}
}

// IsSVG reports whether formulas are rendered as SVG.
func (s Settings) IsSVG() bool { return strings.EqualFold(s.ImageFormat, FormatSVG) }

// IsBase64 reports whether payloads are stored base64-encoded.
func (s Settings) IsBase64() bool { return strings.EqualFold(s.SaveMode, SaveBase64) }

// Load reads settings from a YAML file at path, merged over Default, then
// applies environment overrides. An empty path or a missing file yields
// the defaults plus overrides.
func Load(path string) (Settings, error) {
	s := Default()
	if path != "" {
		file, err := loadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return s, err
		}
		s = merge(s, file)
	}
	applyEnv(&s)
	return s, nil
}

func loadFile(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// merge overlays non-empty values of top onto base.
func merge(base, top Settings) Settings {
	if top.ImageFormat != "" {
		base.ImageFormat = top.ImageFormat
	}
	if top.SaveMode != "" {
		base.SaveMode = top.SaveMode
	}
	return base
}

func applyEnv(s *Settings) {
	*s = merge(*s, Settings{
		ImageFormat: strings.TrimSpace(os.Getenv(EnvImageFormat)),
		SaveMode:    strings.TrimSpace(os.Getenv(EnvSaveMode)),
	})
}
