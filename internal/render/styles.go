package render

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed configs/styles.yaml
var defaultStylesYAML []byte

// Preset is the declarative appearance of one caption style. The rendering
// collaborator interprets these; no pixel work happens here.
type Preset struct {
	Position       string  `yaml:"position" json:"position"`
	FontSize       int     `yaml:"fontSize" json:"fontSize"`
	FontFamily     string  `yaml:"fontFamily" json:"fontFamily"`
	FontWeight     int     `yaml:"fontWeight" json:"fontWeight"`
	Background     string  `yaml:"background" json:"background"`
	Color          string  `yaml:"color" json:"color"`
	LineHeight     float64 `yaml:"lineHeight" json:"lineHeight"`
	SungColor      string  `yaml:"sungColor,omitempty" json:"sungColor,omitempty"`
	HighlightColor string  `yaml:"highlightColor,omitempty" json:"highlightColor,omitempty"`
}

type stylesFile struct {
	Styles map[string]Preset `yaml:"styles"`
}

// LoadPresets reads style presets from path, or the embedded defaults when
// path is empty. Presets for all three styles must be present.
func LoadPresets(path string) (map[Style]Preset, error) {
	raw := defaultStylesYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read styles file: %w", err)
		}
		raw = b
	}

	var f stylesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse styles file: %w", err)
	}

	out := make(map[Style]Preset, len(f.Styles))
	for name, p := range f.Styles {
		out[Style(name)] = p
	}
	for _, required := range []Style{StyleBottom, StyleTop, StyleKaraoke} {
		if _, ok := out[required]; !ok {
			return nil, fmt.Errorf("styles file missing preset %q", required)
		}
	}
	return out, nil
}
