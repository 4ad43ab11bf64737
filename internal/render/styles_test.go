package render

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPresets_EmbeddedDefaults(t *testing.T) {
	presets, err := LoadPresets("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, style := range []Style{StyleBottom, StyleTop, StyleKaraoke} {
		if _, ok := presets[style]; !ok {
			t.Errorf("missing preset %q", style)
		}
	}
	if presets[StyleKaraoke].HighlightColor == "" {
		t.Error("karaoke preset should carry a highlight color")
	}
	if presets[StyleBottom].Position != "bottom" {
		t.Errorf("bottom preset position = %q", presets[StyleBottom].Position)
	}
}

func TestLoadPresets_FileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.yaml")
	content := `styles:
  bottom:
    position: bottom
    fontSize: 20
  top:
    position: top
    fontSize: 20
  karaoke:
    position: center
    fontSize: 64
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write styles file: %v", err)
	}

	presets, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if presets[StyleKaraoke].FontSize != 64 {
		t.Errorf("override not applied: %+v", presets[StyleKaraoke])
	}
}

func TestLoadPresets_MissingStyleRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "styles.yaml")
	if err := os.WriteFile(path, []byte("styles:\n  bottom:\n    position: bottom\n"), 0o644); err != nil {
		t.Fatalf("write styles file: %v", err)
	}
	if _, err := LoadPresets(path); err == nil {
		t.Fatal("expected error for incomplete styles file")
	}
}

func TestLoadPresets_MissingFile(t *testing.T) {
	if _, err := LoadPresets(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
