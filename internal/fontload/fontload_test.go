package fontload

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFontRejectedByXImage(t *testing.T) {
	data := []byte("not a font")
	f := ParseFont(data, 0)
	if f.Fontname != "" {
		t.Errorf("expected no font name, have %q", f.Fontname)
	}
	if string(f.Binary) != "not a font" {
		t.Errorf("expected font data to be kept")
	}
}

func TestLoadFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.ttc")
	if _, err := LoadFont(path, 0); err == nil {
		t.Errorf("expected error for missing font file")
	}
	if err := os.WriteFile(path, []byte("ttcf"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := LoadFont(path, 1)
	if err != nil {
		t.Fatalf("expected font data to be loaded, have %v", err)
	}
	if f.Filepath != path || len(f.Binary) != 4 {
		t.Errorf("unexpected font %+v", f)
	}
}
