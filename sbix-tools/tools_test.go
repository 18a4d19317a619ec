package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/sbixtract/extract"
	"github.com/npillmayer/sbixtract/internal/sbixtest"
	"github.com/npillmayer/sbixtract/sbix"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with args and captures its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(trace2go.Teardown)
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append(args, "--trace", "Error"))
	err := root.Execute()
	return strings.TrimSpace(buf.String()), err
}

type fixture struct {
	dir, font, names string
}

func setupFixture(t *testing.T) fixture {
	dir := t.TempDir()
	fx := fixture{
		dir:   dir,
		font:  filepath.Join(dir, "Emoji.ttc"),
		names: filepath.Join(dir, "AppleName.strings"),
	}
	coll := sbixtest.Collection(sbixtest.Font{Names: []string{".notdef"}}, sbixtest.Emoji())
	require.NoError(t, os.WriteFile(fx.font, coll, 0o644))
	require.NoError(t, os.WriteFile(fx.names, sbixtest.NamesPlist(sbixtest.AppleNames()), 0o644))
	return fx
}

func TestVersion(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sbix-tools dev", out)
}

func TestExtractCommand(t *testing.T) {
	fx := setupFixture(t)
	out := filepath.Join(fx.dir, "images")
	report := filepath.Join(fx.dir, "report.yaml")
	_, err := executeCommand(t, "extract",
		"--font", fx.font, "--names", fx.names,
		"--out", out, "--xml-dir", fx.dir,
		"-s", "40", "--report", report)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "40x40", "grinning face.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "20x20"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "expected size filter to apply")
	_, err = os.Stat(filepath.Join(fx.dir, "Emoji.ttc.xml"))
	assert.NoError(t, err)
	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: thumbs up sign")
}

func TestExtractInvalidSize(t *testing.T) {
	fx := setupFixture(t)
	_, err := executeCommand(t, "extract",
		"--font", fx.font, "--names", fx.names, "--xml-dir", fx.dir, "--sizes", "41")
	assert.True(t, errors.Is(err, extract.ErrInvalidSize))
	_, err = os.Stat(filepath.Join(fx.dir, "Emoji.ttc.xml"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "expected nothing to be dumped")
}

func TestDumpCommand(t *testing.T) {
	fx := setupFixture(t)
	out, err := executeCommand(t, "dump", "-f", fx.font, "--xml-dir", fx.dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fx.dir, "Emoji.ttc.xml"), out)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<ppem value="40"/>`)
}

func TestStrikesCommand(t *testing.T) {
	fx := setupFixture(t)
	out, err := executeCommand(t, "strikes", "--font", fx.font)
	require.NoError(t, err)
	assert.Contains(t, out, "(1 of 2)")
	assert.Contains(t, out, "Glyphs: 8")
	assert.Contains(t, out, "PPEM")
	assert.Contains(t, out, "dupe")
	//
	_, err = executeCommand(t, "strikes", "--font", fx.font, "--index", "5")
	assert.True(t, errors.Is(err, sbix.ErrFontIndex))
}

func TestNameCommand(t *testing.T) {
	fx := setupFixture(t)
	out, err := executeCommand(t, "name", "--names", fx.names, "U+1F44D")
	require.NoError(t, err)
	assert.Contains(t, out, "name:     thumbs up sign [apple]")
	assert.Contains(t, out, "file:     thumbs up sign.png")
	//
	out, err = executeCommand(t, "name", "--names", fx.names, "u1F9D1_u1F4BB.0.W")
	require.NoError(t, err)
	assert.Contains(t, out, "file:     woman technologist 0.png")
	//
	_, err = executeCommand(t, "name", "--names", fx.names, "xyz")
	assert.Error(t, err)
}
