package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultFont, cfg.Font)
	assert.Equal(t, 1, cfg.Index)
	assert.Equal(t, DefaultNames, cfg.Names)
	assert.Empty(t, cfg.Sizes)
	assert.Equal(t, "images", cfg.Out)
	assert.Equal(t, ".", cfg.XMLDir)
	assert.Equal(t, "Info", cfg.Trace)
	assert.False(t, cfg.DryRun)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sbixtract.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
font: Emoji.ttc
index: 0
sizes: [40, 160]
xml_dir: /tmp/xml
dupes: true
`), 0o644))
	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "Emoji.ttc", cfg.Font)
	assert.Equal(t, 0, cfg.Index)
	assert.Equal(t, []int{40, 160}, cfg.Sizes)
	assert.Equal(t, "/tmp/xml", cfg.XMLDir)
	assert.True(t, cfg.Dupes)
	assert.Equal(t, "images", cfg.Out, "expected default for keys missing in file")
	//
	_, err = Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "expected explicitly named config file to be required")
}

func TestEnvironment(t *testing.T) {
	t.Setenv("SBIXTRACT_DRY_RUN", "true")
	t.Setenv("SBIXTRACT_OUT", "/tmp/emoji")
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, "/tmp/emoji", cfg.Out)
}

func TestBindFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.IntSlice("sizes", nil, "")
	fs.String("xml-dir", ".", "")
	fs.Bool("dry-run", false, "")
	fs.Int("index", 1, "")
	v := New()
	require.NoError(t, BindFlags(v, fs))
	require.NoError(t, fs.Parse([]string{"--sizes", "40", "--sizes", "20", "--xml-dir", "/tmp/x", "--dry-run"}))
	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, []int{40, 20}, cfg.Sizes)
	assert.Equal(t, "/tmp/x", cfg.XMLDir)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, 1, cfg.Index)
	//
	opts := cfg.Options()
	assert.Equal(t, "/tmp/x", opts.XMLDir)
	assert.Equal(t, []int{40, 20}, opts.Sizes)
	assert.Equal(t, "images", opts.OutDir)
}

func TestParseTraceLevel(t *testing.T) {
	l, err := ParseTraceLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, tracing.LevelDebug, l)
	l, err = ParseTraceLevel("Error")
	require.NoError(t, err)
	assert.Equal(t, tracing.LevelError, l)
	_, err = ParseTraceLevel("verbose")
	assert.True(t, errors.Is(err, ErrTraceLevel))
}

func TestSetupTracing(t *testing.T) {
	defer trace2go.Teardown()
	require.NoError(t, SetupTracing("Debug"))
	assert.Equal(t, tracing.LevelDebug, tracing.Select("sbixtract.extract").GetTraceLevel())
	require.NoError(t, SetupTracing("Error"))
	assert.Equal(t, tracing.LevelError, tracing.Select("sbixtract.xml").GetTraceLevel())
	assert.Error(t, SetupTracing("loud"))
}
