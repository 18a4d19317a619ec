/*
Package config holds the configuration of the sbixtract binaries.

Configuration is layered with viper: built-in defaults, an optional YAML file
"sbixtract.yaml" (searched in the working directory and in
$HOME/.config/sbixtract), environment variables prefixed with SBIXTRACT_
and finally command line flags bound to a viper instance.

	font: /System/Library/Fonts/Apple Color Emoji.ttc
	index: 1
	sizes: [40, 160]
	trace: Debug

Environment variable names replace dots and dashes by underscores, e.g.
SBIXTRACT_XML_DIR or SBIXTRACT_DRY_RUN.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/sbixtract/extract"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Default locations on macOS.
const (
	DefaultFont  = "/System/Library/Fonts/Apple Color Emoji.ttc"
	DefaultNames = "/System/Library/PrivateFrameworks/CoreEmoji.framework/Versions/A/Resources/en.lproj/AppleName.strings"
)

// TraceKeys are the trace keys of the packages of this module.
var TraceKeys = []string{
	"sbixtract.names",
	"sbixtract.sbix",
	"sbixtract.xml",
	"sbixtract.extract",
	"sbixtract.cli",
}

// ErrTraceLevel is returned for trace levels other than Debug, Info and Error.
var ErrTraceLevel = errors.New("invalid trace level")

// Config is the configuration of an extraction.
type Config struct {
	Font    string `mapstructure:"font"`
	Index   int    `mapstructure:"index"`
	Names   string `mapstructure:"names"`
	Sizes   []int  `mapstructure:"sizes"`
	Out     string `mapstructure:"out"`
	XMLDir  string `mapstructure:"xml_dir"`
	Refresh bool   `mapstructure:"refresh"`
	Dupes   bool   `mapstructure:"dupes"`
	DryRun  bool   `mapstructure:"dry_run"`
	Report  string `mapstructure:"report"`
	Trace   string `mapstructure:"trace"`
}

// New creates a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("font", DefaultFont)
	v.SetDefault("index", 1)
	v.SetDefault("names", DefaultNames)
	v.SetDefault("sizes", []int{})
	v.SetDefault("out", "images")
	v.SetDefault("xml_dir", ".")
	v.SetDefault("refresh", false)
	v.SetDefault("dupes", false)
	v.SetDefault("dry_run", false)
	v.SetDefault("report", "")
	v.SetDefault("trace", "Info")
	v.SetEnvPrefix("SBIXTRACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds flags to configuration keys. Flag names use dashes, keys
// use underscores. Flags without a corresponding flag in fs are ignored.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || err != nil {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		err = v.BindPFlag(key, f)
	})
	return err
}

// Load reads the configuration file, if any, and returns the merged
// configuration. An empty configFile searches the default locations, where a
// missing file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("sbixtract")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "sbixtract"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}
	return cfg, nil
}

// Options converts the configuration to extraction options.
func (c *Config) Options() extract.Options {
	return extract.Options{
		Font:      c.Font,
		FontIndex: c.Index,
		Names:     c.Names,
		XMLDir:    c.XMLDir,
		OutDir:    c.Out,
		Sizes:     c.Sizes,
		Refresh:   c.Refresh,
		Dupes:     c.Dupes,
		DryRun:    c.DryRun,
	}
}

// ParseTraceLevel checks a trace level given by the user.
func ParseTraceLevel(level string) (tracing.TraceLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return tracing.LevelDebug, nil
	case "info":
		return tracing.LevelInfo, nil
	case "error":
		return tracing.LevelError, nil
	}
	return tracing.LevelError, fmt.Errorf("%w: %q, use Debug, Info or Error", ErrTraceLevel, level)
}

// SetupTracing routes all tracers of this module to Go's log package, with
// the given trace level.
func SetupTracing(level string) error {
	l, err := ParseTraceLevel(level)
	if err != nil {
		return err
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.root":      l.String(),
	}
	for _, key := range TraceKeys {
		conf["trace."+key] = l.String()
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("cannot configure tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	for _, key := range TraceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
	return nil
}
