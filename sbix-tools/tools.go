package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/sbixtract/internal/config"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// tracer traces with key 'sbixtract.cli'
func tracer() tracing.Trace {
	return tracing.Select("sbixtract.cli")
}

// app carries the configuration of a command execution.
type app struct {
	cfg *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "sbix-tools",
		Short: "Extract emoji bitmaps from sbix fonts",
		Long: `sbix-tools extracts the bitmaps of a color emoji font with an 'sbix' table
(usually Apple Color Emoji) to PNG files. Files are named after Apple's emoji
name table, with gender and skin tone suffixes where applicable.

The sbix table is first dumped to an XML file, which is re-used on later runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
	}
	root.PersistentFlags().String("config", "", "config file (default: ./sbixtract.yaml or ~/.config/sbixtract/sbixtract.yaml)")
	root.PersistentFlags().String("trace", "Info", "trace level [Debug|Info|Error]")
	root.AddCommand(
		newExtractCmd(a),
		newDumpCmd(a),
		newNameCmd(a),
		newStrikesCmd(a),
		newVersionCmd(),
	)
	return root
}

// configure merges defaults, config file, environment and the flags of cmd,
// then sets up tracing.
func (a *app) configure(cmd *cobra.Command) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	if err := config.SetupTracing(cfg.Trace); err != nil {
		return err
	}
	if v.ConfigFileUsed() != "" {
		tracer().Infof("using config file %s", v.ConfigFileUsed())
	}
	a.cfg = cfg
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of sbix-tools",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sbix-tools %s\n", version)
		},
	}
}

// fontFlags adds the flags selecting a font.
func fontFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("font", "f", config.DefaultFont, "font file, usually a collection")
	cmd.Flags().Int("index", 1, "font number within a collection")
}
