package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/deepnote-bridge/internal"
	"github.com/iksnae/deepnote-bridge/internal/config"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	cfg        *config.Config
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "deepnote-bridge",
	Short: "Convert Deepnote notebooks to and from editor notebooks",
	Long: `A CLI tool to move Deepnote (.deepnote) notebooks in and out of a host
notebook editor without losing block identity.

Every Deepnote block keeps its id, type, sorting key and execution count in
the host cell metadata, so a notebook converted to the host and back comes
out with the same blocks in the same order.

Quick Start:
  deepnote-bridge convert project.deepnote -o notebook.json   # Deepnote -> host
  deepnote-bridge convert notebook.json -o project.deepnote   # host -> Deepnote
  deepnote-bridge inspect project.deepnote                    # List blocks
  deepnote-bridge export project.deepnote --format md         # Export as Markdown`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, path, exists, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded

		level, err := internal.ParseLogLevel(cfg.Logging.Level)
		if err != nil {
			return err
		}
		internal.SetLogLevel(level)
		if verbose {
			internal.SetVerbose(true)
		}
		if exists {
			internal.LogDebug("Loaded config from %s", path)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// currentConfig returns the loaded config, or the defaults before loading
func currentConfig() *config.Config {
	if cfg == nil {
		def := config.Default()
		return &def
	}
	return cfg
}

// newNotebookConverter builds a converter honouring the [conversion] settings
func newNotebookConverter() *internal.NotebookConverter {
	c := currentConfig()
	outputs := internal.NewCellOutputConverter(nil)
	outputs.DropEmptyOutputs = c.Conversion.DropEmptyOutputs

	conv := internal.NewNotebookConverter(outputs)
	conv.DedupeBlockIDs = c.Conversion.DedupeBlockIDs
	return conv
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/deepnote-bridge/config.toml)")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
