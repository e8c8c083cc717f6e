package cmd

import (
	"fmt"

	"github.com/iksnae/deepnote-bridge/internal"
	"github.com/iksnae/deepnote-bridge/internal/config"
	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a sample configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			defaultPath, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}
			path = defaultPath
		}

		if err := config.CreateSample(path); err != nil {
			return err
		}
		internal.PrintSuccess(fmt.Sprintf("Wrote sample config to %s", path))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		rows := [][]string{
			{"logging.level", c.Logging.Level},
			{"conversion.drop_empty_outputs", fmt.Sprint(c.Conversion.DropEmptyOutputs)},
			{"conversion.dedupe_block_ids", fmt.Sprint(c.Conversion.DedupeBlockIDs)},
			{"index.path", c.Index.Path},
			{"export.format", c.Export.Format},
			{"export.out_dir", c.Export.OutDir},
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"KEY", "VALUE"}, rows, nil))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)
}
