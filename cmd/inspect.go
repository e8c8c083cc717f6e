package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/iksnae/deepnote-bridge/internal"
	"github.com/spf13/cobra"
)

var inspectNotebook string

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <file.deepnote>",
	Short: "Show the notebooks and blocks of a .deepnote document",
	Long: `Inspect a .deepnote document and list every block in sorting-key order
with its id, type, sorting key, execution count and number of outputs.

Examples:
  deepnote-bridge inspect project.deepnote
  deepnote-bridge inspect project.deepnote --notebook nb-1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := internal.ReadDeepnoteFile(args[0])
		if err != nil {
			return err
		}

		if inspectNotebook != "" && doc.Notebook(inspectNotebook) == nil {
			return fmt.Errorf("notebook not found: %s", inspectNotebook)
		}
		return renderDocument(cmd.OutOrStdout(), doc, inspectNotebook)
	},
}

func renderDocument(w io.Writer, doc *internal.DeepnoteFile, notebookID string) error {
	fmt.Fprintln(w, sectionStyle.Render(fmt.Sprintf("📦 %s", doc.Project.Name)))
	fmt.Fprintf(w, "Project: %s\n", doc.Project.ID)
	if doc.Metadata.ModifiedAt != "" {
		fmt.Fprintf(w, "Modified: %s\n", doc.Metadata.ModifiedAt)
	}
	fmt.Fprintln(w)

	for _, nb := range doc.Project.Notebooks {
		if notebookID != "" && nb.ID != notebookID {
			continue
		}
		fmt.Fprintln(w, infoStyle.Render(fmt.Sprintf("📓 %s (%s) - %d block(s)", nb.Name, nb.ID, len(nb.Blocks))))
		if len(nb.Blocks) == 0 {
			fmt.Fprintln(w)
			continue
		}
		fmt.Fprintln(w, renderTable(
			[]string{"#", "ID", "TYPE", "SORTING KEY", "EXEC", "OUTPUTS"},
			blockRows(nb.Blocks),
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
		))
		fmt.Fprintln(w)
	}
	return nil
}

func blockRows(blocks []internal.Block) [][]string {
	sorted := internal.SortBlocks(blocks)
	rows := make([][]string, 0, len(sorted))
	for i, block := range sorted {
		exec := "-"
		if block.ExecutionCount != nil {
			exec = strconv.Itoa(*block.ExecutionCount)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			block.ID,
			block.Type,
			block.SortingKey,
			exec,
			strconv.Itoa(len(block.Outputs)),
		})
	}
	return rows
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectNotebook, "notebook", "", "Only show the notebook with this id")
}
