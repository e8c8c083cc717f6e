package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iksnae/deepnote-bridge/internal"
	"github.com/spf13/cobra"
)

const (
	targetHost     = "host"
	targetDeepnote = "deepnote"
)

var (
	convertTo       string
	convertOutput   string
	convertNotebook string
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert between .deepnote documents and host notebook JSON",
	Long: `Convert a notebook between the Deepnote document format and the host
editor's notebook JSON.

  --to host      read a .deepnote document and write one notebook as host JSON
  --to deepnote  read host JSON and write a .deepnote document

When --to is omitted it is inferred from the input extension. When converting
to deepnote and the output file already exists, the notebook named by the host
metadata (or --notebook) is replaced in place and everything else is kept.

Examples:
  deepnote-bridge convert project.deepnote --notebook nb-1 -o nb-1.json
  deepnote-bridge convert nb-1.json --to deepnote -o project.deepnote`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]

		target := strings.ToLower(convertTo)
		if target == "" {
			target = inferTarget(input)
		}

		switch target {
		case targetHost:
			return convertToHost(cmd.OutOrStdout(), input)
		case targetDeepnote:
			return convertToDeepnote(cmd.OutOrStdout(), input)
		default:
			return fmt.Errorf("unsupported target: %s (supported: host, deepnote)", convertTo)
		}
	},
}

func inferTarget(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".deepnote") {
		return targetHost
	}
	return targetDeepnote
}

func convertToHost(stdout io.Writer, input string) error {
	doc, err := internal.ReadDeepnoteFile(input)
	if err != nil {
		return err
	}

	nb, err := selectNotebook(doc, convertNotebook)
	if err != nil {
		return err
	}

	data, err := newNotebookConverter().ToHost(nb)
	if err != nil {
		return fmt.Errorf("failed to convert notebook %s: %w", nb.ID, err)
	}

	if convertOutput == "" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}

	if err := internal.WriteNotebookData(convertOutput, data); err != nil {
		return err
	}
	internal.PrintSuccess(fmt.Sprintf("Converted notebook %s (%d cells) to %s", nb.Name, len(data.Cells), convertOutput))
	return nil
}

func selectNotebook(doc *internal.DeepnoteFile, id string) (*internal.DeepnoteNotebook, error) {
	if id != "" {
		nb := doc.Notebook(id)
		if nb == nil {
			return nil, fmt.Errorf("notebook not found: %s (use 'deepnote-bridge inspect' to list notebooks)", id)
		}
		return nb, nil
	}

	if len(doc.Project.Notebooks) == 0 {
		return nil, fmt.Errorf("document has no notebooks")
	}
	if len(doc.Project.Notebooks) > 1 {
		internal.LogWarn("Document has %d notebooks, converting the first; use --notebook to pick another", len(doc.Project.Notebooks))
	}
	return &doc.Project.Notebooks[0], nil
}

func convertToDeepnote(stdout io.Writer, input string) error {
	data, err := internal.ReadNotebookData(input)
	if err != nil {
		return err
	}

	notebookID := convertNotebook
	if notebookID == "" {
		notebookID = metadataString(data.Metadata, internal.NotebookMetaID)
	}
	notebookName := metadataString(data.Metadata, internal.NotebookMetaName)
	if notebookName == "" {
		notebookName = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}

	doc, err := targetDocument(notebookName)
	if err != nil {
		return err
	}

	nb := doc.Notebook(notebookID)
	if nb == nil {
		if notebookID == "" {
			notebookID = internal.GenerateBlockID()
		}
		doc.Project.Notebooks = append(doc.Project.Notebooks, internal.DeepnoteNotebook{
			ID:   notebookID,
			Name: notebookName,
		})
		nb = &doc.Project.Notebooks[len(doc.Project.Notebooks)-1]
	}

	if err := newNotebookConverter().ApplyToNotebook(data, nb); err != nil {
		return fmt.Errorf("failed to convert %s: %w", input, err)
	}
	doc.Touch(time.Now())

	if convertOutput == "" {
		out, err := doc.Marshal()
		if err != nil {
			return err
		}
		_, err = stdout.Write(out)
		return err
	}

	if err := internal.WriteDeepnoteFile(convertOutput, doc); err != nil {
		return err
	}
	internal.PrintSuccess(fmt.Sprintf("Wrote %d block(s) to notebook %s in %s", len(nb.Blocks), nb.Name, convertOutput))
	return nil
}

// targetDocument loads the existing output document, or starts an empty one
func targetDocument(projectName string) (*internal.DeepnoteFile, error) {
	if convertOutput != "" {
		if _, err := os.Stat(convertOutput); err == nil {
			return internal.ReadDeepnoteFile(convertOutput)
		}
	}

	doc := internal.NewDeepnoteFile(projectName, "")
	doc.Project.Notebooks = nil
	return doc, nil
}

func metadataString(metadata map[string]any, key string) string {
	s, _ := metadata[key].(string)
	return s
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVar(&convertTo, "to", "", "Target format (host, deepnote); inferred from the input when empty")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file (default stdout)")
	convertCmd.Flags().StringVar(&convertNotebook, "notebook", "", "Notebook id to convert or replace")
}
