package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/deepnote-bridge/internal"
	"github.com/iksnae/deepnote-bridge/internal/export"
	"github.com/spf13/cobra"
)

var (
	format         string
	outputDir      string
	exportNotebook string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <file.deepnote>",
	Short: "Export the notebooks of a document to files",
	Long: `Export every notebook of a .deepnote document to its own file in one of
the supported formats (deepnote, json, jsonl, md).

The format and output directory default to the [export] section of the config.
Use --notebook to export a single notebook.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		if !cmd.Flags().Changed("format") {
			format = c.Export.Format
		}
		if !cmd.Flags().Changed("out") {
			outputDir = c.Export.OutDir
		}

		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}
		if _, ok := exporter.(*export.JSONExporter); ok {
			exporter = export.NewJSONExporter(newNotebookConverter())
		}

		doc, err := internal.ReadDeepnoteFile(args[0])
		if err != nil {
			return err
		}

		notebooks := doc.Project.Notebooks
		if exportNotebook != "" {
			nb := doc.Notebook(exportNotebook)
			if nb == nil {
				return fmt.Errorf("notebook not found: %s (use 'deepnote-bridge inspect' to list notebooks)", exportNotebook)
			}
			notebooks = []internal.DeepnoteNotebook{*nb}
		}

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		steps := make([]internal.ProgressStep, 0, len(notebooks))
		for _, nb := range notebooks {
			single := *doc
			single.Project.Notebooks = []internal.DeepnoteNotebook{nb}
			path := filepath.Join(outputDir, exportFileName(base, nb, exporter.Extension()))
			steps = append(steps, internal.ProgressStep{
				Message: fmt.Sprintf("Exporting notebook %s to %s", nb.ID, path),
				Fn: func() error {
					return writeExport(exporter, &single, path)
				},
			})
		}

		if err := internal.ShowProgressWithSteps(context.Background(), steps); err != nil {
			return err
		}
		internal.PrintSuccess(fmt.Sprintf("Export complete: %d notebook(s) exported to %s", len(steps), outputDir))
		return nil
	},
}

func exportFileName(base string, nb internal.DeepnoteNotebook, ext string) string {
	return fmt.Sprintf("%s_%s.%s", base, nb.ID, ext)
}

func writeExport(exporter export.Exporter, doc *internal.DeepnoteFile, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}

	if err := exporter.Export(doc, file); err != nil {
		_ = file.Close()
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}

	if err := file.Close(); err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "deepnote", "Export format (deepnote, json, jsonl, md)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVar(&exportNotebook, "notebook", "", "Export only the notebook with this id")
}
