package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/iksnae/deepnote-bridge/internal"
	"github.com/iksnae/deepnote-bridge/internal/blockindex"
	"github.com/spf13/cobra"
)

var indexPath string

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Track blocks across documents in a local index",
	Long: `Record the blocks of .deepnote documents in a SQLite index to find block
ids, sorting keys and content shared between documents.

The index location defaults to the [index] path in the config.`,
}

var indexAddCmd = &cobra.Command{
	Use:   "add <file.deepnote>...",
	Short: "Index (or re-index) documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		defer func() { _ = ix.Close() }()

		for _, arg := range args {
			path, err := filepath.Abs(arg)
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", arg, err)
			}
			doc, err := internal.ReadDeepnoteFile(path)
			if err != nil {
				return err
			}
			n, err := ix.IndexDocument(path, doc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d block(s) from %s\n", n, path)
		}
		return nil
	},
}

var indexRemoveCmd = &cobra.Command{
	Use:   "remove <file.deepnote>...",
	Short: "Drop documents from the index",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		defer func() { _ = ix.Close() }()

		for _, arg := range args {
			path, err := filepath.Abs(arg)
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", arg, err)
			}
			if err := ix.RemoveDocument(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", path)
		}
		return nil
	},
}

var indexLookupCmd = &cobra.Command{
	Use:   "lookup <block-id>",
	Short: "Find every indexed block with an id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		defer func() { _ = ix.Close() }()

		entries, err := ix.Lookup(args[0])
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("block not found in index: %s", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderEntries(entries))
		return nil
	},
}

var indexCollisionsCmd = &cobra.Command{
	Use:   "collisions",
	Short: "Report ids, sorting keys and content shared between blocks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := openIndex()
		if err != nil {
			return err
		}
		defer func() { _ = ix.Close() }()

		total, err := ix.Count()
		if err != nil {
			return err
		}

		ids, err := ix.DuplicateIDs()
		if err != nil {
			return err
		}
		keys, err := ix.SortingKeyCollisions()
		if err != nil {
			return err
		}
		content, err := ix.DuplicateContent()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d block(s) indexed\n\n", total)
		writeCollisions(out, "Duplicate block ids", ids)
		writeCollisions(out, "Sorting key collisions", keys)
		writeCollisions(out, "Shared content", content)
		return nil
	},
}

func openIndex() (*blockindex.Index, error) {
	path := indexPath
	if path == "" {
		path = currentConfig().Index.Path
	}
	internal.LogDebug("Opening block index %s", path)
	return blockindex.Open(path)
}

func writeCollisions(w io.Writer, title string, collisions []blockindex.Collision) {
	if len(collisions) == 0 {
		fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("✅ %s: none", title)))
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("⚠️  %s: %d", title, len(collisions))))
	for _, c := range collisions {
		fmt.Fprintf(w, "%s\n", c.Key)
		fmt.Fprintln(w, renderEntries(c.Entries))
	}
	fmt.Fprintln(w)
}

func renderEntries(entries []blockindex.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Document,
			e.NotebookID,
			strconv.Itoa(e.Position),
			e.BlockID,
			e.BlockType,
			e.SortingKey,
		})
	}
	return renderTable(
		[]string{"DOCUMENT", "NOTEBOOK", "POS", "BLOCK ID", "TYPE", "SORTING KEY"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
	)
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.PersistentFlags().StringVar(&indexPath, "db", "", "Index database path (default from config)")
	indexCmd.AddCommand(indexAddCmd, indexRemoveCmd, indexLookupCmd, indexCollisionsCmd)
}
