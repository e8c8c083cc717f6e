package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/deepnote-bridge/internal"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// notebookReport collects what check found in one notebook
type notebookReport struct {
	Notebook string
	Errors   []string
	Warnings []string
}

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <file.deepnote>",
	Short: "Check that a document survives conversion unchanged",
	Long: `Check a .deepnote document by verifying:
  • The document parses and has a project id
  • Block ids are unique within each notebook
  • Every block has a sorting key and no two blocks share one
  • Converting each notebook to the host and back keeps ids, types,
    sorting keys, content and execution counts

Outputs that the host cannot represent are reported as warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sectionStyle.Render("🔍 Deepnote Document Check"))
		fmt.Fprintln(out)

		fmt.Fprintln(out, infoStyle.Render("Step 1: Reading document..."))
		doc, err := internal.ReadDeepnoteFile(args[0])
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Failed to read document:"), err)
			return err
		}
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Project %s with %d notebook(s)", doc.Project.ID, len(doc.Project.Notebooks))))
		fmt.Fprintln(out)

		fmt.Fprintln(out, infoStyle.Render("Step 2: Checking notebooks..."))
		conv := newNotebookConverter()
		conv.DedupeBlockIDs = false

		errorCount, warningCount := 0, 0
		for i := range doc.Project.Notebooks {
			report := checkNotebook(conv, &doc.Project.Notebooks[i])
			writeReport(out, report)
			errorCount += len(report.Errors)
			warningCount += len(report.Warnings)
		}
		fmt.Fprintln(out)

		fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		fmt.Fprintln(out)
		switch {
		case errorCount > 0:
			fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("❌ Check failed: %d error(s), %d warning(s)", errorCount, warningCount)))
			return fmt.Errorf("check failed: %d error(s)", errorCount)
		case warningCount > 0:
			fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("⚠️  Check passed with %d warning(s)", warningCount)))
		default:
			fmt.Fprintln(out, successStyle.Render("✅ Check passed!"))
		}
		return nil
	},
}

func writeReport(w io.Writer, report notebookReport) {
	if len(report.Errors) == 0 && len(report.Warnings) == 0 {
		fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("✅ %s", report.Notebook)))
		return
	}

	if len(report.Errors) > 0 {
		fmt.Fprintln(w, errorStyle.Render(fmt.Sprintf("❌ %s", report.Notebook)))
	} else {
		fmt.Fprintln(w, warningStyle.Render(fmt.Sprintf("⚠️  %s", report.Notebook)))
	}
	for _, e := range report.Errors {
		fmt.Fprintf(w, "   • %s\n", e)
	}
	for _, warn := range report.Warnings {
		fmt.Fprintf(w, "   • warning: %s\n", warn)
	}
}

func checkNotebook(conv *internal.NotebookConverter, nb *internal.DeepnoteNotebook) notebookReport {
	report := notebookReport{Notebook: fmt.Sprintf("%s (%s)", nb.Name, nb.ID)}

	ids := make(map[string]int, len(nb.Blocks))
	keys := make(map[string]int, len(nb.Blocks))
	for i, block := range nb.Blocks {
		if block.ID == "" {
			report.Errors = append(report.Errors, fmt.Sprintf("block %d has no id", i))
		} else if first, ok := ids[block.ID]; ok {
			report.Errors = append(report.Errors, fmt.Sprintf("blocks %d and %d share id %s", first, i, block.ID))
		} else {
			ids[block.ID] = i
		}

		if block.SortingKey == "" {
			report.Errors = append(report.Errors, fmt.Sprintf("block %s has no sorting key", block.ID))
		} else if first, ok := keys[block.SortingKey]; ok {
			report.Warnings = append(report.Warnings, fmt.Sprintf("blocks %d and %d share sorting key %s", first, i, block.SortingKey))
		} else {
			keys[block.SortingKey] = i
		}
	}

	errs, warnings := roundTripProblems(conv, nb)
	report.Errors = append(report.Errors, errs...)
	report.Warnings = append(report.Warnings, warnings...)
	return report
}

// roundTripProblems converts a notebook to the host and back and compares
// the result with the stored blocks in sorting-key order
func roundTripProblems(conv *internal.NotebookConverter, nb *internal.DeepnoteNotebook) (errs, warnings []string) {
	data, err := conv.ToHost(nb)
	if err != nil {
		return []string{fmt.Sprintf("conversion to host failed: %v", err)}, nil
	}
	back, err := conv.ToDeepnote(data)
	if err != nil {
		return []string{fmt.Sprintf("conversion back failed: %v", err)}, nil
	}

	want := internal.SortBlocks(nb.Blocks)
	if len(back) != len(want) {
		return []string{fmt.Sprintf("round trip produced %d block(s), want %d", len(back), len(want))}, nil
	}

	for i := range want {
		w, g := &want[i], &back[i]
		if w.ID == "" {
			continue
		}
		if g.ID != w.ID {
			errs = append(errs, fmt.Sprintf("block %s came back with id %s", w.ID, g.ID))
			continue
		}
		if g.Type != w.Type {
			errs = append(errs, fmt.Sprintf("block %s type %q became %q", w.ID, w.Type, g.Type))
		}
		if g.SortingKey != w.SortingKey {
			errs = append(errs, fmt.Sprintf("block %s sorting key %q became %q", w.ID, w.SortingKey, g.SortingKey))
		}
		if g.Content != w.Content {
			errs = append(errs, fmt.Sprintf("block %s content changed", w.ID))
		}
		if !sameExecutionCount(w.ExecutionCount, g.ExecutionCount) {
			errs = append(errs, fmt.Sprintf("block %s execution count changed", w.ID))
		}
		if len(g.Outputs) != len(w.Outputs) {
			warnings = append(warnings, fmt.Sprintf("block %s kept %d of %d output(s)", w.ID, len(g.Outputs), len(w.Outputs)))
		}
	}
	return errs, warnings
}

func sameExecutionCount(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
