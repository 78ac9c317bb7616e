package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/codetype/internal/config"
	"github.com/verte-zerg/codetype/internal/curriculum"
)

const terminalWidthBackup = 100

var (
	listSearch     string
	listCategory   string
	listDifficulty string
	listLang       string
)

var (
	groupStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C0C0C0")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Padding(0, 1)
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List curriculum algorithms grouped by difficulty",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
	cmd.Flags().StringVar(&listSearch, "search", "", "match title, description or category")
	cmd.Flags().StringVar(&listCategory, "category", "", "category filter")
	cmd.Flags().StringVar(&listDifficulty, "difficulty", "", "comma separated difficulties (easy,medium,hard,expert)")
	cmd.Flags().StringVar(&listLang, "lang", "", "only algorithms with this language variant")
	return cmd
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	q, err := buildListQuery()
	if err != nil {
		return err
	}
	catalog, err := curriculum.Load(config.DefaultCurriculumDir())
	if err != nil {
		return err
	}
	entries := catalog.Filter(q)
	if len(entries) == 0 {
		logErrln("No algorithms match the given filters.")
		return nil
	}
	return writeList(cmd.OutOrStdout(), entries, terminalWidth())
}

func buildListQuery() (curriculum.Query, error) {
	q := curriculum.Query{Search: listSearch, Category: listCategory}
	if listDifficulty != "" {
		diffs, err := curriculum.ParseDifficulties(listDifficulty)
		if err != nil {
			return curriculum.Query{}, fmt.Errorf("invalid --difficulty value: %w", err)
		}
		q.Difficulties = diffs
	}
	if listLang != "" {
		lang, err := curriculum.ParseLanguage(listLang)
		if err != nil {
			return curriculum.Query{}, fmt.Errorf("invalid --lang value: %w", err)
		}
		q.Language = lang
	}
	return q, nil
}

func writeList(w io.Writer, entries []curriculum.AlgorithmEntry, width int) error {
	for _, group := range curriculum.GroupByDifficulty(entries) {
		if len(group.Entries) == 0 {
			continue
		}
		title := fmt.Sprintf("%s (%d)", strings.ToUpper(string(group.Difficulty)), len(group.Entries))
		if _, err := fmt.Fprintln(w, groupStyle.Render(title)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if _, err := fmt.Fprintln(w, listTable(group.Entries, width).Render()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func listTable(entries []curriculum.AlgorithmEntry, width int) *table.Table {
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{e.ID, e.Title, e.Category, e.Runtime, variantLabels(e)}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("ID", "Title", "Category", "Runtime", "Languages").
		Rows(rows...).
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return idStyle
			default:
				return cellStyle
			}
		})
}

func variantLabels(e curriculum.AlgorithmEntry) string {
	labels := make([]string, 0, len(e.Variants))
	for _, opt := range curriculum.LanguageOptions {
		if e.HasVariant(opt.Value) {
			labels = append(labels, opt.Label)
		}
	}
	return strings.Join(labels, ", ")
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
