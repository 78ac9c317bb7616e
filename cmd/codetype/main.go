// Package main provides the CLI entrypoint for codetype.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/codetype/internal/config"
	"github.com/verte-zerg/codetype/internal/curriculum"
	"github.com/verte-zerg/codetype/internal/logging"
	"github.com/verte-zerg/codetype/internal/model"
	"github.com/verte-zerg/codetype/internal/picker"
	"github.com/verte-zerg/codetype/internal/stats"
	"github.com/verte-zerg/codetype/internal/statsui"
	"github.com/verte-zerg/codetype/internal/store"
	"github.com/verte-zerg/codetype/internal/tui"
)

const (
	defaultLang        = string(curriculum.TypeScript)
	defaultWeakTop     = 8
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultCurveWindow = 20
)

var (
	practiceAlgo       string
	practiceLang       string
	practiceLinear     bool
	practiceRandom     bool
	practiceFocusWeak  bool
	practiceWeakTop    int
	practiceWeakFactor float64
	practiceWeakWindow int

	statsLang        string
	statsAlgo        string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "codetype",
		Short:         "Typing trainer for algorithm source code",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceAlgo, "algo", "", "algorithm id to practice (see: codetype list)")
	rootCmd.Flags().StringVar(&practiceLang, "lang", defaultLang, "source language variant")
	rootCmd.Flags().BoolVar(&practiceLinear, "linear", false, "type the snippet as a single line")
	rootCmd.Flags().BoolVar(&practiceRandom, "random", false, "start with a random algorithm instead of the picker")
	rootCmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", false, "bias algorithm choice toward weak characters")
	rootCmd.Flags().IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak characters to focus on")
	rootCmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak characters")
	rootCmd.Flags().IntVar(&practiceWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions to compute weak chars")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyPracticeConfig(cmd, fileCfg.Practice)

	cfg, err := buildPracticeConfig()
	if err != nil {
		return err
	}

	logger, closeLog := openLogger(fileCfg)
	defer closeLog()

	catalog, err := curriculum.Load(config.DefaultCurriculumDir())
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	selector := curriculum.NewSelector()
	weakSet := loadWeakSet(ctx, st, cfg, logger)

	entry, pool, ok, err := chooseEntry(ctx, catalog, st, selector, weakSet, &cfg, logger)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	logger.Info().
		Str("algorithm", entry.ID).
		Str("language", cfg.Language).
		Bool("linear", cfg.Linear).
		Msg("practice started")

	m := tui.NewModel(tui.Options{
		Config:   cfg,
		Entry:    entry,
		Pool:     pool,
		Store:    st,
		Selector: selector,
		WeakSet:  weakSet,
		Logger:   logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func applyPracticeConfig(cmd *cobra.Command, practice config.PracticeConfig) {
	applyStringConfig(cmd, "lang", &practiceLang, practice.Lang)
	applyBoolConfig(cmd, "linear", &practiceLinear, practice.Linear)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, practice.FocusWeak)
	applyIntConfig(cmd, "weak-top", &practiceWeakTop, practice.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, practice.WeakFactor)
	applyIntConfig(cmd, "weak-window", &practiceWeakWindow, practice.WeakWindow)
}

func buildPracticeConfig() (model.Config, error) {
	lang, err := curriculum.ParseLanguage(practiceLang)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid --lang value: %w", err)
	}
	cfg := model.Config{
		Language:   string(lang),
		Algorithm:  strings.TrimSpace(practiceAlgo),
		Linear:     practiceLinear,
		Random:     practiceRandom,
		FocusWeak:  practiceFocusWeak,
		WeakTop:    practiceWeakTop,
		WeakFactor: practiceWeakFactor,
		WeakWindow: practiceWeakWindow,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.Algorithm != "" && cfg.Random {
		return fmt.Errorf("--algo and --random are mutually exclusive")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
}

func loadWeakSet(ctx context.Context, st *store.Store, cfg model.Config, logger zerolog.Logger) map[rune]struct{} {
	weakSet := map[rune]struct{}{}
	if !cfg.FocusWeak {
		return weakSet
	}
	aggs, err := st.GetWeakChars(ctx, cfg.WeakWindow, cfg.Language)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load weak chars")
		logErrf("failed to load weak chars: %v\n", err)
		return weakSet
	}
	weakSet = stats.SelectWeakChars(aggs, cfg.WeakTop)
	if len(weakSet) == 0 {
		logErrln("no stats available for weak-char focus yet; picking algorithms uniformly")
	}
	return weakSet
}

// chooseEntry resolves the first algorithm of the run and the pool "next"
// draws from. ok is false when the user closed the picker without choosing.
func chooseEntry(
	ctx context.Context,
	catalog *curriculum.Catalog,
	st *store.Store,
	selector *curriculum.Selector,
	weakSet map[rune]struct{},
	cfg *model.Config,
	logger zerolog.Logger,
) (curriculum.AlgorithmEntry, []curriculum.AlgorithmEntry, bool, error) {
	pool := catalog.Entries()
	switch {
	case cfg.Algorithm != "":
		entry, err := catalog.Lookup(cfg.Algorithm)
		if err != nil {
			return curriculum.AlgorithmEntry{}, nil, false, fmt.Errorf("%w (run: codetype list)", err)
		}
		return entry, pool, true, nil
	case cfg.Random:
		entry, ok := pickEntry(selector, pool, cfg, weakSet)
		if !ok {
			return curriculum.AlgorithmEntry{}, nil, false, errors.New("curriculum is empty")
		}
		return entry, pool, true, nil
	}

	best, err := st.BestWPMs(ctx, cfg.Language)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load best wpm")
	}
	p := picker.New(catalog, curriculum.Language(cfg.Language), best, logger)
	if _, err := tea.NewProgram(p, tea.WithAltScreen()).Run(); err != nil {
		return curriculum.AlgorithmEntry{}, nil, false, fmt.Errorf("failed to run picker: %w", err)
	}
	entry, ok := p.Selected()
	if !ok {
		return curriculum.AlgorithmEntry{}, nil, false, nil
	}
	cfg.Language = string(p.Language())
	cfg.Algorithm = entry.ID
	if filtered := catalog.Filter(p.Query()); len(filtered) > 1 {
		pool = filtered
	}
	return entry, pool, true, nil
}

func pickEntry(selector *curriculum.Selector, pool []curriculum.AlgorithmEntry, cfg *model.Config, weakSet map[rune]struct{}) (curriculum.AlgorithmEntry, bool) {
	if cfg.FocusWeak {
		return selector.Weighted(pool, curriculum.Language(cfg.Language), weakSet, cfg.WeakFactor)
	}
	return selector.Random(pool)
}

func openLogger(fileCfg config.FileConfig) (zerolog.Logger, func()) {
	logger, closeFn, err := logging.Open(fileCfg.LogFile(), fileCfg.LogLevel())
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		return zerolog.Nop(), func() {}
	}
	return logger, func() {
		if cerr := closeFn(); cerr != nil {
			// Best-effort close of the log file.
			_ = cerr
		}
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig creates the commented template at path unless a file is
// already there.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List supported languages and how many algorithms ship each",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	catalog, err := curriculum.Load(config.DefaultCurriculumDir())
	if err != nil {
		return err
	}
	return writeLangs(cmd.OutOrStdout(), catalog)
}

func writeLangs(w io.Writer, catalog *curriculum.Catalog) error {
	counts := catalog.VariantCounts()
	for _, opt := range curriculum.LanguageOptions {
		if _, err := fmt.Fprintf(w, "%-12s %-11s %d/%d\n", opt.Value, opt.Label, counts[opt.Value], catalog.Len()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&statsAlgo, "algo", "", "algorithm id filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print stats instead of opening the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildStatsConfig()
	if err != nil {
		return err
	}

	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, closeLog := openLogger(fileCfg)
	defer closeLog()

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return writePlainStats(ctx, cmd.OutOrStdout(), st, cfg)
	}

	m := statsui.NewModel(st, cfg, logger)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func buildStatsConfig() (model.StatsConfig, error) {
	cfg := model.StatsConfig{
		Algorithm:   strings.TrimSpace(statsAlgo),
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}
	if statsLang != "" {
		lang, err := curriculum.ParseLanguage(statsLang)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --lang value: %w", err)
		}
		cfg.Language = string(lang)
	}
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	if cfg.Last < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if cfg.CurveWindow <= 0 {
		return model.StatsConfig{}, fmt.Errorf("--curve-window must be > 0")
	}
	return cfg, nil
}

func writePlainStats(ctx context.Context, w io.Writer, src stats.Source, cfg model.StatsConfig) error {
	report, err := stats.BuildReport(ctx, src, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := stats.RenderSummary(w, report.Sessions); err != nil {
		return err
	}
	if len(report.Sessions) == 0 {
		return nil
	}
	if err := stats.RenderCurves(w, report.Sessions, cfg.CurveWindow); err != nil {
		return err
	}
	if err := stats.RenderAlgorithmTable(w, report.Sessions); err != nil {
		return err
	}
	return stats.RenderCharTable(w, report.CharAggsWindow)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# codetype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lang = %q       # typescript, javascript, python, java, csharp or c
# linear = false            # Type snippets as a single line
# focus-weak = false        # Bias algorithm choice toward weak characters
# weak-top = %d              # Number of weak characters to focus on
# weak-factor = %.1f         # Weight factor for weak characters
# weak-window = %d          # Number of recent sessions to compute weak chars

[log]
# level = "info"            # trace, debug, info, warn or error
# file = %q
`,
		defaultLang,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
		config.DefaultLogPath(),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
