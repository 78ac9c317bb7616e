package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/codetype/internal/config"
	"github.com/verte-zerg/codetype/internal/curriculum"
	"github.com/verte-zerg/codetype/internal/model"
	"github.com/verte-zerg/codetype/internal/store"
)

func TestFlagsOverrideConfig(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.Flags().Set("weak-top", "3"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	lang := "python"
	weakTop := 10
	linear := true
	applyPracticeConfig(cmd, config.PracticeConfig{Lang: &lang, WeakTop: &weakTop, Linear: &linear})

	cfg, err := buildPracticeConfig()
	if err != nil {
		t.Fatalf("build config: %v", err)
	}
	if cfg.Language != "python" || cfg.WeakTop != 3 || !cfg.Linear {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestValidateConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  model.Config
		ok   bool
	}{
		{name: "defaults", cfg: model.Config{WeakTop: 8, WeakFactor: 2, WeakWindow: 20}, ok: true},
		{name: "algo and random", cfg: model.Config{Algorithm: "dfs", Random: true}},
		{name: "negative top", cfg: model.Config{WeakTop: -1}},
		{name: "negative factor", cfg: model.Config{WeakFactor: -0.5}},
		{name: "negative window", cfg: model.Config{WeakWindow: -2}},
	}
	for _, tc := range cases {
		err := validateConfig(tc.cfg)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestBuildPracticeConfigRejectsLanguage(t *testing.T) {
	newRootCmd()
	practiceLang = "cobol"
	if _, err := buildPracticeConfig(); err == nil || !strings.Contains(err.Error(), "--lang") {
		t.Fatalf("expected --lang error, got %v", err)
	}
}

func TestBuildStatsConfig(t *testing.T) {
	newStatsCmd()
	statsLang = "C#"
	statsSince = "2026-03-01"
	statsAlgo = " dfs "
	cfg, err := buildStatsConfig()
	if err != nil {
		t.Fatalf("build stats config: %v", err)
	}
	if cfg.Language != "csharp" || cfg.Algorithm != "dfs" || cfg.CurveWindow != defaultCurveWindow {
		t.Fatalf("unexpected stats config: %+v", cfg)
	}
	if cfg.Since == nil || cfg.Since.Day() != 1 || cfg.Since.Month() != time.March {
		t.Fatalf("unexpected since: %v", cfg.Since)
	}

	statsSince = "March"
	if _, err := buildStatsConfig(); err == nil {
		t.Fatalf("expected since error")
	}
	statsSince = ""
	statsCurveWindow = 0
	if _, err := buildStatsConfig(); err == nil {
		t.Fatalf("expected curve window error")
	}
}

func TestBuildListQuery(t *testing.T) {
	newListCmd()
	listDifficulty = "easy, hard"
	listLang = "py"
	q, err := buildListQuery()
	if err != nil {
		t.Fatalf("build list query: %v", err)
	}
	if len(q.Difficulties) != 2 || q.Language != curriculum.Python {
		t.Fatalf("unexpected query: %+v", q)
	}
	listDifficulty = "trivial"
	if _, err := buildListQuery(); err == nil {
		t.Fatalf("expected difficulty error")
	}
	listDifficulty = ""
	listLang = ""
}

func TestWriteListGroupsByDifficulty(t *testing.T) {
	catalog, err := curriculum.Builtin()
	if err != nil {
		t.Fatalf("load curriculum: %v", err)
	}
	entries := catalog.Filter(curriculum.Query{Search: "search"})
	var buf bytes.Buffer
	if err := writeList(&buf, entries, 140); err != nil {
		t.Fatalf("write list: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"EASY", "binary-search", "Binary Search", "Searching"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "EXPERT") {
		t.Fatalf("expected empty groups to be skipped:\n%s", out)
	}
}

func TestWriteLangs(t *testing.T) {
	catalog, err := curriculum.Builtin()
	if err != nil {
		t.Fatalf("load curriculum: %v", err)
	}
	var buf bytes.Buffer
	if err := writeLangs(&buf, catalog); err != nil {
		t.Fatalf("write langs: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(curriculum.LanguageOptions) {
		t.Fatalf("expected %d lines, got %d", len(curriculum.LanguageOptions), len(lines))
	}
	if !strings.HasPrefix(lines[0], "typescript") || !strings.Contains(lines[4], "C#") {
		t.Fatalf("unexpected langs output:\n%s", buf.String())
	}
}

func TestDefaultConfigTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codetype", "config.toml")
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Practice.Lang != nil || cfg.LogLevel() != "info" {
		t.Fatalf("expected commented template, got %+v", cfg)
	}
}

func TestWritePlainStats(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "codetype.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	ctx := context.Background()
	start := time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC)
	for i, typed := range []int{100, 150} {
		begin := start.Add(time.Duration(i) * time.Hour)
		_, err := st.InsertSession(ctx, model.SessionStats{
			StartedAt:   begin,
			EndedAt:     begin.Add(30 * time.Second),
			AlgorithmID: "binary-search",
			Language:    "python",
			TypedChars:  typed,
			Mistakes:    1,
			DurationMs:  30000,
		}, []model.CharStats{{Char: "(", Correct: 3, Incorrect: 1}})
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
	}

	var buf bytes.Buffer
	cfg := model.StatsConfig{Language: "python", CurveWindow: 2}
	if err := writePlainStats(ctx, &buf, st, cfg); err != nil {
		t.Fatalf("write stats: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 2", "Best WPM: 60", "Learning Curves", "binary-search", "Per-Character"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := writePlainStats(ctx, &buf, st, model.StatsConfig{Language: "java", CurveWindow: 1}); err != nil {
		t.Fatalf("write empty stats: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No sessions found." {
		t.Fatalf("unexpected empty output %q", buf.String())
	}
}
