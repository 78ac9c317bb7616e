package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/codetype/internal/model"
)

func session(id int64, algo string, typed, mistakes int, durationMs int64, ended time.Time) model.SessionAggregate {
	return model.SessionAggregate{
		SessionID:   id,
		EndedAt:     ended,
		AlgorithmID: algo,
		Language:    "python",
		TypedChars:  typed,
		Mistakes:    mistakes,
		DurationMs:  durationMs,
	}
}

func TestSessionMetrics(t *testing.T) {
	wpm, acc := SessionMetrics(100, 5, 60000)
	if wpm != 20 || acc != 95 {
		t.Fatalf("expected 20 WPM / 95%%, got %d / %d", wpm, acc)
	}
	wpm, acc = SessionMetrics(0, 0, 0)
	if wpm != 0 || acc != 0 {
		t.Fatalf("expected zero metrics, got %d / %d", wpm, acc)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	same := MovingAverage([]float64{1, 2}, 1)
	if same[0] != 1 || same[1] != 2 {
		t.Fatalf("window 1 should copy values, got %v", same)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 50, 100}); got != " +@" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{3, 3}); got != "++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	if Sparkline(nil) != "" {
		t.Fatalf("expected empty sparkline")
	}
}

func TestSummarizeAlgorithms(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	sessions := []model.SessionAggregate{
		session(1, "dfs", 100, 0, 60000, base),
		session(2, "bfs", 50, 5, 60000, base.Add(time.Hour)),
		session(3, "dfs", 200, 20, 60000, base.Add(2*time.Hour)),
	}
	sums := SummarizeAlgorithms(sessions)
	if len(sums) != 2 {
		t.Fatalf("expected 2 algorithms, got %d", len(sums))
	}
	if sums[0].AlgorithmID != "dfs" {
		t.Fatalf("expected most recent algorithm first, got %+v", sums)
	}
	dfs := sums[0]
	if dfs.Attempts != 2 || dfs.BestWPM != 40 || dfs.LastWPM != 40 || dfs.AvgAccuracy != 95 {
		t.Fatalf("unexpected dfs summary: %+v", dfs)
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestRenderSummaryAndCurves(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	sessions := []model.SessionAggregate{
		session(1, "dfs", 100, 0, 60000, base),
		session(2, "dfs", 300, 0, 60000, base.Add(time.Minute)),
	}
	var buf bytes.Buffer
	if err := RenderSummary(&buf, sessions); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if err := RenderCurves(&buf, sessions, 1); err != nil {
		t.Fatalf("render curves: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sessions: 2", "Best WPM: 60", "Avg WPM: 40.0", "Learning Curves", "WPM"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCharRowsSortedByAccuracy(t *testing.T) {
	rows := CharRows([]model.CharAggregate{
		{Char: "a", Correct: 9, Incorrect: 1},
		{Char: " ", Correct: 1, Incorrect: 1},
		{Char: "(", Correct: 1, Incorrect: 3, LatencySumMs: 600, LatencyCount: 3},
	})
	if rows[0].Label != "(" || rows[1].Label != "<space>" || rows[2].Label != "a" {
		t.Fatalf("unexpected order: %+v", rows)
	}
	if rows[0].Latency != 200 {
		t.Fatalf("unexpected latency: %v", rows[0].Latency)
	}
}
