// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/codetype/internal/game"
	"github.com/verte-zerg/codetype/internal/model"
)

const sparkChars = " .:-=+*#%@"

// SessionMetrics computes rounded WPM and accuracy for a stored session using
// the same formulas as the live engine.
func SessionMetrics(typed, mistakes int, durationMs int64) (wpm, accuracy int) {
	correct := typed - mistakes
	if correct < 0 {
		correct = 0
	}
	return game.WordsPerMinute(typed, durationMs), game.AccuracyPercent(correct, typed)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// Series returns per-session WPM and accuracy values, smoothed over window.
func Series(sessions []model.SessionAggregate, window int) (wpms, accs []float64) {
	wpms = make([]float64, len(sessions))
	accs = make([]float64, len(sessions))
	for i, s := range sessions {
		wpm, acc := SessionMetrics(s.TypedChars, s.Mistakes, s.DurationMs)
		wpms[i] = float64(wpm)
		accs[i] = float64(acc)
	}
	return MovingAverage(wpms, window), MovingAverage(accs, window)
}

// Summary aggregates a list of sessions.
type Summary struct {
	Sessions    int
	AvgWPM      float64
	BestWPM     int
	AvgAccuracy float64
	TotalTime   time.Duration
	Algorithms  int
}

// Summarize computes overall numbers for sessions.
func Summarize(sessions []model.SessionAggregate) Summary {
	sum := Summary{Sessions: len(sessions)}
	if len(sessions) == 0 {
		return sum
	}
	seen := map[string]struct{}{}
	var totalWPM, totalAcc float64
	for _, s := range sessions {
		wpm, acc := SessionMetrics(s.TypedChars, s.Mistakes, s.DurationMs)
		totalWPM += float64(wpm)
		totalAcc += float64(acc)
		sum.BestWPM = max(sum.BestWPM, wpm)
		sum.TotalTime += time.Duration(s.DurationMs) * time.Millisecond
		seen[s.AlgorithmID] = struct{}{}
	}
	count := float64(len(sessions))
	sum.AvgWPM = totalWPM / count
	sum.AvgAccuracy = totalAcc / count
	sum.Algorithms = len(seen)
	return sum
}

// RenderSummary prints a summary block for sessions.
func RenderSummary(w io.Writer, sessions []model.SessionAggregate) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	sum := Summarize(sessions)
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", sum.Sessions),
		fmt.Sprintf("Algorithms: %d", sum.Algorithms),
		fmt.Sprintf("Avg WPM: %.1f", sum.AvgWPM),
		fmt.Sprintf("Best WPM: %d", sum.BestWPM),
		fmt.Sprintf("Avg Accuracy: %.1f%%", sum.AvgAccuracy),
		fmt.Sprintf("Time typed: %s", sum.TotalTime.Round(time.Second)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderCurves prints smoothed WPM and accuracy sparklines.
func RenderCurves(w io.Writer, sessions []model.SessionAggregate, window int) error {
	if len(sessions) < 2 {
		return nil
	}
	wpms, accs := Series(sessions, window)
	if _, err := fmt.Fprintf(w, "Learning Curves (window %d)\n", max(window, 1)); err != nil {
		return err
	}
	rows := [][]string{
		{"WPM", Sparkline(wpms), fmt.Sprintf("%.0f", wpms[len(wpms)-1])},
		{"Accuracy", Sparkline(accs), fmt.Sprintf("%.0f%%", accs[len(accs)-1])},
	}
	for _, line := range formatTable(nil, rows, map[int]bool{2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// AlgorithmSummary aggregates sessions of one algorithm.
type AlgorithmSummary struct {
	AlgorithmID string
	Attempts    int
	BestWPM     int
	LastWPM     int
	AvgAccuracy float64
	LastPlayed  time.Time
}

// SummarizeAlgorithms groups sessions by algorithm, most recently practiced first.
func SummarizeAlgorithms(sessions []model.SessionAggregate) []AlgorithmSummary {
	byID := map[string]*AlgorithmSummary{}
	accTotals := map[string]float64{}
	for _, s := range sessions {
		wpm, acc := SessionMetrics(s.TypedChars, s.Mistakes, s.DurationMs)
		sum, ok := byID[s.AlgorithmID]
		if !ok {
			sum = &AlgorithmSummary{AlgorithmID: s.AlgorithmID}
			byID[s.AlgorithmID] = sum
		}
		sum.Attempts++
		sum.BestWPM = max(sum.BestWPM, wpm)
		accTotals[s.AlgorithmID] += float64(acc)
		if !s.EndedAt.Before(sum.LastPlayed) {
			sum.LastPlayed = s.EndedAt
			sum.LastWPM = wpm
		}
	}
	out := make([]AlgorithmSummary, 0, len(byID))
	for id, sum := range byID {
		sum.AvgAccuracy = accTotals[id] / float64(sum.Attempts)
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastPlayed.Equal(out[j].LastPlayed) {
			return out[i].AlgorithmID < out[j].AlgorithmID
		}
		return out[i].LastPlayed.After(out[j].LastPlayed)
	})
	return out
}

// AlgorithmRows formats algorithm summaries as table cells.
func AlgorithmRows(sums []AlgorithmSummary) [][]string {
	rows := make([][]string, 0, len(sums))
	for _, s := range sums {
		rows = append(rows, []string{
			s.AlgorithmID,
			fmt.Sprintf("%d", s.Attempts),
			fmt.Sprintf("%d", s.BestWPM),
			fmt.Sprintf("%d", s.LastWPM),
			fmt.Sprintf("%.1f%%", s.AvgAccuracy),
			s.LastPlayed.Local().Format("2006-01-02"),
		})
	}
	return rows
}

// AlgorithmHeaders are the column titles for AlgorithmRows.
var AlgorithmHeaders = []string{"Algorithm", "Runs", "Best WPM", "Last WPM", "Accuracy", "Last"}

// RenderAlgorithmTable prints per-algorithm aggregates.
func RenderAlgorithmTable(w io.Writer, sessions []model.SessionAggregate) error {
	sums := SummarizeAlgorithms(sessions)
	if len(sums) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Algorithms"); err != nil {
		return err
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(AlgorithmHeaders, AlgorithmRows(sums), rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// CharRow is a display-ready per-character aggregate.
type CharRow struct {
	Label     string
	Accuracy  float64
	Latency   float64
	Correct   int
	Incorrect int
}

// CharRows converts aggregates into rows sorted by lowest accuracy.
func CharRows(aggs []model.CharAggregate) []CharRow {
	rows := make([]CharRow, 0, len(aggs))
	for _, agg := range aggs {
		lat := 0.0
		if agg.LatencyCount > 0 {
			lat = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
		}
		rows = append(rows, CharRow{
			Label:     CharLabel(agg.Char),
			Accuracy:  accuracy(agg),
			Latency:   lat,
			Correct:   agg.Correct,
			Incorrect: agg.Incorrect,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Accuracy == rows[j].Accuracy {
			return rows[i].Label < rows[j].Label
		}
		return rows[i].Accuracy < rows[j].Accuracy
	})
	return rows
}

// CharHeaders are the column titles for CharCells.
var CharHeaders = []string{"Char", "Accuracy", "Avg Latency (ms)", "Correct", "Incorrect"}

// CharCells formats char rows as table cells.
func CharCells(rows []CharRow) [][]string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{
			r.Label,
			fmt.Sprintf("%.2f%%", r.Accuracy*100),
			fmt.Sprintf("%.1f", r.Latency),
			fmt.Sprintf("%d", r.Correct),
			fmt.Sprintf("%d", r.Incorrect),
		})
	}
	return cells
}

// CharLabel makes whitespace-like characters readable in tables.
func CharLabel(ch string) string {
	switch ch {
	case " ":
		return "<space>"
	case "\t":
		return "<tab>"
	case "\n":
		return "<enter>"
	}
	return ch
}

// RenderCharTable prints per-character aggregates.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Per-Character (Windowed)"); err != nil {
		return err
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(CharHeaders, CharCells(CharRows(aggs)), rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
