package game

import (
	"math"
	"time"
)

// charsPerWord is the standard typing-test word length.
const charsPerWord = 5

// Result holds the derived statistics for a session.
type Result struct {
	WPM      int
	Accuracy int
	Mistakes int
	Typed    int
	Elapsed  time.Duration
}

func newResult(typed, mistakes int, elapsed time.Duration) Result {
	correct := typed - mistakes
	if correct < 0 {
		correct = 0
	}
	return Result{
		WPM:      WordsPerMinute(typed, elapsed.Milliseconds()),
		Accuracy: AccuracyPercent(correct, typed),
		Mistakes: mistakes,
		Typed:    typed,
		Elapsed:  elapsed,
	}
}

// WordsPerMinute returns rounded WPM, or 0 for degenerate input.
func WordsPerMinute(totalChars int, elapsedMs int64) int {
	if elapsedMs <= 0 || totalChars <= 0 {
		return 0
	}
	minutes := float64(elapsedMs) / 60000.0
	return int(math.Round((float64(totalChars) / charsPerWord) / minutes))
}

// AccuracyPercent returns rounded accuracy in percent, or 0 when total <= 0.
func AccuracyPercent(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
