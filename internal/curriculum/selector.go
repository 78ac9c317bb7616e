package curriculum

import (
	"math/rand"
	"time"
)

// Selector picks practice entries.
type Selector struct {
	rnd *rand.Rand
}

// NewSelector returns a Selector seeded with the current time.
func NewSelector() *Selector {
	return &Selector{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSelectorWithSeed returns a deterministic Selector.
func NewSelectorWithSeed(seed int64) *Selector {
	return &Selector{rnd: rand.New(rand.NewSource(seed))}
}

// Random picks an entry uniformly. ok is false for an empty slice.
func (s *Selector) Random(entries []AlgorithmEntry) (AlgorithmEntry, bool) {
	if len(entries) == 0 {
		return AlgorithmEntry{}, false
	}
	return entries[s.rnd.Intn(len(entries))], true
}

// Weighted picks an entry with a bias toward snippets dense in weak
// characters. An entry's weight is 1 + factor * (weak runes per 100 runes of
// its lang variant).
func (s *Selector) Weighted(entries []AlgorithmEntry, lang Language, weakSet map[rune]struct{}, factor float64) (AlgorithmEntry, bool) {
	if len(entries) == 0 {
		return AlgorithmEntry{}, false
	}
	if len(weakSet) == 0 || factor <= 0 {
		return s.Random(entries)
	}
	weights := make([]float64, len(entries))
	total := 0.0
	for i, e := range entries {
		w := 1.0 + WeakDensity(e, lang, weakSet)*factor
		weights[i] = w
		total += w
	}

	r := s.rnd.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r <= acc {
			return entries[i], true
		}
	}
	return entries[len(entries)-1], true
}

// WeakDensity returns weak runes per 100 runes of the entry's lang variant.
func WeakDensity(e AlgorithmEntry, lang Language, weakSet map[rune]struct{}) float64 {
	code, _ := e.Code(lang)
	total := 0
	weak := 0
	for _, r := range code {
		total++
		if _, ok := weakSet[r]; ok {
			weak++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(weak) / float64(total) * 100
}
