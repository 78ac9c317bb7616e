package curriculum

import (
	"fmt"
	"strings"
)

// Query narrows the catalog. Zero values match everything.
type Query struct {
	Search       string
	Category     string
	Difficulties []Difficulty
	Language     Language
}

// Match reports whether e satisfies q.
func (q Query) Match(e AlgorithmEntry) bool {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	if search != "" &&
		!strings.Contains(strings.ToLower(e.Title), search) &&
		!strings.Contains(strings.ToLower(e.Description), search) &&
		!strings.Contains(strings.ToLower(e.Category), search) {
		return false
	}
	if q.Category != "" && q.Category != "all" && !strings.EqualFold(q.Category, e.Category) {
		return false
	}
	if len(q.Difficulties) > 0 {
		found := false
		for _, d := range q.Difficulties {
			if d == e.Difficulty {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.Language != "" && !e.HasVariant(q.Language) {
		return false
	}
	return true
}

// Filter returns the entries matching q, in catalog order.
func (c *Catalog) Filter(q Query) []AlgorithmEntry {
	out := make([]AlgorithmEntry, 0, len(c.entries))
	for _, e := range c.entries {
		if q.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Group holds the entries of one difficulty.
type Group struct {
	Difficulty Difficulty
	Entries    []AlgorithmEntry
}

// GroupByDifficulty buckets entries from easy to expert. Every difficulty is
// present, possibly empty.
func GroupByDifficulty(entries []AlgorithmEntry) []Group {
	groups := make([]Group, len(Difficulties))
	for i, d := range Difficulties {
		groups[i].Difficulty = d
		for _, e := range entries {
			if e.Difficulty == d {
				groups[i].Entries = append(groups[i].Entries, e)
			}
		}
	}
	return groups
}

// ParseDifficulties parses a comma separated list such as "easy,hard".
func ParseDifficulties(s string) ([]Difficulty, error) {
	var out []Difficulty
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		d := Difficulty(part)
		if !d.Valid() {
			return nil, fmt.Errorf("unknown difficulty %q (available: easy, medium, hard, expert)", part)
		}
		out = append(out, d)
	}
	return out, nil
}
