package curriculum

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed data/*.toml
var builtin embed.FS

// Catalog is an immutable, id-ordered set of algorithm entries.
type Catalog struct {
	entries []AlgorithmEntry
	byID    map[string]int
}

// Builtin loads the curriculum shipped with the binary.
func Builtin() (*Catalog, error) {
	entries, err := decodeDir(builtin, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in curriculum: %w", err)
	}
	return newCatalog(entries), nil
}

// Load returns the built-in curriculum merged with user entries from dir.
// Entries from dir replace built-ins with the same id. A missing dir is not
// an error.
func Load(dir string) (*Catalog, error) {
	entries, err := decodeDir(builtin, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in curriculum: %w", err)
	}
	if dir != "" {
		if _, statErr := os.Stat(dir); statErr == nil {
			user, err := decodeDir(os.DirFS(dir), ".")
			if err != nil {
				return nil, fmt.Errorf("failed to load curriculum from %s: %w", dir, err)
			}
			entries = append(entries, user...)
		} else if !errors.Is(statErr, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat curriculum dir: %w", statErr)
		}
	}
	return newCatalog(entries), nil
}

func decodeDir(fsys fs.FS, dir string) ([]AlgorithmEntry, error) {
	names, err := fs.Glob(fsys, path.Join(dir, "*.toml"))
	if err != nil {
		return nil, err
	}
	entries := make([]AlgorithmEntry, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		entry, err := Decode(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Decode parses and validates a single TOML curriculum entry.
func Decode(data string) (AlgorithmEntry, error) {
	var entry AlgorithmEntry
	if _, err := toml.Decode(data, &entry); err != nil {
		return AlgorithmEntry{}, fmt.Errorf("failed to decode entry: %w", err)
	}
	entry.Difficulty = Difficulty(strings.ToLower(string(entry.Difficulty)))
	if err := entry.validate(); err != nil {
		return AlgorithmEntry{}, err
	}
	return entry, nil
}

func newCatalog(entries []AlgorithmEntry) *Catalog {
	byID := make(map[string]AlgorithmEntry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	c := &Catalog{
		entries: make([]AlgorithmEntry, 0, len(byID)),
		byID:    make(map[string]int, len(byID)),
	}
	for _, e := range byID {
		c.entries = append(c.entries, e)
	}
	sort.Slice(c.entries, func(i, j int) bool {
		return c.entries[i].ID < c.entries[j].ID
	})
	for i, e := range c.entries {
		c.byID[e.ID] = i
	}
	return c
}

// Entries returns all entries ordered by id.
func (c *Catalog) Entries() []AlgorithmEntry {
	out := make([]AlgorithmEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Lookup finds an entry by id.
func (c *Catalog) Lookup(id string) (AlgorithmEntry, error) {
	idx, ok := c.byID[strings.TrimSpace(id)]
	if !ok {
		return AlgorithmEntry{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c.entries[idx], nil
}

// Categories returns the sorted set of categories.
func (c *Catalog) Categories() []string {
	seen := map[string]struct{}{}
	for _, e := range c.entries {
		seen[e.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for cat := range seen {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// VariantCounts returns how many entries ship each language.
func (c *Catalog) VariantCounts() map[Language]int {
	counts := map[Language]int{}
	for _, e := range c.entries {
		for lang := range e.Variants {
			counts[lang]++
		}
	}
	return counts
}
