// Package curriculum provides the read-only catalog of algorithm snippets.
package curriculum

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when an algorithm id is not in the catalog.
	ErrNotFound = errors.New("algorithm not found")
	// ErrUnknownLanguage is returned for a language outside the supported set.
	ErrUnknownLanguage = errors.New("unknown language")
	// ErrInvalidEntry is returned when a curriculum file fails validation.
	ErrInvalidEntry = errors.New("invalid curriculum entry")
)

// Difficulty ranks an algorithm entry.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
	Expert Difficulty = "expert"
)

// Difficulties lists all difficulties from easiest to hardest.
var Difficulties = []Difficulty{Easy, Medium, Hard, Expert}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

// Language identifies a source-code variant.
type Language string

const (
	TypeScript Language = "typescript"
	JavaScript Language = "javascript"
	Python     Language = "python"
	Java       Language = "java"
	CSharp     Language = "csharp"
	C          Language = "c"
)

// LanguageOption pairs a language with its display label.
type LanguageOption struct {
	Value Language
	Label string
}

// LanguageOptions lists supported languages in display order.
var LanguageOptions = []LanguageOption{
	{Value: TypeScript, Label: "TypeScript"},
	{Value: JavaScript, Label: "JavaScript"},
	{Value: Python, Label: "Python"},
	{Value: Java, Label: "Java"},
	{Value: CSharp, Label: "C#"},
	{Value: C, Label: "C"},
}

// Label returns the display label of the language.
func (l Language) Label() string {
	for _, opt := range LanguageOptions {
		if opt.Value == l {
			return opt.Label
		}
	}
	return string(l)
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	for _, opt := range LanguageOptions {
		if opt.Value == l {
			return true
		}
	}
	return false
}

// Next returns the language after l in display order, wrapping around.
func (l Language) Next() Language {
	for i, opt := range LanguageOptions {
		if opt.Value == l {
			return LanguageOptions[(i+1)%len(LanguageOptions)].Value
		}
	}
	return LanguageOptions[0].Value
}

// ParseLanguage accepts a language value or label, case-insensitively.
func ParseLanguage(s string) (Language, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, opt := range LanguageOptions {
		if needle == string(opt.Value) || needle == strings.ToLower(opt.Label) {
			return opt.Value, nil
		}
	}
	switch needle {
	case "ts":
		return TypeScript, nil
	case "js":
		return JavaScript, nil
	case "py":
		return Python, nil
	case "cs", "c-sharp":
		return CSharp, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownLanguage, s)
}

// AlgorithmEntry is one curriculum item with its per-language source.
type AlgorithmEntry struct {
	ID          string              `toml:"id"`
	Title       string              `toml:"title"`
	Difficulty  Difficulty          `toml:"difficulty"`
	Category    string              `toml:"category"`
	Description string              `toml:"description"`
	Runtime     string              `toml:"runtime"`
	Variants    map[Language]string `toml:"variants"`
}

// HasVariant reports whether the entry ships source for lang.
func (e AlgorithmEntry) HasVariant(lang Language) bool {
	_, ok := e.Variants[lang]
	return ok
}

// Code returns the source for lang, falling back to TypeScript and then to
// any variant in language order. The returned language is the one served.
func (e AlgorithmEntry) Code(lang Language) (string, Language) {
	if code, ok := e.Variants[lang]; ok {
		return code, lang
	}
	if code, ok := e.Variants[TypeScript]; ok {
		return code, TypeScript
	}
	for _, opt := range LanguageOptions {
		if code, ok := e.Variants[opt.Value]; ok {
			return code, opt.Value
		}
	}
	return "", lang
}

func (e AlgorithmEntry) validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEntry)
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: %s: missing title", ErrInvalidEntry, e.ID)
	}
	if !e.Difficulty.Valid() {
		return fmt.Errorf("%w: %s: difficulty %q", ErrInvalidEntry, e.ID, e.Difficulty)
	}
	if len(e.Variants) == 0 {
		return fmt.Errorf("%w: %s: no variants", ErrInvalidEntry, e.ID)
	}
	for lang, code := range e.Variants {
		if !lang.Valid() {
			return fmt.Errorf("%w: %s: %w %q", ErrInvalidEntry, e.ID, ErrUnknownLanguage, lang)
		}
		if code == "" {
			return fmt.Errorf("%w: %s: empty %s variant", ErrInvalidEntry, e.ID, lang)
		}
	}
	return nil
}
