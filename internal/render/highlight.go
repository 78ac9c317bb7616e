// Package render maps typing progress onto syntax-highlighted code.
package render

import (
	"unicode"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/verte-zerg/codetype/internal/curriculum"
)

// Class is the lexical category a rune belongs to.
type Class int

const (
	ClassPlain Class = iota
	ClassComment
	ClassString
	ClassKeyword
	ClassFunction
	ClassNumber
	ClassClassName
	ClassPunctuation
	ClassOperator
)

var lexerNames = map[curriculum.Language]string{
	curriculum.TypeScript: "typescript",
	curriculum.JavaScript: "javascript",
	curriculum.Python:     "python",
	curriculum.Java:       "java",
	curriculum.CSharp:     "csharp",
	curriculum.C:          "c",
}

// Highlight returns one Class per rune of code. Unknown languages and lexer
// failures yield all-plain classes.
func Highlight(code string, lang curriculum.Language) []Class {
	runeCount := len([]rune(code))
	classes := make([]Class, runeCount)

	name, ok := lexerNames[lang]
	if !ok {
		return classes
	}
	lexer := lexers.Get(name)
	if lexer == nil {
		return classes
	}
	lexer = chroma.Coalesce(lexer)
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return classes
	}

	pos := 0
	for _, tok := range it.Tokens() {
		class := classFor(tok.Type)
		for range tok.Value {
			if pos >= runeCount {
				return classes
			}
			classes[pos] = class
			pos++
		}
	}
	return classes
}

func classFor(t chroma.TokenType) Class {
	switch {
	case t.InCategory(chroma.Comment):
		return ClassComment
	case t.InSubCategory(chroma.LiteralString):
		return ClassString
	case t.InSubCategory(chroma.LiteralNumber):
		return ClassNumber
	case t.InCategory(chroma.Keyword):
		return ClassKeyword
	case t == chroma.NameFunction:
		return ClassFunction
	case t == chroma.NameClass:
		return ClassClassName
	case t.InCategory(chroma.Punctuation):
		return ClassPunctuation
	case t.InCategory(chroma.Operator):
		return ClassOperator
	}
	return ClassPlain
}

// ProjectClasses maps classes computed for code onto linear, the
// whitespace-collapsed form of code. Non-space runes keep their class in
// order; spaces in linear are plain.
func ProjectClasses(code string, classes []Class, linear string) []Class {
	out := make([]Class, 0, len(linear))
	var src []Class
	for i, r := range []rune(code) {
		if unicode.IsSpace(r) {
			continue
		}
		class := ClassPlain
		if i < len(classes) {
			class = classes[i]
		}
		src = append(src, class)
	}
	next := 0
	for _, r := range linear {
		if r == ' ' || next >= len(src) {
			out = append(out, ClassPlain)
			continue
		}
		out = append(out, src[next])
		next++
	}
	return out
}
