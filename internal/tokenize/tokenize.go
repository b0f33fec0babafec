// Package tokenize splits a line into tagged spans for highlighting.
package tokenize

import (
	"log"
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// Tag classifies a span of text
type Tag int

const (
	TagNone Tag = iota
	TagString
	TagBoolean
	TagNull
	TagNumber
	TagBrace
	TagPunctuation
	TagInfo
	TagWarning
	TagError
	TagFatal
)

var tagNames = map[Tag]string{
	TagNone:        "none",
	TagString:      "string",
	TagBoolean:     "boolean",
	TagNull:        "null",
	TagNumber:      "number",
	TagBrace:       "brace",
	TagPunctuation: "punctuation",
	TagInfo:        "info",
	TagWarning:     "warning",
	TagError:       "error",
	TagFatal:       "fatal",
}

func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return "unknown"
}

// Span is a tagged byte range [Start, End) of a line
type Span struct {
	Start int
	End   int
	Tag   Tag
}

// severity keywords share one token type and are told apart by value
const severity = chroma.GenericStrong

var lexer = chroma.MustNewLexer(
	&chroma.Config{
		Name:            "lview",
		Aliases:         []string{"log"},
		CaseInsensitive: true,
	},
	func() chroma.Rules {
		return chroma.Rules{
			"root": {
				{Pattern: `"(\\.|[^"\\])*"`, Type: chroma.LiteralString},
				{Pattern: `'(\\.|[^'\\])*'`, Type: chroma.LiteralString},
				{Pattern: `\b(true|false)\b`, Type: chroma.KeywordConstant},
				{Pattern: `\b(null|nil|none)\b`, Type: chroma.KeywordPseudo},
				{Pattern: `\b(info|warning|warn|error|fatal)\b`, Type: severity},
				{Pattern: `\b0x[0-9a-f]+\b`, Type: chroma.LiteralNumberHex},
				{Pattern: `\b\d+(\.\d+)?\b`, Type: chroma.LiteralNumber},
				{Pattern: `[{}\[\]()]`, Type: chroma.Punctuation},
				{Pattern: `[^\w\s]`, Type: chroma.Operator},
				{Pattern: `\w+`, Type: chroma.Text},
				{Pattern: `\s+`, Type: chroma.Text},
				{Pattern: `.`, Type: chroma.Text},
			},
		}
	},
)

// line input never contains '\n', so no newline rewriting is needed
var options = &chroma.TokeniseOptions{State: "root"}

func tagOf(tok chroma.Token) Tag {
	switch {
	case tok.Type == severity:
		switch strings.ToLower(tok.Value) {
		case "info":
			return TagInfo
		case "warn", "warning":
			return TagWarning
		case "error":
			return TagError
		case "fatal":
			return TagFatal
		}
	case tok.Type.InSubCategory(chroma.LiteralString):
		return TagString
	case tok.Type.InSubCategory(chroma.LiteralNumber):
		return TagNumber
	case tok.Type == chroma.KeywordConstant:
		return TagBoolean
	case tok.Type == chroma.KeywordPseudo:
		return TagNull
	case tok.Type == chroma.Punctuation:
		return TagBrace
	case tok.Type == chroma.Operator:
		return TagPunctuation
	}
	return TagNone
}

// Tokenize returns the spans of text in order. Consecutive tokens with the
// same tag are merged into one span, and together the spans cover the whole
// input.
func Tokenize(text string) []Span {
	if text == "" {
		return nil
	}
	it, err := lexer.Tokenise(options, text)
	if err != nil {
		log.Printf("warn: tokenize: %v", err)
		return []Span{{Start: 0, End: len(text), Tag: TagNone}}
	}

	var spans []Span
	pos := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		end := pos + len(tok.Value)
		tag := tagOf(tok)
		if n := len(spans); n > 0 && spans[n-1].Tag == tag {
			spans[n-1].End = end
		} else {
			spans = append(spans, Span{Start: pos, End: end, Tag: tag})
		}
		pos = end
	}
	return spans
}
