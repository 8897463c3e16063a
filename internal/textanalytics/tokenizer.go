// Package textanalytics implements tokenization, word-frequency ranking and
// a lexicon-based sentiment heuristic. The sentiment scorer is a coarse
// substring matcher, not a trained classifier.
package textanalytics

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer lower-cases text, keeps CJK ideographs, ASCII letters and
// whitespace, splits on whitespace and drops one-character tokens and stop
// words. A Tokenizer is not safe for concurrent use.
type Tokenizer struct {
	lower cases.Caser
	stop  map[string]struct{}
}

// NewTokenizer returns a tokenizer using StopWords.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{lower: cases.Lower(language.Und), stop: StopWords}
}

func keepRune(r rune) bool {
	switch {
	case r >= 0x4e00 && r <= 0x9fa5:
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	default:
		return unicode.IsSpace(r)
	}
}

// Normalize applies NFKC and lower-casing, then blanks every character
// outside the kept set.
func (tk *Tokenizer) Normalize(text string) string {
	text = tk.lower.String(norm.NFKC.String(text))
	return strings.Map(func(r rune) rune {
		if keepRune(r) {
			return r
		}
		return ' '
	}, text)
}

// Tokenize returns the filtered tokens of text in order.
func (tk *Tokenizer) Tokenize(text string) []string {
	fields := strings.Fields(tk.Normalize(text))
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) <= 1 {
			continue
		}
		if _, stop := tk.stop[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Words is the lighter split used for sentiment scoring: lower-case and
// whitespace split only, so single-character lexicon entries still match.
func (tk *Tokenizer) Words(text string) []string {
	return strings.Fields(tk.lower.String(text))
}

// Tokenize is a convenience wrapper around a fresh Tokenizer.
func Tokenize(text string) []string {
	return NewTokenizer().Tokenize(text)
}
