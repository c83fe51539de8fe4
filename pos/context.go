package pos

import (
	"regexp"
	"strings"
	"unicode"

	"experimentallabor.de/gertag/classify"
)

const (
	// SentenceBegin stands in for words and tags before the first token.
	SentenceBegin = "*SB*"
	// SentenceEnd stands in for words after the last token.
	SentenceEnd = "*SE*"

	suffixLength = 4
)

const (
	ShapeNumber    = "number"
	ShapePunct     = "punct"
	ShapeUpcase    = "upcase"
	ShapeDowncase  = "downcase"
	ShapeMixedcase = "mixedcase"
	ShapeOther     = "other"
)

// FeatureDetector maps the token at index, its sentence and the tags already
// assigned to the preceding tokens to a feature set. Implementations must be
// pure and must not fail for any index of a non-empty sentence.
type FeatureDetector interface {
	Detect(tokens []string, index int, history []string) classify.FeatureSet
}

type FeatureDetectorFunc func(tokens []string, index int, history []string) classify.FeatureSet

func (f FeatureDetectorFunc) Detect(tokens []string, index int, history []string) classify.FeatureSet {
	return f(tokens, index, history)
}

var (
	// a leading digit is enough; only the ".5" form has to cover the whole word
	numberPattern   = regexp.MustCompile(`^(?:[0-9]+(?:[.,][0-9]*)?|[0-9]*[.,][0-9]+$)`)
	upcasePattern   = regexp.MustCompile(`^(?:[A-ZÄÖÜ]+[a-zäöüß]*-?)+$`)
	downcasePattern = regexp.MustCompile(`^[a-zäöüß]+`)
)

// GermanFeatureDetector extracts orthographic and contextual cues tuned for
// German: capitalisation inside a sentence marks nouns, umlauts count as
// letters for the word shape and suffixes are taken on runes.
type GermanFeatureDetector struct{}

func NewGermanFeatureDetector() FeatureDetector {
	return GermanFeatureDetector{}
}

func (GermanFeatureDetector) Detect(tokens []string, index int, history []string) classify.FeatureSet {
	word := at(tokens, index, "")
	lower := strings.ToLower(word)

	prevword := at(tokens, index-1, SentenceBegin)
	prevprevword := at(tokens, index-2, SentenceBegin)
	nextword := at(tokens, index+1, SentenceEnd)
	prevtag := at(history, index-1, SentenceBegin)
	prevprevtag := at(history, index-2, SentenceBegin)

	capitalized := startsUpper(word)

	features := classify.FeatureSet{
		"word":                word,
		"word.lower":          lower,
		"prefix1":             prefix(word, 1),
		"shape":               Shape(word),
		"capitalized":         boolValue(capitalized),
		"capitalized.inner":   boolValue(capitalized && index > 0),
		"hyphen":              boolValue(strings.ContainsRune(word, '-')),
		"digit":               boolValue(strings.IndexFunc(word, unicode.IsDigit) >= 0),
		"prevword":            prevword,
		"prevprevword":        prevprevword,
		"nextword":            nextword,
		"prevtag":             prevtag,
		"prevprevtag":         prevprevtag,
		"prevtag+word":        prevtag + "+" + word,
		"prevprevtag+word":    prevprevtag + "+" + word,
		"prevprevtag+prevtag": prevprevtag + "+" + prevtag,
		"prevword+word":       prevword + "+" + word,
	}
	for i, suf := range suffixes(lower) {
		features["suffix"+string(rune('1'+i))] = suf
	}
	return features
}

// Shape classifies the orthography of a word.
func Shape(word string) string {
	switch {
	case numberPattern.MatchString(word):
		return ShapeNumber
	case word != "" && strings.IndexFunc(word, isWordRune) < 0:
		return ShapePunct
	case upcasePattern.MatchString(word):
		return ShapeUpcase
	case downcasePattern.MatchString(word):
		return ShapeDowncase
	case word != "" && isWordRune([]rune(word)[0]):
		return ShapeMixedcase
	}
	return ShapeOther
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func at(seq []string, index int, sentinel string) string {
	if index < 0 || index >= len(seq) {
		return sentinel
	}
	return seq[index]
}

func startsUpper(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}

func prefix(word string, n int) string {
	runes := []rune(word)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}

// suffixes returns the last 1..suffixLength runes; shorter words repeat
// the whole word.
func suffixes(lex string) []string {
	runes := []rune(lex)
	suffs := make([]string, suffixLength)
	for li := 0; li < suffixLength; li++ {
		idx := len(runes) - li - 1
		if idx < 0 {
			idx = 0
		}
		suffs[li] = string(runes[idx:])
	}
	return suffs
}

func boolValue(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
