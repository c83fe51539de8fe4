// Package tokenizer splits raw German text into sentences of word tokens.
package tokenizer

import (
	"strings"
	"unicode"

	"experimentallabor.de/gertag/utils"
)

const (
	period     = '.'
	comma      = ','
	hyphen     = '-'
	apostrophe = '\''
)

// Token is a span of the input text. Begin and End are byte offsets.
type Token struct {
	Text  string `json:"text"`
	Begin int    `json:"begin"`
	End   int    `json:"end"`
}

// Tokenize splits txt into word, number and punctuation tokens.
func Tokenize(txt string) []Token {
	runes, bytes := utils.MakeRuneByteSlices(txt)
	var tokens []Token

	currentPosition := findFirstCharOfNextToken(0, runes)
	for currentPosition >= 0 {
		tokenLen := lenOfToken(currentPosition, runes)
		end := len(txt)
		if currentPosition+tokenLen < len(bytes) {
			end = bytes[currentPosition+tokenLen]
		}
		tokens = append(tokens, Token{
			Text:  string(runes[currentPosition : currentPosition+tokenLen]),
			Begin: bytes[currentPosition],
			End:   end,
		})
		currentPosition = findFirstCharOfNextToken(currentPosition+tokenLen, runes)
	}
	return tokens
}

// Sentences tokenizes txt and groups the tokens into sentences. A sentence
// ends after . ! ? (and closing quotes or brackets following them) or at a
// blank line.
func Sentences(txt string) [][]Token {
	var sents [][]Token
	var current []Token
	ending := false
	for _, token := range Tokenize(txt) {
		if len(current) > 0 {
			gap := txt[current[len(current)-1].End:token.Begin]
			if (ending && !closingMarks[token.Text]) || isParagraphBreak(gap) {
				sents = append(sents, current)
				current = nil
				ending = false
			}
		}
		current = append(current, token)
		if isFinalPunctuation(token.Text) {
			ending = true
		} else if !closingMarks[token.Text] {
			ending = false
		}
	}
	if len(current) > 0 {
		sents = append(sents, current)
	}
	return sents
}

// SentenceWords is Sentences without offsets.
func SentenceWords(txt string) [][]string {
	sents := Sentences(txt)
	words := make([][]string, len(sents))
	for i, sent := range sents {
		words[i] = make([]string, len(sent))
		for j, token := range sent {
			words[i][j] = token.Text
		}
	}
	return words
}

func findFirstCharOfNextToken(startPosition int, runes []rune) int {
	for i := startPosition; i < len(runes); i++ {
		if !unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}

func lenOfToken(currentPosition int, runes []rune) int {
	if l := lenIfIsAbbreviation(currentPosition, runes); l > 0 {
		return l
	}
	ch := runes[currentPosition]
	if ch == period {
		return lenOfRepeated(currentPosition, runes, period)
	}
	if !isWordChar(ch) {
		return 1
	}

	end := currentPosition + 1
	for end < len(runes) {
		r := runes[end]
		switch {
		case isWordChar(r):
			end++
			continue
		case (r == hyphen || r == apostrophe) && end+1 < len(runes) && isWordChar(runes[end+1]):
			end += 2
			continue
		case (r == period || r == comma) && isDigit(runes[end-1]) && end+1 < len(runes) && isDigit(runes[end+1]):
			end += 2
			continue
		}
		break
	}

	if isOrdinal(runes, currentPosition, end) {
		end++
	}
	return end - currentPosition
}

// lenIfIsAbbreviation returns the length of a known abbreviation starting at
// currentPosition, or 0.
func lenIfIsAbbreviation(currentPosition int, runes []rune) int {
	if currentPosition > 0 && isWordChar(runes[currentPosition-1]) {
		return 0
	}
	rest := runes[currentPosition:]
	for _, abbreviation := range abbreviations {
		if !utils.RunesStartWith(rest, abbreviation) {
			continue
		}
		l := len([]rune(abbreviation))
		if l < len(rest) && isWordChar(rest[l]) {
			continue
		}
		return l
	}
	return 0
}

// isOrdinal reports whether runes[begin:end] is a number followed by a
// period and another word, as in "am 3. Oktober".
func isOrdinal(runes []rune, begin int, end int) bool {
	if end >= len(runes) || runes[end] != period {
		return false
	}
	for i := begin; i < end; i++ {
		if !isDigit(runes[i]) {
			return false
		}
	}
	next := findFirstCharOfNextToken(end+1, runes)
	return next > end+1 && unicode.IsLetter(runes[next])
}

func lenOfRepeated(currentPosition int, runes []rune, ch rune) int {
	l := 0
	for currentPosition+l < len(runes) && runes[currentPosition+l] == ch {
		l++
	}
	return l
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isFinalPunctuation(text string) bool {
	return text == "!" || text == "?" || (text != "" && strings.Trim(text, ".") == "")
}

// closingMarks stick to the final punctuation before them.
var closingMarks = map[string]bool{`"`: true, "“": true, "”": true, "«": true, "»": true, ")": true, "]": true, "'": true}

func isParagraphBreak(gap string) bool {
	return strings.Count(strings.ReplaceAll(gap, "\r", ""), "\n") >= 2
}
