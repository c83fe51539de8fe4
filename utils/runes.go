package utils

import (
	"unicode/utf8"
)

// RunesStartWith compares rune by rune, so s may contain multi-byte characters.
func RunesStartWith(runes []rune, s string) bool {
	i := 0
	for _, c := range s {
		if i >= len(runes) || runes[i] != c {
			return false
		}
		i++
	}
	return true
}

// MakeRuneByteSlices decodes txt and records the byte offset of every rune.
func MakeRuneByteSlices(txt string) ([]rune, []int) {
	runesCount := utf8.RuneCountInString(txt)
	runes := make([]rune, runesCount)
	bytes := make([]int, runesCount)

	bytesOffset := 0
	l := len(txt)
	for i := 0; i < runesCount && bytesOffset < l; i++ {
		ch, chSize := utf8.DecodeRuneInString(txt[bytesOffset:])
		runes[i] = ch
		bytes[i] = bytesOffset
		bytesOffset += chSize
	}
	return runes, bytes
}
