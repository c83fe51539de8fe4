package pos

import (
	"sort"

	"experimentallabor.de/gertag/types"
)

type SequenceValidator interface {
	ValidSequence(i int, inputSequence []string, outcome string) bool
}

type defaultSequenceValidator struct{}

func (defaultSequenceValidator) ValidSequence(int, []string, string) bool {
	return true
}

func NewSequenceValidator() SequenceValidator {
	return defaultSequenceValidator{}
}

// TagDictionary restricts words seen in training to the tags they were seen
// with. Unknown words accept every tag.
type TagDictionary map[string]map[string]bool

func NewTagDictionary(sentences [][]types.TaggedToken) TagDictionary {
	dict := TagDictionary{}
	for _, sent := range sentences {
		for _, token := range sent {
			dict.Add(token.Word, token.Tag)
		}
	}
	return dict
}

func (dict TagDictionary) Add(word string, tag string) {
	if tag == "" {
		return
	}
	tags, ok := dict[word]
	if !ok {
		tags = map[string]bool{}
		dict[word] = tags
	}
	tags[tag] = true
}

func (dict TagDictionary) ValidSequence(i int, inputSequence []string, outcome string) bool {
	tags, ok := dict[inputSequence[i]]
	if !ok {
		return true
	}
	return tags[outcome]
}

// Entries lists the sorted tags of every word, as stored in model files.
func (dict TagDictionary) Entries() map[string][]string {
	entries := make(map[string][]string, len(dict))
	for word, tags := range dict {
		list := make([]string, 0, len(tags))
		for tag := range tags {
			list = append(list, tag)
		}
		sort.Strings(list)
		entries[word] = list
	}
	return entries
}

// TagDictionaryFrom rebuilds a dictionary from Entries. It returns nil for
// an empty input, so that no restriction applies.
func TagDictionaryFrom(entries map[string][]string) TagDictionary {
	if len(entries) == 0 {
		return nil
	}
	dict := TagDictionary{}
	for word, tags := range entries {
		for _, tag := range tags {
			dict.Add(word, tag)
		}
	}
	return dict
}
