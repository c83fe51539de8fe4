package types

// TaggedToken is a word form with its part-of-speech tag. Tag is empty
// while the token is waiting to be tagged.
type TaggedToken struct {
	Word string `json:"word"`
	Tag  string `json:"tag"`
}

// Pair couples a word with one of its annotation columns (lemma, morphology).
type Pair struct {
	Word  string `json:"word"`
	Value string `json:"value"`
}

type SecEdge struct {
	Label  string
	Parent int
}

// Token is a terminal row of an annotated sentence.
type Token struct {
	Word     string
	Lemma    string
	Tag      string
	Morph    string
	Edge     string
	Parent   int
	SecEdges []SecEdge
	Comment  string
	Line     int
}

func (token *Token) Tagged() TaggedToken {
	return TaggedToken{Word: token.Word, Tag: token.Tag}
}

// Node is a non-terminal row (#500 ... NP ... 502) of an annotated sentence.
type Node struct {
	ID     int
	Label  string
	Morph  string
	Edge   string
	Parent int
	Line   int
}

func Words(tokens []TaggedToken) []string {
	words := make([]string, len(tokens))
	for i, token := range tokens {
		words[i] = token.Word
	}
	return words
}

func Tags(tokens []TaggedToken) []string {
	tags := make([]string, len(tokens))
	for i, token := range tokens {
		tags[i] = token.Tag
	}
	return tags
}
