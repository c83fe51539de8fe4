package types

// Sentence is one annotated sentence of a corpus file. Tokens keep their
// original order; Nodes hold the non-terminal rows, if the format has any.
type Sentence struct {
	ID     string
	File   string
	Line   int
	Tokens []*Token
	Nodes  []*Node
}

func (sent *Sentence) Len() int {
	return len(sent.Tokens)
}

func (sent *Sentence) Words() []string {
	words := make([]string, len(sent.Tokens))
	for i, token := range sent.Tokens {
		words[i] = token.Word
	}
	return words
}

func (sent *Sentence) Tagged() []TaggedToken {
	tagged := make([]TaggedToken, len(sent.Tokens))
	for i, token := range sent.Tokens {
		tagged[i] = token.Tagged()
	}
	return tagged
}

func (sent *Sentence) Lemmatised() []Pair {
	pairs := make([]Pair, len(sent.Tokens))
	for i, token := range sent.Tokens {
		pairs[i] = Pair{Word: token.Word, Value: token.Lemma}
	}
	return pairs
}

func (sent *Sentence) Morphological() []Pair {
	pairs := make([]Pair, len(sent.Tokens))
	for i, token := range sent.Tokens {
		pairs[i] = Pair{Word: token.Word, Value: token.Morph}
	}
	return pairs
}
