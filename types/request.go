package types

import "experimentallabor.de/gertag/tokenizer"

// TagRequest asks for the tagging of sentences. Sentences holds already
// tokenised sentences; Text is raw text that is split and tokenised first.
// Sentences wins when both are set.
type TagRequest struct {
	ID        string     `json:"id,omitempty"`
	Sentences [][]string `json:"sentences,omitempty"`
	Text      string     `json:"text,omitempty"`
}

// Words returns the tokenised sentences of the request.
func (r *TagRequest) Words() [][]string {
	if len(r.Sentences) > 0 || r.Text == "" {
		return r.Sentences
	}
	return tokenizer.SentenceWords(r.Text)
}

// TagResponse answers a TagRequest. Error is set instead of Sentences when
// the request could not be tagged.
type TagResponse struct {
	ID        string          `json:"id,omitempty"`
	ModelID   string          `json:"model_id,omitempty"`
	Sentences [][]TaggedToken `json:"sentences,omitempty"`
	Error     string          `json:"error,omitempty"`
}
