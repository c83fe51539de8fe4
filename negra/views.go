package negra

import "experimentallabor.de/gertag/types"

func collect[T any](r *Reader, fileIDs []string, view func(*types.Sentence) (T, error)) ([]T, error) {
	var out []T
	err := r.Each(func(sent *types.Sentence) error {
		v, err := view(sent)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	}, fileIDs...)
	return out, err
}

func flatten[T any](sents [][]T, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	var out []T
	for _, sent := range sents {
		out = append(out, sent...)
	}
	return out, nil
}

// Sents returns every sentence as a list of words.
func (r *Reader) Sents(fileIDs ...string) ([][]string, error) {
	if err := r.cfg.columns.Require(Words); err != nil {
		return nil, err
	}
	return collect(r, fileIDs, func(sent *types.Sentence) ([]string, error) {
		return sent.Words(), nil
	})
}

func (r *Reader) Words(fileIDs ...string) ([]string, error) {
	return flatten(r.Sents(fileIDs...))
}

func (r *Reader) TaggedSents(fileIDs ...string) ([][]types.TaggedToken, error) {
	if err := r.cfg.columns.Require(Words, POS); err != nil {
		return nil, err
	}
	return collect(r, fileIDs, func(sent *types.Sentence) ([]types.TaggedToken, error) {
		return sent.Tagged(), nil
	})
}

func (r *Reader) TaggedWords(fileIDs ...string) ([]types.TaggedToken, error) {
	return flatten(r.TaggedSents(fileIDs...))
}

func (r *Reader) LemmatisedSents(fileIDs ...string) ([][]types.Pair, error) {
	if err := r.cfg.columns.Require(Words, Lemma); err != nil {
		return nil, err
	}
	return collect(r, fileIDs, func(sent *types.Sentence) ([]types.Pair, error) {
		return sent.Lemmatised(), nil
	})
}

func (r *Reader) LemmatisedWords(fileIDs ...string) ([]types.Pair, error) {
	return flatten(r.LemmatisedSents(fileIDs...))
}

func (r *Reader) MorphologicalSents(fileIDs ...string) ([][]types.Pair, error) {
	if err := r.cfg.columns.Require(Words, Morph); err != nil {
		return nil, err
	}
	return collect(r, fileIDs, func(sent *types.Sentence) ([]types.Pair, error) {
		return sent.Morphological(), nil
	})
}

func (r *Reader) MorphologicalWords(fileIDs ...string) ([]types.Pair, error) {
	return flatten(r.MorphologicalSents(fileIDs...))
}

// ChunkedSents returns the constituency tree of every sentence.
func (r *Reader) ChunkedSents(fileIDs ...string) ([]*types.Tree, error) {
	if err := r.cfg.columns.Require(Words, POS, Parent); err != nil {
		return nil, err
	}
	return collect(r, fileIDs, func(sent *types.Sentence) (*types.Tree, error) {
		return ChunkTree(sent, r.cfg.topLabel)
	})
}

// ChunkedWords concatenates the top-level children of every sentence tree.
func (r *Reader) ChunkedWords(fileIDs ...string) ([]*types.Tree, error) {
	trees, err := r.ChunkedSents(fileIDs...)
	if err != nil {
		return nil, err
	}
	var out []*types.Tree
	for _, tree := range trees {
		out = append(out, tree.Children...)
	}
	return out, nil
}
