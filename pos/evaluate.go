package pos

import (
	"sort"

	"experimentallabor.de/gertag/types"
)

// Evaluation compares tagger output with gold tags token by token.
type Evaluation struct {
	Sentences int
	Tokens    int
	Correct   int
	// Confusion counts gold tag -> predicted tag.
	Confusion map[string]map[string]int
}

func (e Evaluation) Accuracy() float64 {
	if e.Tokens == 0 {
		return 0
	}
	return float64(e.Correct) / float64(e.Tokens)
}

type TagError struct {
	Gold      string
	Predicted string
	Count     int
}

// Errors lists the confused tag pairs, most frequent first.
func (e Evaluation) Errors() []TagError {
	var errs []TagError
	for gold, predicted := range e.Confusion {
		for tag, count := range predicted {
			if tag != gold {
				errs = append(errs, TagError{Gold: gold, Predicted: tag, Count: count})
			}
		}
	}
	sort.Slice(errs, func(i, j int) bool {
		if errs[i].Count != errs[j].Count {
			return errs[i].Count > errs[j].Count
		}
		if errs[i].Gold != errs[j].Gold {
			return errs[i].Gold < errs[j].Gold
		}
		return errs[i].Predicted < errs[j].Predicted
	})
	return errs
}

func (t *Tagger) Evaluate(gold [][]types.TaggedToken) (Evaluation, error) {
	eval := Evaluation{Confusion: map[string]map[string]int{}}
	for _, sentence := range gold {
		if len(sentence) == 0 {
			continue
		}
		predicted, err := t.Tag(types.Words(sentence))
		if err != nil {
			return eval, err
		}
		eval.Sentences++
		for i, token := range sentence {
			eval.Tokens++
			if predicted[i].Tag == token.Tag {
				eval.Correct++
			}
			row, ok := eval.Confusion[token.Tag]
			if !ok {
				row = map[string]int{}
				eval.Confusion[token.Tag] = row
			}
			row[predicted[i].Tag]++
		}
	}
	return eval, nil
}
