package pos

import "math"

// Sequence is a partial tagging of a sentence scored by the sum of the log
// probabilities of its outcomes.
type Sequence struct {
	Score    float64
	Outcomes []string
	Probs    []float64
}

func (seq *Sequence) ExpandFrom(src Sequence, out string, prob float64) {
	seq.Outcomes = make([]string, len(src.Outcomes)+1)
	copy(seq.Outcomes, src.Outcomes)
	seq.Outcomes[len(seq.Outcomes)-1] = out

	seq.Probs = make([]float64, len(src.Probs)+1)
	copy(seq.Probs, src.Probs)
	seq.Probs[len(seq.Probs)-1] = prob

	seq.Score = src.Score + math.Log(prob)
}

// Less orders better scoring sequences first.
func (seq Sequence) Less(o interface{}) bool {
	c, isOk := o.(Sequence)
	if isOk {
		if seq.Score == c.Score {
			return lessOutcomes(seq.Outcomes, c.Outcomes)
		}
		return seq.Score > c.Score
	}
	return false
}

func lessOutcomes(a []string, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
