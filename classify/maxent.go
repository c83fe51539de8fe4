package classify

import (
	"math"
)

// DefaultContext is always active for a MaxEnt model and carries the
// outcome priors.
const DefaultContext = "default"

type Context struct {
	Outcomes   []int     `json:"outcomes"`
	Parameters []float64 `json:"parameters"`
}

type EvalParameters struct {
	Params        []Context `json:"params"`
	NumOfOutcomes int       `json:"numOfOutcomes"`
}

// MaxEnt is a pre-trained maximum entropy model. Predicates are feature
// contexts in name=value form.
type MaxEnt struct {
	Probs      []float64      `json:"probs"`
	Outcomes   []string       `json:"outcomes"`
	PMap       map[string]int `json:"pmap"`
	EvalParams EvalParameters `json:"evalParams"`
}

func (m *MaxEnt) Labels() []string {
	labels := make([]string, len(m.Outcomes))
	copy(labels, m.Outcomes)
	return labels
}

// Eval returns one probability per outcome for the active contexts.
// Unknown contexts are ignored.
func (m *MaxEnt) Eval(context []string) []float64 {
	numOutcomes := m.EvalParams.NumOfOutcomes
	outsums := make([]float64, numOutcomes)
	copy(outsums, m.Probs)

	params := m.EvalParams.Params
	for _, predicate := range context {
		ci, isOk := m.PMap[predicate]
		if !isOk || ci < 0 || ci >= len(params) {
			continue
		}

		predParam := params[ci]
		for ai, oid := range predParam.Outcomes {
			if oid < 0 || oid >= numOutcomes || ai >= len(predParam.Parameters) {
				continue
			}
			outsums[oid] += predParam.Parameters[ai]
		}
	}

	maxSum := math.Inf(-1)
	for _, sum := range outsums {
		if sum > maxSum {
			maxSum = sum
		}
	}

	normal := 0.0
	for oid := 0; oid < numOutcomes; oid++ {
		outsums[oid] = math.Exp(outsums[oid] - maxSum)
		normal += outsums[oid]
	}

	for oid := 0; oid < numOutcomes; oid++ {
		outsums[oid] /= normal
	}

	return outsums
}

func (m *MaxEnt) contexts(features FeatureSet) []string {
	return append([]string{DefaultContext}, features.Contexts()...)
}

func (m *MaxEnt) ProbClassify(features FeatureSet) (Distribution, error) {
	if len(m.Outcomes) == 0 || m.EvalParams.NumOfOutcomes != len(m.Outcomes) {
		return nil, ErrUntrained
	}
	scores := m.Eval(m.contexts(features))
	probs := make(map[string]float64, len(scores))
	for i, score := range scores {
		probs[m.Outcomes[i]] = score
	}
	return NewDistribution(probs), nil
}

func (m *MaxEnt) Classify(features FeatureSet) (string, error) {
	dist, err := m.ProbClassify(features)
	if err != nil {
		return "", err
	}
	best, _ := dist.Best()
	return best.Label, nil
}
