package classify

import (
	"fmt"
	"math"
	"sort"
)

const eleGamma = 0.5

// NaiveBayes scores labels with P(label) * prod P(name=value | label), both
// smoothed with the expected likelihood estimate. Feature names never seen
// in training do not contribute.
type NaiveBayes struct {
	Total       int                                  `json:"total"`
	LabelCounts map[string]int                       `json:"label_counts"`
	NameCounts  map[string]map[string]int            `json:"name_counts"`
	ValueCounts map[string]map[string]map[string]int `json:"value_counts"`

	labels []string
}

type NaiveBayesTrainer struct{}

func (NaiveBayesTrainer) Train(examples []LabeledFeatureSet) (Classifier, error) {
	return TrainNaiveBayes(examples)
}

func TrainNaiveBayes(examples []LabeledFeatureSet) (*NaiveBayes, error) {
	if len(examples) == 0 {
		return nil, ErrNoExamples
	}

	nb := &NaiveBayes{
		LabelCounts: map[string]int{},
		NameCounts:  map[string]map[string]int{},
		ValueCounts: map[string]map[string]map[string]int{},
	}
	for i, example := range examples {
		if example.Label == "" {
			return nil, fmt.Errorf("example %d has no label", i)
		}
		nb.Total++
		nb.LabelCounts[example.Label]++
		for name, value := range example.Features {
			names, ok := nb.NameCounts[name]
			if !ok {
				names = map[string]int{}
				nb.NameCounts[name] = names
				nb.ValueCounts[name] = map[string]map[string]int{}
			}
			names[example.Label]++

			values, ok := nb.ValueCounts[name][value]
			if !ok {
				values = map[string]int{}
				nb.ValueCounts[name][value] = values
			}
			values[example.Label]++
		}
	}
	nb.init()
	return nb, nil
}

// init caches the sorted label list. It runs once after training or
// loading, before the classifier is shared.
func (nb *NaiveBayes) init() {
	nb.labels = nb.sortedLabels()
}

func (nb *NaiveBayes) sortedLabels() []string {
	if nb.labels != nil {
		return nb.labels
	}
	labels := make([]string, 0, len(nb.LabelCounts))
	for label := range nb.LabelCounts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func (nb *NaiveBayes) Labels() []string {
	sorted := nb.sortedLabels()
	labels := make([]string, len(sorted))
	copy(labels, sorted)
	return labels
}

func (nb *NaiveBayes) logScores(features FeatureSet) ([]string, []float64, error) {
	labels := nb.sortedLabels()
	if len(labels) == 0 {
		return nil, nil, ErrUntrained
	}

	names := features.Names()
	scores := make([]float64, len(labels))
	for i, label := range labels {
		score := math.Log((float64(nb.LabelCounts[label]) + eleGamma) /
			(float64(nb.Total) + eleGamma*float64(len(labels))))

		for _, name := range names {
			values, known := nb.ValueCounts[name]
			if !known {
				continue
			}
			// one extra bin stands for "value not seen"
			bins := float64(len(values) + 1)
			count := float64(values[features[name]][label])
			seen := float64(nb.NameCounts[name][label])
			score += math.Log((count + eleGamma) / (seen + eleGamma*bins))
		}
		scores[i] = score
	}
	return labels, scores, nil
}

func (nb *NaiveBayes) Classify(features FeatureSet) (string, error) {
	labels, scores, err := nb.logScores(features)
	if err != nil {
		return "", err
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return labels[best], nil
}

func (nb *NaiveBayes) ProbClassify(features FeatureSet) (Distribution, error) {
	labels, scores, err := nb.logScores(features)
	if err != nil {
		return nil, err
	}

	maxScore := math.Inf(-1)
	for _, score := range scores {
		if score > maxScore {
			maxScore = score
		}
	}
	normal := 0.0
	probs := make([]float64, len(scores))
	for i, score := range scores {
		probs[i] = math.Exp(score - maxScore)
		normal += probs[i]
	}

	dist := make(map[string]float64, len(scores))
	for i, label := range labels {
		dist[label] = probs[i] / normal
	}
	return NewDistribution(dist), nil
}
