// Package classify holds the classifier contract the tagger is written
// against and the classifiers shipped with gertag.
package classify

import (
	"errors"
	"sort"
)

var (
	ErrUntrained  = errors.New("classifier has no labels")
	ErrNoExamples = errors.New("no training examples")
)

// FeatureSet maps feature names to feature values.
type FeatureSet map[string]string

// Contexts renders the feature set as sorted name=value strings.
func (fs FeatureSet) Contexts() []string {
	contexts := make([]string, 0, len(fs))
	for name, value := range fs {
		contexts = append(contexts, name+"="+value)
	}
	sort.Strings(contexts)
	return contexts
}

func (fs FeatureSet) Names() []string {
	names := make([]string, 0, len(fs))
	for name := range fs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type LabeledFeatureSet struct {
	Features FeatureSet `json:"features"`
	Label    string     `json:"label"`
}

type Classifier interface {
	Labels() []string
	Classify(features FeatureSet) (string, error)
}

// ProbClassifier is a Classifier that can also score every label.
type ProbClassifier interface {
	Classifier
	ProbClassify(features FeatureSet) (Distribution, error)
}

type Trainer interface {
	Train(examples []LabeledFeatureSet) (Classifier, error)
}

type LabelProb struct {
	Label string
	Prob  float64
}

// Distribution is sorted by descending probability, ties by label.
type Distribution []LabelProb

func NewDistribution(probs map[string]float64) Distribution {
	dist := make(Distribution, 0, len(probs))
	for label, prob := range probs {
		dist = append(dist, LabelProb{Label: label, Prob: prob})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Prob == dist[j].Prob {
			return dist[i].Label < dist[j].Label
		}
		return dist[i].Prob > dist[j].Prob
	})
	return dist
}

func (dist Distribution) Best() (LabelProb, bool) {
	if len(dist) == 0 {
		return LabelProb{}, false
	}
	return dist[0], true
}

func (dist Distribution) Prob(label string) float64 {
	for _, lp := range dist {
		if lp.Label == label {
			return lp.Prob
		}
	}
	return 0
}
