package classify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func weatherExamples() []LabeledFeatureSet {
	return []LabeledFeatureSet{
		{Features: FeatureSet{"word": "Haus", "cap": "true"}, Label: "NN"},
		{Features: FeatureSet{"word": "Hund", "cap": "true"}, Label: "NN"},
		{Features: FeatureSet{"word": "das", "cap": "false"}, Label: "ART"},
		{Features: FeatureSet{"word": "der", "cap": "false"}, Label: "ART"},
		{Features: FeatureSet{"word": "läuft", "cap": "false"}, Label: "VVFIN"},
	}
}

func TestTrainNaiveBayes(t *testing.T) {
	nb, err := TrainNaiveBayes(weatherExamples())
	require.NoError(t, err)
	require.Equal(t, []string{"ART", "NN", "VVFIN"}, nb.Labels())
	require.Equal(t, 5, nb.Total)

	label, err := nb.Classify(FeatureSet{"word": "Hund", "cap": "true"})
	require.NoError(t, err)
	require.Equal(t, "NN", label)

	label, err = nb.Classify(FeatureSet{"word": "der", "cap": "false"})
	require.NoError(t, err)
	require.Equal(t, "ART", label)
}

func TestNaiveBayesIgnoresUnknownFeatureNames(t *testing.T) {
	nb, err := TrainNaiveBayes(weatherExamples())
	require.NoError(t, err)

	withUnknown, err := nb.ProbClassify(FeatureSet{"word": "Haus", "never-seen": "x"})
	require.NoError(t, err)
	without, err := nb.ProbClassify(FeatureSet{"word": "Haus"})
	require.NoError(t, err)
	require.InDeltaSlice(t,
		[]float64{without.Prob("NN"), without.Prob("ART")},
		[]float64{withUnknown.Prob("NN"), withUnknown.Prob("ART")},
		1e-12)
}

func TestNaiveBayesDistributionSumsToOne(t *testing.T) {
	nb, err := TrainNaiveBayes(weatherExamples())
	require.NoError(t, err)

	dist, err := nb.ProbClassify(FeatureSet{"word": "Katze", "cap": "true"})
	require.NoError(t, err)
	require.Len(t, dist, 3)

	sum := 0.0
	for _, lp := range dist {
		sum += lp.Prob
	}
	require.InDelta(t, 1.0, sum, 1e-9)

	best, ok := dist.Best()
	require.True(t, ok)
	require.Equal(t, "NN", best.Label)
}

func TestNaiveBayesErrors(t *testing.T) {
	_, err := TrainNaiveBayes(nil)
	require.True(t, errors.Is(err, ErrNoExamples))

	_, err = TrainNaiveBayes([]LabeledFeatureSet{{Features: FeatureSet{"word": "x"}}})
	require.Error(t, err)

	var empty NaiveBayes
	_, err = empty.Classify(FeatureSet{"word": "x"})
	require.True(t, errors.Is(err, ErrUntrained))
}

func TestNaiveBayesTrainerInterface(t *testing.T) {
	var trainer Trainer = NaiveBayesTrainer{}
	c, err := trainer.Train(weatherExamples())
	require.NoError(t, err)
	_, ok := c.(ProbClassifier)
	require.True(t, ok)
}

func TestFeatureSetContexts(t *testing.T) {
	fs := FeatureSet{"word": "Haus", "prevtag": "ART", "cap": "true"}
	require.Equal(t, []string{"cap=true", "prevtag=ART", "word=Haus"}, fs.Contexts())
}
