package pos

import (
	"fmt"

	"experimentallabor.de/gertag/classify"
	"experimentallabor.de/gertag/types"
	"github.com/rs/zerolog"
)

// NoTagError reports a position no tag could be assigned to.
type NoTagError struct {
	Index int
	Word  string
}

func (e *NoTagError) Error() string {
	return fmt.Sprintf("no tag for token %d (%q)", e.Index, e.Word)
}

// Tagger tags sentences left to right, asking the classifier for one token
// at a time with the features of its detector.
type Tagger struct {
	detector   FeatureDetector
	classifier classify.Classifier
	validator  SequenceValidator
	beamSize   int
	log        zerolog.Logger
}

type Option func(*Tagger)

// WithBeamSize enables beam search for classifiers that score every label.
func WithBeamSize(size int) Option {
	return func(t *Tagger) {
		if size > 0 {
			t.beamSize = size
		}
	}
}

// WithValidator restricts the tags a word may take. Greedy tagging can only
// honour it with a classifier that scores every label; a classifier that
// only names its best label is used as it is, and NewTagger logs a warning.
func WithValidator(validator SequenceValidator) Option {
	return func(t *Tagger) {
		if validator != nil {
			t.validator = validator
		}
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(t *Tagger) {
		t.log = log
	}
}

func NewTagger(detector FeatureDetector, classifier classify.Classifier, opts ...Option) *Tagger {
	t := &Tagger{
		detector:   detector,
		classifier: classifier,
		validator:  NewSequenceValidator(),
		beamSize:   1,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if _, canRank := classifier.(classify.ProbClassifier); !canRank && t.restricted() {
		t.log.Warn().Msg("Classifier cannot rank labels, the sequence validator is ignored")
	}
	return t
}

func (t *Tagger) restricted() bool {
	_, unrestricted := t.validator.(defaultSequenceValidator)
	return !unrestricted
}

// SentenceExamples builds one training example per token. The history seen
// by the detector is the gold tag sequence.
func SentenceExamples(sentence []types.TaggedToken, detector FeatureDetector) []classify.LabeledFeatureSet {
	words := types.Words(sentence)
	tags := types.Tags(sentence)
	examples := make([]classify.LabeledFeatureSet, len(sentence))
	for i := range sentence {
		examples[i] = classify.LabeledFeatureSet{
			Features: detector.Detect(words, i, tags[:i]),
			Label:    tags[i],
		}
	}
	return examples
}

func TrainingExamples(sentences [][]types.TaggedToken, detector FeatureDetector) []classify.LabeledFeatureSet {
	var examples []classify.LabeledFeatureSet
	for _, sentence := range sentences {
		examples = append(examples, SentenceExamples(sentence, detector)...)
	}
	return examples
}

// Train collects examples from gold sentences and hands them to trainer.
// Trainer errors are returned as they are.
func Train(sentences [][]types.TaggedToken, detector FeatureDetector, trainer classify.Trainer, opts ...Option) (*Tagger, error) {
	examples := TrainingExamples(sentences, detector)
	classifier, err := trainer.Train(examples)
	if err != nil {
		return nil, err
	}
	t := NewTagger(detector, classifier, opts...)
	t.log.Debug().
		Int("sentences", len(sentences)).
		Int("examples", len(examples)).
		Int("labels", len(classifier.Labels())).
		Msg("Trained tagger")
	return t, nil
}

func (t *Tagger) Classifier() classify.Classifier {
	return t.classifier
}

// Tag assigns a tag to every word. An empty sentence gives an empty result.
func (t *Tagger) Tag(words []string) ([]types.TaggedToken, error) {
	if len(words) == 0 {
		return []types.TaggedToken{}, nil
	}

	var tags []string
	var err error
	if probClassifier, ok := t.classifier.(classify.ProbClassifier); ok && t.beamSize > 1 {
		var seq Sequence
		seq, err = t.beamSearch(words, probClassifier)
		tags = seq.Outcomes
	} else {
		tags, err = t.greedy(words)
	}
	if err != nil {
		return nil, err
	}

	tagged := make([]types.TaggedToken, len(words))
	for i, word := range words {
		tagged[i] = types.TaggedToken{Word: word, Tag: tags[i]}
	}
	return tagged, nil
}

func (t *Tagger) greedy(words []string) ([]string, error) {
	probClassifier, canRank := t.classifier.(classify.ProbClassifier)

	history := make([]string, 0, len(words))
	for i := range words {
		features := t.detector.Detect(words, i, history)

		var tag string
		if canRank && t.restricted() {
			dist, err := probClassifier.ProbClassify(features)
			if err != nil {
				return nil, err
			}
			for _, lp := range dist {
				if lp.Label != "" && t.validator.ValidSequence(i, words, lp.Label) {
					tag = lp.Label
					break
				}
			}
		} else {
			label, err := t.classifier.Classify(features)
			if err != nil {
				return nil, err
			}
			tag = label
		}

		if tag == "" {
			return nil, &NoTagError{Index: i, Word: words[i]}
		}
		history = append(history, tag)
	}
	return history, nil
}

func (t *Tagger) TagSents(sentences [][]string) ([][]types.TaggedToken, error) {
	tagged := make([][]types.TaggedToken, len(sentences))
	for i, sentence := range sentences {
		tokens, err := t.Tag(sentence)
		if err != nil {
			return nil, err
		}
		tagged[i] = tokens
	}
	return tagged, nil
}
