package classify

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	KindNaiveBayes = "naive_bayes"
	KindMaxEnt     = "maxent"
)

type modelFile struct {
	Kind          string              `json:"kind"`
	Model         json.RawMessage     `json:"model"`
	TagDictionary map[string][]string `json:"tag_dictionary,omitempty"`
}

// Bundle is the content of a model file: the classifier and, if the tagger
// was trained with one, the tags every known word may take.
type Bundle struct {
	Classifier    Classifier
	TagDictionary map[string][]string
}

func KindOf(c Classifier) (string, error) {
	switch c.(type) {
	case *NaiveBayes:
		return KindNaiveBayes, nil
	case *MaxEnt:
		return KindMaxEnt, nil
	}
	return "", fmt.Errorf("unsupported classifier type %T", c)
}

func Marshal(c Classifier) ([]byte, error) {
	return MarshalBundle(Bundle{Classifier: c})
}

func MarshalBundle(b Bundle) ([]byte, error) {
	kind, err := KindOf(b.Classifier)
	if err != nil {
		return nil, err
	}
	model, err := json.Marshal(b.Classifier)
	if err != nil {
		return nil, err
	}
	return json.Marshal(modelFile{Kind: kind, Model: model, TagDictionary: b.TagDictionary})
}

func Unmarshal(buf []byte) (Classifier, error) {
	b, err := UnmarshalBundle(buf)
	return b.Classifier, err
}

// UnmarshalBundle decodes a model written by MarshalBundle. A bare MaxEnt
// model without the kind envelope is accepted as well.
func UnmarshalBundle(buf []byte) (Bundle, error) {
	var file modelFile
	if err := json.Unmarshal(buf, &file); err != nil {
		return Bundle{}, err
	}

	b := Bundle{TagDictionary: file.TagDictionary}
	switch file.Kind {
	case KindNaiveBayes:
		var nb NaiveBayes
		if err := json.Unmarshal(file.Model, &nb); err != nil {
			return Bundle{}, err
		}
		nb.init()
		b.Classifier = &nb
		return b, nil
	case KindMaxEnt:
		var m MaxEnt
		if err := json.Unmarshal(file.Model, &m); err != nil {
			return Bundle{}, err
		}
		b.Classifier = &m
		return b, nil
	case "":
		var m MaxEnt
		if err := json.Unmarshal(buf, &m); err != nil {
			return Bundle{}, err
		}
		if len(m.Outcomes) == 0 {
			return Bundle{}, errors.New("model file has no kind")
		}
		b.Classifier = &m
		return b, nil
	}
	return Bundle{}, fmt.Errorf("unknown model kind %q", file.Kind)
}
