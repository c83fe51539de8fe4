package cli

import (
	"fmt"
	"os"
	"strings"

	"experimentallabor.de/gertag/classify"
	"experimentallabor.de/gertag/modelstore"
	"experimentallabor.de/gertag/pos"
	"experimentallabor.de/gertag/s3client"
	"experimentallabor.de/gertag/utils"
	"github.com/rs/zerolog"
)

const storePrefix = "store:"

type loadedModel struct {
	ID         string
	Classifier classify.Classifier

	// nil when the model was trained without a tag dictionary
	TagDictionary pos.TagDictionary
}

// loadModel reads a classifier from a file, from S3 (s3://bucket/key) or from
// the model store (store:<name> for the latest version, store:<id>).
func loadModel(ref string, storePath string) (loadedModel, error) {
	switch {
	case ref == "":
		return loadedModel{}, fmt.Errorf("no model given, use --model or GERTAG_MODEL")

	case strings.HasPrefix(ref, storePrefix):
		store, err := modelstore.Open(storePath)
		if err != nil {
			return loadedModel{}, err
		}
		defer store.Close()

		name := strings.TrimPrefix(ref, storePrefix)
		record, err := store.Latest(name)
		if err != nil {
			record, err = store.Get(name)
		}
		if err != nil {
			return loadedModel{}, err
		}
		model, err := unmarshalModel("model "+record.ID, record.Payload)
		if err != nil {
			return loadedModel{}, err
		}
		model.ID = record.ID
		return model, nil

	case s3client.IsURL(ref):
		client, err := s3client.New()
		if err != nil {
			return loadedModel{}, err
		}
		buf, err := client.Download(ref)
		if err != nil {
			return loadedModel{}, err
		}
		return unmarshalModel(ref, buf)

	default:
		buf, err := os.ReadFile(ref)
		if err != nil {
			return loadedModel{}, err
		}
		return unmarshalModel(ref, buf)
	}
}

func unmarshalModel(ref string, buf []byte) (loadedModel, error) {
	bundle, err := classify.UnmarshalBundle(buf)
	if err != nil {
		return loadedModel{}, fmt.Errorf("%s: %w", ref, err)
	}
	return loadedModel{
		ID:            fmt.Sprintf("%016x", utils.HashString(string(buf))),
		Classifier:    bundle.Classifier,
		TagDictionary: pos.TagDictionaryFrom(bundle.TagDictionary),
	}, nil
}

func newTagger(model loadedModel, beamSize int, log zerolog.Logger) *pos.Tagger {
	opts := []pos.Option{pos.WithBeamSize(beamSize), pos.WithLogger(log)}
	if model.TagDictionary != nil {
		opts = append(opts, pos.WithValidator(model.TagDictionary))
	}
	return pos.NewTagger(pos.NewGermanFeatureDetector(), model.Classifier, opts...)
}
