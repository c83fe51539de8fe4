package cli

import (
	"errors"
	"fmt"
	"os"

	"experimentallabor.de/gertag/classify"
	"experimentallabor.de/gertag/logger"
	"experimentallabor.de/gertag/modelstore"
	"experimentallabor.de/gertag/pos"
	"experimentallabor.de/gertag/s3client"
	"experimentallabor.de/gertag/types"
	"github.com/spf13/cobra"
)

type trainOptions struct {
	configPath string
	out        string
	storePath  string
	name       string
	publish    string
	holdOut    float64
}

func newTrainCommand(env Env) *cobra.Command {
	opts := trainOptions{storePath: env.ModelStore}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a Naive Bayes tagger on a corpus",
		Long: `Train a Naive Bayes tagger on the corpus described by a yaml configuration.
The model is written to --out, stored in the model store with --name and
uploaded to S3 with --publish. With --hold-out a share of the sentences is
kept back and used to report the accuracy of the new model.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrain(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "corpus configuration (yaml)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write the model to this file")
	cmd.Flags().StringVar(&opts.storePath, "store", opts.storePath, "model store database")
	cmd.Flags().StringVar(&opts.name, "name", "", "save the model in the store under this name")
	cmd.Flags().StringVar(&opts.publish, "publish", "", "upload the model to s3://bucket/key")
	cmd.Flags().Float64Var(&opts.holdOut, "hold-out", 0, "share of sentences kept back for evaluation")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func runTrain(cmd *cobra.Command, opts trainOptions) error {
	if opts.out == "" && opts.name == "" && opts.publish == "" {
		return errors.New("nothing to do with the model, use --out, --name or --publish")
	}
	if opts.holdOut < 0 || opts.holdOut >= 1 {
		return fmt.Errorf("hold-out must be in [0, 1), got %v", opts.holdOut)
	}

	cfg, reader, err := openCorpus(opts.configPath)
	if err != nil {
		return err
	}
	if cfg.Tagger.Classifier != types.ClassifierNaiveBayes {
		return fmt.Errorf("classifier %q cannot be trained", cfg.Tagger.Classifier)
	}

	sents, stats, err := readTagged(reader, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	train, test := splitHoldOut(sents, opts.holdOut)

	log := logger.NewLogger("Train")
	log.Info().
		Int("sentences", len(train)).
		Int("held_out", len(test)).
		Int("skipped_lines", stats.Skipped).
		Msg("Training tagger")

	tagOpts := []pos.Option{pos.WithBeamSize(cfg.Tagger.BeamSize), pos.WithLogger(log)}
	var dict pos.TagDictionary
	if cfg.Tagger.TagDictionary {
		dict = pos.NewTagDictionary(train)
		tagOpts = append(tagOpts, pos.WithValidator(dict))
	}
	tagger, err := pos.Train(train, pos.NewGermanFeatureDetector(), classify.NaiveBayesTrainer{}, tagOpts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(test) > 0 {
		eval, err := tagger.Evaluate(test)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "held-out accuracy: %.4f (%d/%d tokens)\n", eval.Accuracy(), eval.Correct, eval.Tokens)
	}

	payload, err := classify.MarshalBundle(classify.Bundle{
		Classifier:    tagger.Classifier(),
		TagDictionary: dict.Entries(),
	})
	if err != nil {
		return err
	}
	if opts.out != "" {
		if err := os.WriteFile(opts.out, payload, 0644); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", opts.out)
	}
	if opts.name != "" {
		store, err := modelstore.Open(opts.storePath)
		if err != nil {
			return err
		}
		defer store.Close()
		kind, err := classify.KindOf(tagger.Classifier())
		if err != nil {
			return err
		}
		id, err := store.Put(opts.name, kind, payload)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "stored %s as %s\n", opts.name, id)
	}
	if opts.publish != "" {
		client, err := s3client.New()
		if err != nil {
			return err
		}
		if err := client.Upload(opts.publish, payload); err != nil {
			return err
		}
		fmt.Fprintf(out, "published %s\n", opts.publish)
	}
	return nil
}

// splitHoldOut keeps the last share of sentences for evaluation.
func splitHoldOut(sents [][]types.TaggedToken, share float64) ([][]types.TaggedToken, [][]types.TaggedToken) {
	n := int(float64(len(sents)) * share)
	if n == 0 {
		return sents, nil
	}
	cut := len(sents) - n
	return sents[:cut], sents[cut:]
}
