package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"experimentallabor.de/gertag/logger"
	"experimentallabor.de/gertag/pos"
	"experimentallabor.de/gertag/tokenizer"
	"experimentallabor.de/gertag/types"
	"github.com/spf13/cobra"
)

type modelOptions struct {
	model     string
	storePath string
	beamSize  int
}

func (opts *modelOptions) bind(cmd *cobra.Command, env Env) {
	opts.model = env.Model
	opts.storePath = env.ModelStore
	opts.beamSize = env.BeamSize
	cmd.Flags().StringVarP(&opts.model, "model", "m", opts.model, "model file, s3://bucket/key or store:<name>")
	cmd.Flags().StringVar(&opts.storePath, "store", opts.storePath, "model store database")
	cmd.Flags().IntVar(&opts.beamSize, "beam", opts.beamSize, "beam size, 1 tags greedily")
}

func (opts *modelOptions) tagger(component string) (*pos.Tagger, loadedModel, error) {
	model, err := loadModel(opts.model, opts.storePath)
	if err != nil {
		return nil, model, err
	}
	return newTagger(model, opts.beamSize, logger.NewLogger(component)), model, nil
}

func newTagCommand(env Env) *cobra.Command {
	var opts modelOptions
	var raw bool
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Tag sentences read from stdin, one whitespace tokenised sentence per line",
		Long: "Tag sentences read from stdin, one whitespace tokenised sentence per line.\n" +
			"With --raw stdin is plain German text that is split into sentences and tokenised first.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tagger, _, err := opts.tagger("Tag")
			if err != nil {
				return err
			}
			if raw {
				return tagText(tagger, cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return tagLines(tagger, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	opts.bind(cmd, env)
	cmd.Flags().BoolVar(&raw, "raw", false, "read untokenised text")
	return cmd
}

func tagLines(tagger *pos.Tagger, in io.Reader, out io.Writer) error {
	lines := bufio.NewScanner(in)
	w := bufio.NewWriter(out)
	defer w.Flush()

	for lines.Scan() {
		words := strings.Fields(lines.Text())
		if err := tagAndWrite(tagger, words, w); err != nil {
			return err
		}
	}
	return lines.Err()
}

// tagText writes one tagged sentence per line.
func tagText(tagger *pos.Tagger, in io.Reader, out io.Writer) error {
	txt, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(out)
	defer w.Flush()

	tagged, err := tagger.TagSents(tokenizer.SentenceWords(string(txt)))
	if err != nil {
		return err
	}
	for _, sent := range tagged {
		if err := writeTagged(sent, w); err != nil {
			return err
		}
	}
	return nil
}

func tagAndWrite(tagger *pos.Tagger, words []string, w *bufio.Writer) error {
	tagged, err := tagger.Tag(words)
	if err != nil {
		return err
	}
	return writeTagged(tagged, w)
}

func writeTagged(tagged []types.TaggedToken, w *bufio.Writer) error {
	for i, token := range tagged {
		if i > 0 {
			_ = w.WriteByte(' ')
		}
		fmt.Fprintf(w, "%s/%s", token.Word, token.Tag)
	}
	return w.WriteByte('\n')
}
