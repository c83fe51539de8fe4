package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"experimentallabor.de/gertag/logger"
	"experimentallabor.de/gertag/negra"
	"experimentallabor.de/gertag/types"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func openCorpus(configPath string) (types.Configuration, *negra.Reader, error) {
	cfg, err := types.LoadConfiguration(configPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("failed to load config: %w", err)
	}
	reader, err := negra.NewReaderFromConfig(cfg.Corpus, negra.WithLogger(logger.NewLogger("Corpus")))
	if err != nil {
		return cfg, nil, err
	}
	return cfg, reader, nil
}

func newProgressBar(out io.Writer, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(out)
		}),
	)
}

// readTagged loads all tagged sentences of a corpus, showing progress on out.
func readTagged(reader *negra.Reader, out io.Writer) ([][]types.TaggedToken, negra.Stats, error) {
	if err := reader.Columns().Require(negra.Words, negra.POS); err != nil {
		return nil, negra.Stats{}, err
	}
	it, err := reader.Open()
	if err != nil {
		return nil, negra.Stats{}, err
	}
	defer it.Close()

	bar := newProgressBar(out, "Reading sentences")
	var sents [][]types.TaggedToken
	for it.Next() {
		sents = append(sents, it.Sentence().Tagged())
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return sents, it.Stats(), it.Err()
}

type corpusStats struct {
	negra.Stats
	Tags map[string]int
}

func collectStats(reader *negra.Reader) (corpusStats, error) {
	stats := corpusStats{Tags: map[string]int{}}
	it, err := reader.Open()
	if err != nil {
		return stats, err
	}
	defer it.Close()

	for it.Next() {
		for _, token := range it.Sentence().Tokens {
			stats.Tags[token.Tag]++
		}
	}
	stats.Stats = it.Stats()
	return stats, it.Err()
}

func newCorpusCommand() *cobra.Command {
	corpus := &cobra.Command{
		Use:   "corpus",
		Short: "Inspect corpora",
	}

	var configPath string
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Count files, sentences, tokens and tags of a corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reader, err := openCorpus(configPath)
			if err != nil {
				return err
			}
			stats, err := collectStats(reader)
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
	stats.Flags().StringVarP(&configPath, "config", "c", "", "corpus configuration (yaml)")
	_ = stats.MarkFlagRequired("config")

	var treesConfig string
	trees := &cobra.Command{
		Use:   "trees",
		Short: "Print the constituency tree of every sentence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reader, err := openCorpus(treesConfig)
			if err != nil {
				return err
			}
			return printTrees(cmd.OutOrStdout(), reader)
		},
	}
	trees.Flags().StringVarP(&treesConfig, "config", "c", "", "corpus configuration (yaml)")
	_ = trees.MarkFlagRequired("config")

	corpus.AddCommand(stats, trees)
	return corpus
}

// printTrees writes one bracketed tree per line followed by a summary.
func printTrees(out io.Writer, reader *negra.Reader) error {
	trees, err := reader.ChunkedSents()
	if err != nil {
		return err
	}
	chunks, err := reader.ChunkedWords()
	if err != nil {
		return err
	}

	height, leaves := 0, 0
	for _, tree := range trees {
		fmt.Fprintln(out, tree.String())
		if h := tree.Height(); h > height {
			height = h
		}
		leaves += len(tree.Leaves())
	}
	fmt.Fprintf(out, "trees: %d, chunks: %d, leaves: %d, max height: %d\n", len(trees), len(chunks), leaves, height)
	return nil
}

func printStats(out io.Writer, stats corpusStats) {
	fmt.Fprintf(out, "files:     %d\n", stats.Files)
	fmt.Fprintf(out, "sentences: %d\n", stats.Sentences)
	fmt.Fprintf(out, "tokens:    %d\n", stats.Tokens)
	fmt.Fprintf(out, "skipped:   %d\n", stats.Skipped)
	fmt.Fprintf(out, "tags:      %d\n", len(stats.Tags))

	tags := make([]string, 0, len(stats.Tags))
	for tag := range stats.Tags {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if stats.Tags[tags[i]] != stats.Tags[tags[j]] {
			return stats.Tags[tags[i]] > stats.Tags[tags[j]]
		}
		return tags[i] < tags[j]
	})

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, tag := range tags {
		fmt.Fprintf(w, "  %s\t%d\n", tag, stats.Tags[tag])
	}
	_ = w.Flush()
}
