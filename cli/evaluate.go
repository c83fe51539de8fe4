package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newEvaluateCommand(env Env) *cobra.Command {
	var opts modelOptions
	var configPath string
	var top int
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Measure the accuracy of a model on a corpus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tagger, _, err := opts.tagger("Evaluate")
			if err != nil {
				return err
			}
			_, reader, err := openCorpus(configPath)
			if err != nil {
				return err
			}
			gold, _, err := readTagged(reader, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			eval, err := tagger.Evaluate(gold)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sentences: %d\n", eval.Sentences)
			fmt.Fprintf(out, "accuracy:  %.4f (%d/%d tokens)\n", eval.Accuracy(), eval.Correct, eval.Tokens)
			errs := eval.Errors()
			if len(errs) > top {
				errs = errs[:top]
			}
			if len(errs) == 0 {
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "gold\tpredicted\tcount")
			for _, e := range errs {
				fmt.Fprintf(w, "%s\t%s\t%d\n", e.Gold, e.Predicted, e.Count)
			}
			return w.Flush()
		},
	}
	opts.bind(cmd, env)
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "corpus configuration (yaml)")
	cmd.Flags().IntVar(&top, "top", 10, "number of confused tag pairs to list")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}
