// Package cli implements the gertag command line.
package cli

import (
	"os"

	"experimentallabor.de/gertag/logger"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Env holds the defaults read from the environment. Flags override them.
type Env struct {
	Model        string `envconfig:"GERTAG_MODEL" default:""`
	ModelStore   string `envconfig:"GERTAG_MODEL_STORE" default:"models.db"`
	APIPort      string `envconfig:"GERTAG_API_PORT" default:"10000"`
	BeamSize     int    `envconfig:"GERTAG_BEAM_SIZE" default:"1"`
	MaxSentences int    `envconfig:"GERTAG_MAX_SENTENCES" default:"1000"`
}

func ReadEnv() (Env, error) {
	var env Env
	err := envconfig.Process("", &env)
	return env, err
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand(env Env) *cobra.Command {
	root := &cobra.Command{
		Use:   "gertag",
		Short: "German part-of-speech tagging over Negra/TIGER corpora",
		Long: `gertag trains classifier based part-of-speech taggers on corpora in the
Negra/TIGER export format and serves them.

Example usage:
  gertag corpus stats --config tiger.yaml
  gertag train --config tiger.yaml --out tiger.json
  echo "Der Hund läuft ." | gertag tag --model tiger.json`,
		SilenceUsage: true,
	}
	var prettyLogs bool
	root.PersistentFlags().BoolVar(&prettyLogs, "pretty-logs", false, "human readable logs on stderr")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if prettyLogs {
			logger.SetOutput(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})
		}
	}

	root.AddCommand(
		newTrainCommand(env),
		newTagCommand(env),
		newEvaluateCommand(env),
		newCorpusCommand(),
		newServeCommand(env),
		newWorkerCommand(env),
		newModelsCommand(env),
	)
	return root
}

func Execute() {
	log := logger.NewLogger("CLI")
	env, err := ReadEnv()
	if err != nil {
		log.Error().Err(err).Msg("Failed to read environment")
		os.Exit(1)
	}
	if err := NewRootCommand(env).Execute(); err != nil {
		os.Exit(1)
	}
}
