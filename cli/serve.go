package cli

import (
	"fmt"
	"net/http"
	"time"

	"experimentallabor.de/gertag/api"
	"experimentallabor.de/gertag/logger"
	"experimentallabor.de/gertag/worker"
	"github.com/spf13/cobra"
)

func newServeCommand(env Env) *cobra.Command {
	var opts modelOptions
	port := env.APIPort
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve POST /tag over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewLogger("API")
			tagger, model, err := opts.tagger("API")
			if err != nil {
				return err
			}
			request := &api.Request{
				Tagger:       tagger,
				ModelID:      model.ID,
				MaxSentences: env.MaxSentences,
				Logger:       &log,
			}
			host := fmt.Sprintf(":%s", port)
			log.Info().Str("model_id", model.ID).Msgf("REST API on %s", host)
			server := &http.Server{
				Addr:              host,
				Handler:           request.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return server.ListenAndServe()
		},
	}
	opts.bind(cmd, env)
	cmd.Flags().StringVar(&port, "port", port, "listen port")
	return cmd
}

const workerRestartDelay = 5 * time.Second

func newWorkerCommand(env Env) *cobra.Command {
	var opts modelOptions
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Serve tag requests from RabbitMQ",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewLogger("Main")
			tagger, model, err := opts.tagger("Worker")
			if err != nil {
				return err
			}
			log.Info().Str("model_id", model.ID).Msg("Start tagging worker")
			for {
				rmqWorker, err := worker.New(tagger, model.ID)
				if err != nil {
					log.Error().Err(err).Msg("Could not initialize RMQ worker")
					return err
				}
				if err = rmqWorker.StartWorker(); err != nil {
					log.Err(err).Msgf("Worker returned with error. Launching new in %s", workerRestartDelay)
					time.Sleep(workerRestartDelay)
				}
			}
		},
	}
	opts.bind(cmd, env)
	return cmd
}
