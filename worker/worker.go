// Package worker serves tag requests arriving over RabbitMQ.
package worker

import (
	"fmt"

	"experimentallabor.de/gertag/logger"
	"experimentallabor.de/gertag/redis"
	"experimentallabor.de/gertag/rmq"
	"experimentallabor.de/gertag/types"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

type Config struct {
	MaxSentences int  `envconfig:"GERTAG_WORKER_MAX_SENTENCES" default:"1000"`
	UseCache     bool `envconfig:"GERTAG_WORKER_CACHE" default:"true"`
}

// Tagger is the part of pos.Tagger the worker needs.
type Tagger interface {
	Tag(words []string) ([]types.TaggedToken, error)
}

type Worker struct {
	config  Config
	modelID string
	tagger  Tagger
	cache   cacheTransactions
	rmq     rmqTransactions
	log     *zerolog.Logger
}

// New connects to RabbitMQ and, if enabled, redis. modelID scopes the cache
// entries to the model the tagger was loaded from.
func New(tagger Tagger, modelID string) (*Worker, error) {
	log := logger.NewLogger("Worker")

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Error().Err(err).Msg("Could not read config")
		return nil, err
	}

	worker := Worker{
		config:  config,
		modelID: modelID,
		tagger:  tagger,
		cache:   noCache{},
		log:     &log,
	}
	if err := worker.refreshRMQClient(); err != nil {
		log.Error().Err(err).Msg("Could not create RMQ client")
		return nil, err
	}
	if config.UseCache {
		if err := worker.refreshRedisClient(); err != nil {
			log.Error().Err(err).Msg("Could not create Redis client")
			worker.rmq.close()
			return nil, err
		}
	}
	return &worker, nil
}

func (worker *Worker) StartWorker() error {
	defer worker.Close()
	for {
		select {
		case delivery, ok := <-worker.rmq.getDeliveriesCh():
			if ok {
				go worker.processMessage(&delivery)
				continue
			}
			worker.log.Error().Msg("Deliveries channel closed, trying to refresh RMQ client")
			if err := worker.refreshRMQClient(); err != nil {
				return fmt.Errorf(
					"rmq deliveries channel has been closed and refresh returned error: %w",
					err,
				)
			}
		case rmqErr := <-worker.rmq.getRespChanErrorsCh():
			if rmqErr == nil {
				continue
			}
			worker.log.Err(rmqErr).Msg("Response connection received error, trying to refresh RMQ client")
			if err := worker.refreshRMQClient(); err != nil {
				return fmt.Errorf(
					"response connection received error and refresh failed with: %w",
					err,
				)
			}
		case rmqErr := <-worker.rmq.getReqChanErrorsCh():
			if rmqErr == nil {
				continue
			}
			worker.log.Err(rmqErr).Msg("Request connection received error, trying to refresh RMQ client")
			if err := worker.refreshRMQClient(); err != nil {
				return fmt.Errorf(
					"request connection received error and refresh failed with: %w",
					err,
				)
			}
		}
	}
}

func (worker *Worker) Close() {
	worker.cache.close()
	worker.rmq.close()
}

func (worker *Worker) refreshRedisClient() error {
	worker.log.Info().Msg("Refreshing Redis client")
	if oldClient := worker.cache; oldClient != nil {
		defer oldClient.close()
	}
	client, err := redis.NewClient(0)
	if err != nil {
		worker.log.Err(err).Msg("Failed to refresh Redis client")
		return err
	}
	worker.cache = &redisClientWrapper{client}
	worker.log.Info().Msg("Refreshed Redis client")
	return nil
}

func (worker *Worker) refreshRMQClient() error {
	worker.log.Info().Msg("Refreshing RMQ client")
	if oldClient := worker.rmq; oldClient != nil {
		defer oldClient.close()
	}
	rmqClient, err := rmq.NewClient()
	if err != nil {
		worker.log.Err(err).Msg("Failed to refresh RMQ client")
		return err
	}
	worker.rmq = &rmqClientWrapper{rmqClient}
	worker.log.Info().Msg("Refreshed RMQ client")
	return nil
}
