package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"experimentallabor.de/gertag/logger"
	"experimentallabor.de/gertag/redis"
	"experimentallabor.de/gertag/types"
	"experimentallabor.de/gertag/utils"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

type Task struct {
	delivery *amqp.Delivery
	request  *types.TagRequest
	log      *zerolog.Logger
}

func (worker *Worker) processMessage(delivery *amqp.Delivery) {
	rejectLogger := worker.log.With().Str("message_id", delivery.MessageId).Logger()
	defer logger.HandlePanic(rejectLogger)
	task, err := worker.createTask(delivery)
	if err != nil {
		worker.log.Err(err).
			Str("message_id", delivery.MessageId).
			Msg("Failed to create task for delivery")
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	response, err := worker.processTask(context.Background(), task)
	if err != nil {
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.rmq.reply(task, response); err != nil {
		task.log.Err(err).Msg("Got error while sending reply")
		worker.rmq.rejectDelivery(delivery, &rejectLogger)
		return
	}
	if err = worker.rmq.acknowledgeDelivery(delivery); err != nil {
		task.log.Err(err).Msg("Failed to acknowledge delivery")
	}
	task.log.Info().Msg("Finished processing RMQ message")
}

func (worker *Worker) createTask(delivery *amqp.Delivery) (*Task, error) {
	var request types.TagRequest
	err := json.Unmarshal(delivery.Body, &request)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal message, got error %w", err)
	}
	taskLogger := worker.log.With().Str("request_id", request.ID).Logger()
	return &Task{
		delivery: delivery,
		request:  &request,
		log:      &taskLogger,
	}, nil
}

// processTask tags every sentence of the request. Errors of the tagger end up
// in the response; only cache failures are returned, so that the delivery is
// retried.
func (worker *Worker) processTask(ctx context.Context, task *Task) (types.TagResponse, error) {
	response := types.TagResponse{ID: task.request.ID, ModelID: worker.modelID}
	sentences := task.request.Words()
	if n := len(sentences); n > worker.config.MaxSentences {
		response.Error = fmt.Sprintf("request has %d sentences, at most %d are allowed", n, worker.config.MaxSentences)
		return response, nil
	}

	task.log.Info().Int("sentences", len(sentences)).Msg("Tagging request")
	tagged := make([][]types.TaggedToken, len(sentences))
	for i, words := range sentences {
		sent, err := worker.tagSentence(ctx, task, words)
		var cacheErr *cacheError
		if errors.As(err, &cacheErr) {
			task.log.Err(err).Int("sentence", i).Msg("Cache failure")
			return response, err
		}
		if err != nil {
			task.log.Warn().Err(err).Int("sentence", i).Msg("Could not tag sentence")
			response.Error = fmt.Sprintf("sentence %d: %s", i, err)
			return response, nil
		}
		tagged[i] = sent
	}
	response.Sentences = tagged
	return response, nil
}

type cacheError struct {
	err error
}

func (e *cacheError) Error() string {
	return "cache: " + e.err.Error()
}

func (e *cacheError) Unwrap() error {
	return e.err
}

func (worker *Worker) cached(ctx context.Context, key string) ([]types.TaggedToken, bool, error) {
	tagged, ok, err := worker.cache.get(ctx, key)
	if err != nil {
		return nil, false, &cacheError{err}
	}
	return tagged, ok, nil
}

// tagSentence returns the tagging of words from the cache or the tagger.
// Cache failures are reported as *cacheError.
func (worker *Worker) tagSentence(ctx context.Context, task *Task, words []string) ([]types.TaggedToken, error) {
	if len(words) == 0 {
		return []types.TaggedToken{}, nil
	}
	key := redis.CacheKey(worker.modelID, words)
	if tagged, ok, err := worker.cached(ctx, key); err != nil || ok {
		return tagged, err
	}

	release, err := worker.cache.lock(ctx, key)
	if err != nil {
		return nil, &cacheError{fmt.Errorf("failed to lock %s: %w", key, err)}
	}
	defer func() {
		if err := release(); err != nil {
			task.log.Warn().Err(err).Str("key", key).Msg("Failed to release lock")
		}
	}()

	// Another worker may have filled the entry while we waited for the lock.
	if tagged, ok, err := worker.cached(ctx, key); err != nil || ok {
		return tagged, err
	}

	tagged, err := worker.tag(words)
	if err != nil {
		return nil, err
	}
	if err := worker.cache.set(ctx, key, tagged); err != nil {
		task.log.Warn().Err(err).Str("key", key).Msg("Failed to cache result")
	}
	return tagged, nil
}

func (worker *Worker) tag(words []string) (tagged []types.TaggedToken, err error) {
	defer utils.RecoverWithError(&err)
	return worker.tagger.Tag(words)
}
