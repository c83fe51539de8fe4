package worker

import (
	"context"
	"errors"

	"experimentallabor.de/gertag/redis"
	"experimentallabor.de/gertag/types"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

type failingMethod struct {
	fail bool
}

type withValue struct {
	fail          bool
	returnedValue interface{}
}

var errMock = errors.New("mock error")

type taggerMock struct {
	config taggerMockConfig
	calls  taggerMockCalls
}

type taggerMockConfig struct {
	fail  bool
	panic bool
}

type taggerMockCalls struct {
	tag bool
}

type cacheMock struct {
	config cacheMockConfig
	calls  cacheMockCalls
}

type cacheMockConfig struct {
	get     withValue
	lock    failingMethod
	release failingMethod
	set     failingMethod
}

type cacheMockCalls struct {
	get     bool
	lock    bool
	release bool
	set     bool
}

type rmqMock struct {
	config   rmqMockConfig
	calls    rmqMockCalls
	response types.TagResponse
}

type rmqMockConfig struct {
	reply               failingMethod
	acknowledgeDelivery failingMethod
}

type rmqMockCalls struct {
	reply               bool
	acknowledgeDelivery bool
	rejectDelivery      bool
}

func (mock *taggerMock) Tag(words []string) ([]types.TaggedToken, error) {
	mock.calls.tag = true
	if mock.config.panic {
		panic("tagger exploded")
	}
	if mock.config.fail {
		return nil, errMock
	}
	tagged := make([]types.TaggedToken, len(words))
	for i, word := range words {
		tagged[i] = types.TaggedToken{Word: word, Tag: "NN"}
	}
	return tagged, nil
}

func (mock *cacheMock) close() {}

func (mock *cacheMock) get(context.Context, string) ([]types.TaggedToken, bool, error) {
	mock.calls.get = true
	if mock.config.get.fail {
		return nil, false, errMock
	}
	if mock.config.get.returnedValue == nil {
		return nil, false, nil
	}
	return mock.config.get.returnedValue.([]types.TaggedToken), true, nil
}

func (mock *cacheMock) lock(context.Context, string) (redis.ReleaseLock, error) {
	mock.calls.lock = true
	if mock.config.lock.fail {
		return nil, errMock
	}
	return func() error {
		mock.calls.release = true
		if mock.config.release.fail {
			return errMock
		}
		return nil
	}, nil
}

func (mock *cacheMock) set(context.Context, string, []types.TaggedToken) error {
	mock.calls.set = true
	if mock.config.set.fail {
		return errMock
	}
	return nil
}

func (mock *rmqMock) close() {}

func (mock *rmqMock) reply(_ *Task, response types.TagResponse) error {
	mock.calls.reply = true
	mock.response = response
	if mock.config.reply.fail {
		return errMock
	}
	return nil
}

func (mock *rmqMock) acknowledgeDelivery(*amqp.Delivery) error {
	mock.calls.acknowledgeDelivery = true
	if mock.config.acknowledgeDelivery.fail {
		return errMock
	}
	return nil
}

func (mock *rmqMock) rejectDelivery(*amqp.Delivery, *zerolog.Logger) {
	mock.calls.rejectDelivery = true
}

func (mock *rmqMock) getDeliveriesCh() <-chan amqp.Delivery {
	return nil
}

func (mock *rmqMock) getReqChanErrorsCh() <-chan *amqp.Error {
	return nil
}

func (mock *rmqMock) getRespChanErrorsCh() <-chan *amqp.Error {
	return nil
}
