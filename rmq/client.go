// Package rmq connects the tagging worker to RabbitMQ.
package rmq

import (
	"errors"
	"fmt"

	"experimentallabor.de/gertag/logger"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
)

type Config struct {
	Host                    string `envconfig:"GERTAG_RMQ_HOST" required:"true"`
	Port                    string `envconfig:"GERTAG_RMQ_PORT" required:"true"`
	Username                string `envconfig:"GERTAG_RMQ_USERNAME" required:"true"`
	Password                string `envconfig:"GERTAG_RMQ_PASSWORD" required:"true"`
	Exchange                string `envconfig:"GERTAG_RMQ_EXCHANGE" default:"gertag"`
	MaxParallelRequestCount int    `envconfig:"GERTAG_RMQ_MAX_PARALLEL_REQUESTS" default:"5"`
	TagQueue                string `envconfig:"GERTAG_RMQ_TAG_QUEUE" default:"gertag.tag"`
}

// Client consumes tag requests on one connection and publishes replies on
// another.
type Client struct {
	Deliveries     <-chan amqp.Delivery
	ReqChanErrors  <-chan *amqp.Error
	RespChanErrors <-chan *amqp.Error
	config         Config
	reqConn        *amqp.Connection
	respConn       *amqp.Connection
	respChannel    *amqp.Channel
	log            zerolog.Logger
}

func ReadConfig() (Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return config, err
	}
	// envconfig accepts variables that are set but empty
	if config.Host == "" || config.Port == "" {
		return config, errors.New("GERTAG_RMQ_HOST and GERTAG_RMQ_PORT must not be empty")
	}
	return config, nil
}

func NewClient() (*Client, error) {
	log := logger.NewLogger("RMQ client")
	config, err := ReadConfig()
	if err != nil {
		log.Error().Err(err).Msg("Could not read env config")
		return nil, err
	}

	url := URL(config)
	respConn, respChannel, err := setup(url)
	if err != nil {
		return nil, fmt.Errorf("failed connection: %w", err)
	}
	reqConn, reqChannel, err := setup(url)
	if err != nil {
		_ = respConn.Close()
		return nil, fmt.Errorf("failed connection: %w", err)
	}

	client := &Client{
		config:      config,
		reqConn:     reqConn,
		respConn:    respConn,
		respChannel: respChannel,
		log:         log,
	}
	if err := client.consume(reqChannel); err != nil {
		client.Close()
		return nil, err
	}
	client.ReqChanErrors = reqChannel.NotifyClose(make(chan *amqp.Error, 1))
	client.RespChanErrors = respChannel.NotifyClose(make(chan *amqp.Error, 1))
	return client, nil
}

func (c *Client) consume(reqChannel *amqp.Channel) error {
	if err := reqChannel.ExchangeDeclare(
		c.config.Exchange, // name
		"direct",          // kind
		true,              // durable
		false,             // auto-deleted
		false,             // internal
		false,             // no-wait
		nil,               // arguments
	); err != nil {
		return fmt.Errorf("exchange: %w", err)
	}

	q, err := reqChannel.QueueDeclare(
		c.config.TagQueue, // name
		true,              // durable
		false,             // delete when unused
		false,             // exclusive
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		return fmt.Errorf("queue: %w", err)
	}
	if err := reqChannel.QueueBind(
		q.Name,
		c.config.TagQueue,
		c.config.Exchange,
		false,
		nil); err != nil {
		return fmt.Errorf("bind: %w", err)
	}
	if err := reqChannel.Qos(c.config.MaxParallelRequestCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	deliveries, err := reqChannel.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume deliveries: %w", err)
	}
	c.Deliveries = deliveries
	return nil
}

// Reply publishes msg to the queue named by a request's ReplyTo header
// through the default exchange.
func (c *Client) Reply(replyTo string, msg amqp.Publishing) error {
	if replyTo == "" {
		return fmt.Errorf("delivery has no reply queue")
	}
	return c.respChannel.Publish(
		"",
		replyTo,
		false,
		false,
		msg)
}

func (c *Client) Close() {
	if err := c.reqConn.Close(); err != nil {
		c.log.Debug().Err(err).Msg("Closing request connection")
	}
	if err := c.respConn.Close(); err != nil {
		c.log.Debug().Err(err).Msg("Closing response connection")
	}
}

func URL(config Config) string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s", config.Username, config.Password, config.Host, config.Port)
}

func setup(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}
