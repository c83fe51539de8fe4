// Package s3client moves model files between S3 and the local disk.
package s3client

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"experimentallabor.de/gertag/logger"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

const Scheme = "s3"

type EnvironmentConfig struct {
	Region      string `envconfig:"GERTAG_AWS_REGION" default:"eu-central-1"`
	BucketName  string `envconfig:"GERTAG_MODEL_BUCKET" default:""`
	AwsEndpoint string `envconfig:"GERTAG_AWS_ENDPOINT_URL" default:""`
	AccessKeyID string `envconfig:"GERTAG_AWS_ACCESS_ID" default:""`
	AccessKey   string `envconfig:"GERTAG_AWS_ACCESS_KEY" default:""`
}

type Client struct {
	sess       *session.Session
	bucketName string
	log        zerolog.Logger
}

var clientLogger = logger.NewLogger("S3Client")
var sdkLogger = logger.NewLogger("S3-SDK")

func New() (*Client, error) {
	env, err := readEnvironment()
	if err != nil {
		clientLogger.Err(err).Msg("Failed to get proper variables from environment")
		return nil, err
	}
	return NewWithConfig(env)
}

func NewWithConfig(env EnvironmentConfig) (*Client, error) {
	sess, err := session.NewSession(createConfig(env))
	if err != nil {
		clientLogger.Error().Err(err).Msg("Could not initialize S3 session")
		return nil, err
	}
	return &Client{sess: sess, bucketName: env.BucketName, log: clientLogger}, nil
}

func createConfig(env EnvironmentConfig) *aws.Config {
	cfg := aws.NewConfig().
		WithRegion(env.Region).
		WithMaxRetries(4).
		WithLogger(getLogger(sdkLogger)).
		WithLogLevel(aws.LogDebug)

	if env.AccessKeyID != "" {
		cfg = cfg.WithCredentials(credentials.NewStaticCredentials(env.AccessKeyID, env.AccessKey, ""))
	}
	if env.AwsEndpoint != "" {
		cfg = cfg.WithEndpoint(env.AwsEndpoint).WithS3ForcePathStyle(true)
	}
	return cfg
}

// IsURL reports whether ref points into S3.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, Scheme+"://")
}

// ParseURL splits s3://bucket/key. A bare key uses defaultBucket.
func ParseURL(ref string, defaultBucket string) (bucket string, key string, err error) {
	if !IsURL(ref) {
		if defaultBucket == "" {
			return "", "", fmt.Errorf("no bucket for key %q", ref)
		}
		return defaultBucket, strings.TrimPrefix(ref, "/"), nil
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", "", err
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%q is not of the form s3://bucket/key", ref)
	}
	return u.Host, key, nil
}

func (client *Client) Download(ref string) ([]byte, error) {
	bucket, key, err := ParseURL(ref, client.bucketName)
	if err != nil {
		return nil, err
	}
	log := client.log.With().Str("key", key).Str("bucket", bucket).Logger()

	downloader := s3manager.NewDownloader(client.sess)
	buf := aws.NewWriteAtBuffer([]byte{})

	log.Debug().Msg("Downloading file")
	size, err := downloader.Download(buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to download file")
		return nil, err
	}
	log.Debug().Msgf("Downloaded %v bytes", size)
	return buf.Bytes(), nil
}

func (client *Client) Upload(ref string, data []byte) error {
	bucket, key, err := ParseURL(ref, client.bucketName)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return errors.New("refusing to upload an empty model")
	}
	client.log.Debug().Str("key", key).Str("bucket", bucket).Msg("Uploading the file")

	uploader := s3manager.NewUploader(client.sess)
	_, err = uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	return err
}

func readEnvironment() (EnvironmentConfig, error) {
	var config EnvironmentConfig
	err := envconfig.Process("", &config)
	return config, err
}

type s3Logger struct {
	log zerolog.Logger
}

func getLogger(log zerolog.Logger) *s3Logger {
	return &s3Logger{log}
}

func (logger *s3Logger) Log(v ...interface{}) {
	logger.log.Debug().Msg(fmt.Sprint(v...))
}
