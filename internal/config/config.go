package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Tanuj-tj/video-converter/internal/transcoder"
)

type S3Config struct {
	Host      string
	Port      string
	AccessKey string
	SecretKey string
}

func (c S3Config) Endpoint() string { return c.Host + ":" + c.Port }

type RabbitMQConfig struct {
	User     string
	Password string
	Host     string
	Port     string
}

func (c RabbitMQConfig) URL() string {
	return "amqp://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/"
}

type GatewayConfig struct {
	UploadBucket    string
	ConvertedBucket string

	S3       S3Config
	RabbitMQ RabbitMQConfig

	RedisAddr string
	RedisDB   int
}

type WorkerConfig struct {
	S3       S3Config
	RabbitMQ RabbitMQConfig

	FFmpegPath       string
	TranscodeTimeout time.Duration
}

// envReader collects every missing required key and every malformed value
// so startup can report them all at once instead of failing on the first.
type envReader struct {
	missing []string
	invalid []string
}

func (r *envReader) require(key string) string {
	val := os.Getenv(key)
	if val == "" {
		r.missing = append(r.missing, key)
	}
	return val
}

func (r *envReader) intOr(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		r.invalid = append(r.invalid, fmt.Sprintf("%s=%q", key, raw))
		return fallback
	}
	return val
}

func (r *envReader) err() error {
	var problems []string
	if len(r.missing) > 0 {
		problems = append(problems, "missing required environment variables: "+strings.Join(r.missing, ", "))
	}
	if len(r.invalid) > 0 {
		problems = append(problems, "invalid environment variables: "+strings.Join(r.invalid, ", "))
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(problems, "; "))
}

func (r *envReader) s3() S3Config {
	return S3Config{
		Host:      r.require("S3_HOST"),
		Port:      r.require("S3_PORT"),
		AccessKey: r.require("S3_ACCESS_KEY"),
		SecretKey: r.require("S3_SECRET_KEY"),
	}
}

func (r *envReader) rabbitMQ() RabbitMQConfig {
	return RabbitMQConfig{
		User:     r.require("RABBITMQ_USER"),
		Password: r.require("RABBITMQ_PASSWORD"),
		Host:     r.require("RABBITMQ_HOST"),
		Port:     r.require("RABBITMQ_PORT"),
	}
}

func LoadGateway() (GatewayConfig, error) {
	r := &envReader{}

	cfg := GatewayConfig{
		UploadBucket:    r.require("UPLOAD_BUCKET"),
		ConvertedBucket: r.require("CONVERTED_BUCKET"),
		S3:              r.s3(),
		RabbitMQ:        r.rabbitMQ(),
		RedisAddr:       r.require("REDIS_HOST") + ":" + r.require("REDIS_PORT"),
		RedisDB:         r.intOr("REDIS_DB", 0),
	}

	return cfg, r.err()
}

func LoadWorker() (WorkerConfig, error) {
	r := &envReader{}

	cfg := WorkerConfig{
		S3:               r.s3(),
		RabbitMQ:         r.rabbitMQ(),
		FFmpegPath:       os.Getenv("FFMPEG_PATH"),
		TranscodeTimeout: transcoder.DefaultTimeout,
	}

	if secs := r.intOr("TRANSCODE_TIMEOUT", 0); secs > 0 {
		cfg.TranscodeTimeout = time.Duration(secs) * time.Second
	} else if secs < 0 {
		r.invalid = append(r.invalid, fmt.Sprintf("TRANSCODE_TIMEOUT=%d", secs))
	}

	return cfg, r.err()
}
