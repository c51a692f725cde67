package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Tanuj-tj/video-converter/internal/config"
	"github.com/Tanuj-tj/video-converter/internal/domain/usecase"
	"github.com/Tanuj-tj/video-converter/internal/repository/rabbitmq"
	s3Repo "github.com/Tanuj-tj/video-converter/internal/repository/s3"
	"github.com/Tanuj-tj/video-converter/internal/transcoder"
	s3ClientGo "github.com/Tanuj-tj/video-converter/pkg/client/s3"
)

func main() {
	if err := godotenv.Load("./.env.local"); err != nil {
		log.Println("No .env file found. Falling back to OS environment variables.")
	}

	cfg, err := config.LoadWorker()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	s3Client, err := s3ClientGo.NewS3Client(cfg.S3.Endpoint(), cfg.S3.AccessKey, cfg.S3.SecretKey)
	if err != nil {
		log.Fatalf("failed to init s3 client: %v", err)
	}
	storage := s3Repo.NewS3Repo(s3Client)

	conn, err := amqp.Dial(cfg.RabbitMQ.URL())
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer conn.Close()

	ffmpeg := transcoder.New(cfg.FFmpegPath, cfg.TranscodeTimeout)
	converter := usecase.NewConverter(storage, ffmpeg)

	consumer, err := rabbitmq.NewConvertConsumer(conn, "videos.exchange", "videos.convert", "videos.convert.q", converter)
	if err != nil {
		log.Fatalf("failed to init consumer: %v", err)
	}

	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Fatalf("consumer stopped with error: %v", err)
		}
	}()

	log.Println("Conversion worker started")
	<-sigCh
	log.Println("Shutting down conversion worker...")
	cancel()
	time.Sleep(time.Second)
}
