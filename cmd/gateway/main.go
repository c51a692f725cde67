package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Tanuj-tj/video-converter/internal/config"
	v1 "github.com/Tanuj-tj/video-converter/internal/controller/http/v1"
	"github.com/Tanuj-tj/video-converter/internal/domain/usecase"
	"github.com/Tanuj-tj/video-converter/internal/repository/rabbitmq"
	s3Repo "github.com/Tanuj-tj/video-converter/internal/repository/s3"
	redisGo "github.com/Tanuj-tj/video-converter/pkg/client/redis"
	s3ClientGo "github.com/Tanuj-tj/video-converter/pkg/client/s3"
	"github.com/Tanuj-tj/video-converter/pkg/middleware"
)

func main() {
	if err := godotenv.Load("./.env.local"); err != nil {
		log.Println("No .env file found. Falling back to OS environment variables.")
	}

	cfg, err := config.LoadGateway()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx := context.Background()

	r := gin.Default()

	redisClient, err := redisGo.NewRedisClient(ctx, redisGo.Config{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}

	rl := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RedisClient: redisClient,
		Limit:       10,
		Window:      time.Second,
		KeyPrefix:   "rl:",
	})
	r.Use(rl)

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

	jobPublisher, err := rabbitmq.NewRabbitPublisher(conn, "videos.exchange", "videos.convert")
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}

	dispatcher := usecase.NewDispatcher(storage, jobPublisher, cfg.UploadBucket, cfg.ConvertedBucket)
	status := usecase.NewStatusResolver(storage, cfg.ConvertedBucket)
	handler := v1.NewVideoHandler(dispatcher, status)

	r.GET("/health", handler.Health)

	v1Group := r.Group("/api/v1")
	{
		v1Group.POST("/upload", handler.Upload)
		v1Group.GET("/status/:job_id", handler.GetStatus)
		v1Group.GET("/download/:job_id/:format", handler.Download)
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
