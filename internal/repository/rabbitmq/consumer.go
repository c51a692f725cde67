package rabbitmq

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Tanuj-tj/video-converter/internal/domain/entity"
)

type JobProcessor interface {
	Process(ctx context.Context, job *entity.ConversionJob) error
}

type ConvertConsumer struct {
	channel     *amqp.Channel
	exchange    string
	routingKey  string
	queue       string
	UseCase     JobProcessor
	prefetchCnt int
}

func NewConvertConsumer(conn *amqp.Connection, exchange, routingKey, queue string, uc JobProcessor) (*ConvertConsumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	consumer := &ConvertConsumer{
		channel:     ch,
		exchange:    exchange,
		routingKey:  routingKey,
		queue:       queue,
		UseCase:     uc,
		prefetchCnt: 1,
	}

	_, err = ch.QueueDeclare(
		queue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if err := ch.QueueBind(
		queue,
		routingKey,
		exchange,
		false,
		nil,
	); err != nil {
		return nil, err
	}

	if err := ch.Qos(consumer.prefetchCnt, 0, false); err != nil {
		return nil, err
	}

	return consumer, nil
}

// Start consumes one delivery at a time. The message is acknowledged only
// after the full fetch/transcode/store cycle succeeds; any failure leaves
// it unacked so the broker redelivers it. Duplicate deliveries are safe
// because the output key is deterministic and overwritten.
func (c *ConvertConsumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		c.queue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("ConvertConsumer shutting down")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				log.Println("RabbitMQ channel closed")
				return nil
			}
			c.handle(ctx, msg)
		}
	}
}

func (c *ConvertConsumer) handle(ctx context.Context, msg amqp.Delivery) {
	var job entity.ConversionJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		log.Println("failed to unmarshal conversion job:", err)
		msg.Nack(false, false)
		return
	}

	if err := c.UseCase.Process(ctx, &job); err != nil {
		log.Printf("failed to process job %s format %s: %v\n", job.JobID, job.Format, err)
		msg.Nack(false, true)
		return
	}
	msg.Ack(false)
}
