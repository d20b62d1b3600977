// Package orderevents publishes order status changes to a Kafka topic.
//
// Every committed status append, including the initial RECEIVED of a new order,
// becomes one message keyed by the order id so that all changes of an order
// land on the same partition in order. The W3C trace context of the caller is
// copied into the message headers.
package orderevents

import (
	"context"
	"encoding/json"
	"time"

	"orders/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "orders/kafka/producer"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// StatusChangedMessage is the wire format of the topic.
type StatusChangedMessage struct {
	OrderID        string  `json:"order_id"`
	StoreID        string  `json:"store_id"`
	Status         string  `json:"status"`
	PreviousStatus *string `json:"previous_status"`
	Origin         string  `json:"origin"`
	OccurredAtMs   int64   `json:"occurred_at_ms"`
}

// NewStatusChangedMessage converts a domain event. PreviousStatus is null for
// the first status of an order.
func NewStatusChangedMessage(event order.StatusChangedEvent) StatusChangedMessage {
	msg := StatusChangedMessage{
		OrderID:      event.OrderID.String(),
		StoreID:      event.StoreID,
		Status:       event.Status.String(),
		Origin:       event.Origin.String(),
		OccurredAtMs: event.OccurredAt.UnixMilli(),
	}
	if event.PreviousStatus != order.Unknown {
		previous := event.PreviousStatus.String()
		msg.PreviousStatus = &previous
	}
	return msg
}

// Publisher implements ports.OrderEventPublisher.
type Publisher struct {
	writer messageWriter
	topic  string
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		topic: topic,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           100 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
		},
	}
}

func (p *Publisher) PublishStatusChanged(ctx context.Context, event order.StatusChangedEvent) error {
	data, err := json.Marshal(NewStatusChangedMessage(event))
	if err != nil {
		return err
	}

	key := event.OrderID.String()
	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "send "+p.topic,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("send"),
			semconv.MessagingOperationTypePublish,
			semconv.MessagingDestinationName(p.topic),
			semconv.MessagingKafkaMessageKey(key),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, NewMessageCarrier(&msg))

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. Used when KAFKA_HOST is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishStatusChanged(context.Context, order.StatusChangedEvent) error {
	return nil
}
