package infra

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// NotificationTopicPrefix namespaces the notification fan-out topics. The
// suffix is the notification target type: all, subscribers or user.
const NotificationTopicPrefix = "gambit.notifications."

// NotificationTopic returns the topic for a notification target type.
func NotificationTopic(targetType string) string {
	return NotificationTopicPrefix + targetType
}

// NotificationProducer publishes notification events keyed by notification id,
// so all events for one notification land on the same partition in order.
// If brokers is empty or Kafka is disabled, publishes are no-ops.
type NotificationProducer struct {
	writer  *kafka.Writer
	logger  *slog.Logger
	enabled bool
}

// NewNotificationProducer creates the producer used by the outbox poller.
func NewNotificationProducer(brokers string, enabled bool, logger *slog.Logger) *NotificationProducer {
	if !enabled || brokers == "" {
		logger.Info("notification producer disabled")
		return &NotificationProducer{enabled: false, logger: logger}
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 25 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("notification producer initialized", "brokers", brokers)
	return &NotificationProducer{writer: w, logger: logger, enabled: true}
}

// PublishNotification sends one notification payload to the target-type topic.
func (p *NotificationProducer) PublishNotification(ctx context.Context, targetType string, notificationID int64, payload []byte) error {
	if !p.enabled {
		return nil
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: NotificationTopic(targetType),
		Key:   []byte(strconv.FormatInt(notificationID, 10)),
		Value: payload,
	})
}

// Close shuts down the underlying writer.
func (p *NotificationProducer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// NotificationConsumer reads notification events for one target type as part
// of a consumer group, so multiple notifier instances split the partitions.
type NotificationConsumer struct {
	reader  *kafka.Reader
	logger  *slog.Logger
	enabled bool
}

// NewNotificationConsumer creates a consumer for the given target type.
func NewNotificationConsumer(brokers, targetType, groupID string, enabled bool, logger *slog.Logger) *NotificationConsumer {
	if !enabled || brokers == "" {
		return &NotificationConsumer{enabled: false, logger: logger}
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(brokers, ","),
		Topic:    NotificationTopic(targetType),
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 1 << 20,
		MaxWait:  2 * time.Second,
	})

	return &NotificationConsumer{reader: r, logger: logger, enabled: true}
}

// Next blocks until the next notification event is available.
func (c *NotificationConsumer) Next(ctx context.Context) (kafka.Message, error) {
	return c.reader.ReadMessage(ctx)
}

// Close shuts down the underlying reader.
func (c *NotificationConsumer) Close() error {
	if c.reader != nil {
		return c.reader.Close()
	}
	return nil
}
