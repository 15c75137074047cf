// Package kafka provides the Kafka-backed notification publisher.
// Each notification is keyed by order id, so every consumer that partitions
// by key sees one order's notifications in publish order.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dehanf/Smart-takeout-system/internal/core/ports"

	"github.com/IBM/sarama"
)

const (
	typePrepStarted = "prep_started"
	typeETAUpdate   = "eta_update"
)

type prepStartedMessage struct {
	Type string `json:"type"`
	ports.PrepStartedNotification
}

type etaUpdateMessage struct {
	Type string `json:"type"`
	ports.ETAUpdateNotification
}

// SaramaNotificationPublisher implements ports.NotificationPublisher on top
// of a synchronous Kafka producer. Publishing only returns after the broker
// acknowledged the write.
type SaramaNotificationPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewSaramaNotificationPublisher connects to the given comma-separated
// broker list and publishes to topic.
func NewSaramaNotificationPublisher(
	brokerList string,
	topic string,
	logger *slog.Logger,
) (*SaramaNotificationPublisher, error) {
	if topic == "" {
		return nil, errors.New("kafka topic is empty")
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // Must be true for SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	producer, err := sarama.NewSyncProducer(strings.Split(brokerList, ","), saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	return NewSaramaNotificationPublisherFromProducer(producer, topic, logger), nil
}

// NewSaramaNotificationPublisherFromProducer wraps an existing producer.
// Used by tests and by callers that manage the producer lifecycle themselves.
func NewSaramaNotificationPublisherFromProducer(
	producer sarama.SyncProducer,
	topic string,
	logger *slog.Logger,
) *SaramaNotificationPublisher {
	return &SaramaNotificationPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "kafka_publisher"),
	}
}

// PublishPrepStarted publishes the one-shot preparation trigger notification.
func (p *SaramaNotificationPublisher) PublishPrepStarted(
	ctx context.Context,
	n ports.PrepStartedNotification,
) error {
	return p.publish(ctx, n.OrderID, prepStartedMessage{
		Type:                    typePrepStarted,
		PrepStartedNotification: n,
	})
}

// PublishETAUpdate publishes a slack refresh for an order still in transit.
func (p *SaramaNotificationPublisher) PublishETAUpdate(
	ctx context.Context,
	n ports.ETAUpdateNotification,
) error {
	return p.publish(ctx, n.OrderID, etaUpdateMessage{
		Type:                  typeETAUpdate,
		ETAUpdateNotification: n,
	})
}

func (p *SaramaNotificationPublisher) publish(ctx context.Context, key string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to publish notification",
			"order_id", key, "error", err)
		return err
	}

	p.logger.DebugContext(ctx, "Notification published",
		"order_id", key, "partition", partition, "offset", offset)
	return nil
}

// Close shuts down the underlying producer.
func (p *SaramaNotificationPublisher) Close() error {
	return p.producer.Close()
}
