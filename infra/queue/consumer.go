package queue

import (
	"context"
	"crypto/tls"
	"errors"
	"time"

	"github.com/muaishaq001/nacos-hub/internal/interfaces"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type KafkaConsumer struct {
	Reader      messageReader
	Handler     interfaces.ConsumerHandler
	ServiceName string
	logger      *zap.Logger
	retryDelay  time.Duration
}

func NewKafkaConsumer(broker, topic, groupID, username, password string, handler interfaces.ConsumerHandler, logger *zap.Logger) *KafkaConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}

	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}
	if username != "" {
		dialer.TLS = &tls.Config{}
		dialer.SASLMechanism = plain.Mechanism{
			Username: username,
			Password: password,
		}
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 10e3,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})

	return newConsumer(reader, handler, logger)
}

func newConsumer(r messageReader, handler interfaces.ConsumerHandler, logger *zap.Logger) *KafkaConsumer {
	return &KafkaConsumer{
		Reader:      r,
		Handler:     handler,
		ServiceName: "Mailer",
		logger:      logger,
		retryDelay:  time.Second,
	}
}

// Listen reads until ctx is done. Handler failures are logged and the
// message is skipped.
func (kc *KafkaConsumer) Listen(ctx context.Context) error {
	for {
		msg, err := kc.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			kc.logger.Warn("read error", zap.String("service", kc.ServiceName), zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(kc.retryDelay):
			}
			continue
		}

		kc.logger.Info("received",
			zap.String("service", kc.ServiceName),
			zap.ByteString("key", msg.Key),
			zap.Int64("offset", msg.Offset))

		if err := kc.Handler.HandleMessage(string(msg.Key), msg.Value); err != nil {
			kc.logger.Error("handler error",
				zap.String("service", kc.ServiceName),
				zap.ByteString("key", msg.Key),
				zap.Error(err))
		}
	}
}

func (kc *KafkaConsumer) Close() error {
	return kc.Reader.Close()
}
