package sink

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sql-batch-queue/internal/event"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaSink пишет пачку записей телеметрии в топик Kafka одним вызовом.
type KafkaSink struct {
	writer KafkaWriter
}

func NewKafkaSink(cfg KafkaConfig) *KafkaSink {
	return &KafkaSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func NewKafkaSinkWithWriter(writer KafkaWriter) *KafkaSink {
	return &KafkaSink{writer: writer}
}

// Save сериализует записи и отправляет их одним WriteMessages.
// Ключ сообщения — id сущности, чтобы записи одной сущности попадали в одну партицию.
func (s *KafkaSink) Save(ctx context.Context, entries []event.TsKvEntry) error {
	if len(entries) == 0 {
		return nil
	}

	messages := make([]kafka.Message, len(entries))
	for i, entry := range entries {
		if err := entry.Validate(); err != nil {
			zap.L().Error(err.Error())
			return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
		}

		b, err := entry.Bytes()
		if err != nil {
			zap.L().Error(err.Error())
			return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
		}

		messages[i] = kafka.Message{
			Key:   []byte(entry.EntityID.String()),
			Value: b,
			Time:  entry.Ts,
		}
	}

	if err := s.writer.WriteMessages(ctx, messages...); err != nil {
		zap.L().Error(err.Error())
		return mapKafkaError(err)
	}

	return nil
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

// mapKafkaError помечает временные ошибки брокера и сети как ErrStorageUnavailable.
func mapKafkaError(err error) error {
	var kafkaErr kafka.Error
	if errors.As(err, &kafkaErr) {
		if kafkaErr.Temporary() {
			return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return err
}
