// Package kafka publica los eventos de dominio (product.*, sale.*, stock.updated) en Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/jhoicas/smart-inventory-api/internal/application/ports"
	"github.com/jhoicas/smart-inventory-api/pkg/config"
	"github.com/jhoicas/smart-inventory-api/pkg/logger"
)

var _ ports.EventPublisher = (*Producer)(nil)

// Producer adaptador de ports.EventPublisher sobre un sarama.SyncProducer.
type Producer struct {
	producer sarama.SyncProducer
	log      *logger.Logger
}

// NewConfig configuración del productor: acks de todas las réplicas e idempotencia desactivada.
func NewConfig(clientID string) *sarama.Config {
	cfg := sarama.NewConfig()
	if clientID != "" {
		cfg.ClientID = clientID
	}
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Timeout = 5 * time.Second
	return cfg
}

// NewProducer conecta con los brokers configurados.
func NewProducer(cfg config.KafkaConfig, log *logger.Logger) (*Producer, error) {
	sp, err := sarama.NewSyncProducer(cfg.Brokers, NewConfig(cfg.ClientID))
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return NewProducerWith(sp, log), nil
}

// NewProducerWith envuelve un SyncProducer ya construido (tests con sarama/mocks).
func NewProducerWith(sp sarama.SyncProducer, log *logger.Logger) *Producer {
	if log == nil {
		log = logger.Nop()
	}
	return &Producer{producer: sp, log: log.Component("kafka")}
}

// Publish serializa payload en JSON y lo envía al tópico con la clave dada (partición por producto).
func (p *Producer) Publish(ctx context.Context, topic, key string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", topic, err)
	}
	msg := &sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(key),
		Value:     sarama.ByteEncoder(data),
		Timestamp: time.Now().UTC(),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("send event %s: %w", topic, err)
	}
	p.log.Debug().Str("topic", topic).Str("key", key).Int32("partition", partition).Int64("offset", offset).Msg("evento publicado")
	return nil
}

// Close cierra el productor.
func (p *Producer) Close() error {
	return p.producer.Close()
}
