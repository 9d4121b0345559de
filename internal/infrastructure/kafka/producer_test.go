package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smart-inventory-api/internal/application/ports"
	"github.com/jhoicas/smart-inventory-api/internal/infrastructure/kafka"
)

func TestProducer_Publish(t *testing.T) {
	sp := mocks.NewSyncProducer(t, kafka.NewConfig("test"))
	sp.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != ports.TopicSaleRecorded {
			return errors.New("tópico inesperado: " + msg.Topic)
		}
		key, _ := msg.Key.Encode()
		if string(key) != "p1" {
			return errors.New("clave inesperada")
		}
		raw, _ := msg.Value.Encode()
		var ev ports.SaleEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return err
		}
		if ev.SaleID != "s1" || ev.Quantity != 3 {
			return errors.New("payload inesperado")
		}
		return nil
	})

	p := kafka.NewProducerWith(sp, nil)
	err := p.Publish(context.Background(), ports.TopicSaleRecorded, "p1", ports.SaleEvent{SaleID: "s1", ProductID: "p1", Quantity: 3, TotalPrice: "30"})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}

func TestProducer_PublishFalla(t *testing.T) {
	sp := mocks.NewSyncProducer(t, kafka.NewConfig(""))
	sp.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := kafka.NewProducerWith(sp, nil)
	err := p.Publish(context.Background(), ports.TopicStockUpdated, "p1", ports.StockEvent{ProductID: "p1"})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, p.Close())
}

func TestProducer_ContextoCancelado(t *testing.T) {
	sp := mocks.NewSyncProducer(t, nil)
	p := kafka.NewProducerWith(sp, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, p.Publish(ctx, ports.TopicProductCreated, "p1", nil), context.Canceled)
	require.NoError(t, p.Close())
}
