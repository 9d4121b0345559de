package ports

import "context"

// Tópicos de eventos de dominio.
const (
	TopicProductCreated = "product.created"
	TopicProductUpdated = "product.updated"
	TopicProductDeleted = "product.deleted"
	TopicSaleRecorded   = "sale.recorded"
	TopicSaleDeleted    = "sale.deleted"
	TopicStockUpdated   = "stock.updated"
)

// EventPublisher define el puerto de salida para eventos de dominio.
// Se invoca después del commit; un fallo de publicación no revierte la operación.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

// NopPublisher descarta todos los eventos (sin brokers configurados).
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }

// ProductEvent payload de product.created|updated|deleted.
type ProductEvent struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name,omitempty"`
	Quantity  int    `json:"quantity"`
	ActorID   string `json:"actor_id,omitempty"`
}

// SaleEvent payload de sale.recorded|deleted.
type SaleEvent struct {
	SaleID     string `json:"sale_id"`
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
	TotalPrice string `json:"total_price"`
	ActorID    string `json:"actor_id,omitempty"`
}

// StockEvent payload de stock.updated: existencia resultante y variación aplicada.
type StockEvent struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Delta     int    `json:"delta"`
}
