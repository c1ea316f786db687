package event

import (
	"context"
	"log/slog"
)

const TopicStockDecremented = "inventory.stock_decremented"

// StockDecrementedEvent is emitted for every cart line whose decrement
// committed, including lines of checkouts that later failed partway.
type StockDecrementedEvent struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Remaining int    `json:"remaining"`
}

func (s *Service) handleStockDecrementedEvent(ctx context.Context, ev StockDecrementedEvent) error {
	s.logger.InfoContext(ctx, "handling stock decremented event", slog.Any("event", ev))
	return nil
}
