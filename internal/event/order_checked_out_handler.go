package event

import (
	"context"
	"log/slog"
)

const TopicOrderCheckedOut = "order.checked_out"

// OrderCheckedOutEvent is emitted once per fully successful checkout.
type OrderCheckedOutEvent struct {
	UserID string                `json:"user_id"`
	Lines  []OrderCheckedOutLine `json:"lines"`
}

type OrderCheckedOutLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Remaining int    `json:"remaining"`
}

func (s *Service) handleOrderCheckedOutEvent(ctx context.Context, ev OrderCheckedOutEvent) error {
	s.logger.InfoContext(ctx, "handling order checked out event",
		slog.String("user_id", ev.UserID),
		slog.Int("lines", len(ev.Lines)))
	return nil
}
