package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/storage/mq"
)

// Service is the event service. It consumes the store's domain events from
// the message queue and dispatches them to their handlers.
type Service struct {
	logger     *slog.Logger
	mqConsumer mq.Consumer
}

// New creates a new event service.
func New(
	logger *slog.Logger,
	mqConsumer mq.Consumer,
) *Service {
	return &Service{
		logger:     logger,
		mqConsumer: mqConsumer,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	if err := s.mqConsumer.RegisterHandler(
		TopicStockDecremented,
		func(ctx context.Context, topic string, payload []byte) error {
			var ev StockDecrementedEvent
			if err := json.Unmarshal(payload, &ev); err != nil {
				return fmt.Errorf("unmarshal stock decremented event: %w", err)
			}

			if err := s.handleStockDecrementedEvent(ctx, ev); err != nil {
				return fmt.Errorf("handle stock decremented event: %w", err)
			}

			return nil
		},
	); err != nil {
		return nil, fmt.Errorf("register stock decremented event handler: %w", err)
	}

	if err := s.mqConsumer.RegisterHandler(
		TopicOrderCheckedOut,
		func(ctx context.Context, topic string, payload []byte) error {
			var ev OrderCheckedOutEvent
			if err := json.Unmarshal(payload, &ev); err != nil {
				return fmt.Errorf("unmarshal order checked out event: %w", err)
			}

			if err := s.handleOrderCheckedOutEvent(ctx, ev); err != nil {
				return fmt.Errorf("handle order checked out event: %w", err)
			}

			return nil
		},
	); err != nil {
		return nil, fmt.Errorf("register order checked out event handler: %w", err)
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	cleanup := func() {
		mqCleanup()
	}

	return cleanup, nil
}
