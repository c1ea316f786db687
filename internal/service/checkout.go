package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/apperr"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/event"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/model"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/repository"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/storage/db"
	"github.com/Shoaib-Asghar/electronics-store-api/pkg/outbox"
	"github.com/Shoaib-Asghar/electronics-store-api/pkg/ptr"
)

// CheckoutService validates a submitted cart against current stock and
// commits stock decrements one line at a time, in submitted order.
//
// The commit is sequential, not all-or-nothing: when line k fails, lines
// 1..k-1 stay persisted (first-come-first-served semantics). Each individual
// line is atomic though: its conditional decrement and its outbox event
// commit in one transaction, and the decrement only applies when the row
// still holds enough stock, so concurrent checkouts can never oversell.
type CheckoutService interface {
	Checkout(ctx context.Context, actor model.User, lines []model.CartLine) ([]model.UpdatedLine, error)
}

type checkoutService struct {
	db            db.DB
	productRepo   repository.ProductRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewCheckoutService(
	db db.DB,
	productRepo repository.ProductRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) CheckoutService {
	return &checkoutService{
		db:            db,
		productRepo:   productRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *checkoutService) Checkout(ctx context.Context, actor model.User, lines []model.CartLine) ([]model.UpdatedLine, error) {
	if len(lines) == 0 {
		return nil, apperr.CartInvalidErr
	}

	updated := make([]model.UpdatedLine, 0, len(lines))
	orderLines := make([]event.OrderCheckedOutLine, 0, len(lines))

	for _, line := range lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, apperr.NewProductNotFound(line.ProductID)
		}

		product, err := s.productRepo.GetProduct(ctx, productID)
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, apperr.NewProductNotFound(line.ProductID)
		}
		if err != nil {
			return nil, fmt.Errorf("product repository get product: %w", err)
		}

		if line.Quantity > product.Stock {
			return nil, apperr.NewInsufficientStock(product.Name)
		}

		remaining, err := s.commitLine(ctx, product, line.Quantity)
		if errors.Is(err, repository.ErrNotEnoughStock) {
			// A concurrent checkout drained the stock between our read and
			// the conditional update.
			return nil, apperr.NewInsufficientStock(product.Name)
		}
		if err != nil {
			return nil, fmt.Errorf("commit cart line: %w", err)
		}

		updated = append(updated, model.UpdatedLine{
			Name:      product.Name,
			Remaining: remaining,
		})
		orderLines = append(orderLines, event.OrderCheckedOutLine{
			ProductID: product.ID.String(),
			Name:      product.Name,
			Quantity:  line.Quantity,
			Remaining: remaining,
		})
	}

	ev := event.OrderCheckedOutEvent{
		UserID: actor.ID.String(),
		Lines:  orderLines,
	}
	evBytes, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal order checked out event: %w", err)
	}

	if err := s.outboxMsgRepo.CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
		Topic:        event.TopicOrderCheckedOut,
		Headers:      outbox.BuildHeaders(ctx),
		Payload:      evBytes,
		PartitionKey: ptr.New(actor.ID.String()),
	}); err != nil {
		return nil, fmt.Errorf("outbox msg repository create outbox msg: %w", err)
	}

	return updated, nil
}

// commitLine applies one cart line: the conditional stock decrement and the
// stock decremented event commit together or not at all.
func (s *checkoutService) commitLine(ctx context.Context, product model.Product, quantity int) (int, error) {
	var remaining int
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		var err error
		remaining, err = s.productRepo.
			WithDB(db).
			DecrementStock(ctx, product.ID, quantity)
		if err != nil {
			return err
		}

		ev := event.StockDecrementedEvent{
			ProductID: product.ID.String(),
			Name:      product.Name,
			Quantity:  quantity,
			Remaining: remaining,
		}
		evBytes, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("marshal stock decremented event: %w", err)
		}

		if err := s.outboxMsgRepo.
			WithDB(db).
			CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
				Topic:        event.TopicStockDecremented,
				Headers:      outbox.BuildHeaders(ctx),
				Payload:      evBytes,
				PartitionKey: ptr.New(product.ID.String()),
			}); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		return nil
	}); err != nil {
		return 0, err
	}

	return remaining, nil
}
