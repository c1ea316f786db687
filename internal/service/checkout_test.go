package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/apperr"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/event"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/model"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/repository"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/service"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/storage/db"
)

// fakeDB satisfies db.DB for services that only need WithTx. The embedded
// interface is never called.
type fakeDB struct {
	db.DB
}

func (f fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	return txFunc(f)
}

type fakeProductRepo struct {
	products map[uuid.UUID]*model.Product

	// decrementErr, when set, forces the next DecrementStock call to fail.
	// It simulates a concurrent checkout draining stock between the
	// availability read and the conditional update.
	decrementErr error
}

func newFakeProductRepo(products ...model.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[uuid.UUID]*model.Product)}
	for _, p := range products {
		p := p
		repo.products[p.ID] = &p
	}
	return repo
}

func (r *fakeProductRepo) WithDB(db.DB) repository.ProductRepository { return r }

func (r *fakeProductRepo) CreateProduct(_ context.Context, product model.Product) error {
	r.products[product.ID] = &product
	return nil
}

func (r *fakeProductRepo) GetProduct(_ context.Context, id uuid.UUID) (model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return model.Product{}, repository.ErrProductNotFound
	}
	return *p, nil
}

func (r *fakeProductRepo) ListAllProducts(context.Context) ([]model.Product, error) {
	products := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, *p)
	}
	return products, nil
}

func (r *fakeProductRepo) UpdateProduct(_ context.Context, product model.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	r.products[product.ID] = &product
	return nil
}

func (r *fakeProductRepo) DeleteProduct(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id uuid.UUID, quantity int) (int, error) {
	if r.decrementErr != nil {
		err := r.decrementErr
		r.decrementErr = nil
		return 0, err
	}

	p, ok := r.products[id]
	if !ok {
		return 0, repository.ErrProductNotFound
	}
	if p.Stock < quantity {
		return 0, repository.ErrNotEnoughStock
	}
	p.Stock -= quantity
	return p.Stock, nil
}

func (r *fakeProductRepo) stock(t *testing.T, id uuid.UUID) int {
	t.Helper()
	p, ok := r.products[id]
	require.True(t, ok)
	return p.Stock
}

type fakeOutboxRepo struct {
	msgs []repository.CreateOutboxMsgParams
}

func (r *fakeOutboxRepo) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r *fakeOutboxRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	r.msgs = append(r.msgs, params)
	return nil
}

func (r *fakeOutboxRepo) ListUnprocessedOutboxMsgs(context.Context, repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) BulkUpdateOutboxMsgs(context.Context, repository.BulkUpdateOutboxMsgsParams) error {
	return nil
}

func (r *fakeOutboxRepo) countTopic(topic string) int {
	n := 0
	for _, msg := range r.msgs {
		if msg.Topic == topic {
			n++
		}
	}
	return n
}

func newProduct(name string, stock int) model.Product {
	return model.Product{
		ID:    uuid.New(),
		Name:  name,
		Stock: stock,
	}
}

func newActor() model.User {
	return model.User{ID: uuid.New(), Name: "Alice", Role: model.RoleCustomer}
}

func TestCheckoutService(t *testing.T) {
	ctx := context.Background()

	t.Run("Should decrement stock and report remaining per line in cart order", func(t *testing.T) {
		keyboard := newProduct("Keyboard", 5)
		mouse := newProduct("Mouse", 10)
		productRepo := newFakeProductRepo(keyboard, mouse)
		outboxRepo := &fakeOutboxRepo{}
		svc := service.NewCheckoutService(fakeDB{}, productRepo, outboxRepo)

		updated, err := svc.Checkout(ctx, newActor(), []model.CartLine{
			{ProductID: keyboard.ID.String(), Quantity: 2},
			{ProductID: mouse.ID.String(), Quantity: 4},
		})

		require.NoError(t, err)
		require.Len(t, updated, 2)
		assert.Equal(t, model.UpdatedLine{Name: "Keyboard", Remaining: 3}, updated[0])
		assert.Equal(t, model.UpdatedLine{Name: "Mouse", Remaining: 6}, updated[1])
		assert.Equal(t, 3, productRepo.stock(t, keyboard.ID))
		assert.Equal(t, 6, productRepo.stock(t, mouse.ID))
	})

	t.Run("Should emit one stock event per line and one order event", func(t *testing.T) {
		keyboard := newProduct("Keyboard", 5)
		mouse := newProduct("Mouse", 10)
		productRepo := newFakeProductRepo(keyboard, mouse)
		outboxRepo := &fakeOutboxRepo{}
		svc := service.NewCheckoutService(fakeDB{}, productRepo, outboxRepo)
		actor := newActor()

		_, err := svc.Checkout(ctx, actor, []model.CartLine{
			{ProductID: keyboard.ID.String(), Quantity: 1},
			{ProductID: mouse.ID.String(), Quantity: 1},
		})

		require.NoError(t, err)
		assert.Equal(t, 2, outboxRepo.countTopic(event.TopicStockDecremented))
		require.Equal(t, 1, outboxRepo.countTopic(event.TopicOrderCheckedOut))

		last := outboxRepo.msgs[len(outboxRepo.msgs)-1]
		require.Equal(t, event.TopicOrderCheckedOut, last.Topic)

		var orderEvent event.OrderCheckedOutEvent
		require.NoError(t, json.Unmarshal(last.Payload, &orderEvent))
		assert.Equal(t, actor.ID.String(), orderEvent.UserID)
		require.Len(t, orderEvent.Lines, 2)
		assert.Equal(t, "Keyboard", orderEvent.Lines[0].Name)
	})

	t.Run("Should reject an empty cart without touching stock", func(t *testing.T) {
		keyboard := newProduct("Keyboard", 5)
		productRepo := newFakeProductRepo(keyboard)
		outboxRepo := &fakeOutboxRepo{}
		svc := service.NewCheckoutService(fakeDB{}, productRepo, outboxRepo)

		_, err := svc.Checkout(ctx, newActor(), nil)

		require.ErrorIs(t, err, apperr.CartInvalidErr)
		assert.Equal(t, 5, productRepo.stock(t, keyboard.ID))
		assert.Empty(t, outboxRepo.msgs)
	})

	t.Run("Should fail on unknown product but keep earlier decrements", func(t *testing.T) {
		keyboard := newProduct("Keyboard", 5)
		productRepo := newFakeProductRepo(keyboard)
		outboxRepo := &fakeOutboxRepo{}
		svc := service.NewCheckoutService(fakeDB{}, productRepo, outboxRepo)
		missingID := uuid.New()

		_, err := svc.Checkout(ctx, newActor(), []model.CartLine{
			{ProductID: keyboard.ID.String(), Quantity: 2},
			{ProductID: missingID.String(), Quantity: 1},
		})

		require.EqualError(t, err, apperr.NewProductNotFound(missingID.String()).Error())
		assert.Equal(t, 3, productRepo.stock(t, keyboard.ID))
		assert.Equal(t, 1, outboxRepo.countTopic(event.TopicStockDecremented))
		assert.Equal(t, 0, outboxRepo.countTopic(event.TopicOrderCheckedOut))
	})

	t.Run("Should report a malformed product id as not found", func(t *testing.T) {
		productRepo := newFakeProductRepo()
		svc := service.NewCheckoutService(fakeDB{}, productRepo, &fakeOutboxRepo{})

		_, err := svc.Checkout(ctx, newActor(), []model.CartLine{
			{ProductID: "not-a-uuid", Quantity: 1},
		})

		require.EqualError(t, err, apperr.NewProductNotFound("not-a-uuid").Error())
	})

	t.Run("Should fail on insufficient stock and keep the offending product unchanged", func(t *testing.T) {
		keyboard := newProduct("Keyboard", 5)
		mouse := newProduct("Mouse", 10)
		productRepo := newFakeProductRepo(keyboard, mouse)
		outboxRepo := &fakeOutboxRepo{}
		svc := service.NewCheckoutService(fakeDB{}, productRepo, outboxRepo)

		_, err := svc.Checkout(ctx, newActor(), []model.CartLine{
			{ProductID: mouse.ID.String(), Quantity: 4},
			{ProductID: keyboard.ID.String(), Quantity: 10},
		})

		require.EqualError(t, err, apperr.NewInsufficientStock("Keyboard").Error())
		assert.Equal(t, 5, productRepo.stock(t, keyboard.ID))
		assert.Equal(t, 6, productRepo.stock(t, mouse.ID))
	})

	t.Run("Should report insufficient stock when a concurrent checkout wins the race", func(t *testing.T) {
		keyboard := newProduct("Keyboard", 5)
		productRepo := newFakeProductRepo(keyboard)
		productRepo.decrementErr = repository.ErrNotEnoughStock
		svc := service.NewCheckoutService(fakeDB{}, productRepo, &fakeOutboxRepo{})

		_, err := svc.Checkout(ctx, newActor(), []model.CartLine{
			{ProductID: keyboard.ID.String(), Quantity: 2},
		})

		require.EqualError(t, err, apperr.NewInsufficientStock("Keyboard").Error())
	})

	t.Run("Should treat a zero quantity line as a no-op", func(t *testing.T) {
		keyboard := newProduct("Keyboard", 5)
		productRepo := newFakeProductRepo(keyboard)
		svc := service.NewCheckoutService(fakeDB{}, productRepo, &fakeOutboxRepo{})

		updated, err := svc.Checkout(ctx, newActor(), []model.CartLine{
			{ProductID: keyboard.ID.String(), Quantity: 0},
		})

		require.NoError(t, err)
		require.Len(t, updated, 1)
		assert.Equal(t, model.UpdatedLine{Name: "Keyboard", Remaining: 5}, updated[0])
		assert.Equal(t, 5, productRepo.stock(t, keyboard.ID))
	})

	t.Run("Should not be idempotent across replays", func(t *testing.T) {
		keyboard := newProduct("Keyboard", 5)
		productRepo := newFakeProductRepo(keyboard)
		svc := service.NewCheckoutService(fakeDB{}, productRepo, &fakeOutboxRepo{})
		cart := []model.CartLine{{ProductID: keyboard.ID.String(), Quantity: 2}}
		actor := newActor()

		first, err := svc.Checkout(ctx, actor, cart)
		require.NoError(t, err)
		require.Equal(t, 3, first[0].Remaining)

		second, err := svc.Checkout(ctx, actor, cart)
		require.NoError(t, err)
		assert.Equal(t, 1, second[0].Remaining)

		_, err = svc.Checkout(ctx, actor, cart)
		require.EqualError(t, err, apperr.NewInsufficientStock("Keyboard").Error())
		assert.Equal(t, 1, productRepo.stock(t, keyboard.ID))
	})
}
