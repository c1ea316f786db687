package relay_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/config"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/relay"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/repository"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/storage/db"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/storage/mq"
)

type fakeDB struct {
	db.DB
}

func (f fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	return txFunc(f)
}

// fakeOutboxRepo hands out its pending batch once, then reports nothing
// left. Updates are signalled so the test can wait without sleeping.
type fakeOutboxRepo struct {
	mu      sync.Mutex
	pending []repository.ListUnprocessedOutboxMsgsResult
	updated []repository.BulkUpdateOutboxMsgsItem

	updatedChan chan struct{}
}

func newFakeOutboxRepo(pending ...repository.ListUnprocessedOutboxMsgsResult) *fakeOutboxRepo {
	return &fakeOutboxRepo{
		pending:     pending,
		updatedChan: make(chan struct{}),
	}
}

func (r *fakeOutboxRepo) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r *fakeOutboxRepo) CreateOutboxMsg(context.Context, repository.CreateOutboxMsgParams) error {
	return nil
}

func (r *fakeOutboxRepo) ListUnprocessedOutboxMsgs(_ context.Context, _ repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := r.pending
	r.pending = nil
	return batch, nil
}

func (r *fakeOutboxRepo) BulkUpdateOutboxMsgs(_ context.Context, params repository.BulkUpdateOutboxMsgsParams) error {
	r.mu.Lock()
	r.updated = append(r.updated, params.Items...)
	r.mu.Unlock()

	close(r.updatedChan)
	return nil
}

type fakeProducer struct {
	mu       sync.Mutex
	produced []mq.ProduceMsg

	failTopic string
}

func (p *fakeProducer) Produce(_ context.Context, msg mq.ProduceMsg) error {
	if msg.Topic == p.failTopic {
		return errors.New("broker unreachable")
	}

	p.mu.Lock()
	p.produced = append(p.produced, msg)
	p.mu.Unlock()
	return nil
}

func TestRelayService(t *testing.T) {
	t.Run("Should mark produced messages processed and record producer errors", func(t *testing.T) {
		okMsg := repository.ListUnprocessedOutboxMsgsResult{
			ID:      uuid.New(),
			Topic:   "inventory.stock_decremented",
			Payload: []byte(`{}`),
		}
		badMsg := repository.ListUnprocessedOutboxMsgsResult{
			ID:      uuid.New(),
			Topic:   "order.checked_out",
			Payload: []byte(`{}`),
		}

		outboxRepo := newFakeOutboxRepo(okMsg, badMsg)
		producer := &fakeProducer{failTopic: badMsg.Topic}

		svc := relay.NewService(
			config.Relay{BatchSize: 10, Interval: 5 * time.Millisecond},
			slog.New(slog.DiscardHandler),
			fakeDB{},
			outboxRepo,
			producer,
		)

		cleanup := svc.Run(context.Background())
		defer cleanup()

		select {
		case <-outboxRepo.updatedChan:
		case <-time.After(2 * time.Second):
			t.Fatal("relay never updated the outbox")
		}

		outboxRepo.mu.Lock()
		updated := append([]repository.BulkUpdateOutboxMsgsItem(nil), outboxRepo.updated...)
		outboxRepo.mu.Unlock()

		require.Len(t, updated, 2)
		byID := map[uuid.UUID]*string{}
		for _, item := range updated {
			byID[item.ID] = item.Error
		}
		require.Contains(t, byID, okMsg.ID)
		require.Contains(t, byID, badMsg.ID)
		assert.Nil(t, byID[okMsg.ID])
		require.NotNil(t, byID[badMsg.ID])
		assert.Contains(t, *byID[badMsg.ID], "broker unreachable")

		require.Len(t, producer.produced, 1)
		assert.Equal(t, okMsg.Topic, producer.produced[0].Topic)
	})
}
