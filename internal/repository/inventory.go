package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/model"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/storage/db"
)

var ErrInventoryItemNotFound = errors.New("inventory item not found")

type InventoryRepository interface {
	WithDB(db db.DB) InventoryRepository
	CreateItem(ctx context.Context, item model.InventoryItem) error
	GetItem(ctx context.Context, id uuid.UUID) (model.InventoryItem, error)
	ListAllItems(ctx context.Context) ([]model.InventoryItem, error)
	UpdateItem(ctx context.Context, item model.InventoryItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type inventoryRepository struct {
	db db.DB
}

func NewInventoryRepository(db db.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r inventoryRepository) WithDB(db db.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

const inventoryColumns = `id, name, brand, description, price, stock, created_at, updated_at`

func (r inventoryRepository) CreateItem(ctx context.Context, item model.InventoryItem) error {
	price, err := numericFromFloat(item.Price)
	if err != nil {
		return fmt.Errorf("scan price: %w", err)
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO inventory_items (`+inventoryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		item.ID, item.Name, item.Brand, item.Description,
		price, item.Stock, item.CreatedAt, item.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create inventory item: %w", err)
	}

	return nil
}

func (r inventoryRepository) GetItem(ctx context.Context, id uuid.UUID) (model.InventoryItem, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+inventoryColumns+`
		FROM inventory_items
		WHERE id = $1
	`, id)

	item, err := scanInventoryItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.InventoryItem{}, ErrInventoryItemNotFound
	}
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("get inventory item: %w", err)
	}

	return item, nil
}

func (r inventoryRepository) ListAllItems(ctx context.Context) ([]model.InventoryItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+inventoryColumns+`
		FROM inventory_items
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()

	items := make([]model.InventoryItem, 0)
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory items: %w", err)
	}

	return items, nil
}

func (r inventoryRepository) UpdateItem(ctx context.Context, item model.InventoryItem) error {
	price, err := numericFromFloat(item.Price)
	if err != nil {
		return fmt.Errorf("scan price: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE inventory_items
		SET name = $2, brand = $3, description = $4, price = $5, stock = $6, updated_at = $7
		WHERE id = $1
	`, item.ID, item.Name, item.Brand, item.Description, price, item.Stock, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInventoryItemNotFound
	}

	return nil
}

func (r inventoryRepository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInventoryItemNotFound
	}

	return nil
}

func scanInventoryItem(row pgx.Row) (model.InventoryItem, error) {
	var (
		item  model.InventoryItem
		price pgtype.Numeric
	)
	if err := row.Scan(
		&item.ID, &item.Name, &item.Brand, &item.Description,
		&price, &item.Stock, &item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return model.InventoryItem{}, err
	}

	priceValue, err := price.Float64Value()
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("convert price to float64: %w", err)
	}
	item.Price = priceValue.Float64

	return item, nil
}
