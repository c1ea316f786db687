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

var (
	// ErrProductNotFound is returned when no product exists for the given id.
	ErrProductNotFound = errors.New("product not found")

	// ErrNotEnoughStock is returned when a conditional stock decrement
	// matches no row, i.e. the requested quantity exceeds the stock at the
	// moment the update runs.
	ErrNotEnoughStock = errors.New("not enough stock")
)

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	CreateProduct(ctx context.Context, product model.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	ListAllProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product model.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// DecrementStock atomically subtracts quantity from the product's stock,
	// refusing the update when the current stock is lower than quantity.
	// It returns the post-decrement stock.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (int, error)
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, brand, description, category, image_url, price, stock, rating, num_reviews, created_at, updated_at`

func (r productRepository) CreateProduct(ctx context.Context, product model.Product) error {
	price, err := numericFromFloat(product.Price)
	if err != nil {
		return fmt.Errorf("scan price: %w", err)
	}
	rating, err := numericFromFloat(product.Rating)
	if err != nil {
		return fmt.Errorf("scan rating: %w", err)
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		product.ID, product.Name, product.Brand, product.Description,
		product.Category, product.ImageURL, price, product.Stock,
		rating, product.NumReviews, product.CreatedAt, product.UpdatedAt,
	); err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

func (r productRepository) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)

	product, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

func (r productRepository) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list all products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

func (r productRepository) UpdateProduct(ctx context.Context, product model.Product) error {
	price, err := numericFromFloat(product.Price)
	if err != nil {
		return fmt.Errorf("scan price: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name = $2, brand = $3, description = $4, category = $5,
			image_url = $6, price = $7, stock = $8, updated_at = $9
		WHERE id = $1
	`,
		product.ID, product.Name, product.Brand, product.Description,
		product.Category, product.ImageURL, price, product.Stock,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (int, error) {
	var remaining int
	err := r.db.QueryRow(ctx, `
		UPDATE products
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2
		RETURNING stock
	`, id, quantity).Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotEnoughStock
	}
	if err != nil {
		return 0, fmt.Errorf("decrement stock: %w", err)
	}

	return remaining, nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		product model.Product
		price   pgtype.Numeric
		rating  pgtype.Numeric
	)
	if err := row.Scan(
		&product.ID, &product.Name, &product.Brand, &product.Description,
		&product.Category, &product.ImageURL, &price, &product.Stock,
		&rating, &product.NumReviews, &product.CreatedAt, &product.UpdatedAt,
	); err != nil {
		return model.Product{}, err
	}

	priceValue, err := price.Float64Value()
	if err != nil {
		return model.Product{}, fmt.Errorf("convert price to float64: %w", err)
	}
	product.Price = priceValue.Float64

	ratingValue, err := rating.Float64Value()
	if err != nil {
		return model.Product{}, fmt.Errorf("convert rating to float64: %w", err)
	}
	product.Rating = ratingValue.Float64

	return product, nil
}

func numericFromFloat(f float64) (pgtype.Numeric, error) {
	var n pgtype.Numeric
	if err := n.Scan(fmt.Sprintf("%f", f)); err != nil {
		return pgtype.Numeric{}, err
	}
	return n, nil
}
