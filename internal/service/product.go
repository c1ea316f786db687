package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/apperr"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/model"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/repository"
)

type CreateProductParams struct {
	Name        string
	Brand       string
	Description string
	Category    string
	ImageURL    string
	Price       float64
	Stock       int
}

// UpdateProductParams carries optional fields; nil means "keep the current
// value", matching the admin edit form semantics.
type UpdateProductParams struct {
	Name        *string
	Brand       *string
	Description *string
	Category    *string
	ImageURL    *string
	Price       *float64
	Stock       *int
}

type ProductService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	ListAllProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.Product{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	now := time.Now()
	product := model.Product{
		ID:          id,
		Name:        params.Name,
		Brand:       params.Brand,
		Description: params.Description,
		Category:    params.Category,
		ImageURL:    params.ImageURL,
		Price:       params.Price,
		Stock:       params.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return model.Product{}, fmt.Errorf("product repository create product: %w", err)
	}

	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return model.Product{}, apperr.ProductGoneErr
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository get product: %w", err)
	}

	return product, nil
}

func (s *productService) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository list all products: %w", err)
	}

	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (model.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return model.Product{}, apperr.ProductGoneErr
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository get product: %w", err)
	}

	if params.Name != nil {
		product.Name = *params.Name
	}
	if params.Brand != nil {
		product.Brand = *params.Brand
	}
	if params.Description != nil {
		product.Description = *params.Description
	}
	if params.Category != nil {
		product.Category = *params.Category
	}
	if params.ImageURL != nil {
		product.ImageURL = *params.ImageURL
	}
	if params.Price != nil {
		product.Price = *params.Price
	}
	if params.Stock != nil {
		product.Stock = *params.Stock
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return model.Product{}, apperr.ProductGoneErr
		}
		return model.Product{}, fmt.Errorf("product repository update product: %w", err)
	}

	return product, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return apperr.ProductGoneErr
		}
		return fmt.Errorf("product repository delete product: %w", err)
	}

	return nil
}
