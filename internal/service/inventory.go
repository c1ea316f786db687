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

type CreateInventoryItemParams struct {
	Name        string
	Brand       string
	Description string
	Price       float64
	Stock       int
}

type UpdateInventoryItemParams struct {
	Name        *string
	Brand       *string
	Description *string
	Price       *float64
	Stock       *int
}

type InventoryService interface {
	CreateItem(ctx context.Context, params CreateInventoryItemParams) (model.InventoryItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (model.InventoryItem, error)
	ListAllItems(ctx context.Context) ([]model.InventoryItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, params UpdateInventoryItemParams) (model.InventoryItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
}

func NewInventoryService(inventoryRepo repository.InventoryRepository) InventoryService {
	return &inventoryService{inventoryRepo: inventoryRepo}
}

func (s *inventoryService) CreateItem(ctx context.Context, params CreateInventoryItemParams) (model.InventoryItem, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	now := time.Now()
	item := model.InventoryItem{
		ID:          id,
		Name:        params.Name,
		Brand:       params.Brand,
		Description: params.Description,
		Price:       params.Price,
		Stock:       params.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.inventoryRepo.CreateItem(ctx, item); err != nil {
		return model.InventoryItem{}, fmt.Errorf("inventory repository create item: %w", err)
	}

	return item, nil
}

func (s *inventoryService) GetItem(ctx context.Context, id uuid.UUID) (model.InventoryItem, error) {
	item, err := s.inventoryRepo.GetItem(ctx, id)
	if errors.Is(err, repository.ErrInventoryItemNotFound) {
		return model.InventoryItem{}, apperr.InventoryItemGoneErr
	}
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("inventory repository get item: %w", err)
	}

	return item, nil
}

func (s *inventoryService) ListAllItems(ctx context.Context) ([]model.InventoryItem, error) {
	items, err := s.inventoryRepo.ListAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory repository list all items: %w", err)
	}

	return items, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, id uuid.UUID, params UpdateInventoryItemParams) (model.InventoryItem, error) {
	item, err := s.inventoryRepo.GetItem(ctx, id)
	if errors.Is(err, repository.ErrInventoryItemNotFound) {
		return model.InventoryItem{}, apperr.InventoryItemGoneErr
	}
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("inventory repository get item: %w", err)
	}

	if params.Name != nil {
		item.Name = *params.Name
	}
	if params.Brand != nil {
		item.Brand = *params.Brand
	}
	if params.Description != nil {
		item.Description = *params.Description
	}
	if params.Price != nil {
		item.Price = *params.Price
	}
	if params.Stock != nil {
		item.Stock = *params.Stock
	}
	item.UpdatedAt = time.Now()

	if err := s.inventoryRepo.UpdateItem(ctx, item); err != nil {
		if errors.Is(err, repository.ErrInventoryItemNotFound) {
			return model.InventoryItem{}, apperr.InventoryItemGoneErr
		}
		return model.InventoryItem{}, fmt.Errorf("inventory repository update item: %w", err)
	}

	return item, nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.inventoryRepo.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInventoryItemNotFound) {
			return apperr.InventoryItemGoneErr
		}
		return fmt.Errorf("inventory repository delete item: %w", err)
	}

	return nil
}
