package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/apperr"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/service"
	"github.com/Shoaib-Asghar/electronics-store-api/pkg/ptr"
)

func TestProductService(t *testing.T) {
	ctx := context.Background()

	t.Run("Should create a product with a fresh id", func(t *testing.T) {
		productRepo := newFakeProductRepo()
		svc := service.NewProductService(productRepo)

		product, err := svc.CreateProduct(ctx, service.CreateProductParams{
			Name:     "Keyboard",
			Category: "peripherals",
			Price:    49.99,
			Stock:    5,
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, product.ID)
		assert.Equal(t, 5, productRepo.stock(t, product.ID))
	})

	t.Run("Should update only the provided fields", func(t *testing.T) {
		keyboard := newProduct("Keyboard", 5)
		keyboard.Category = "peripherals"
		productRepo := newFakeProductRepo(keyboard)
		svc := service.NewProductService(productRepo)

		updated, err := svc.UpdateProduct(ctx, keyboard.ID, service.UpdateProductParams{
			Stock: ptr.New(12),
		})

		require.NoError(t, err)
		assert.Equal(t, "Keyboard", updated.Name)
		assert.Equal(t, "peripherals", updated.Category)
		assert.Equal(t, 12, updated.Stock)
		assert.Equal(t, 12, productRepo.stock(t, keyboard.ID))
	})

	t.Run("Should map unknown products to the domain error", func(t *testing.T) {
		svc := service.NewProductService(newFakeProductRepo())
		missing := uuid.New()

		_, err := svc.GetProduct(ctx, missing)
		require.ErrorIs(t, err, apperr.ProductGoneErr)

		_, err = svc.UpdateProduct(ctx, missing, service.UpdateProductParams{})
		require.ErrorIs(t, err, apperr.ProductGoneErr)

		err = svc.DeleteProduct(ctx, missing)
		require.ErrorIs(t, err, apperr.ProductGoneErr)
	})
}
