package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/apperr"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/service"
	"github.com/Shoaib-Asghar/electronics-store-api/pkg/validator"
)

type productHandler struct {
	*responder
	productSvc service.ProductService
	validate   validator.Validator
}

func newProductHandler(rp *responder, productSvc service.ProductService, validate validator.Validator) *productHandler {
	return &productHandler{
		responder:  rp,
		productSvc: productSvc,
		validate:   validate,
	}
}

type createProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Brand       string  `json:"brand"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	ImageURL    string  `json:"imageUrl"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Brand       *string  `json:"brand"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
}

// GET /api/products
func (h *productHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productSvc.ListAllProducts(r.Context())
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, products)
}

// GET /api/products/{id}
func (h *productHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, apperr.ProductGoneErr)
		return
	}

	product, err := h.productSvc.GetProduct(r.Context(), id)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, product)
}

// POST /api/products
func (h *productHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}
	if err := h.validate.Validate(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	product, err := h.productSvc.CreateProduct(r.Context(), service.CreateProductParams{
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusCreated, product)
}

// PUT /api/products/{id}
func (h *productHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, apperr.ProductGoneErr)
		return
	}

	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}
	if err := h.validate.Validate(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	product, err := h.productSvc.UpdateProduct(r.Context(), id, service.UpdateProductParams{
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, product)
}

// DELETE /api/products/{id}
func (h *productHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, apperr.ProductGoneErr)
		return
	}

	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

type messageResponse struct {
	Message string `json:"message"`
}
