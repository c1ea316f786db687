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

type inventoryHandler struct {
	*responder
	inventorySvc service.InventoryService
	validate     validator.Validator
}

func newInventoryHandler(rp *responder, inventorySvc service.InventoryService, validate validator.Validator) *inventoryHandler {
	return &inventoryHandler{
		responder:    rp,
		inventorySvc: inventorySvc,
		validate:     validate,
	}
}

type createInventoryItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

type updateInventoryItemRequest struct {
	Name        *string  `json:"name"`
	Brand       *string  `json:"brand"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
}

// GET /api/inventory
func (h *inventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventorySvc.ListAllItems(r.Context())
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, items)
}

// GET /api/inventory/{id}
func (h *inventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, apperr.InventoryItemGoneErr)
		return
	}

	item, err := h.inventorySvc.GetItem(r.Context(), id)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, item)
}

// POST /api/inventory
func (h *inventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createInventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}
	if err := h.validate.Validate(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	item, err := h.inventorySvc.CreateItem(r.Context(), service.CreateInventoryItemParams{
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusCreated, item)
}

// PUT /api/inventory/{id}
func (h *inventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, apperr.InventoryItemGoneErr)
		return
	}

	var req updateInventoryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}
	if err := h.validate.Validate(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	item, err := h.inventorySvc.UpdateItem(r.Context(), id, service.UpdateInventoryItemParams{
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, item)
}

// DELETE /api/inventory/{id}
func (h *inventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, apperr.InventoryItemGoneErr)
		return
	}

	if err := h.inventorySvc.DeleteItem(r.Context(), id); err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, messageResponse{Message: "Inventory item deleted"})
}
