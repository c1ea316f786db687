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

type providerHandler struct {
	*responder
	providerSvc service.ProviderService
	validate    validator.Validator
}

func newProviderHandler(rp *responder, providerSvc service.ProviderService, validate validator.Validator) *providerHandler {
	return &providerHandler{
		responder:   rp,
		providerSvc: providerSvc,
		validate:    validate,
	}
}

type createProviderRequest struct {
	Name         string `json:"name" validate:"required"`
	Expertise    string `json:"expertise" validate:"required"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	Phone        string `json:"phone"`
	ImageURL     string `json:"imageUrl"`
	Available    bool   `json:"available"`
}

type updateProviderRequest struct {
	Name         *string `json:"name"`
	Expertise    *string `json:"expertise"`
	Description  *string `json:"description"`
	Location     *string `json:"location"`
	ContactEmail *string `json:"contactEmail" validate:"omitempty,email"`
	Phone        *string `json:"phone"`
	ImageURL     *string `json:"imageUrl"`
	Available    *bool   `json:"available"`
}

// GET /api/services
func (h *providerHandler) List(w http.ResponseWriter, r *http.Request) {
	providers, err := h.providerSvc.ListAllProviders(r.Context())
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, providers)
}

// GET /api/services/{id}
func (h *providerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, apperr.ServiceProviderGoneErr)
		return
	}

	provider, err := h.providerSvc.GetProvider(r.Context(), id)
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, provider)
}

// POST /api/services
func (h *providerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}
	if err := h.validate.Validate(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	provider, err := h.providerSvc.CreateProvider(r.Context(), service.CreateProviderParams{
		Name:         req.Name,
		Expertise:    req.Expertise,
		Description:  req.Description,
		Location:     req.Location,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		ImageURL:     req.ImageURL,
		Available:    req.Available,
	})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusCreated, provider)
}

// PUT /api/services/{id}
func (h *providerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, apperr.ServiceProviderGoneErr)
		return
	}

	var req updateProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}
	if err := h.validate.Validate(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	provider, err := h.providerSvc.UpdateProvider(r.Context(), id, service.UpdateProviderParams{
		Name:         req.Name,
		Expertise:    req.Expertise,
		Description:  req.Description,
		Location:     req.Location,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
		ImageURL:     req.ImageURL,
		Available:    req.Available,
	})
	if err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, provider)
}

// DELETE /api/services/{id}
func (h *providerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, apperr.ServiceProviderGoneErr)
		return
	}

	if err := h.providerSvc.DeleteProvider(r.Context(), id); err != nil {
		h.respondDomainError(w, r, err)
		return
	}

	h.respondJSON(w, r, http.StatusOK, messageResponse{Message: "Service provider deleted"})
}
