package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/apperr"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/http/middleware"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/model"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/service"
	"github.com/Shoaib-Asghar/electronics-store-api/pkg/zerror"
)

type checkoutHandler struct {
	*responder
	checkoutSvc service.CheckoutService
}

func newCheckoutHandler(rp *responder, checkoutSvc service.CheckoutService) *checkoutHandler {
	return &checkoutHandler{
		responder:   rp,
		checkoutSvc: checkoutSvc,
	}
}

type checkoutRequest struct {
	// Cart stays raw so a missing, non-array or empty cart all collapse to
	// the same invalid-cart rejection before any stock is touched.
	Cart json.RawMessage `json:"cart"`
}

type cartLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type checkoutResponse struct {
	Message string              `json:"message"`
	Updated []model.UpdatedLine `json:"updated"`
}

// POST /api/orders/checkout
func (h *checkoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		h.respondError(w, r, apperr.NotAuthorizedErr)
		return
	}

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, apperr.CartInvalidErr)
		return
	}

	var rawLines []cartLineRequest
	if len(req.Cart) == 0 || json.Unmarshal(req.Cart, &rawLines) != nil || len(rawLines) == 0 {
		h.respondError(w, r, apperr.CartInvalidErr)
		return
	}

	lines := make([]model.CartLine, 0, len(rawLines))
	for _, line := range rawLines {
		lines = append(lines, model.CartLine{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	updated, err := h.checkoutSvc.Checkout(r.Context(), user, lines)
	if err != nil {
		var zErr zerror.ZError
		if errors.As(err, &zErr) {
			h.respondError(w, r, err)
			return
		}
		h.respondError(w, r, apperr.CheckoutFailedErr.WrapParent(err))
		return
	}

	h.respondJSON(w, r, http.StatusOK, checkoutResponse{
		Message: "Checkout successful. Inventory updated.",
		Updated: updated,
	})
}
