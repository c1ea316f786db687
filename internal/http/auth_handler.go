package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Shoaib-Asghar/electronics-store-api/internal/apperr"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/model"
	"github.com/Shoaib-Asghar/electronics-store-api/internal/service"
	"github.com/Shoaib-Asghar/electronics-store-api/pkg/validator"
	"github.com/Shoaib-Asghar/electronics-store-api/pkg/zerror"
)

type authHandler struct {
	*responder
	authSvc  service.AuthService
	validate validator.Validator
}

func newAuthHandler(rp *responder, authSvc service.AuthService, validate validator.Validator) *authHandler {
	return &authHandler{
		responder: rp,
		authSvc:   authSvc,
		validate:  validate,
	}
}

type registerRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6"`
	Role     model.Role `json:"role" validate:"omitempty,enum"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	Name string     `json:"name"`
	Role model.Role `json:"role"`
}

// POST /api/auth/register
func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}
	if err := h.validate.Validate(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.authSvc.Register(r.Context(), service.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.respondAuthError(w, r, err, apperr.RegistrationFailedErr)
		return
	}

	h.respondJSON(w, r, http.StatusOK, authResponse{
		Token: result.Token,
		User:  userResponse{Name: result.User.Name, Role: result.User.Role},
	})
}

// POST /api/auth/login
func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, r, apperr.ValidationErr.WrapParent(err))
		return
	}
	if err := h.validate.Validate(req); err != nil {
		h.respondError(w, r, err)
		return
	}

	result, err := h.authSvc.Login(r.Context(), service.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondAuthError(w, r, err, apperr.LoginFailedErr)
		return
	}

	h.respondJSON(w, r, http.StatusOK, authResponse{
		Token: result.Token,
		User:  userResponse{Name: result.User.Name, Role: result.User.Role},
	})
}

// respondAuthError keeps domain failures as-is and folds everything else
// into the endpoint's generic 500 message.
func (h *authHandler) respondAuthError(w http.ResponseWriter, r *http.Request, err error, fallback zerror.ZError) {
	var zErr zerror.ZError
	if errors.As(err, &zErr) {
		h.respondError(w, r, err)
		return
	}
	h.respondError(w, r, fallback.WrapParent(err))
}
