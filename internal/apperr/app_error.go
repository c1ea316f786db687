package apperr

import (
	"fmt"

	"github.com/Shoaib-Asghar/electronics-store-api/pkg/zerror"
)

const (
	ValidationErrorCode = "VALIDATION_FAILED"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	// Checkout engine errors. Messages are part of the API contract and must
	// stay byte-identical.
	CartInvalidErr    = zerror.NewBadRequest("CART_INVALID", "Cart is empty or invalid.")
	CheckoutFailedErr = zerror.NewInternalServerError("CHECKOUT_FAILED", "Checkout failed")

	// Auth gate errors.
	NotAuthorizedErr      = zerror.NewUnauthorized("NOT_AUTHORIZED", "Not authorized")
	InvalidTokenErr       = zerror.NewUnauthorized("INVALID_TOKEN", "Invalid token")
	AdminOnlyErr          = zerror.NewForbidden("ADMIN_ONLY", "Admin access only")
	EmailExistsErr        = zerror.NewBadRequest("EMAIL_EXISTS", "Email already exists")
	InvalidCredentialsErr = zerror.NewUnauthorized("INVALID_CREDENTIALS", "Invalid credentials")
	RegistrationFailedErr = zerror.NewInternalServerError("REGISTRATION_FAILED", "Registration failed")
	LoginFailedErr        = zerror.NewInternalServerError("LOGIN_FAILED", "Login failed")

	// Catalog and listing errors.
	ProductGoneErr         = zerror.NewNotFound("PRODUCT_NOT_FOUND", "Product not found")
	InventoryItemGoneErr   = zerror.NewNotFound("INVENTORY_ITEM_NOT_FOUND", "Inventory item not found")
	ServiceProviderGoneErr = zerror.NewNotFound("SERVICE_PROVIDER_NOT_FOUND", "Service provider not found")
	ServerErr              = zerror.NewInternalServerError("SERVER_ERROR", "Server error")
)

// NewProductNotFound reports a checkout cart line referencing an unknown
// product identifier.
func NewProductNotFound(productID string) zerror.ZError {
	return zerror.NewNotFound("PRODUCT_NOT_FOUND", fmt.Sprintf("Product not found: %s", productID))
}

// NewInsufficientStock reports a cart line whose quantity exceeds the
// product's available stock.
func NewInsufficientStock(productName string) zerror.ZError {
	return zerror.NewBadRequest("INSUFFICIENT_STOCK", fmt.Sprintf("Not enough stock for %s", productName))
}
