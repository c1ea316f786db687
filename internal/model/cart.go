package model

// CartLine is one product/quantity pair submitted at checkout. It is
// transient: submitted by the client and never persisted. The product id
// stays an opaque string until the line is processed, so an unknown or
// malformed id on line k does not block lines before it.
type CartLine struct {
	ProductID string
	Quantity  int
}

// UpdatedLine reports the post-decrement stock of one cart line, in the same
// order as the submitted cart.
type UpdatedLine struct {
	Name      string `json:"name"`
	Remaining int    `json:"remaining"`
}
