package domain

import "github.com/google/uuid"

// Product is the snapshot of a catalog product taken at the moment it is
// added to an order. It is never refreshed, so later catalog price edits do
// not change what the customer agreed to pay.
type Product struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Amount float64   `json:"amount"`
}
