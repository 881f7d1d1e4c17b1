package domain

import "github.com/google/uuid"

// PurchaseOrderItem is one line of an order. It is owned by its
// PurchaseOrder; quantity changes normally go through the aggregate so the
// order totals stay in sync.
type PurchaseOrderItem struct {
	ID              uuid.UUID `json:"id"`
	PurchaseOrderID uuid.UUID `json:"purchase_order_id"`
	Product         Product   `json:"product"`
	Quantity        int       `json:"quantity"`
}

func NewPurchaseOrderItem(product Product, quantity int) PurchaseOrderItem {
	return PurchaseOrderItem{
		ID:       uuid.New(),
		Product:  product,
		Quantity: quantity,
	}
}

// Amount is the line total, derived from the snapshot price.
func (i PurchaseOrderItem) Amount() float64 {
	return float64(i.Quantity) * i.Product.Amount
}
