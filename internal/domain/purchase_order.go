package domain

import (
	"time"

	"github.com/google/uuid"
)

type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft    PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusStarted  PurchaseOrderStatus = "STARTED"
	PurchaseOrderStatusPaid     PurchaseOrderStatus = "PAID"
	PurchaseOrderStatusShipped  PurchaseOrderStatus = "SHIPPED"
	PurchaseOrderStatusCanceled PurchaseOrderStatus = "CANCELED"
)

// PurchaseOrder is the aggregate root of the order-capture core. It owns its
// items and voucher reference and keeps TotalAmount/DiscountAmount in sync
// with them: every mutation goes through a method that recalculates totals
// before the order is handed to the repository.
type PurchaseOrder struct {
	ID             uuid.UUID           `json:"id"`
	CustomerID     uuid.UUID           `json:"customer_id"`
	Code           int64               `json:"code"`
	CreatedAt      time.Time           `json:"created_at"`
	Status         PurchaseOrderStatus `json:"status"`
	Voucher        *Voucher            `json:"voucher,omitempty"`
	Items          []PurchaseOrderItem `json:"items"`
	TotalAmount    float64             `json:"total_amount"`
	DiscountAmount float64             `json:"discount_amount"`
}

// NewDraftPurchaseOrder creates the customer's cart when the first item is
// added. Code is the human-facing sequential order number.
func NewDraftPurchaseOrder(customerID uuid.UUID, code int64, now time.Time) *PurchaseOrder {
	return &PurchaseOrder{
		ID:         uuid.New(),
		CustomerID: customerID,
		Code:       code,
		CreatedAt:  now,
		Status:     PurchaseOrderStatusDraft,
	}
}

// AddItem adds an item to the order, taking ownership of it. When the order
// already carries an item for the same product the quantities are merged
// instead of appending a second line. It returns the stored entry and
// whether a merge happened, so the caller knows to persist an update rather
// than an insert.
func (po *PurchaseOrder) AddItem(item PurchaseOrderItem) (PurchaseOrderItem, bool) {
	defer po.recalculate()

	for i := range po.Items {
		if po.Items[i].Product.ID == item.Product.ID {
			po.Items[i].Quantity += item.Quantity
			return po.Items[i], true
		}
	}

	item.PurchaseOrderID = po.ID
	po.Items = append(po.Items, item)
	return item, false
}

// RemoveItem removes the item with the given id from the order.
func (po *PurchaseOrder) RemoveItem(itemID uuid.UUID) error {
	for i := range po.Items {
		if po.Items[i].ID == itemID {
			po.Items = append(po.Items[:i], po.Items[i+1:]...)
			po.recalculate()
			return nil
		}
	}
	return &DomainError{Reason: "item doesn't exist in purchase order"}
}

// UpdateItemQuantity sets the quantity of an owned item and recalculates the
// order totals.
func (po *PurchaseOrder) UpdateItemQuantity(itemID uuid.UUID, quantity int) error {
	for i := range po.Items {
		if po.Items[i].ID == itemID {
			po.Items[i].Quantity = quantity
			po.recalculate()
			return nil
		}
	}
	return &DomainError{Reason: "item doesn't exist in purchase order"}
}

// ItemByProduct returns the order's item for the given product, if any.
func (po *PurchaseOrder) ItemByProduct(productID uuid.UUID) (PurchaseOrderItem, bool) {
	for _, item := range po.Items {
		if item.Product.ID == productID {
			return item, true
		}
	}
	return PurchaseOrderItem{}, false
}

// ApplyVoucher attaches the voucher and recomputes the discount. Eligibility
// (active, not expired) is the caller's concern; the aggregate only does the
// arithmetic.
func (po *PurchaseOrder) ApplyVoucher(voucher *Voucher) {
	po.Voucher = voucher
	po.recalculate()
}

// Status transitions are unconditional setters. The aggregate does not
// forbid illegal transitions; command handlers only invoke the transition
// appropriate to the current state.

func (po *PurchaseOrder) MakeDraft() { po.Status = PurchaseOrderStatusDraft }
func (po *PurchaseOrder) Start()     { po.Status = PurchaseOrderStatusStarted }
func (po *PurchaseOrder) Finish()    { po.Status = PurchaseOrderStatusPaid }
func (po *PurchaseOrder) Cancel()    { po.Status = PurchaseOrderStatusCanceled }

func (po *PurchaseOrder) recalculate() {
	total := 0.0
	for _, item := range po.Items {
		total += item.Amount()
	}

	po.DiscountAmount = 0
	if po.Voucher != nil {
		po.DiscountAmount = po.Voucher.DiscountFor(total)
	}

	total -= po.DiscountAmount
	if total < 0 {
		total = 0
	}
	po.TotalAmount = total
}
