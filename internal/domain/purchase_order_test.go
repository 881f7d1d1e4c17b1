package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(amount float64) Product {
	return Product{ID: uuid.New(), Name: "keyboard", Amount: amount}
}

func TestAddItem_NewProduct_AppendsAndRecalculates(t *testing.T) {
	po := NewDraftPurchaseOrder(uuid.New(), 1, time.Now())

	stored, merged := po.AddItem(NewPurchaseOrderItem(newTestProduct(10), 2))
	assert.False(t, merged)
	assert.Len(t, po.Items, 1)
	assert.Equal(t, po.ID, stored.PurchaseOrderID)
	assert.Equal(t, 20.0, po.TotalAmount)

	po.AddItem(NewPurchaseOrderItem(newTestProduct(5), 1))
	assert.Len(t, po.Items, 2)
	assert.Equal(t, 25.0, po.TotalAmount)
}

func TestAddItem_SameProduct_MergesQuantities(t *testing.T) {
	po := NewDraftPurchaseOrder(uuid.New(), 1, time.Now())
	product := newTestProduct(10)

	po.AddItem(NewPurchaseOrderItem(product, 2))
	stored, merged := po.AddItem(NewPurchaseOrderItem(product, 3))

	assert.True(t, merged)
	assert.Len(t, po.Items, 1)
	assert.Equal(t, 5, stored.Quantity)
	assert.Equal(t, 50.0, po.TotalAmount)
}

func TestRemoveItem_UnknownItem_ReturnsDomainError(t *testing.T) {
	po := NewDraftPurchaseOrder(uuid.New(), 1, time.Now())
	po.AddItem(NewPurchaseOrderItem(newTestProduct(10), 1))

	err := po.RemoveItem(uuid.New())

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Len(t, po.Items, 1)
}

func TestRemoveItem_OwnedItem_RecalculatesTotal(t *testing.T) {
	po := NewDraftPurchaseOrder(uuid.New(), 1, time.Now())
	first, _ := po.AddItem(NewPurchaseOrderItem(newTestProduct(10), 2))
	po.AddItem(NewPurchaseOrderItem(newTestProduct(5), 4))

	require.NoError(t, po.RemoveItem(first.ID))

	assert.Len(t, po.Items, 1)
	assert.Equal(t, 20.0, po.TotalAmount)
}

func TestUpdateItemQuantity_UnknownItem_ReturnsDomainError(t *testing.T) {
	po := NewDraftPurchaseOrder(uuid.New(), 1, time.Now())

	err := po.UpdateItemQuantity(uuid.New(), 3)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
}

func TestUpdateItemQuantity_OwnedItem_RecalculatesTotal(t *testing.T) {
	po := NewDraftPurchaseOrder(uuid.New(), 1, time.Now())
	item, _ := po.AddItem(NewPurchaseOrderItem(newTestProduct(10), 2))

	require.NoError(t, po.UpdateItemQuantity(item.ID, 7))

	assert.Equal(t, 7, po.Items[0].Quantity)
	assert.Equal(t, 70.0, po.TotalAmount)
}

func TestApplyVoucher_Percentage(t *testing.T) {
	po := NewDraftPurchaseOrder(uuid.New(), 1, time.Now())
	po.AddItem(NewPurchaseOrderItem(newTestProduct(50), 2)) // total 100

	po.ApplyVoucher(&Voucher{
		ID:               uuid.New(),
		Type:             VoucherTypePercentage,
		PercentageAmount: 25,
	})

	assert.Equal(t, 25.0, po.DiscountAmount)
	assert.Equal(t, 75.0, po.TotalAmount)
}

func TestApplyVoucher_Absolute(t *testing.T) {
	po := NewDraftPurchaseOrder(uuid.New(), 1, time.Now())
	po.AddItem(NewPurchaseOrderItem(newTestProduct(50), 2)) // total 100

	po.ApplyVoucher(&Voucher{
		ID:                uuid.New(),
		Type:              VoucherTypeAbsolute,
		RawDiscountAmount: 30,
	})

	assert.Equal(t, 30.0, po.DiscountAmount)
	assert.Equal(t, 70.0, po.TotalAmount)
}

func TestApplyVoucher_DiscountLargerThanTotal_FloorsAtZero(t *testing.T) {
	po := NewDraftPurchaseOrder(uuid.New(), 1, time.Now())
	po.AddItem(NewPurchaseOrderItem(newTestProduct(100), 1))

	po.ApplyVoucher(&Voucher{
		ID:                uuid.New(),
		Type:              VoucherTypeAbsolute,
		RawDiscountAmount: 150,
	})

	assert.Equal(t, 150.0, po.DiscountAmount)
	assert.Equal(t, 0.0, po.TotalAmount)
}

func TestApplyVoucher_RecalculatesOnLaterItemChanges(t *testing.T) {
	po := NewDraftPurchaseOrder(uuid.New(), 1, time.Now())
	po.AddItem(NewPurchaseOrderItem(newTestProduct(50), 2))
	po.ApplyVoucher(&Voucher{Type: VoucherTypePercentage, PercentageAmount: 10})
	require.Equal(t, 90.0, po.TotalAmount)

	po.AddItem(NewPurchaseOrderItem(newTestProduct(100), 1)) // total 200 before discount

	assert.Equal(t, 20.0, po.DiscountAmount)
	assert.Equal(t, 180.0, po.TotalAmount)
}

func TestStatusTransitions_AreUnconditional(t *testing.T) {
	po := NewDraftPurchaseOrder(uuid.New(), 1, time.Now())
	assert.Equal(t, PurchaseOrderStatusDraft, po.Status)

	po.Start()
	assert.Equal(t, PurchaseOrderStatusStarted, po.Status)

	po.Finish()
	assert.Equal(t, PurchaseOrderStatusPaid, po.Status)

	// The aggregate itself does not forbid going backwards.
	po.MakeDraft()
	assert.Equal(t, PurchaseOrderStatusDraft, po.Status)

	po.Cancel()
	assert.Equal(t, PurchaseOrderStatusCanceled, po.Status)
}
