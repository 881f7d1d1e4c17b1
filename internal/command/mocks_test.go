package command

import (
	"context"

	"github.com/google/uuid"

	"github.com/hdev14/store/internal/domain"
	"github.com/hdev14/store/internal/queue"
)

// MockRepository implements repository.PurchaseOrderRepository for testing.
// Zero-value fields mean "no record / no error"; Captured* fields record the
// writes the handler performed.
type MockRepository struct {
	Draft      *domain.PurchaseOrder
	DraftErr   error
	Order      *domain.PurchaseOrder
	OrderErr   error
	Item       *domain.PurchaseOrderItem
	ItemErr    error
	Voucher    *domain.Voucher
	VoucherErr error
	OrderCount int64

	AddOrderErr    error
	UpdateOrderErr error
	AddItemErr     error
	UpdateItemErr  error
	DeleteItemErr  error

	CapturedAddedOrder    *domain.PurchaseOrder
	CapturedUpdatedOrder  *domain.PurchaseOrder
	CapturedAddedItem     *domain.PurchaseOrderItem
	CapturedUpdatedItem   *domain.PurchaseOrderItem
	CapturedDeletedItemID uuid.UUID
}

func (m *MockRepository) GetPurchaseOrderByID(context.Context, uuid.UUID) (*domain.PurchaseOrder, error) {
	return m.Order, m.OrderErr
}

func (m *MockRepository) GetPurchaseOrdersByCustomerID(context.Context, uuid.UUID) ([]*domain.PurchaseOrder, error) {
	if m.Order == nil {
		return []*domain.PurchaseOrder{}, m.OrderErr
	}
	return []*domain.PurchaseOrder{m.Order}, m.OrderErr
}

func (m *MockRepository) GetDraftPurchaseOrderByCustomerID(context.Context, uuid.UUID) (*domain.PurchaseOrder, error) {
	return m.Draft, m.DraftErr
}

func (m *MockRepository) GetPurchaseOrderItemByID(context.Context, uuid.UUID) (*domain.PurchaseOrderItem, error) {
	return m.Item, m.ItemErr
}

func (m *MockRepository) GetPurchaseOrderItem(context.Context, uuid.UUID, uuid.UUID) (*domain.PurchaseOrderItem, error) {
	return m.Item, m.ItemErr
}

func (m *MockRepository) GetVoucherByCode(context.Context, int64) (*domain.Voucher, error) {
	return m.Voucher, m.VoucherErr
}

func (m *MockRepository) AddPurchaseOrder(_ context.Context, po *domain.PurchaseOrder) error {
	m.CapturedAddedOrder = po
	return m.AddOrderErr
}

func (m *MockRepository) UpdatePurchaseOrder(_ context.Context, po *domain.PurchaseOrder) error {
	m.CapturedUpdatedOrder = po
	return m.UpdateOrderErr
}

func (m *MockRepository) AddPurchaseOrderItem(_ context.Context, item *domain.PurchaseOrderItem) error {
	m.CapturedAddedItem = item
	return m.AddItemErr
}

func (m *MockRepository) UpdatePurchaseOrderItem(_ context.Context, item *domain.PurchaseOrderItem) error {
	m.CapturedUpdatedItem = item
	return m.UpdateItemErr
}

func (m *MockRepository) DeletePurchaseOrderItem(_ context.Context, id uuid.UUID) error {
	m.CapturedDeletedItemID = id
	return m.DeleteItemErr
}

func (m *MockRepository) CountPurchaseOrders(context.Context) (int64, error) {
	return m.OrderCount, nil
}

func (m *MockRepository) CountPurchaseOrderItems(context.Context) (int64, error) {
	return 0, nil
}

func (m *MockRepository) CountVouchers(context.Context) (int64, error) {
	return 0, nil
}

// MockQueue implements queue.EventQueue for testing.
type MockQueue struct {
	Err      error
	Enqueued []queue.Event
}

func (m *MockQueue) Enqueue(_ context.Context, e queue.Event) error {
	if m.Err != nil {
		return m.Err
	}
	m.Enqueued = append(m.Enqueued, e)
	return nil
}

func (m *MockQueue) EnqueueInBatch(_ context.Context, events ...queue.Event) error {
	if m.Err != nil {
		return m.Err
	}
	m.Enqueued = append(m.Enqueued, events...)
	return nil
}

func (m *MockQueue) Close() error { return nil }
