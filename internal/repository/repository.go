package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/hdev14/store/internal/domain"
)

var (
	// ErrNotFound is returned by reads when no record matches. Handlers
	// translate it into the entity-specific not-found error.
	ErrNotFound = errors.New("record not found")

	// ErrDraftAlreadyExists surfaces the storage-level uniqueness constraint
	// of one DRAFT order per customer. The "does a draft exist" check in the
	// add-item handler is check-then-act; this constraint is what closes the
	// race window.
	ErrDraftAlreadyExists = errors.New("customer already has a draft purchase order")
)

// Error wraps a persistence failure with the originating repository's name,
// keeping the cause chained for errors.Is/As.
type Error struct {
	Repository string
	Err        error
}

func (e *Error) Error() string {
	return e.Repository + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

// PurchaseOrderRepository is the persistence contract the order core
// consumes. The core never talks to storage directly.
type PurchaseOrderRepository interface {
	GetPurchaseOrderByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrder, error)
	GetPurchaseOrdersByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*domain.PurchaseOrder, error)
	GetDraftPurchaseOrderByCustomerID(ctx context.Context, customerID uuid.UUID) (*domain.PurchaseOrder, error)
	GetPurchaseOrderItemByID(ctx context.Context, id uuid.UUID) (*domain.PurchaseOrderItem, error)
	GetPurchaseOrderItem(ctx context.Context, purchaseOrderID, productID uuid.UUID) (*domain.PurchaseOrderItem, error)
	GetVoucherByCode(ctx context.Context, code int64) (*domain.Voucher, error)

	AddPurchaseOrder(ctx context.Context, po *domain.PurchaseOrder) error
	UpdatePurchaseOrder(ctx context.Context, po *domain.PurchaseOrder) error
	AddPurchaseOrderItem(ctx context.Context, item *domain.PurchaseOrderItem) error
	UpdatePurchaseOrderItem(ctx context.Context, item *domain.PurchaseOrderItem) error
	DeletePurchaseOrderItem(ctx context.Context, id uuid.UUID) error

	CountPurchaseOrders(ctx context.Context) (int64, error)
	CountPurchaseOrderItems(ctx context.Context) (int64, error)
	CountVouchers(ctx context.Context) (int64, error)
}
