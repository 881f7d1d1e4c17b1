package domain

import "errors"

var (
	ErrPurchaseOrderNotFound     = errors.New("purchase order not found")
	ErrPurchaseOrderItemNotFound = errors.New("purchase order item not found")
	ErrVoucherNotFound           = errors.New("voucher not found")
	ErrProductNotFound           = errors.New("product not found")
	ErrCategoryNotFound          = errors.New("category not found")

	// ErrVoucherInvalid means the voucher exists but is not eligible:
	// deactivated or past its expiry.
	ErrVoucherInvalid = errors.New("voucher is invalid: inactive or expired")
)

// DomainError signals an aggregate invariant violation, such as removing an
// item the order does not own. It is distinct from the not-found errors,
// which describe missing records rather than illegal operations.
type DomainError struct {
	Reason string
}

func (e *DomainError) Error() string {
	return e.Reason
}
