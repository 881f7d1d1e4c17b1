package domain

import (
	"time"

	"github.com/google/uuid"
)

type VoucherType string

const (
	VoucherTypePercentage VoucherType = "PERCENTAGE"
	VoucherTypeAbsolute   VoucherType = "ABSOLUTE"
)

// Voucher is a promotional discount looked up by its numeric code. Vouchers
// are immutable after construction; applying one to an order never mutates
// the voucher itself. Quantity tracks remaining redemptions but is not
// decremented by the order commands.
type Voucher struct {
	ID                uuid.UUID   `json:"id"`
	Code              int64       `json:"code"`
	Type              VoucherType `json:"type"`
	PercentageAmount  float64     `json:"percentage_amount"`
	RawDiscountAmount float64     `json:"raw_discount_amount"`
	Quantity          int         `json:"quantity"`
	Active            bool        `json:"active"`
	CreatedAt         time.Time   `json:"created_at"`
	ExpiresAt         time.Time   `json:"expires_at"`
	UsedAt            *time.Time  `json:"used_at,omitempty"`
}

// IsEligible reports whether the voucher can be applied right now. The
// active toggle is independent of expiry: an active voucher past its
// expiresAt is still ineligible.
func (v *Voucher) IsEligible(now time.Time) bool {
	return v.Active && v.ExpiresAt.After(now)
}

// DiscountFor returns the discount this voucher yields on the given order
// total. The caller floors the resulting order total at zero.
func (v *Voucher) DiscountFor(total float64) float64 {
	switch v.Type {
	case VoucherTypePercentage:
		return total * v.PercentageAmount / 100
	case VoucherTypeAbsolute:
		return v.RawDiscountAmount
	}
	return 0
}
