package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVoucherIsEligible(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		active   bool
		expires  time.Time
		eligible bool
	}{
		{"active and not expired", true, now.Add(time.Hour), true},
		{"inactive", false, now.Add(time.Hour), false},
		{"active but expired", true, now.Add(-time.Hour), false},
		{"inactive and expired", false, now.Add(-time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Voucher{Active: tt.active, ExpiresAt: tt.expires}
			assert.Equal(t, tt.eligible, v.IsEligible(now))
		})
	}
}

func TestVoucherDiscountFor(t *testing.T) {
	percentage := Voucher{Type: VoucherTypePercentage, PercentageAmount: 15}
	assert.Equal(t, 30.0, percentage.DiscountFor(200))

	absolute := Voucher{Type: VoucherTypeAbsolute, RawDiscountAmount: 45}
	assert.Equal(t, 45.0, absolute.DiscountFor(200))
}
