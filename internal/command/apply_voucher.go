package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hdev14/store/internal/domain"
	"github.com/hdev14/store/internal/mediator"
	"github.com/hdev14/store/internal/repository"
)

const ApplyVoucherName = "apply_voucher"

type ApplyVoucher struct {
	CustomerID  string `validate:"required,uuid4"`
	VoucherCode int64  `validate:"required"`
}

func (ApplyVoucher) Name() string { return ApplyVoucherName }

// ApplyVoucherHandler attaches a voucher to the customer's draft order. The
// voucher must exist, be active and not expired; the aggregate then
// recomputes the discount and total.
type ApplyVoucherHandler struct {
	repo repository.PurchaseOrderRepository
}

func NewApplyVoucherHandler(repo repository.PurchaseOrderRepository) *ApplyVoucherHandler {
	return &ApplyVoucherHandler{repo: repo}
}

func (h *ApplyVoucherHandler) Handle(ctx context.Context, msg mediator.Message) (any, error) {
	cmd, ok := msg.(ApplyVoucher)
	if !ok {
		return nil, fmt.Errorf("unexpected message type %T for %s", msg, ApplyVoucherName)
	}

	customerID, err := uuid.Parse(cmd.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("parse customer id: %w", err)
	}

	draft, err := h.repo.GetDraftPurchaseOrderByCustomerID(ctx, customerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrPurchaseOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	voucher, err := h.repo.GetVoucherByCode(ctx, cmd.VoucherCode)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrVoucherNotFound
	}
	if err != nil {
		return nil, err
	}

	if !voucher.IsEligible(time.Now()) {
		return nil, domain.ErrVoucherInvalid
	}

	draft.ApplyVoucher(voucher)

	if err := h.repo.UpdatePurchaseOrder(ctx, draft); err != nil {
		return nil, err
	}
	return true, nil
}
