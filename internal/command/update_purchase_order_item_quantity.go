package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hdev14/store/internal/domain"
	"github.com/hdev14/store/internal/mediator"
	"github.com/hdev14/store/internal/repository"
)

const UpdatePurchaseOrderItemQuantityName = "update_purchase_order_item_quantity"

type UpdatePurchaseOrderItemQuantity struct {
	PrincipalID string `validate:"required,uuid4"`
	Quantity    int    `validate:"required"`
}

func (UpdatePurchaseOrderItemQuantity) Name() string { return UpdatePurchaseOrderItemQuantityName }

// UpdatePurchaseOrderItemQuantityHandler changes an item's quantity by
// writing the item record directly, without going through the owning order.
// The order's cached totalAmount/discountAmount are therefore NOT recomputed
// on this path. Known inconsistency with the other mutation paths; kept
// until product decides which side is right.
type UpdatePurchaseOrderItemQuantityHandler struct {
	repo repository.PurchaseOrderRepository
}

func NewUpdatePurchaseOrderItemQuantityHandler(repo repository.PurchaseOrderRepository) *UpdatePurchaseOrderItemQuantityHandler {
	return &UpdatePurchaseOrderItemQuantityHandler{repo: repo}
}

func (h *UpdatePurchaseOrderItemQuantityHandler) Handle(ctx context.Context, msg mediator.Message) (any, error) {
	cmd, ok := msg.(UpdatePurchaseOrderItemQuantity)
	if !ok {
		return nil, fmt.Errorf("unexpected message type %T for %s", msg, UpdatePurchaseOrderItemQuantityName)
	}

	itemID, err := uuid.Parse(cmd.PrincipalID)
	if err != nil {
		return nil, fmt.Errorf("parse purchase order item id: %w", err)
	}

	item, err := h.repo.GetPurchaseOrderItemByID(ctx, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrPurchaseOrderItemNotFound
	}
	if err != nil {
		return nil, err
	}

	item.Quantity = cmd.Quantity
	if err := h.repo.UpdatePurchaseOrderItem(ctx, item); err != nil {
		return nil, err
	}
	return true, nil
}
