package command

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/hdev14/store/internal/mediator"
	"github.com/hdev14/store/internal/repository"
)

const RemovePurchaseOrderItemName = "remove_purchase_order_item"

type RemovePurchaseOrderItem struct {
	PurchaseOrderItemID string `validate:"required,uuid4"`
}

func (RemovePurchaseOrderItem) Name() string { return RemovePurchaseOrderItemName }

// RemovePurchaseOrderItemHandler deletes an item by id. Its contract is a
// success boolean: repository failures are reported as false, so the caller
// never observes a partially-applied removal as an error.
type RemovePurchaseOrderItemHandler struct {
	repo repository.PurchaseOrderRepository
}

func NewRemovePurchaseOrderItemHandler(repo repository.PurchaseOrderRepository) *RemovePurchaseOrderItemHandler {
	return &RemovePurchaseOrderItemHandler{repo: repo}
}

func (h *RemovePurchaseOrderItemHandler) Handle(ctx context.Context, msg mediator.Message) (any, error) {
	cmd, ok := msg.(RemovePurchaseOrderItem)
	if !ok {
		return nil, fmt.Errorf("unexpected message type %T for %s", msg, RemovePurchaseOrderItemName)
	}

	itemID, err := uuid.Parse(cmd.PurchaseOrderItemID)
	if err != nil {
		return nil, fmt.Errorf("parse purchase order item id: %w", err)
	}

	if err := h.repo.DeletePurchaseOrderItem(ctx, itemID); err != nil {
		log.Printf("failed to delete purchase order item %s: %v", itemID, err)
		return false, nil
	}
	return true, nil
}
