package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hdev14/store/internal/domain"
	"github.com/hdev14/store/internal/event"
	"github.com/hdev14/store/internal/mediator"
	"github.com/hdev14/store/internal/queue"
	"github.com/hdev14/store/internal/repository"
)

const AddPurchaseOrderItemName = "add_purchase_order_item"

type AddPurchaseOrderItem struct {
	CustomerID    string  `validate:"required,uuid4"`
	ProductID     string  `validate:"required,uuid4"`
	ProductName   string  `validate:"required"`
	ProductAmount float64 `validate:"required"`
	Quantity      int     `validate:"required,min=1,max=10"`
}

func (AddPurchaseOrderItem) Name() string { return AddPurchaseOrderItemName }

// AddPurchaseOrderItemHandler puts a product into the customer's draft
// order, creating the draft on first add. The product name and amount are
// snapshotted into the item, so later catalog price edits don't touch orders
// already captured.
type AddPurchaseOrderItemHandler struct {
	repo   repository.PurchaseOrderRepository
	queue  queue.EventQueue
	events *mediator.EventMediator
}

func NewAddPurchaseOrderItemHandler(repo repository.PurchaseOrderRepository, q queue.EventQueue, events *mediator.EventMediator) *AddPurchaseOrderItemHandler {
	return &AddPurchaseOrderItemHandler{repo: repo, queue: q, events: events}
}

func (h *AddPurchaseOrderItemHandler) Handle(ctx context.Context, msg mediator.Message) (any, error) {
	cmd, ok := msg.(AddPurchaseOrderItem)
	if !ok {
		return nil, fmt.Errorf("unexpected message type %T for %s", msg, AddPurchaseOrderItemName)
	}

	customerID, err := uuid.Parse(cmd.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("parse customer id: %w", err)
	}
	productID, err := uuid.Parse(cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("parse product id: %w", err)
	}

	item := domain.NewPurchaseOrderItem(domain.Product{
		ID:     productID,
		Name:   cmd.ProductName,
		Amount: cmd.ProductAmount,
	}, cmd.Quantity)

	draft, err := h.repo.GetDraftPurchaseOrderByCustomerID(ctx, customerID)
	if errors.Is(err, repository.ErrNotFound) {
		return h.createDraft(ctx, customerID, item)
	}
	if err != nil {
		return nil, err
	}

	return h.addToDraft(ctx, draft, item)
}

func (h *AddPurchaseOrderItemHandler) createDraft(ctx context.Context, customerID uuid.UUID, item domain.PurchaseOrderItem) (any, error) {
	// count+1 is not atomic under concurrent creation; the storage layer
	// backs the code with a sequence and a one-draft-per-customer index.
	count, err := h.repo.CountPurchaseOrders(ctx)
	if err != nil {
		return nil, err
	}

	po := domain.NewDraftPurchaseOrder(customerID, count+1, time.Now())
	stored, _ := po.AddItem(item)

	if err := h.repo.AddPurchaseOrder(ctx, po); err != nil {
		return nil, err
	}
	if err := h.repo.AddPurchaseOrderItem(ctx, &stored); err != nil {
		return nil, err
	}

	added := itemAddedEvent(stored)
	enqueue(ctx, h.queue, orderCreatedEvent(po), added)
	broadcast(ctx, h.events, added)
	return true, nil
}

func (h *AddPurchaseOrderItemHandler) addToDraft(ctx context.Context, draft *domain.PurchaseOrder, item domain.PurchaseOrderItem) (any, error) {
	stored, merged := draft.AddItem(item)

	var itemEvent queue.Event
	if merged {
		if err := h.repo.UpdatePurchaseOrderItem(ctx, &stored); err != nil {
			return nil, err
		}
		itemEvent = itemUpdatedEvent(stored)
	} else {
		if err := h.repo.AddPurchaseOrderItem(ctx, &stored); err != nil {
			return nil, err
		}
		itemEvent = itemAddedEvent(stored)
	}

	// Totals were recalculated by the aggregate before this point.
	if err := h.repo.UpdatePurchaseOrder(ctx, draft); err != nil {
		return nil, err
	}

	enqueue(ctx, h.queue, itemEvent, orderUpdatedEvent(draft))
	broadcast(ctx, h.events, itemEvent)
	return true, nil
}

func orderCreatedEvent(po *domain.PurchaseOrder) event.PurchaseOrderCreated {
	return event.PurchaseOrderCreated{
		PurchaseOrderID: po.ID.String(),
		CustomerID:      po.CustomerID.String(),
		Code:            po.Code,
		TotalAmount:     po.TotalAmount,
		DiscountAmount:  po.DiscountAmount,
		CreatedAt:       po.CreatedAt,
	}
}

func orderUpdatedEvent(po *domain.PurchaseOrder) event.PurchaseOrderUpdated {
	return event.PurchaseOrderUpdated{
		PurchaseOrderID: po.ID.String(),
		CustomerID:      po.CustomerID.String(),
		Code:            po.Code,
		TotalAmount:     po.TotalAmount,
		DiscountAmount:  po.DiscountAmount,
	}
}

func itemAddedEvent(item domain.PurchaseOrderItem) event.PurchaseOrderItemAdded {
	return event.PurchaseOrderItemAdded{
		ItemID:          item.ID.String(),
		PurchaseOrderID: item.PurchaseOrderID.String(),
		ProductID:       item.Product.ID.String(),
		ProductName:     item.Product.Name,
		ProductAmount:   item.Product.Amount,
		Quantity:        item.Quantity,
	}
}

func itemUpdatedEvent(item domain.PurchaseOrderItem) event.PurchaseOrderItemUpdated {
	return event.PurchaseOrderItemUpdated{
		ItemID:        item.ID.String(),
		ProductID:     item.Product.ID.String(),
		ProductName:   item.Product.Name,
		ProductAmount: item.Product.Amount,
		Quantity:      item.Quantity,
	}
}
