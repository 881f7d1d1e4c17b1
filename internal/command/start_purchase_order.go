package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hdev14/store/internal/domain"
	"github.com/hdev14/store/internal/event"
	"github.com/hdev14/store/internal/mediator"
	"github.com/hdev14/store/internal/queue"
	"github.com/hdev14/store/internal/repository"
)

const StartPurchaseOrderName = "start_purchase_order"

type StartPurchaseOrder struct {
	PurchaseOrderID string `validate:"required,uuid4"`
	CardToken       string `validate:"required"`
	Installments    int    `validate:"required,gte=1"`
}

func (StartPurchaseOrder) Name() string { return StartPurchaseOrderName }

// StartPurchaseOrderHandler moves the order out of DRAFT and hands the
// payment capture off to the asynchronous consumers: the charge request and
// the order update go onto the queue as one batch.
type StartPurchaseOrderHandler struct {
	repo  repository.PurchaseOrderRepository
	queue queue.EventQueue
}

func NewStartPurchaseOrderHandler(repo repository.PurchaseOrderRepository, q queue.EventQueue) *StartPurchaseOrderHandler {
	return &StartPurchaseOrderHandler{repo: repo, queue: q}
}

func (h *StartPurchaseOrderHandler) Handle(ctx context.Context, msg mediator.Message) (any, error) {
	cmd, ok := msg.(StartPurchaseOrder)
	if !ok {
		return nil, fmt.Errorf("unexpected message type %T for %s", msg, StartPurchaseOrderName)
	}

	orderID, err := uuid.Parse(cmd.PurchaseOrderID)
	if err != nil {
		return nil, fmt.Errorf("parse purchase order id: %w", err)
	}

	po, err := h.repo.GetPurchaseOrderByID(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrPurchaseOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	po.Start()

	if err := h.repo.UpdatePurchaseOrder(ctx, po); err != nil {
		return nil, err
	}

	enqueue(ctx, h.queue, chargeEvent(po, cmd.CardToken, cmd.Installments), orderUpdatedEvent(po))
	return true, nil
}

func chargeEvent(po *domain.PurchaseOrder, cardToken string, installments int) event.ChargePurchaseOrder {
	items := make([]event.ChargeLineItem, 0, len(po.Items))
	for _, item := range po.Items {
		items = append(items, event.ChargeLineItem{
			ItemID:    item.ID.String(),
			ProductID: item.Product.ID.String(),
			Quantity:  item.Quantity,
			Amount:    item.Amount(),
		})
	}

	return event.ChargePurchaseOrder{
		PurchaseOrderID: po.ID.String(),
		CustomerID:      po.CustomerID.String(),
		Code:            po.Code,
		TotalAmount:     po.TotalAmount,
		CardToken:       cardToken,
		Installments:    installments,
		Items:           items,
	}
}
