package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hdev14/store/internal/domain"
	"github.com/hdev14/store/internal/mediator"
	"github.com/hdev14/store/internal/repository"
)

const (
	GetPurchaseOrderName     = "get_purchase_order"
	GetPurchaseOrdersName    = "get_purchase_orders"
	GetPurchaseOrderItemName = "get_purchase_order_item"
	GetVoucherName           = "get_voucher"
)

type GetPurchaseOrder struct {
	PurchaseOrderID string
}

func (GetPurchaseOrder) Name() string { return GetPurchaseOrderName }

type GetPurchaseOrders struct {
	CustomerID string
}

func (GetPurchaseOrders) Name() string { return GetPurchaseOrdersName }

type GetPurchaseOrderItem struct {
	PurchaseOrderItemID string
}

func (GetPurchaseOrderItem) Name() string { return GetPurchaseOrderItemName }

type GetVoucher struct {
	VoucherCode int64
}

func (GetVoucher) Name() string { return GetVoucherName }

// Each query handler wraps one repository read and translates missing
// records into the entity-specific not-found error. Collection queries
// return an empty slice instead of erroring.

type GetPurchaseOrderHandler struct {
	repo repository.PurchaseOrderRepository
}

func NewGetPurchaseOrderHandler(repo repository.PurchaseOrderRepository) *GetPurchaseOrderHandler {
	return &GetPurchaseOrderHandler{repo: repo}
}

func (h *GetPurchaseOrderHandler) Handle(ctx context.Context, msg mediator.Message) (any, error) {
	q, ok := msg.(GetPurchaseOrder)
	if !ok {
		return nil, fmt.Errorf("unexpected message type %T for %s", msg, GetPurchaseOrderName)
	}

	id, err := uuid.Parse(q.PurchaseOrderID)
	if err != nil {
		return nil, fmt.Errorf("parse purchase order id: %w", err)
	}

	po, err := h.repo.GetPurchaseOrderByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrPurchaseOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return po, nil
}

type GetPurchaseOrdersHandler struct {
	repo repository.PurchaseOrderRepository
}

func NewGetPurchaseOrdersHandler(repo repository.PurchaseOrderRepository) *GetPurchaseOrdersHandler {
	return &GetPurchaseOrdersHandler{repo: repo}
}

func (h *GetPurchaseOrdersHandler) Handle(ctx context.Context, msg mediator.Message) (any, error) {
	q, ok := msg.(GetPurchaseOrders)
	if !ok {
		return nil, fmt.Errorf("unexpected message type %T for %s", msg, GetPurchaseOrdersName)
	}

	customerID, err := uuid.Parse(q.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("parse customer id: %w", err)
	}

	orders, err := h.repo.GetPurchaseOrdersByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*domain.PurchaseOrder{}
	}
	return orders, nil
}

type GetPurchaseOrderItemHandler struct {
	repo repository.PurchaseOrderRepository
}

func NewGetPurchaseOrderItemHandler(repo repository.PurchaseOrderRepository) *GetPurchaseOrderItemHandler {
	return &GetPurchaseOrderItemHandler{repo: repo}
}

func (h *GetPurchaseOrderItemHandler) Handle(ctx context.Context, msg mediator.Message) (any, error) {
	q, ok := msg.(GetPurchaseOrderItem)
	if !ok {
		return nil, fmt.Errorf("unexpected message type %T for %s", msg, GetPurchaseOrderItemName)
	}

	id, err := uuid.Parse(q.PurchaseOrderItemID)
	if err != nil {
		return nil, fmt.Errorf("parse purchase order item id: %w", err)
	}

	item, err := h.repo.GetPurchaseOrderItemByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrPurchaseOrderItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

type GetVoucherHandler struct {
	repo repository.PurchaseOrderRepository
}

func NewGetVoucherHandler(repo repository.PurchaseOrderRepository) *GetVoucherHandler {
	return &GetVoucherHandler{repo: repo}
}

func (h *GetVoucherHandler) Handle(ctx context.Context, msg mediator.Message) (any, error) {
	q, ok := msg.(GetVoucher)
	if !ok {
		return nil, fmt.Errorf("unexpected message type %T for %s", msg, GetVoucherName)
	}

	voucher, err := h.repo.GetVoucherByCode(ctx, q.VoucherCode)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.ErrVoucherNotFound
	}
	if err != nil {
		return nil, err
	}
	return voucher, nil
}
