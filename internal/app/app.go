// Package app assembles the order core: it binds every command and query
// handler to the bus exactly once. A registration failure here is a wiring
// defect and must abort startup.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/hdev14/store/internal/command"
	"github.com/hdev14/store/internal/event"
	"github.com/hdev14/store/internal/mediator"
	"github.com/hdev14/store/internal/query"
	"github.com/hdev14/store/internal/queue"
	"github.com/hdev14/store/internal/repository"
)

// App exposes the wired buses. Transports dispatch through Bus; Events is
// the in-process fan-out deployments hang their subscribers on.
type App struct {
	Bus    *mediator.Mediator
	Events *mediator.EventMediator
}

func New(repo repository.PurchaseOrderRepository, q queue.EventQueue) (*App, error) {
	events := mediator.NewEventMediator()
	bus := mediator.New()

	registrations := map[string]mediator.Handler{
		command.AddPurchaseOrderItemName:            command.NewAddPurchaseOrderItemHandler(repo, q, events),
		command.RemovePurchaseOrderItemName:         command.NewRemovePurchaseOrderItemHandler(repo),
		command.ApplyVoucherName:                    command.NewApplyVoucherHandler(repo),
		command.UpdatePurchaseOrderItemQuantityName: command.NewUpdatePurchaseOrderItemQuantityHandler(repo),
		command.StartPurchaseOrderName:              command.NewStartPurchaseOrderHandler(repo, q),
		query.GetPurchaseOrderName:                  query.NewGetPurchaseOrderHandler(repo),
		query.GetPurchaseOrdersName:                 query.NewGetPurchaseOrdersHandler(repo),
		query.GetPurchaseOrderItemName:              query.NewGetPurchaseOrderItemHandler(repo),
		query.GetVoucherName:                        query.NewGetVoucherHandler(repo),
	}

	for name, handler := range registrations {
		if err := bus.Register(name, handler); err != nil {
			return nil, fmt.Errorf("register handler %s: %w", name, err)
		}
	}

	return &App{Bus: bus, Events: events}, nil
}

// LogStockAdjustment is the in-process subscriber for added items. A payload
// of an unexpected type is logged and skipped so one bad broadcast cannot
// take down the whole dispatch.
func LogStockAdjustment(_ context.Context, msg mediator.Message) error {
	added, ok := msg.(event.PurchaseOrderItemAdded)
	if !ok {
		log.Printf("Skipping stock adjustment: unexpected payload %T for %s", msg, msg.Name())
		return nil
	}
	log.Printf("stock adjustment requested for product %s (quantity %d)", added.ProductID, added.Quantity)
	return nil
}
