// Package consumer holds the asynchronous workers that react to the domain
// events the order core enqueues. They are the out-of-process end of the
// fire-and-forget side channel, so they must tolerate at-least-once
// redelivery.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/hdev14/store/internal/domain"
	"github.com/hdev14/store/internal/event"
	"github.com/hdev14/store/internal/repository"
)

// ChargeConsumer captures payment for started orders. The real gateway call
// is out of scope here; the consumer's contract is marking the order PAID
// once the charge request has been handled.
type ChargeConsumer struct {
	repo   repository.PurchaseOrderRepository
	reader *kafka.Reader
}

func NewChargeConsumer(repo repository.PurchaseOrderRepository, brokers ...string) *ChargeConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    event.ChargePurchaseOrderName,
		GroupID:  "payment-worker",
		MaxBytes: 10e6, // 10MB
	})
	return &ChargeConsumer{repo: repo, reader: reader}
}

func (c *ChargeConsumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.consumeMessage(ctx)
	}
}

func (c *ChargeConsumer) Close() {
	if err := c.reader.Close(); err != nil {
		log.Printf("error closing kafka reader: %v", err)
	}
}

func (c *ChargeConsumer) consumeMessage(ctx context.Context) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Printf("error reading message: %v", err)
		return
	}

	if err := c.processCharge(ctx, m.Value); err != nil {
		log.Printf("error processing charge: %v", err)
	}
}

// processCharge marks the order as paid. Redelivered charges for an order
// that already left STARTED are skipped, which keeps the consumer idempotent.
func (c *ChargeConsumer) processCharge(ctx context.Context, payload []byte) error {
	var charge event.ChargePurchaseOrder
	if err := json.Unmarshal(payload, &charge); err != nil {
		return fmt.Errorf("parse charge payload: %w", err)
	}

	orderID, err := uuid.Parse(charge.PurchaseOrderID)
	if err != nil {
		return fmt.Errorf("parse purchase order id: %w", err)
	}

	po, err := c.repo.GetPurchaseOrderByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("load purchase order %s: %w", orderID, err)
	}

	if po.Status != domain.PurchaseOrderStatusStarted {
		log.Printf("skipping charge for order %s in status %s", orderID, po.Status)
		return nil
	}

	po.Finish()
	if err := c.repo.UpdatePurchaseOrder(ctx, po); err != nil {
		return fmt.Errorf("mark purchase order %s as paid: %w", orderID, err)
	}

	log.Printf("purchase order %s paid (code %d, %.2f in %d installments)",
		orderID, charge.Code, charge.TotalAmount, charge.Installments)
	return nil
}
