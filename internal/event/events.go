// Package event defines the domain events published by the order command
// handlers. Each event's name is used both as the fan-out subscription key
// and as the queue job/topic name; its struct is the serialized payload.
package event

import "time"

const (
	PurchaseOrderCreatedName     = "purchase_order_created"
	PurchaseOrderUpdatedName     = "purchase_order_updated"
	PurchaseOrderItemAddedName   = "purchase_order_item_added"
	PurchaseOrderItemUpdatedName = "purchase_order_item_updated"
	ChargePurchaseOrderName      = "charge_purchase_order"
)

type PurchaseOrderCreated struct {
	PurchaseOrderID string    `json:"purchase_order_id"`
	CustomerID      string    `json:"customer_id"`
	Code            int64     `json:"code"`
	TotalAmount     float64   `json:"total_amount"`
	DiscountAmount  float64   `json:"discount_amount"`
	CreatedAt       time.Time `json:"created_at"`
}

func (PurchaseOrderCreated) Name() string { return PurchaseOrderCreatedName }

type PurchaseOrderUpdated struct {
	PurchaseOrderID string  `json:"purchase_order_id"`
	CustomerID      string  `json:"customer_id"`
	Code            int64   `json:"code"`
	TotalAmount     float64 `json:"total_amount"`
	DiscountAmount  float64 `json:"discount_amount"`
}

func (PurchaseOrderUpdated) Name() string { return PurchaseOrderUpdatedName }

type PurchaseOrderItemAdded struct {
	ItemID          string  `json:"item_id"`
	PurchaseOrderID string  `json:"purchase_order_id"`
	ProductID       string  `json:"product_id"`
	ProductName     string  `json:"product_name"`
	ProductAmount   float64 `json:"product_amount"`
	Quantity        int     `json:"quantity"`
}

func (PurchaseOrderItemAdded) Name() string { return PurchaseOrderItemAddedName }

type PurchaseOrderItemUpdated struct {
	ItemID        string  `json:"item_id"`
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	ProductAmount float64 `json:"product_amount"`
	Quantity      int     `json:"quantity"`
}

func (PurchaseOrderItemUpdated) Name() string { return PurchaseOrderItemUpdatedName }

type ChargeLineItem struct {
	ItemID    string  `json:"item_id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Amount    float64 `json:"amount"`
}

type ChargePurchaseOrder struct {
	PurchaseOrderID string           `json:"purchase_order_id"`
	CustomerID      string           `json:"customer_id"`
	Code            int64            `json:"code"`
	TotalAmount     float64          `json:"total_amount"`
	CardToken       string           `json:"card_token"`
	Installments    int              `json:"installments"`
	Items           []ChargeLineItem `json:"items"`
}

func (ChargePurchaseOrder) Name() string { return ChargePurchaseOrderName }
