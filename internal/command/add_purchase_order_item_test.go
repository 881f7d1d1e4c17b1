package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdev14/store/internal/domain"
	"github.com/hdev14/store/internal/event"
	"github.com/hdev14/store/internal/mediator"
	"github.com/hdev14/store/internal/repository"
)

func addItemCommand(customerID, productID uuid.UUID, quantity int) AddPurchaseOrderItem {
	return AddPurchaseOrderItem{
		CustomerID:    customerID.String(),
		ProductID:     productID.String(),
		ProductName:   "mechanical keyboard",
		ProductAmount: 10,
		Quantity:      quantity,
	}
}

func TestAddItem_NoDraft_CreatesDraftOrderWithItem(t *testing.T) {
	repo := &MockRepository{DraftErr: repository.ErrNotFound, OrderCount: 41}
	q := &MockQueue{}
	sut := NewAddPurchaseOrderItemHandler(repo, q, nil)

	customerID := uuid.New()
	res, err := sut.Handle(context.Background(), addItemCommand(customerID, uuid.New(), 2))

	require.NoError(t, err)
	assert.Equal(t, true, res)

	created := repo.CapturedAddedOrder
	require.NotNil(t, created)
	assert.Equal(t, customerID, created.CustomerID)
	assert.Equal(t, int64(42), created.Code)
	assert.Equal(t, domain.PurchaseOrderStatusDraft, created.Status)
	assert.Len(t, created.Items, 1)
	assert.Equal(t, 20.0, created.TotalAmount)

	require.NotNil(t, repo.CapturedAddedItem)
	assert.Equal(t, created.ID, repo.CapturedAddedItem.PurchaseOrderID)

	require.Len(t, q.Enqueued, 2)
	assert.Equal(t, event.PurchaseOrderCreatedName, q.Enqueued[0].Name())
	assert.Equal(t, event.PurchaseOrderItemAddedName, q.Enqueued[1].Name())
}

func TestAddItem_DraftExists_NewProduct_AppendsItem(t *testing.T) {
	draft := domain.NewDraftPurchaseOrder(uuid.New(), 1, time.Now())
	draft.AddItem(domain.NewPurchaseOrderItem(domain.Product{ID: uuid.New(), Name: "mouse", Amount: 5}, 1))

	repo := &MockRepository{Draft: draft}
	q := &MockQueue{}
	sut := NewAddPurchaseOrderItemHandler(repo, q, nil)

	_, err := sut.Handle(context.Background(), addItemCommand(draft.CustomerID, uuid.New(), 2))

	require.NoError(t, err)
	assert.Len(t, draft.Items, 2)
	assert.Equal(t, 25.0, draft.TotalAmount)

	require.NotNil(t, repo.CapturedAddedItem)
	assert.Nil(t, repo.CapturedUpdatedItem)
	require.NotNil(t, repo.CapturedUpdatedOrder)

	require.Len(t, q.Enqueued, 2)
	assert.Equal(t, event.PurchaseOrderItemAddedName, q.Enqueued[0].Name())
	assert.Equal(t, event.PurchaseOrderUpdatedName, q.Enqueued[1].Name())
}

func TestAddItem_DraftExists_SameProduct_MergesQuantities(t *testing.T) {
	productID := uuid.New()
	draft := domain.NewDraftPurchaseOrder(uuid.New(), 1, time.Now())
	draft.AddItem(domain.NewPurchaseOrderItem(domain.Product{ID: productID, Name: "mechanical keyboard", Amount: 10}, 2))

	repo := &MockRepository{Draft: draft}
	q := &MockQueue{}
	sut := NewAddPurchaseOrderItemHandler(repo, q, nil)

	_, err := sut.Handle(context.Background(), addItemCommand(draft.CustomerID, productID, 3))

	require.NoError(t, err)
	assert.Len(t, draft.Items, 1)
	assert.Equal(t, 5, draft.Items[0].Quantity)
	assert.Equal(t, 50.0, draft.TotalAmount)

	assert.Nil(t, repo.CapturedAddedItem)
	require.NotNil(t, repo.CapturedUpdatedItem)
	assert.Equal(t, 5, repo.CapturedUpdatedItem.Quantity)

	require.Len(t, q.Enqueued, 2)
	assert.Equal(t, event.PurchaseOrderItemUpdatedName, q.Enqueued[0].Name())
	assert.Equal(t, event.PurchaseOrderUpdatedName, q.Enqueued[1].Name())
}

func TestAddItem_EnqueueFailure_IsSwallowed(t *testing.T) {
	repo := &MockRepository{DraftErr: repository.ErrNotFound}
	q := &MockQueue{Err: errors.New("broker unreachable")}
	sut := NewAddPurchaseOrderItemHandler(repo, q, nil)

	res, err := sut.Handle(context.Background(), addItemCommand(uuid.New(), uuid.New(), 1))

	require.NoError(t, err)
	assert.Equal(t, true, res)
	assert.NotNil(t, repo.CapturedAddedOrder, "order must be persisted even when enqueue fails")
}

func TestAddItem_RepositoryFailure_Propagates(t *testing.T) {
	repo := &MockRepository{
		DraftErr:    repository.ErrNotFound,
		AddOrderErr: &repository.Error{Repository: "PurchaseOrderRepository", Err: errors.New("connection reset")},
	}
	sut := NewAddPurchaseOrderItemHandler(repo, &MockQueue{}, nil)

	_, err := sut.Handle(context.Background(), addItemCommand(uuid.New(), uuid.New(), 1))

	var repoErr *repository.Error
	require.ErrorAs(t, err, &repoErr)
}

func TestAddItem_BroadcastsItemEventToSubscribers(t *testing.T) {
	repo := &MockRepository{DraftErr: repository.ErrNotFound}
	events := mediator.NewEventMediator()

	received := make(chan mediator.Message, 1)
	events.Register(event.PurchaseOrderItemAddedName, func(_ context.Context, msg mediator.Message) error {
		received <- msg
		return nil
	})

	sut := NewAddPurchaseOrderItemHandler(repo, &MockQueue{}, events)
	_, err := sut.Handle(context.Background(), addItemCommand(uuid.New(), uuid.New(), 4))
	require.NoError(t, err)

	select {
	case msg := <-received:
		added, ok := msg.(event.PurchaseOrderItemAdded)
		require.True(t, ok)
		assert.Equal(t, 4, added.Quantity)
	default:
		t.Fatal("subscriber was not invoked")
	}
}
