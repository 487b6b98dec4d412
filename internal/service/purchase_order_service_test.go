package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/events"
	apperrors "github.com/spec-kit/inventory-service/pkg/util"
)

// MockSupplierRepository is a mock implementation of SupplierRepository.
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Update(ctx context.Context, supplier *domain.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) GetByID(ctx context.Context, id string) (*domain.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) List(ctx context.Context, activeOnly bool) ([]domain.Supplier, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPurchaseOrderRepository is a mock implementation of PurchaseOrderRepository.
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) Create(ctx context.Context, order *domain.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) GetByID(ctx context.Context, id string) (*domain.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) List(ctx context.Context, status *domain.PurchaseOrderStatus, limit, offset int) ([]domain.PurchaseOrder, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.PurchaseOrderStatus, approvedBy *string) error {
	args := m.Called(ctx, id, status, approvedBy)
	return args.Error(0)
}

func newOrderService(orders *MockPurchaseOrderRepository, suppliers *MockSupplierRepository,
	products *MockProductRepository, stock *MockStockRepository, dispatcher events.Dispatcher) *PurchaseOrderService {
	stockService := NewStockService(stock, products, dispatcher, zap.NewNop())
	return NewPurchaseOrderService(PurchaseOrderDependencies{
		OrderRepo:    orders,
		SupplierRepo: suppliers,
		ProductRepo:  products,
		Stock:        stockService,
		Dispatcher:   dispatcher,
	}, zap.NewNop())
}

func draftOrder(id string, status domain.PurchaseOrderStatus) *domain.PurchaseOrder {
	return &domain.PurchaseOrder{
		ID:         id,
		Number:     "PO-TEST1234",
		SupplierID: "s-1",
		Status:     status,
		CreatedBy:  "user-1",
		Lines: []domain.PurchaseOrderLine{
			{ID: "l-1", OrderID: id, ProductID: "p-1", Quantity: 4, UnitCost: 2.5},
		},
	}
}

func TestPurchaseOrderCreate(t *testing.T) {
	orders := new(MockPurchaseOrderRepository)
	suppliers := new(MockSupplierRepository)
	products := new(MockProductRepository)
	stock := new(MockStockRepository)

	suppliers.On("GetByID", mock.Anything, "s-1").Return(&domain.Supplier{ID: "s-1", Active: true}, nil)
	products.On("GetByID", mock.Anything, "p-1").Return(product("p-1"), nil)
	orders.On("Create", mock.Anything, mock.MatchedBy(func(po *domain.PurchaseOrder) bool {
		return po.Status == domain.PurchaseOrderDraft && po.SupplierID == "s-1" && po.Number != ""
	})).Return(nil)

	svc := newOrderService(orders, suppliers, products, stock, events.NewInMemoryDispatcher())
	order, err := svc.Create(context.Background(), "s-1", "user-1", "restock",
		[]domain.PurchaseOrderLine{{ProductID: "p-1", Quantity: 4, UnitCost: 2.5}})

	assert.NoError(t, err)
	assert.Equal(t, domain.PurchaseOrderDraft, order.Status)
	orders.AssertExpectations(t)
}

func TestPurchaseOrderCreateInactiveSupplier(t *testing.T) {
	orders := new(MockPurchaseOrderRepository)
	suppliers := new(MockSupplierRepository)
	products := new(MockProductRepository)
	stock := new(MockStockRepository)
	suppliers.On("GetByID", mock.Anything, "s-1").Return(&domain.Supplier{ID: "s-1", Active: false}, nil)

	svc := newOrderService(orders, suppliers, products, stock, events.NewInMemoryDispatcher())
	_, err := svc.Create(context.Background(), "s-1", "user-1", "",
		[]domain.PurchaseOrderLine{{ProductID: "p-1", Quantity: 1}})

	var de *apperrors.DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPurchaseOrderLifecycleTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.PurchaseOrderStatus
		action  string
		wantErr bool
	}{
		{"draft submits", domain.PurchaseOrderDraft, "submit", false},
		{"draft cannot be approved", domain.PurchaseOrderDraft, "approve", true},
		{"submitted approves", domain.PurchaseOrderSubmitted, "approve", false},
		{"submitted cannot be received", domain.PurchaseOrderSubmitted, "receive", true},
		{"received is terminal", domain.PurchaseOrderReceived, "cancel", true},
		{"cancelled is terminal", domain.PurchaseOrderCancelled, "submit", true},
		{"draft cancels", domain.PurchaseOrderDraft, "cancel", false},
		{"approved cancels", domain.PurchaseOrderApproved, "cancel", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(MockPurchaseOrderRepository)
			suppliers := new(MockSupplierRepository)
			products := new(MockProductRepository)
			stock := new(MockStockRepository)

			orders.On("GetByID", mock.Anything, "o-1").Return(draftOrder("o-1", tt.from), nil)
			orders.On("UpdateStatus", mock.Anything, "o-1", mock.Anything, mock.Anything).Return(nil)

			svc := newOrderService(orders, suppliers, products, stock, events.NewInMemoryDispatcher())

			var err error
			switch tt.action {
			case "submit":
				_, err = svc.Submit(context.Background(), "o-1", "user-1")
			case "approve":
				_, err = svc.Approve(context.Background(), "o-1", "user-1")
			case "receive":
				_, err = svc.Receive(context.Background(), "o-1", "user-1")
			case "cancel":
				_, err = svc.Cancel(context.Background(), "o-1", "user-1")
			}

			if tt.wantErr {
				var de *apperrors.DomainError
				assert.ErrorAs(t, err, &de)
				assert.Equal(t, "CONFLICT", de.Code)
				orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPurchaseOrderApproveRecordsApprover(t *testing.T) {
	orders := new(MockPurchaseOrderRepository)
	suppliers := new(MockSupplierRepository)
	products := new(MockProductRepository)
	stock := new(MockStockRepository)
	rec := newEventRecorder(events.EventPurchaseOrderStatus)

	orders.On("GetByID", mock.Anything, "o-1").Return(draftOrder("o-1", domain.PurchaseOrderSubmitted), nil)
	orders.On("UpdateStatus", mock.Anything, "o-1", domain.PurchaseOrderApproved, mock.MatchedBy(func(by *string) bool {
		return by != nil && *by == "admin-1"
	})).Return(nil)

	svc := newOrderService(orders, suppliers, products, stock, rec.dispatcher)
	order, err := svc.Approve(context.Background(), "o-1", "admin-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.PurchaseOrderApproved, order.Status)
	assert.NotNil(t, order.ApprovedBy)
	assert.Equal(t, "admin-1", *order.ApprovedBy)
	assert.Len(t, rec.seen, 1)
}

func TestPurchaseOrderReceiveAppliesStock(t *testing.T) {
	orders := new(MockPurchaseOrderRepository)
	suppliers := new(MockSupplierRepository)
	products := new(MockProductRepository)
	stock := new(MockStockRepository)

	orders.On("GetByID", mock.Anything, "o-1").Return(draftOrder("o-1", domain.PurchaseOrderApproved), nil)
	orders.On("UpdateStatus", mock.Anything, "o-1", domain.PurchaseOrderReceived, mock.Anything).Return(nil)
	products.On("GetByID", mock.Anything, "p-1").Return(product("p-1"), nil)
	stock.On("ApplyMovement", mock.Anything, mock.MatchedBy(func(mv *domain.StockMovement) bool {
		return mv.ProductID == "p-1" && mv.Delta == 4 &&
			mv.Reason == domain.MovementOrderReceived && mv.Reference == "PO-TEST1234"
	})).Return(&domain.StockLevel{ProductID: "p-1", Quantity: 4}, nil)

	svc := newOrderService(orders, suppliers, products, stock, events.NewInMemoryDispatcher())
	order, err := svc.Receive(context.Background(), "o-1", "user-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.PurchaseOrderReceived, order.Status)
	stock.AssertExpectations(t)
}

func TestPurchaseOrderGetNotFound(t *testing.T) {
	orders := new(MockPurchaseOrderRepository)
	suppliers := new(MockSupplierRepository)
	products := new(MockProductRepository)
	stock := new(MockStockRepository)
	orders.On("GetByID", mock.Anything, "ghost").Return(nil, pgx.ErrNoRows)

	svc := newOrderService(orders, suppliers, products, stock, events.NewInMemoryDispatcher())
	_, err := svc.Get(context.Background(), "ghost")

	var de *apperrors.DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, "NOT_FOUND", de.Code)
}
