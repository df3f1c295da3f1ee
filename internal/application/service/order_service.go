package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/domain/entity"
	"github.com/stitchline/tailorflow-api/internal/domain/enum"
	"github.com/stitchline/tailorflow-api/internal/domain/repository"
	"github.com/stitchline/tailorflow-api/pkg/apperror"
	"github.com/stitchline/tailorflow-api/pkg/notify"
	"github.com/stitchline/tailorflow-api/pkg/pagination"
	"go.uber.org/zap"
)

// OrderService owns the order ledger: order creation with atomic stock
// reservation, the status lifecycle, and the events both emit.
type OrderService struct {
	tx            repository.TxManager
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	inventoryRepo repository.InventoryRepository
	customerRepo  repository.CustomerRepository
	userRepo      repository.UserRepository
	taskRepo      repository.TaskRepository
	sequences     *SequenceService
	dispatcher    notify.Dispatcher
	log           *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	tx repository.TxManager,
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	inventoryRepo repository.InventoryRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
	taskRepo repository.TaskRepository,
	sequences *SequenceService,
	dispatcher notify.Dispatcher,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		tx:            tx,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		inventoryRepo: inventoryRepo,
		customerRepo:  customerRepo,
		userRepo:      userRepo,
		taskRepo:      taskRepo,
		sequences:     sequences,
		dispatcher:    dispatcher,
		log:           log,
	}
}

// OrderItemInput represents a line item in a new order
type OrderItemInput struct {
	ItemName        string
	InventoryItemID *uuid.UUID
	Quantity        int
	UnitPrice       float64
}

// PlaceOrderInput represents the order creation input
type PlaceOrderInput struct {
	UserID       uuid.UUID
	CustomerID   uuid.UUID
	Description  string
	Notes        *string
	DeliveryDate *time.Time
	Items        []OrderItemInput
}

// PlaceOrder creates an order with its line items and atomically consumes
// inventory stock. The whole operation is all-or-nothing: if any line item
// cannot be reserved, no order row and no stock decrement persists. Emits an
// order-created event to the customer's owning user after commit.
func (s *OrderService) PlaceOrder(ctx context.Context, input *PlaceOrderInput) (*entity.Order, error) {
	if err := validatePlaceOrder(input); err != nil {
		return nil, err
	}

	var (
		orderID     uuid.UUID
		orderNumber string
		ownerID     uuid.UUID
	)

	err := runWithRetry(ctx, s.tx, func(ctx context.Context) error {
		customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}
		ownerID = customer.UserID

		number, err := s.sequences.NextOrderNumber(ctx)
		if err != nil {
			return err
		}

		items := make([]entity.OrderItem, 0, len(input.Items))
		var total int64
		for _, in := range input.Items {
			unitPrice := int64(math.Round(in.UnitPrice * 100))
			subtotal := unitPrice * int64(in.Quantity)
			total += subtotal
			items = append(items, entity.OrderItem{
				InventoryItemID: in.InventoryItemID,
				ItemName:        in.ItemName,
				Quantity:        in.Quantity,
				UnitPrice:       unitPrice,
				Subtotal:        subtotal,
			})
		}

		order := &entity.Order{
			OrderNumber:     number,
			CustomerID:      input.CustomerID,
			UserID:          input.UserID,
			Description:     input.Description,
			Notes:           input.Notes,
			DeliveryDate:    input.DeliveryDate,
			TotalAmount:     total,
			RemainingAmount: total,
			Status:          enum.OrderStatusPending,
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := s.orderItemRepo.CreateBatch(ctx, items); err != nil {
			return err
		}

		if err := s.reserveStock(ctx, items); err != nil {
			return err
		}

		// Re-derive the total from the committed line items rather than
		// trusting the figures computed from client input.
		committedTotal, err := s.orderRepo.SumItemSubtotals(ctx, order.ID)
		if err != nil {
			return err
		}
		if committedTotal != order.TotalAmount {
			order.TotalAmount = committedTotal
			order.RemainingAmount = committedTotal
			if err := s.orderRepo.Update(ctx, order); err != nil {
				return err
			}
		}

		orderID = order.ID
		orderNumber = order.OrderNumber
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.Enqueue(ctx, notify.Event{
		Type:            notify.EventOrderCreated,
		TargetUserID:    ownerID,
		Message:         fmt.Sprintf("Order %s has been created", orderNumber),
		RelatedEntityID: orderID,
	})

	return s.orderRepo.GetWithDetails(ctx, orderID)
}

func validatePlaceOrder(input *PlaceOrderInput) error {
	if input.Description == "" {
		return apperror.NewValidationError("Order description is required")
	}
	if len(input.Items) == 0 {
		return apperror.NewValidationError("Order must have at least one item")
	}
	for _, item := range input.Items {
		if item.ItemName == "" {
			return apperror.NewValidationError("Item name is required")
		}
		if item.Quantity <= 0 {
			return apperror.NewValidationError(fmt.Sprintf("Item %s must have a positive quantity", item.ItemName))
		}
		if item.UnitPrice < 0 {
			return apperror.NewValidationError(fmt.Sprintf("Item %s cannot have a negative price", item.ItemName))
		}
	}
	return nil
}

// reserveStock decrements inventory for every stock-linked line item inside
// the caller's transaction. Rows are locked in a stable order to avoid
// deadlocks between concurrent orders. Custom (non-stocked) items are
// skipped. Any failure aborts the transaction, rolling back every decrement
// already applied in this call.
func (s *OrderService) reserveStock(ctx context.Context, items []entity.OrderItem) error {
	required := make(map[uuid.UUID]int)
	names := make(map[uuid.UUID]string)
	for _, item := range items {
		if item.InventoryItemID == nil {
			continue
		}
		required[*item.InventoryItemID] += item.Quantity
		names[*item.InventoryItemID] = item.ItemName
	}
	if len(required) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(required))
	for id := range required {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	for _, id := range ids {
		quantity := required[id]

		stock, err := s.inventoryRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if stock == nil {
			return apperror.NewNotFoundError(fmt.Sprintf("Inventory item for %s", names[id]))
		}
		if stock.Status == enum.InventoryStatusDiscontinued {
			return apperror.NewValidationError(fmt.Sprintf("%s has been discontinued", stock.Name))
		}

		ok, err := s.inventoryRepo.DecrementQuantity(ctx, id, quantity)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewInsufficientStockError(stock.Name, quantity, stock.Quantity)
		}

		// Threshold breach alone does not flip status; only exhaustion does.
		if stock.Quantity-quantity <= 0 {
			if err := s.inventoryRepo.UpdateStatus(ctx, id, enum.InventoryStatusOutOfStock); err != nil {
				return err
			}
		}
	}
	return nil
}

// restoreStock returns reserved quantities to inventory when an order is
// cancelled, flipping exhausted items back to available.
func (s *OrderService) restoreStock(ctx context.Context, orderID uuid.UUID) error {
	items, err := s.orderItemRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	for _, item := range items {
		if item.InventoryItemID == nil {
			continue
		}
		id := *item.InventoryItemID

		stock, err := s.inventoryRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if stock == nil {
			continue
		}

		if err := s.inventoryRepo.IncrementQuantity(ctx, id, item.Quantity); err != nil {
			return err
		}
		if stock.Status == enum.InventoryStatusOutOfStock && stock.Quantity+item.Quantity > 0 {
			if err := s.inventoryRepo.UpdateStatus(ctx, id, enum.InventoryStatusAvailable); err != nil {
				return err
			}
		}
	}
	return nil
}

// TransitionInput represents a status transition request
type TransitionInput struct {
	OrderID   uuid.UUID
	NewStatus enum.OrderStatus
	// AssignTo optionally pairs entering in-progress with a staff task.
	AssignTo  *uuid.UUID
	TaskTitle string
	DueDate   *time.Time
}

// TransitionStatus moves an order through its lifecycle. Disallowed moves
// are rejected with an invalid-transition error instead of being applied.
// Entering in-progress stamps the start time and optionally assigns a staff
// task; entering completed stamps the completion time; entering cancelled
// restores reserved stock. Emits status-changed (and task-assigned) events
// after commit.
func (s *OrderService) TransitionStatus(ctx context.Context, input *TransitionInput) (*entity.Order, error) {
	if !input.NewStatus.IsValid() {
		return nil, apperror.NewValidationError("Unknown order status")
	}

	var events []notify.Event

	err := runWithRetry(ctx, s.tx, func(ctx context.Context) error {
		events = events[:0]

		order, err := s.orderRepo.GetByIDForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		from := order.Status
		if !from.CanTransitionTo(input.NewStatus) {
			return apperror.NewInvalidTransitionError(from, input.NewStatus)
		}

		now := time.Now()
		switch input.NewStatus {
		case enum.OrderStatusInProgress:
			order.StartedAt = &now
			if input.AssignTo != nil {
				task, err := s.assignTask(ctx, order, input, now)
				if err != nil {
					return err
				}
				events = append(events, notify.Event{
					Type:            notify.EventTaskAssigned,
					TargetUserID:    *input.AssignTo,
					Message:         fmt.Sprintf("You have been assigned to order %s", order.OrderNumber),
					RelatedEntityID: task.ID,
				})
			}
		case enum.OrderStatusCompleted:
			order.CompletedAt = &now
		case enum.OrderStatusCancelled:
			if err := s.restoreStock(ctx, order.ID); err != nil {
				return err
			}
		}

		order.Status = input.NewStatus
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}

		customer, err := s.customerRepo.GetByID(ctx, order.CustomerID)
		if err != nil {
			return err
		}
		if customer != nil {
			events = append(events, notify.Event{
				Type:            notify.EventStatusChanged,
				TargetUserID:    customer.UserID,
				Message:         fmt.Sprintf("Order %s is now %s", order.OrderNumber, input.NewStatus),
				RelatedEntityID: order.ID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		s.dispatcher.Enqueue(ctx, event)
	}

	return s.orderRepo.GetWithDetails(ctx, input.OrderID)
}

func (s *OrderService) assignTask(ctx context.Context, order *entity.Order, input *TransitionInput, now time.Time) (*entity.StaffTask, error) {
	assignee, err := s.userRepo.GetByID(ctx, *input.AssignTo)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, apperror.NewNotFoundError("Assignee")
	}

	title := input.TaskTitle
	if title == "" {
		title = fmt.Sprintf("Work on order %s", order.OrderNumber)
	}
	dueDate := input.DueDate
	if dueDate == nil {
		dueDate = order.DeliveryDate
	}

	task := &entity.StaffTask{
		OrderID:    order.ID,
		AssignedTo: *input.AssignTo,
		Title:      title,
		Status:     enum.TaskStatusOpen,
		DueDate:    dueDate,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// CancelOrder cancels an order, restoring any reserved stock
func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	return s.TransitionStatus(ctx, &TransitionInput{
		OrderID:   orderID,
		NewStatus: enum.OrderStatusCancelled,
	})
}

// RescheduleDelivery updates the delivery date of an active order and emits
// a delivery-scheduled event
func (s *OrderService) RescheduleDelivery(ctx context.Context, orderID uuid.UUID, deliveryDate time.Time) (*entity.Order, error) {
	var (
		orderNumber string
		ownerID     uuid.UUID
	)

	err := runWithRetry(ctx, s.tx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if order.Status.IsTerminal() {
			return apperror.NewValidationError(fmt.Sprintf("Cannot reschedule a %s order", order.Status))
		}

		order.DeliveryDate = &deliveryDate
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}
		orderNumber = order.OrderNumber

		customer, err := s.customerRepo.GetByID(ctx, order.CustomerID)
		if err != nil {
			return err
		}
		if customer != nil {
			ownerID = customer.UserID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.Enqueue(ctx, notify.Event{
		Type:            notify.EventDeliveryScheduled,
		TargetUserID:    ownerID,
		Message:         fmt.Sprintf("Order %s delivery scheduled for %s", orderNumber, deliveryDate.Format("2006-01-02")),
		RelatedEntityID: orderID,
	})

	return s.orderRepo.GetWithDetails(ctx, orderID)
}

// GetOrder retrieves an order with its items and payments
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}
