package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/domain/entity"
	"github.com/stitchline/tailorflow-api/internal/domain/enum"
	"github.com/stitchline/tailorflow-api/internal/domain/repository"
	"github.com/stitchline/tailorflow-api/pkg/apperror"
	"github.com/stitchline/tailorflow-api/pkg/notify"
	"github.com/stitchline/tailorflow-api/pkg/pagination"
)

// memStore is an in-memory stand-in for the database. Entities are stored by
// value so reads hand out copies; a mutation only persists once written back
// through a repository method, mirroring how the real store behaves.
type memStore struct {
	mu        sync.Mutex
	orders    map[uuid.UUID]entity.Order
	items     map[uuid.UUID][]entity.OrderItem
	payments  map[uuid.UUID]entity.Payment
	inventory map[uuid.UUID]entity.InventoryItem
	customers map[uuid.UUID]entity.Customer
	users     map[uuid.UUID]entity.User
	tasks     map[uuid.UUID]entity.StaffTask
	counters  map[string]int64
}

func newMemStore() *memStore {
	return &memStore{
		orders:    make(map[uuid.UUID]entity.Order),
		items:     make(map[uuid.UUID][]entity.OrderItem),
		payments:  make(map[uuid.UUID]entity.Payment),
		inventory: make(map[uuid.UUID]entity.InventoryItem),
		customers: make(map[uuid.UUID]entity.Customer),
		users:     make(map[uuid.UUID]entity.User),
		tasks:     make(map[uuid.UUID]entity.StaffTask),
		counters:  make(map[string]int64),
	}
}

func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	for k, v := range s.orders {
		snap.orders[k] = v
	}
	for k, v := range s.items {
		items := make([]entity.OrderItem, len(v))
		copy(items, v)
		snap.items[k] = items
	}
	for k, v := range s.payments {
		snap.payments[k] = v
	}
	for k, v := range s.inventory {
		snap.inventory[k] = v
	}
	for k, v := range s.customers {
		snap.customers[k] = v
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.tasks {
		snap.tasks[k] = v
	}
	for k, v := range s.counters {
		snap.counters[k] = v
	}
	return snap
}

func (s *memStore) restore(snap *memStore) {
	s.orders = snap.orders
	s.items = snap.items
	s.payments = snap.payments
	s.inventory = snap.inventory
	s.customers = snap.customers
	s.users = snap.users
	s.tasks = snap.tasks
	s.counters = snap.counters
}

// memTxManager rolls the store back to a snapshot when fn fails, mirroring
// transactional all-or-nothing semantics.
type memTxManager struct {
	store *memStore
}

func (m *memTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	snap := m.store.snapshot()
	if err := fn(ctx); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

// flakyTxManager fails the first n attempts with a concurrency conflict, then
// delegates.
type flakyTxManager struct {
	inner    repository.TxManager
	failures int
	attempts int
}

func (m *flakyTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.attempts++
	if m.attempts <= m.failures {
		return apperror.NewConcurrencyConflictError("could not obtain lock")
	}
	return m.inner.Do(ctx, fn)
}

// recordingDispatcher collects emitted events
type recordingDispatcher struct {
	mu     sync.Mutex
	events []notify.Event
}

func (d *recordingDispatcher) Enqueue(ctx context.Context, event notify.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) byType(t notify.EventType) []notify.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []notify.Event
	for _, e := range d.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type memOrderRepo struct{ store *memStore }

func (r *memOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for _, existing := range r.store.orders {
		if existing.OrderNumber == order.OrderNumber {
			return apperror.NewConflictError("duplicate order number")
		}
	}
	r.store.orders[order.ID] = *order
	return nil
}

func (r *memOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	return &order, nil
}

func (r *memOrderRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *memOrderRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	for _, order := range r.store.orders {
		if order.OrderNumber == orderNumber {
			o := order
			return &o, nil
		}
	}
	return nil, nil
}

func (r *memOrderRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	order.Items = append([]entity.OrderItem(nil), r.store.items[id]...)
	for _, p := range r.store.payments {
		if p.OrderID == id {
			order.Payments = append(order.Payments, p)
		}
	}
	return &order, nil
}

func (r *memOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	if _, ok := r.store.orders[order.ID]; !ok {
		return apperror.ErrNotFound
	}
	r.store.orders[order.ID] = *order
	return nil
}

func (r *memOrderRepo) List(ctx context.Context, params *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	var out []entity.Order
	for _, order := range r.store.orders {
		if params.Status != nil && order.Status != *params.Status {
			continue
		}
		if params.CustomerID != nil && order.CustomerID != *params.CustomerID {
			continue
		}
		out = append(out, order)
	}
	return out, int64(len(out)), nil
}

func (r *memOrderRepo) SumItemSubtotals(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var sum int64
	for _, item := range r.store.items[orderID] {
		sum += item.Subtotal
	}
	return sum, nil
}

type memOrderItemRepo struct{ store *memStore }

func (r *memOrderItemRepo) CreateBatch(ctx context.Context, items []entity.OrderItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		r.store.items[items[i].OrderID] = append(r.store.items[items[i].OrderID], items[i])
	}
	return nil
}

func (r *memOrderItemRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	return append([]entity.OrderItem(nil), r.store.items[orderID]...), nil
}

type memInventoryRepo struct{ store *memStore }

func (r *memInventoryRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.store.inventory[item.ID] = *item
	return nil
}

func (r *memInventoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	item, ok := r.store.inventory[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *memInventoryRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *memInventoryRepo) Update(ctx context.Context, item *entity.InventoryItem) error {
	r.store.inventory[item.ID] = *item
	return nil
}

func (r *memInventoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.inventory, id)
	return nil
}

func (r *memInventoryRepo) List(ctx context.Context, params *repository.InventoryFilterParams) ([]entity.InventoryItem, int64, error) {
	var out []entity.InventoryItem
	for _, item := range r.store.inventory {
		out = append(out, item)
	}
	return out, int64(len(out)), nil
}

func (r *memInventoryRepo) GetLowStock(ctx context.Context) ([]entity.InventoryItem, error) {
	var out []entity.InventoryItem
	for _, item := range r.store.inventory {
		if item.IsLowStock() {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memInventoryRepo) DecrementQuantity(ctx context.Context, id uuid.UUID, amount int) (bool, error) {
	item, ok := r.store.inventory[id]
	if !ok || item.Quantity < amount {
		return false, nil
	}
	item.Quantity -= amount
	r.store.inventory[id] = item
	return true, nil
}

func (r *memInventoryRepo) IncrementQuantity(ctx context.Context, id uuid.UUID, amount int) error {
	item, ok := r.store.inventory[id]
	if !ok {
		return apperror.ErrNotFound
	}
	item.Quantity += amount
	r.store.inventory[id] = item
	return nil
}

func (r *memInventoryRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InventoryStatus) error {
	item, ok := r.store.inventory[id]
	if !ok {
		return apperror.ErrNotFound
	}
	item.Status = status
	r.store.inventory[id] = item
	return nil
}

type memCustomerRepo struct{ store *memStore }

func (r *memCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	r.store.customers[customer.ID] = *customer
	return nil
}

func (r *memCustomerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, ok := r.store.customers[id]
	if !ok {
		return nil, nil
	}
	return &customer, nil
}

func (r *memCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	r.store.customers[customer.ID] = *customer
	return nil
}

func (r *memCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.customers, id)
	return nil
}

func (r *memCustomerRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, customer := range r.store.customers {
		out = append(out, customer)
	}
	return out, int64(len(out)), nil
}

type memUserRepo struct{ store *memStore }

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.store.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.store.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.store.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) List(ctx context.Context) ([]entity.User, error) {
	var out []entity.User
	for _, user := range r.store.users {
		out = append(out, user)
	}
	return out, nil
}

type memTaskRepo struct{ store *memStore }

func (r *memTaskRepo) Create(ctx context.Context, task *entity.StaffTask) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	r.store.tasks[task.ID] = *task
	return nil
}

func (r *memTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.StaffTask, error) {
	task, ok := r.store.tasks[id]
	if !ok {
		return nil, nil
	}
	return &task, nil
}

func (r *memTaskRepo) GetByAssignee(ctx context.Context, userID uuid.UUID, openOnly bool) ([]entity.StaffTask, error) {
	var out []entity.StaffTask
	for _, task := range r.store.tasks {
		if task.AssignedTo != userID {
			continue
		}
		if openOnly && task.Status != enum.TaskStatusOpen {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (r *memTaskRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.StaffTask, error) {
	var out []entity.StaffTask
	for _, task := range r.store.tasks {
		if task.OrderID == orderID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (r *memTaskRepo) Update(ctx context.Context, task *entity.StaffTask) error {
	r.store.tasks[task.ID] = *task
	return nil
}

type memPaymentRepo struct{ store *memStore }

func (r *memPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	r.store.payments[payment.ID] = *payment
	return nil
}

func (r *memPaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, ok := r.store.payments[id]
	if !ok {
		return nil, nil
	}
	return &payment, nil
}

func (r *memPaymentRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, payment := range r.store.payments {
		if payment.OrderID == orderID {
			out = append(out, payment)
		}
	}
	return out, nil
}

func (r *memPaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.store.payments[id]; !ok {
		return apperror.ErrNotFound
	}
	delete(r.store.payments, id)
	return nil
}

func (r *memPaymentRepo) SumByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var sum int64
	for _, payment := range r.store.payments {
		if payment.OrderID == orderID {
			sum += payment.Amount
		}
	}
	return sum, nil
}

type memSequenceRepo struct{ store *memStore }

func (r *memSequenceRepo) Next(ctx context.Context, scope string, day time.Time) (int64, error) {
	key := fmt.Sprintf("%s|%s", scope, day.Format("20060102"))
	r.store.counters[key]++
	return r.store.counters[key], nil
}
