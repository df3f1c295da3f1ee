package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/domain/entity"
	"github.com/stitchline/tailorflow-api/internal/domain/enum"
	"github.com/stitchline/tailorflow-api/pkg/apperror"
)

func newInventoryFixture(t *testing.T) (*memStore, *InventoryService) {
	t.Helper()
	store := newMemStore()
	svc := NewInventoryService(&memTxManager{store: store}, &memInventoryRepo{store: store})
	return store, svc
}

func TestInventoryCreateStoresCents(t *testing.T) {
	_, svc := newInventoryFixture(t)

	item, err := svc.Create(context.Background(), &CreateInventoryInput{
		UserID:            uuid.New(),
		Name:              "Wool fabric",
		Quantity:          10,
		Unit:              "metre",
		Price:             14.99,
		LowStockThreshold: 3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.Price != 1499 {
		t.Errorf("price = %d cents, want 1499", item.Price)
	}
	if item.Status != enum.InventoryStatusAvailable {
		t.Errorf("status = %v, want available", item.Status)
	}
}

func TestInventoryCreateZeroQuantityStartsOutOfStock(t *testing.T) {
	_, svc := newInventoryFixture(t)

	item, err := svc.Create(context.Background(), &CreateInventoryInput{
		UserID: uuid.New(),
		Name:   "Silk thread",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.Status != enum.InventoryStatusOutOfStock {
		t.Errorf("status = %v, want out_of_stock", item.Status)
	}
}

func TestInventoryRestock(t *testing.T) {
	store, svc := newInventoryFixture(t)

	id := uuid.New()
	store.inventory[id] = entity.InventoryItem{
		ID:     id,
		Name:   "Buttons",
		Status: enum.InventoryStatusOutOfStock,
	}

	item, err := svc.Restock(context.Background(), id, 50)
	if err != nil {
		t.Fatalf("Restock: %v", err)
	}
	if item.Quantity != 50 {
		t.Errorf("quantity = %d, want 50", item.Quantity)
	}
	if item.Status != enum.InventoryStatusAvailable {
		t.Errorf("status = %v, want available after restock", item.Status)
	}
}

func TestInventoryRestockRejections(t *testing.T) {
	store, svc := newInventoryFixture(t)

	id := uuid.New()
	store.inventory[id] = entity.InventoryItem{
		ID:     id,
		Name:   "Retired fabric",
		Status: enum.InventoryStatusDiscontinued,
	}

	if _, err := svc.Restock(context.Background(), id, 0); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("zero amount: err = %v, want validation error", err)
	}
	if _, err := svc.Restock(context.Background(), id, 5); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("discontinued: err = %v, want validation error", err)
	}
	if _, err := svc.Restock(context.Background(), uuid.New(), 5); !apperror.IsKind(err, apperror.KindNotFound) {
		t.Errorf("unknown item: err = %v, want not-found error", err)
	}
}

func TestInventoryDiscontinueAndReactivate(t *testing.T) {
	store, svc := newInventoryFixture(t)

	id := uuid.New()
	store.inventory[id] = entity.InventoryItem{
		ID:       id,
		Name:     "Lining",
		Quantity: 4,
		Status:   enum.InventoryStatusAvailable,
	}

	flag := true
	item, err := svc.Update(context.Background(), id, &UpdateInventoryInput{Discontinued: &flag})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if item.Status != enum.InventoryStatusDiscontinued {
		t.Errorf("status = %v, want discontinued", item.Status)
	}

	flag = false
	item, err = svc.Update(context.Background(), id, &UpdateInventoryInput{Discontinued: &flag})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if item.Status != enum.InventoryStatusAvailable {
		t.Errorf("status = %v, want available with stock on hand", item.Status)
	}
}
