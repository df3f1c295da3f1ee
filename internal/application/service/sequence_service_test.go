package service

import (
	"context"
	"testing"
	"time"
)

func TestSequenceNumbersFormat(t *testing.T) {
	store := newMemStore()
	svc := NewSequenceService(&memSequenceRepo{store: store})
	svc.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	}

	first, err := svc.NextOrderNumber(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first != "ORD-20260314-0001" {
		t.Errorf("first order number = %q, want ORD-20260314-0001", first)
	}

	second, err := svc.NextOrderNumber(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if second != "ORD-20260314-0002" {
		t.Errorf("second order number = %q, want ORD-20260314-0002", second)
	}

	// Payment numbers advance an independent counter.
	payment, err := svc.NextPaymentNumber(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if payment != "PAY-20260314-0001" {
		t.Errorf("payment number = %q, want PAY-20260314-0001", payment)
	}
}

func TestSequenceResetsPerDay(t *testing.T) {
	store := newMemStore()
	svc := NewSequenceService(&memSequenceRepo{store: store})

	day := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	svc.now = func() time.Time { return day }

	if _, err := svc.NextOrderNumber(context.Background()); err != nil {
		t.Fatal(err)
	}

	day = day.Add(2 * time.Minute)
	got, err := svc.NextOrderNumber(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != "ORD-20260315-0001" {
		t.Errorf("next-day number = %q, want ORD-20260315-0001", got)
	}
}
