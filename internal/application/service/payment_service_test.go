package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stitchline/tailorflow-api/internal/domain/enum"
	"github.com/stitchline/tailorflow-api/pkg/apperror"
	"github.com/stitchline/tailorflow-api/pkg/notify"
	"go.uber.org/zap"
)

type paymentFixture struct {
	*orderFixture
	svc *PaymentService
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	of := newOrderFixture(t)

	svc := NewPaymentService(
		of.tx,
		&memPaymentRepo{store: of.store},
		&memOrderRepo{store: of.store},
		&memCustomerRepo{store: of.store},
		NewSequenceService(&memSequenceRepo{store: of.store}),
		of.dispatcher,
		zap.NewNop(),
	)

	return &paymentFixture{orderFixture: of, svc: svc}
}

func TestRecordPaymentReducesRemaining(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.placeOrder(t, []OrderItemInput{{ItemName: "Suit", Quantity: 1, UnitPrice: 100}})

	payment, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID,
		Amount:  40,
		Method:  enum.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if payment.Amount != 4000 {
		t.Errorf("amount = %d cents, want 4000", payment.Amount)
	}
	if !strings.HasPrefix(payment.PaymentNumber, "PAY-") {
		t.Errorf("payment number %q missing PAY- prefix", payment.PaymentNumber)
	}

	got := f.store.orders[order.ID]
	if got.RemainingAmount != 6000 {
		t.Errorf("remaining = %d cents, want 6000", got.RemainingAmount)
	}

	// Settle the rest.
	if _, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID,
		Amount:  60,
		Method:  enum.PaymentMethodMobilePayment,
	}); err != nil {
		t.Fatalf("second payment: %v", err)
	}
	got = f.store.orders[order.ID]
	if got.RemainingAmount != 0 {
		t.Errorf("remaining after settlement = %d, want 0", got.RemainingAmount)
	}

	if events := f.dispatcher.byType(notify.EventPaymentReceived); len(events) != 2 {
		t.Errorf("payment-received events = %d, want 2", len(events))
	}
}

func TestRecordPaymentRejectsOverpayment(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.placeOrder(t, []OrderItemInput{{ItemName: "Suit", Quantity: 1, UnitPrice: 100}})

	if _, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID,
		Amount:  70,
		Method:  enum.PaymentMethodCash,
	}); err != nil {
		t.Fatalf("first payment: %v", err)
	}

	// Remaining is 30; a second 70 would overdraw.
	_, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID,
		Amount:  70,
		Method:  enum.PaymentMethodCash,
	})
	if !apperror.IsKind(err, apperror.KindOverpayment) {
		t.Fatalf("err = %v, want overpayment error", err)
	}

	// The rejected payment must leave no trace.
	if len(f.store.payments) != 1 {
		t.Errorf("payments persisted = %d, want 1", len(f.store.payments))
	}
	if got := f.store.orders[order.ID].RemainingAmount; got != 3000 {
		t.Errorf("remaining = %d cents, want 3000", got)
	}
}

func TestRecordPaymentValidation(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.placeOrder(t, []OrderItemInput{{ItemName: "Suit", Quantity: 1, UnitPrice: 100}})

	if _, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID,
		Amount:  0,
		Method:  enum.PaymentMethodCash,
	}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("zero amount: err = %v, want validation error", err)
	}

	if _, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID,
		Amount:  -10,
		Method:  enum.PaymentMethodCash,
	}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("negative amount: err = %v, want validation error", err)
	}

	if _, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID,
		Amount:  10,
		Method:  enum.PaymentMethod(99),
	}); !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("unknown method: err = %v, want validation error", err)
	}
}

func TestRecordPaymentOnCancelledOrder(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.placeOrder(t, []OrderItemInput{{ItemName: "Suit", Quantity: 1, UnitPrice: 100}})

	cancelled := f.store.orders[order.ID]
	cancelled.Status = enum.OrderStatusCancelled
	f.store.orders[order.ID] = cancelled

	_, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID,
		Amount:  10,
		Method:  enum.PaymentMethodCash,
	})
	if !apperror.IsKind(err, apperror.KindValidation) {
		t.Errorf("err = %v, want validation error", err)
	}
}

func TestRecordPaymentSequentialNeverOverdraws(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.placeOrder(t, []OrderItemInput{{ItemName: "Suit", Quantity: 1, UnitPrice: 100}})

	// Two payments that each fit the original balance but not both. The
	// second must see the balance left by the first and be rejected.
	first, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID,
		Amount:  80,
		Method:  enum.PaymentMethodCard,
	})
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	_, err = f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID,
		Amount:  80,
		Method:  enum.PaymentMethodCard,
	})
	if !apperror.IsKind(err, apperror.KindOverpayment) {
		t.Fatalf("second payment: err = %v, want overpayment error", err)
	}

	paid, _ := (&memPaymentRepo{store: f.store}).SumByOrderID(context.Background(), order.ID)
	if paid != first.Amount {
		t.Errorf("total paid = %d, want %d", paid, first.Amount)
	}
	if got := f.store.orders[order.ID].RemainingAmount; got != 2000 {
		t.Errorf("remaining = %d cents, want 2000", got)
	}
}

func TestDeletePaymentRestoresRemaining(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.placeOrder(t, []OrderItemInput{{ItemName: "Suit", Quantity: 1, UnitPrice: 100}})

	payment, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
		OrderID: order.ID,
		Amount:  45,
		Method:  enum.PaymentMethodBankTransfer,
	})
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	if err := f.svc.DeletePayment(context.Background(), payment.ID); err != nil {
		t.Fatalf("DeletePayment: %v", err)
	}

	got := f.store.orders[order.ID]
	if got.RemainingAmount != got.TotalAmount {
		t.Errorf("remaining = %d, want full total %d after delete", got.RemainingAmount, got.TotalAmount)
	}
	if len(f.store.payments) != 0 {
		t.Errorf("payments persisted = %d, want 0", len(f.store.payments))
	}
}

func TestDeletePaymentUnknown(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.placeOrder(t, []OrderItemInput{{ItemName: "Suit", Quantity: 1, UnitPrice: 100}})

	err := f.svc.DeletePayment(context.Background(), order.ID)
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Errorf("err = %v, want not-found error", err)
	}
}

func TestListPaymentsByOrder(t *testing.T) {
	f := newPaymentFixture(t)
	order := f.placeOrder(t, []OrderItemInput{{ItemName: "Suit", Quantity: 1, UnitPrice: 100}})

	for _, amount := range []float64{20, 30} {
		if _, err := f.svc.RecordPayment(context.Background(), &RecordPaymentInput{
			OrderID: order.ID,
			Amount:  amount,
			Method:  enum.PaymentMethodCash,
		}); err != nil {
			t.Fatalf("RecordPayment(%v): %v", amount, err)
		}
	}

	payments, err := f.svc.ListByOrder(context.Background(), order.ID)
	if err != nil {
		t.Fatalf("ListByOrder: %v", err)
	}
	if len(payments) != 2 {
		t.Errorf("payments = %d, want 2", len(payments))
	}
}
