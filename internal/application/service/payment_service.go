package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/stitchline/tailorflow-api/internal/domain/entity"
	"github.com/stitchline/tailorflow-api/internal/domain/enum"
	"github.com/stitchline/tailorflow-api/internal/domain/repository"
	"github.com/stitchline/tailorflow-api/pkg/apperror"
	"github.com/stitchline/tailorflow-api/pkg/notify"
	"go.uber.org/zap"
)

// PaymentService records payments against orders and keeps the derived
// remaining balance consistent with the payments table. Overpayment is a
// hard server-side invariant: a payment that would drive the remaining
// amount negative is rejected under the order's row lock.
type PaymentService struct {
	tx           repository.TxManager
	paymentRepo  repository.PaymentRepository
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	sequences    *SequenceService
	dispatcher   notify.Dispatcher
	log          *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	tx repository.TxManager,
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	sequences *SequenceService,
	dispatcher notify.Dispatcher,
	log *zap.Logger,
) *PaymentService {
	return &PaymentService{
		tx:           tx,
		paymentRepo:  paymentRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		sequences:    sequences,
		dispatcher:   dispatcher,
		log:          log,
	}
}

// RecordPaymentInput represents a payment recording request
type RecordPaymentInput struct {
	OrderID       uuid.UUID
	Amount        float64
	Method        enum.PaymentMethod
	TransactionID *string
	Notes         *string
}

// RecordPayment appends a payment to an order's ledger and reconciles the
// remaining balance, all under the order's row lock so that two concurrent
// payments cannot jointly overdraw the balance. Emits a payment-received
// event after commit.
func (s *PaymentService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Payment, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewValidationError("Payment amount must be greater than zero")
	}
	if !input.Method.IsValid() {
		return nil, apperror.NewValidationError("Unknown payment method")
	}
	amountCents := int64(math.Round(input.Amount * 100))

	var (
		payment *entity.Payment
		ownerID uuid.UUID
	)

	err := runWithRetry(ctx, s.tx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if order.Status == enum.OrderStatusCancelled {
			return apperror.NewValidationError("Cannot record a payment on a cancelled order")
		}

		// Remaining amount re-read under the lock is authoritative.
		if amountCents > order.RemainingAmount {
			return apperror.NewOverpaymentError(amountCents, order.RemainingAmount)
		}

		number, err := s.sequences.NextPaymentNumber(ctx)
		if err != nil {
			return err
		}

		payment = &entity.Payment{
			OrderID:       order.ID,
			PaymentNumber: number,
			Amount:        amountCents,
			Method:        input.Method,
			TransactionID: input.TransactionID,
			Notes:         input.Notes,
			PaidAt:        time.Now(),
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		if err := s.reconcileRemaining(ctx, order); err != nil {
			return err
		}

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
		Type:            notify.EventPaymentReceived,
		TargetUserID:    ownerID,
		Message:         fmt.Sprintf("Payment %s of %.2f received", payment.PaymentNumber, input.Amount),
		RelatedEntityID: payment.ID,
	})

	return payment, nil
}

// reconcileRemaining recomputes remaining_amount from the payments table.
// This is the only place the aggregate is derived, so deletion and recording
// cannot drift apart. The caller must hold the order's row lock.
func (s *PaymentService) reconcileRemaining(ctx context.Context, order *entity.Order) error {
	paid, err := s.paymentRepo.SumByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}

	remaining := order.TotalAmount - paid
	if remaining < 0 {
		// The row lock makes this unreachable; refuse to persist a negative
		// balance if it ever happens.
		s.log.Error("payments exceed order total",
			zap.String("order_id", order.ID.String()),
			zap.Int64("total_cents", order.TotalAmount),
			zap.Int64("paid_cents", paid),
		)
		return apperror.NewOverpaymentError(paid, order.TotalAmount)
	}

	order.RemainingAmount = remaining
	return s.orderRepo.Update(ctx, order)
}

// DeletePayment administratively removes a payment and re-derives the
// order's remaining amount within the same transaction
func (s *PaymentService) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	return runWithRetry(ctx, s.tx, func(ctx context.Context) error {
		payment, err := s.paymentRepo.GetByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return apperror.NewNotFoundError("Payment")
		}

		order, err := s.orderRepo.GetByIDForUpdate(ctx, payment.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		if err := s.paymentRepo.Delete(ctx, paymentID); err != nil {
			return err
		}
		return s.reconcileRemaining(ctx, order)
	})
}

// ListByOrder returns the payments recorded against an order
func (s *PaymentService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return s.paymentRepo.GetByOrderID(ctx, orderID)
}
