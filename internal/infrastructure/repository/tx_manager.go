package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stitchline/tailorflow-api/pkg/apperror"
	"gorm.io/gorm"
)

type txKey struct{}

// txManager implements repository.TxManager on top of a GORM connection.
// The open transaction handle is stashed in the context so that every
// repository in this package joins it transparently.
type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager bound to db
func NewTxManager(db *gorm.DB) *txManager {
	return &txManager{db: db}
}

func (m *txManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
	return classifyError(err)
}

// dbFrom returns the transaction handle carried by ctx, or the fallback
// connection when no transaction is open
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

// Postgres SQLSTATE codes that signal a retryable conflict between
// concurrent transactions
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
	pgUniqueViolation      = "23505"
)

// classifyError maps driver-level failures onto the application error
// taxonomy. AppErrors pass through untouched so domain failures raised
// inside a transaction keep their kind.
func classifyError(err error) error {
	if err == nil || apperror.IsAppError(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return apperror.NewConcurrencyConflictError("Operation conflicted with a concurrent request, please retry")
		case pgUniqueViolation:
			return apperror.NewConflictError("Resource already exists")
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	return err
}
