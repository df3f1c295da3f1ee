package repository

import "context"

// TxManager runs a function inside a single database transaction. The
// transaction handle travels in the context so that every repository call
// made from fn joins the same transaction; any error returned by fn rolls
// the whole transaction back. Implementations classify lock-wait and
// serialization failures as apperror.KindConcurrencyConflict so callers can
// retry.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
