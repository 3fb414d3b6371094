// Package storage defines the transactional document store the ledger
// engine writes through, plus an in-memory implementation and a YAML
// file-backed implementation used by the CLI.
//
// The contract is narrow on purpose: point reads, filtered queries, and an
// all-or-nothing batch. Every engine command assembles exactly one batch, so
// a half-mutated ledger is never observable. The store does not serialize
// against concurrent external writers; it only guarantees atomicity of one
// batch.
package storage

import (
	"context"

	"fjacquet/casa-ledger/internal/models"
)

// TransactionQuery filters and orders a transaction query. Zero-valued
// fields are ignored. Results are always ordered by date ascending, with
// CurrentInstallment as tie-breaker so series members come back in order.
type TransactionQuery struct {
	ProfileID string
	SeriesID  string
	ParentID  string

	// MonthKey restricts results to records whose Date falls in the given
	// "YYYY-MM" month.
	MonthKey string

	// MinInstallment restricts results to series members with
	// CurrentInstallment >= the given value. Only meaningful together with
	// SeriesID.
	MinInstallment int
}

// Store is the transactional document store contract. Implementations must
// assign record ids at batch-create time so that records created in the same
// batch can reference each other, and must stamp CreatedAt with the commit
// time when it is unset (the server-timestamp rule).
type Store interface {
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	QueryTransactions(ctx context.Context, q TransactionQuery) ([]models.Transaction, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)

	// NewBatch starts an empty batch. Operations are buffered until Commit,
	// which applies all of them or none.
	NewBatch() Batch
}

// Batch buffers store mutations for atomic application.
type Batch interface {
	// CreateTransaction buffers a create and returns the id the record will
	// have once committed.
	CreateTransaction(tx models.Transaction) string
	UpdateTransaction(id string, upd models.TransactionUpdate)
	DeleteTransaction(id string)

	// CreateProfile buffers a profile create and returns its id.
	CreateProfile(p models.Profile) string
	UpdateProfile(id string, upd models.ProfileUpdate)

	// Commit atomically applies every buffered operation. On failure nothing
	// is applied and a *ledgererror.StoreCommitError is returned.
	Commit(ctx context.Context) error
}
