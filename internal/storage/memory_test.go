package storage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/casa-ledger/internal/ledgererror"
	"fjacquet/casa-ledger/internal/models"
)

func memTx(id, profileID string, date time.Time) models.Transaction {
	return models.Transaction{
		ID:          id,
		ProfileID:   profileID,
		Type:        models.TypeExpense,
		Description: "desc " + id,
		Planned:     decimal.NewFromInt(10),
		Actual:      decimal.NewFromInt(10),
		Date:        date,
	}
}

func TestGetTransaction(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.PutTransaction(memTx("tx-1", "p-1", time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)))

	got, err := s.GetTransaction(ctx, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, "tx-1", got.ID)

	_, err = s.GetTransaction(ctx, "missing")
	assert.True(t, ledgererror.IsNotFound(err))
}

func TestGetTransactionReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.PutTransaction(memTx("tx-1", "p-1", time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)))

	got, err := s.GetTransaction(ctx, "tx-1")
	require.NoError(t, err)
	got.Description = "mutated"

	again, err := s.GetTransaction(ctx, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, "desc tx-1", again.Description)
}

func TestGetProfile(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.PutProfile(models.Profile{ID: "p-1", Name: "Casa"})

	got, err := s.GetProfile(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Casa", got.Name)

	_, err = s.GetProfile(ctx, "missing")
	assert.True(t, ledgererror.IsNotFound(err))
}

func TestQueryTransactions(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	may := time.Date(2023, time.May, 15, 0, 0, 0, 0, time.UTC)
	june := time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)

	s.PutTransaction(memTx("tx-may-a", "p-1", may))
	s.PutTransaction(memTx("tx-june", "p-1", june))
	s.PutTransaction(memTx("tx-other-profile", "p-2", may))

	series := memTx("tx-s2", "p-1", june)
	series.SeriesID = "s-1"
	series.CurrentInstallment = 2
	s.PutTransaction(series)
	series2 := memTx("tx-s1", "p-1", may)
	series2.SeriesID = "s-1"
	series2.CurrentInstallment = 1
	s.PutTransaction(series2)

	child := memTx("tx-child", "p-1", may)
	child.ParentID = "tx-may-a"
	child.IsApportioned = true
	s.PutTransaction(child)

	t.Run("by profile", func(t *testing.T) {
		got, err := s.QueryTransactions(ctx, TransactionQuery{ProfileID: "p-1"})
		require.NoError(t, err)
		assert.Len(t, got, 5)
	})

	t.Run("by month", func(t *testing.T) {
		got, err := s.QueryTransactions(ctx, TransactionQuery{ProfileID: "p-1", MonthKey: "2023-05"})
		require.NoError(t, err)
		require.Len(t, got, 3)
		for _, tx := range got {
			assert.Equal(t, time.May, tx.Date.Month())
		}
	})

	t.Run("by series ordered by installment", func(t *testing.T) {
		got, err := s.QueryTransactions(ctx, TransactionQuery{SeriesID: "s-1"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].CurrentInstallment)
		assert.Equal(t, 2, got[1].CurrentInstallment)
	})

	t.Run("by series with min installment", func(t *testing.T) {
		got, err := s.QueryTransactions(ctx, TransactionQuery{SeriesID: "s-1", MinInstallment: 2})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "tx-s2", got[0].ID)
	})

	t.Run("by parent", func(t *testing.T) {
		got, err := s.QueryTransactions(ctx, TransactionQuery{ParentID: "tx-may-a"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "tx-child", got[0].ID)
	})

	t.Run("no match", func(t *testing.T) {
		got, err := s.QueryTransactions(ctx, TransactionQuery{ProfileID: "p-404"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestBatchCommit(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	fixed := time.Date(2023, time.May, 1, 12, 0, 0, 0, time.UTC)
	s.SetClock(func() time.Time { return fixed })

	b := s.NewBatch()
	id := b.CreateTransaction(memTx("", "p-1", fixed))
	require.NotEmpty(t, id, "id assigned before commit")

	require.NoError(t, b.Commit(ctx))

	got, err := s.GetTransaction(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, fixed, got.CreatedAt, "commit stamps CreatedAt when unset")
}

func TestBatchCommitPreservesExplicitCreatedAt(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.SetClock(func() time.Time { return time.Date(2023, time.May, 1, 12, 0, 0, 0, time.UTC) })

	explicit := time.Date(2022, time.December, 24, 0, 0, 0, 0, time.UTC)
	tx := memTx("tx-1", "p-1", explicit)
	tx.CreatedAt = explicit

	b := s.NewBatch()
	b.CreateTransaction(tx)
	require.NoError(t, b.Commit(ctx))

	got, err := s.GetTransaction(ctx, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, explicit, got.CreatedAt)
}

func TestBatchCrossReference(t *testing.T) {
	// A child created in the same batch can reference the parent's id before
	// commit.
	s := NewMemoryStore()
	ctx := context.Background()

	b := s.NewBatch()
	parentID := b.CreateTransaction(memTx("", "p-1", time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)))

	child := memTx("", "p-1", time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC))
	child.ParentID = parentID
	child.IsApportioned = true
	childID := b.CreateTransaction(child)

	require.NoError(t, b.Commit(ctx))

	got, err := s.GetTransaction(ctx, childID)
	require.NoError(t, err)
	assert.Equal(t, parentID, got.ParentID)
}

func TestBatchMixedOps(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	may := time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)
	s.PutTransaction(memTx("tx-keep", "p-1", may))
	s.PutTransaction(memTx("tx-gone", "p-1", may))
	s.PutProfile(models.Profile{ID: "p-1", ApportionmentMethod: models.MethodManual})

	b := s.NewBatch()
	b.UpdateTransaction("tx-keep", models.TransactionUpdate{Paid: models.Set(true)})
	b.DeleteTransaction("tx-gone")
	b.UpdateProfile("p-1", models.ProfileUpdate{
		ApportionmentMethod: models.Set(models.MethodProportional),
	})
	require.NoError(t, b.Commit(ctx))

	kept, err := s.GetTransaction(ctx, "tx-keep")
	require.NoError(t, err)
	assert.True(t, kept.Paid)

	_, err = s.GetTransaction(ctx, "tx-gone")
	assert.True(t, ledgererror.IsNotFound(err))

	p, err := s.GetProfile(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, models.MethodProportional, p.ApportionmentMethod)
}

func TestBatchAtomicOnFailure(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	may := time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)
	s.PutTransaction(memTx("tx-1", "p-1", may))

	b := s.NewBatch()
	b.UpdateTransaction("tx-1", models.TransactionUpdate{Paid: models.Set(true)})
	b.DeleteTransaction("missing")

	err := b.Commit(ctx)
	var cerr *ledgererror.StoreCommitError
	require.ErrorAs(t, err, &cerr)

	// The valid update earlier in the batch must not have been applied.
	got, err := s.GetTransaction(ctx, "tx-1")
	require.NoError(t, err)
	assert.False(t, got.Paid)
}

func TestBatchValidatesInBatchState(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	may := time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)
	s.PutTransaction(memTx("tx-1", "p-1", may))

	// Delete then update the same record: the update targets a record the
	// batch itself removed, so the whole batch must fail.
	b := s.NewBatch()
	b.DeleteTransaction("tx-1")
	b.UpdateTransaction("tx-1", models.TransactionUpdate{Paid: models.Set(true)})
	assert.Error(t, b.Commit(ctx))

	// Create then update in one batch is fine.
	b = s.NewBatch()
	id := b.CreateTransaction(memTx("", "p-1", may))
	b.UpdateTransaction(id, models.TransactionUpdate{Paid: models.Set(true)})
	require.NoError(t, b.Commit(ctx))

	got, err := s.GetTransaction(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.Paid)
}

func TestBatchCreateProfile(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	b := s.NewBatch()
	id := b.CreateProfile(models.Profile{Name: "Casa"})
	require.NotEmpty(t, id)
	require.NoError(t, b.Commit(ctx))

	got, err := s.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Casa", got.Name)

	// Creating the same profile again fails.
	b = s.NewBatch()
	b.CreateProfile(models.Profile{ID: id})
	assert.Error(t, b.Commit(ctx))
}

func TestBatchDoubleCommit(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	b := s.NewBatch()
	b.CreateTransaction(memTx("", "p-1", time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, b.Commit(ctx))
	assert.Error(t, b.Commit(ctx))
}
