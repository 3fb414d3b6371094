package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/casa-ledger/internal/ledgererror"
	"fjacquet/casa-ledger/internal/logging"
	"fjacquet/casa-ledger/internal/models"
)

func TestOpenFileStoreMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")

	fs, err := OpenFileStore(path, &logging.MockLogger{})
	require.NoError(t, err)

	got, err := fs.QueryTransactions(context.Background(), TransactionQuery{})
	require.NoError(t, err)
	assert.Empty(t, got)

	// The file is only created on first commit.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	ctx := context.Background()

	fs, err := OpenFileStore(path, &logging.MockLogger{})
	require.NoError(t, err)

	due := time.Date(2023, time.May, 20, 0, 0, 0, 0, time.UTC)
	b := fs.NewBatch()
	profileID := b.CreateProfile(models.Profile{
		Name:                "Casa",
		Subprofiles:         []models.Subprofile{{ID: "sp-ana", Name: "Ana"}},
		ApportionmentMethod: models.MethodProportional,
		ClosedMonths:        []string{"2023-04"},
	})
	txID := b.CreateTransaction(models.Transaction{
		ProfileID:       profileID,
		Type:            models.TypeExpense,
		Description:     "rent",
		IsShared:        true,
		Planned:         decimal.NewFromInt(1200),
		Actual:          decimal.RequireFromString("1187.50"),
		Date:            time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC),
		DueDate:         &due,
		Paid:            true,
		IsRecurring:     true,
		SkippedInMonths: []string{"2023-03"},
		LabelIDs:        []string{"housing"},
	})
	require.NoError(t, b.Commit(ctx))

	// Reopen from disk and check everything survived serialization.
	reopened, err := OpenFileStore(path, &logging.MockLogger{})
	require.NoError(t, err)

	p, err := reopened.GetProfile(ctx, profileID)
	require.NoError(t, err)
	assert.Equal(t, "Casa", p.Name)
	assert.Equal(t, models.MethodProportional, p.ApportionmentMethod)
	assert.Equal(t, []string{"2023-04"}, p.ClosedMonths)
	require.Len(t, p.Subprofiles, 1)
	assert.Equal(t, "Ana", p.Subprofiles[0].Name)

	tx, err := reopened.GetTransaction(ctx, txID)
	require.NoError(t, err)
	assert.Equal(t, "rent", tx.Description)
	assert.True(t, tx.IsShared)
	assert.True(t, tx.Planned.Equal(decimal.NewFromInt(1200)))
	assert.True(t, tx.Actual.Equal(decimal.RequireFromString("1187.50")))
	require.NotNil(t, tx.DueDate)
	assert.True(t, due.Equal(*tx.DueDate))
	assert.True(t, tx.Paid)
	assert.True(t, tx.IsRecurring)
	assert.Equal(t, []string{"2023-03"}, tx.SkippedInMonths)
	assert.Equal(t, []string{"housing"}, tx.LabelIDs)
	assert.False(t, tx.CreatedAt.IsZero())
}

func TestFileStoreSubsequentBatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	ctx := context.Background()

	fs, err := OpenFileStore(path, &logging.MockLogger{})
	require.NoError(t, err)

	b := fs.NewBatch()
	id := b.CreateTransaction(models.Transaction{
		ProfileID: "p-1",
		Type:      models.TypeExpense,
		Date:      time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, b.Commit(ctx))

	b = fs.NewBatch()
	b.UpdateTransaction(id, models.TransactionUpdate{Paid: models.Set(true)})
	require.NoError(t, b.Commit(ctx))

	b = fs.NewBatch()
	b.DeleteTransaction(id)
	require.NoError(t, b.Commit(ctx))

	reopened, err := OpenFileStore(path, &logging.MockLogger{})
	require.NoError(t, err)
	_, err = reopened.GetTransaction(ctx, id)
	assert.True(t, ledgererror.IsNotFound(err))
}

func TestFileStoreFailedBatchLeavesStateAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	ctx := context.Background()

	fs, err := OpenFileStore(path, &logging.MockLogger{})
	require.NoError(t, err)

	b := fs.NewBatch()
	b.CreateTransaction(models.Transaction{
		ProfileID: "p-1",
		Date:      time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC),
	})
	b.DeleteTransaction("missing")
	require.Error(t, b.Commit(ctx))

	// Nothing committed, nothing persisted.
	got, err := fs.QueryTransactions(ctx, TransactionQuery{})
	require.NoError(t, err)
	assert.Empty(t, got)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreRollsBackMemoryOnSaveFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "ledger.yaml")
	ctx := context.Background()

	fs, err := OpenFileStore(path, &logging.MockLogger{})
	require.NoError(t, err)

	b := fs.NewBatch()
	keptID := b.CreateTransaction(models.Transaction{
		ProfileID: "p-1",
		Date:      time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, b.Commit(ctx))

	// Shadow the ledger directory with a plain file so the next save fails.
	require.NoError(t, os.RemoveAll(filepath.Dir(path)))
	require.NoError(t, os.WriteFile(filepath.Dir(path), []byte{}, 0o644))

	b = fs.NewBatch()
	b.CreateTransaction(models.Transaction{
		ProfileID: "p-1",
		Date:      time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
	})
	err = b.Commit(ctx)
	var cerr *ledgererror.StoreCommitError
	require.ErrorAs(t, err, &cerr)

	// Memory rolled back to the last persisted state.
	got, err := fs.QueryTransactions(ctx, TransactionQuery{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, keptID, got[0].ID)
}

func TestFileStoreParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))

	_, err := OpenFileStore(path, &logging.MockLogger{})
	assert.Error(t, err)
}
