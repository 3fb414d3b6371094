package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionUpdateApply(t *testing.T) {
	due := time.Date(2023, time.May, 20, 0, 0, 0, 0, time.UTC)
	tx := Transaction{
		ID:          "tx-1",
		Type:        TypeExpense,
		Description: "rent",
		Planned:     decimal.NewFromInt(1200),
		Actual:      decimal.NewFromInt(1200),
		Date:        time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC),
		DueDate:     &due,
		Notes:       "old note",
	}

	newDate := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	upd := TransactionUpdate{
		Description: Set("rent (renegotiated)"),
		Planned:     Set(decimal.NewFromInt(1100)),
		Date:        Set(newDate),
		DueDate:     Clear[time.Time](),
		Paid:        Set(true),
		Notes:       Clear[string](),
	}
	upd.Apply(&tx)

	assert.Equal(t, "rent (renegotiated)", tx.Description)
	assert.True(t, tx.Planned.Equal(decimal.NewFromInt(1100)))
	assert.True(t, tx.Actual.Equal(decimal.NewFromInt(1200)), "untouched field changed")
	assert.Equal(t, newDate, tx.Date)
	assert.Nil(t, tx.DueDate)
	assert.True(t, tx.Paid)
	assert.Empty(t, tx.Notes)
	assert.Equal(t, TypeExpense, tx.Type, "untouched field changed")
}

func TestTransactionUpdateApplyOwnership(t *testing.T) {
	tx := Transaction{SubprofileID: "sp-1"}

	upd := TransactionUpdate{
		IsShared:     Set(true),
		SubprofileID: Clear[string](),
	}
	upd.Apply(&tx)
	assert.True(t, tx.IsShared)
	assert.Empty(t, tx.SubprofileID)

	upd = TransactionUpdate{
		IsShared:     Set(false),
		SubprofileID: Set("sp-2"),
	}
	upd.Apply(&tx)
	assert.False(t, tx.IsShared)
	assert.Equal(t, "sp-2", tx.SubprofileID)
}

func TestTransactionUpdateApplyOptionalDates(t *testing.T) {
	tx := Transaction{}
	payment := time.Date(2023, time.May, 25, 0, 0, 0, 0, time.UTC)

	upd := TransactionUpdate{PaymentDate: Set(payment)}
	upd.Apply(&tx)
	require.NotNil(t, tx.PaymentDate)
	assert.Equal(t, payment, *tx.PaymentDate)

	// An empty update leaves the pointer alone.
	TransactionUpdate{}.Apply(&tx)
	require.NotNil(t, tx.PaymentDate)
}

func TestTransactionUpdateApplySkipState(t *testing.T) {
	tx := Transaction{
		SkippedInMonths:              []string{"2023-05"},
		GeneratedFutureTransactionID: "tx-future",
	}

	upd := TransactionUpdate{
		SkippedInMonths:              Clear[[]string](),
		GeneratedFutureTransactionID: Clear[string](),
	}
	upd.Apply(&tx)
	assert.Nil(t, tx.SkippedInMonths)
	assert.Empty(t, tx.GeneratedFutureTransactionID)
}

func TestProfileUpdateApply(t *testing.T) {
	p := Profile{
		ApportionmentMethod: MethodPercentage,
		Percentages: map[string]decimal.Decimal{
			"sp-1": decimal.NewFromInt(50),
			"sp-2": decimal.NewFromInt(50),
		},
	}

	upd := ProfileUpdate{
		ApportionmentMethod: Set(MethodProportional),
		Percentages:         Clear[map[string]decimal.Decimal](),
		ClosedMonths:        Set([]string{"2023-04"}),
	}
	upd.Apply(&p)

	assert.Equal(t, MethodProportional, p.ApportionmentMethod)
	assert.Nil(t, p.Percentages)
	assert.Equal(t, []string{"2023-04"}, p.ClosedMonths)
}
