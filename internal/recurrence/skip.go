// Package recurrence implements the per-month skip toggle for recurring
// records and the month-closing rollover that carries recurring parents into
// the next month.
package recurrence

import (
	"slices"
	"time"

	"fjacquet/casa-ledger/internal/dateutils"
	"fjacquet/casa-ledger/internal/models"
)

// NextOccurrence copies a recurring record into its occurrence one month
// later: same fields, fresh identity, paid reset, skip state dropped. The
// returned record has no id; the store assigns one at batch create.
func NextOccurrence(tx models.Transaction) models.Transaction {
	next := tx
	next.ID = ""
	next.Paid = false
	next.SkippedInMonths = nil
	next.GeneratedFutureTransactionID = ""
	next.CreatedAt = time.Time{}

	next.Date = dateutils.AddMonths(tx.Date, 1)
	next.PaymentDate = dateutils.AddMonthsPtr(tx.PaymentDate, 1)
	next.DueDate = dateutils.AddMonthsPtr(tx.DueDate, 1)

	next.LabelIDs = append([]string(nil), tx.LabelIDs...)
	return next
}

// Skip marks tx as skipped for the given month and returns the successor
// record to materialize for the following month. The caller must link the
// successor's store-assigned id into the update's
// GeneratedFutureTransactionID before committing, and commit both writes in
// one batch.
//
// Skipping an already-skipped month is a no-op: ok is false and nothing
// should be written.
func Skip(tx models.Transaction, month string) (successor models.Transaction, upd models.TransactionUpdate, ok bool) {
	if tx.IsSkippedIn(month) {
		return models.Transaction{}, models.TransactionUpdate{}, false
	}

	skipped := append(append([]string(nil), tx.SkippedInMonths...), month)
	slices.Sort(skipped)

	upd = models.TransactionUpdate{
		SkippedInMonths: models.Set(skipped),
	}
	return NextOccurrence(tx), upd, true
}

// Unskip reverses a skip: the month comes back out of SkippedInMonths and
// the materialized successor, if any, is deleted. deleteID is the successor
// to delete, or empty when no successor reference exists (repeated unskip is
// a no-op, not an error).
//
// ok is false when the month was not skipped at all; nothing should be
// written in that case.
func Unskip(tx models.Transaction, month string) (upd models.TransactionUpdate, deleteID string, ok bool) {
	if !tx.IsSkippedIn(month) {
		return models.TransactionUpdate{}, "", false
	}

	var skipped []string
	for _, m := range tx.SkippedInMonths {
		if m != month {
			skipped = append(skipped, m)
		}
	}

	upd = models.TransactionUpdate{
		GeneratedFutureTransactionID: models.Clear[string](),
	}
	if len(skipped) == 0 {
		upd.SkippedInMonths = models.Clear[[]string]()
	} else {
		upd.SkippedInMonths = models.Set(skipped)
	}
	return upd, tx.GeneratedFutureTransactionID, true
}
