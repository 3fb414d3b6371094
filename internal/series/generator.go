// Package series expands installment purchases into dated series records and
// propagates edits across series members.
package series

import (
	"fmt"

	"github.com/google/uuid"

	"fjacquet/casa-ledger/internal/dateutils"
	"fjacquet/casa-ledger/internal/ledgererror"
	"fjacquet/casa-ledger/internal/models"
)

// Generate expands an installment purchase into TotalInstallments records,
// one per month starting at the form's base date, all sharing one freshly
// generated series id. Installment i (1-based) is dated i-1 months after the
// base date, with payment and due dates shifted the same way when present.
// Installments are never recurring.
func Generate(form models.TransactionFormState, profileID string) ([]models.Transaction, error) {
	if form.TotalInstallments < 2 {
		return nil, &ledgererror.ValidationError{
			Field:  "total_installments",
			Reason: fmt.Sprintf("an installment purchase needs at least 2 installments, got %d", form.TotalInstallments),
		}
	}

	seriesID := uuid.NewString()
	installments := make([]models.Transaction, 0, form.TotalInstallments)

	for i := 0; i < form.TotalInstallments; i++ {
		tx := form.NewTransaction(profileID)
		tx.IsRecurring = false
		tx.SeriesID = seriesID
		tx.CurrentInstallment = i + 1
		tx.TotalInstallments = form.TotalInstallments

		tx.Date = dateutils.AddMonths(form.Date, i)
		tx.PaymentDate = dateutils.AddMonthsPtr(form.PaymentDate, i)
		tx.DueDate = dateutils.AddMonthsPtr(form.DueDate, i)

		// Only the first installment can already be settled at purchase time.
		if i > 0 {
			tx.Paid = false
		}

		installments = append(installments, tx)
	}
	return installments, nil
}
