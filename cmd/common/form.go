// Package common holds flag plumbing shared by the transaction commands.
package common

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/casa-ledger/internal/dateutils"
	"fjacquet/casa-ledger/internal/models"
)

// FormFlags collects the transaction form fields as raw flag values. Both
// add and edit register the same set so the form surface stays consistent.
type FormFlags struct {
	Type        string
	Description string
	Planned     string
	Actual      string
	Date        string
	PaymentDate string
	DueDate     string
	Shared      bool
	Subprofile  string
	Paid        bool
	Recurring   bool
	Installment bool
	Count       int
	Notes       string
	Labels      []string
}

// Register wires the form flags onto a command.
func (f *FormFlags) Register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Type, "type", "t", "expense", "transaction type: income or expense")
	cmd.Flags().StringVarP(&f.Description, "desc", "d", "", "description")
	cmd.Flags().StringVar(&f.Planned, "planned", "0", "planned amount")
	cmd.Flags().StringVar(&f.Actual, "actual", "0", "actual amount")
	cmd.Flags().StringVar(&f.Date, "date", "", "ledger date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&f.PaymentDate, "payment-date", "", "payment date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.DueDate, "due-date", "", "due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&f.Shared, "shared", false, "house-shared record (no subprofile)")
	cmd.Flags().StringVar(&f.Subprofile, "sub", "", "owning subprofile id")
	cmd.Flags().BoolVar(&f.Paid, "paid", false, "already paid")
	cmd.Flags().BoolVar(&f.Recurring, "recurring", false, "recurs monthly")
	cmd.Flags().BoolVar(&f.Installment, "installment", false, "installment purchase, expands into a series")
	cmd.Flags().IntVar(&f.Count, "installments", 0, "number of installments (with --installment)")
	cmd.Flags().StringVar(&f.Notes, "notes", "", "free-form notes")
	cmd.Flags().StringSliceVar(&f.Labels, "label", nil, "label id (repeatable)")
}

// Build parses the raw flag values into a TransactionFormState.
func (f *FormFlags) Build() (models.TransactionFormState, error) {
	var form models.TransactionFormState

	switch f.Type {
	case string(models.TypeIncome):
		form.Type = models.TypeIncome
	case string(models.TypeExpense):
		form.Type = models.TypeExpense
	default:
		return form, fmt.Errorf("invalid type %q (want income or expense)", f.Type)
	}

	if f.Description == "" {
		return form, fmt.Errorf("description is required")
	}
	form.Description = f.Description

	planned, err := decimal.NewFromString(f.Planned)
	if err != nil {
		return form, fmt.Errorf("invalid planned amount %q: %w", f.Planned, err)
	}
	actual, err := decimal.NewFromString(f.Actual)
	if err != nil {
		return form, fmt.Errorf("invalid actual amount %q: %w", f.Actual, err)
	}
	form.Planned = planned
	form.Actual = actual

	now := time.Now()
	form.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if f.Date != "" {
		if form.Date, err = dateutils.ParseDate(f.Date); err != nil {
			return form, err
		}
	}
	if f.PaymentDate != "" {
		d, err := dateutils.ParseDate(f.PaymentDate)
		if err != nil {
			return form, err
		}
		form.PaymentDate = &d
	}
	if f.DueDate != "" {
		d, err := dateutils.ParseDate(f.DueDate)
		if err != nil {
			return form, err
		}
		form.DueDate = &d
	}

	if f.Shared && f.Subprofile != "" {
		return form, fmt.Errorf("--shared and --sub are mutually exclusive")
	}
	if !f.Shared && f.Subprofile == "" {
		return form, fmt.Errorf("either --shared or --sub is required")
	}
	form.IsShared = f.Shared
	form.SubprofileID = f.Subprofile

	if f.Installment && f.Recurring {
		return form, fmt.Errorf("--installment and --recurring are mutually exclusive")
	}
	form.Paid = f.Paid
	form.IsRecurring = f.Recurring
	form.IsInstallmentPurchase = f.Installment
	form.TotalInstallments = f.Count

	form.Notes = f.Notes
	form.LabelIDs = f.Labels
	return form, nil
}
