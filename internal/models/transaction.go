// Package models provides the data structures used throughout the application.
package models

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction as money in or money out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction is the atomic ledger record. A transaction is either a plain
// record, a recurring record, one installment of a series, or an apportioned
// child generated from a shared parent - the flags below are mutually
// exclusive along those lines.
type Transaction struct {
	ID        string          `json:"id" yaml:"id"`
	ProfileID string          `json:"profile_id" yaml:"profile_id"`
	Type      TransactionType `json:"type" yaml:"type"`

	Description string `json:"description" yaml:"description"`

	// Ownership: a shared record belongs to the house and carries no
	// subprofile; an owned record carries exactly one. Apportioned children
	// always carry a subprofile and are never shared.
	IsShared     bool   `json:"is_shared" yaml:"is_shared"`
	SubprofileID string `json:"subprofile_id,omitempty" yaml:"subprofile_id,omitempty"`

	Planned decimal.Decimal `json:"planned" yaml:"planned"`
	Actual  decimal.Decimal `json:"actual" yaml:"actual"`

	// Date anchors the record to its ledger month. PaymentDate and DueDate
	// are optional companions that shift together with Date.
	Date        time.Time  `json:"date" yaml:"date"`
	PaymentDate *time.Time `json:"payment_date,omitempty" yaml:"payment_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty" yaml:"due_date,omitempty"`

	Paid bool `json:"paid" yaml:"paid"`

	// Recurrence state. SkippedInMonths holds "YYYY-MM" keys;
	// GeneratedFutureTransactionID points at the occurrence materialized by
	// the most recent skip, so unskip can take it back out.
	IsRecurring                  bool     `json:"is_recurring" yaml:"is_recurring"`
	SkippedInMonths              []string `json:"skipped_in_months,omitempty" yaml:"skipped_in_months,omitempty"`
	GeneratedFutureTransactionID string   `json:"generated_future_transaction_id,omitempty" yaml:"generated_future_transaction_id,omitempty"`

	// Installment series linkage. All members of one purchase share a
	// SeriesID and carry consecutive CurrentInstallment values
	// 1..TotalInstallments.
	SeriesID           string `json:"series_id,omitempty" yaml:"series_id,omitempty"`
	CurrentInstallment int    `json:"current_installment,omitempty" yaml:"current_installment,omitempty"`
	TotalInstallments  int    `json:"total_installments,omitempty" yaml:"total_installments,omitempty"`

	// Apportionment linkage for generated children.
	IsApportioned bool   `json:"is_apportioned" yaml:"is_apportioned"`
	ParentID      string `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`

	LabelIDs  []string  `json:"label_ids,omitempty" yaml:"label_ids,omitempty"`
	Notes     string    `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// IsSeriesMember reports whether the transaction belongs to an installment
// series.
func (t Transaction) IsSeriesMember() bool {
	return t.SeriesID != ""
}

// IsSkippedIn reports whether the transaction is marked skipped for the given
// month key.
func (t Transaction) IsSkippedIn(month string) bool {
	return slices.Contains(t.SkippedInMonths, month)
}

// IsRecurringParent reports whether the transaction is eligible for
// recurrence rollover: recurring, not part of a series, and not a generated
// child.
func (t Transaction) IsRecurringParent() bool {
	return t.IsRecurring && t.SeriesID == "" && !t.IsApportioned
}

// IsIncome reports whether the transaction is an income record.
func (t Transaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// IsExpense reports whether the transaction is an expense record.
func (t Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}
