package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionFormState carries exactly the transaction fields a user-facing
// form can set: no identity, no profile ownership, no creation timestamp, no
// apportionment linkage, no skip state. IsInstallmentPurchase and
// TotalInstallments only drive installment expansion; they must never be
// persisted onto a single record that is not an actual series member.
type TransactionFormState struct {
	Type        TransactionType
	Description string

	IsShared     bool
	SubprofileID string

	Planned decimal.Decimal
	Actual  decimal.Decimal

	Date        time.Time
	PaymentDate *time.Time
	DueDate     *time.Time

	Paid        bool
	IsRecurring bool

	IsInstallmentPurchase bool
	TotalInstallments     int

	LabelIDs []string
	Notes    string
}

// NewTransaction builds a plain transaction for the given profile from the
// form. Installment expansion and apportionment are handled elsewhere; the
// returned record carries no series or apportionment metadata.
func (f TransactionFormState) NewTransaction(profileID string) Transaction {
	tx := Transaction{
		ProfileID:   profileID,
		Type:        f.Type,
		Description: f.Description,
		IsShared:    f.IsShared,
		Planned:     f.Planned,
		Actual:      f.Actual,
		Date:        f.Date,
		Paid:        f.Paid,
		IsRecurring: f.IsRecurring,
		LabelIDs:    f.LabelIDs,
		Notes:       f.Notes,
	}
	if !f.IsShared {
		tx.SubprofileID = f.SubprofileID
	}
	if f.PaymentDate != nil {
		d := *f.PaymentDate
		tx.PaymentDate = &d
	}
	if f.DueDate != nil {
		d := *f.DueDate
		tx.DueDate = &d
	}
	return tx
}
