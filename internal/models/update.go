package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionUpdate is a partial update of a Transaction. Untouched fields
// are left as-is; cleared fields are removed. Installment metadata
// (SeriesID, CurrentInstallment, TotalInstallments) is deliberately absent:
// it is series-level and immutable after creation.
type TransactionUpdate struct {
	Type        FieldUpdate[TransactionType]
	Description FieldUpdate[string]

	IsShared     FieldUpdate[bool]
	SubprofileID FieldUpdate[string]

	Planned FieldUpdate[decimal.Decimal]
	Actual  FieldUpdate[decimal.Decimal]

	Date        FieldUpdate[time.Time]
	PaymentDate FieldUpdate[time.Time]
	DueDate     FieldUpdate[time.Time]

	Paid FieldUpdate[bool]

	IsRecurring                  FieldUpdate[bool]
	SkippedInMonths              FieldUpdate[[]string]
	GeneratedFutureTransactionID FieldUpdate[string]

	LabelIDs FieldUpdate[[]string]
	Notes    FieldUpdate[string]
}

// Apply mutates t according to the update.
func (u TransactionUpdate) Apply(t *Transaction) {
	if v, ok := u.Type.Get(); ok {
		t.Type = v
	}
	if v, ok := u.Description.Get(); ok {
		t.Description = v
	}
	if v, ok := u.IsShared.Get(); ok {
		t.IsShared = v
	}
	if v, ok := u.SubprofileID.Get(); ok {
		t.SubprofileID = v
	} else if u.SubprofileID.IsClear() {
		t.SubprofileID = ""
	}
	if v, ok := u.Planned.Get(); ok {
		t.Planned = v
	}
	if v, ok := u.Actual.Get(); ok {
		t.Actual = v
	}
	if v, ok := u.Date.Get(); ok {
		t.Date = v
	}
	if v, ok := u.PaymentDate.Get(); ok {
		d := v
		t.PaymentDate = &d
	} else if u.PaymentDate.IsClear() {
		t.PaymentDate = nil
	}
	if v, ok := u.DueDate.Get(); ok {
		d := v
		t.DueDate = &d
	} else if u.DueDate.IsClear() {
		t.DueDate = nil
	}
	if v, ok := u.Paid.Get(); ok {
		t.Paid = v
	}
	if v, ok := u.IsRecurring.Get(); ok {
		t.IsRecurring = v
	}
	if v, ok := u.SkippedInMonths.Get(); ok {
		t.SkippedInMonths = v
	} else if u.SkippedInMonths.IsClear() {
		t.SkippedInMonths = nil
	}
	if v, ok := u.GeneratedFutureTransactionID.Get(); ok {
		t.GeneratedFutureTransactionID = v
	} else if u.GeneratedFutureTransactionID.IsClear() {
		t.GeneratedFutureTransactionID = ""
	}
	if v, ok := u.LabelIDs.Get(); ok {
		t.LabelIDs = v
	} else if u.LabelIDs.IsClear() {
		t.LabelIDs = nil
	}
	if v, ok := u.Notes.Get(); ok {
		t.Notes = v
	} else if u.Notes.IsClear() {
		t.Notes = ""
	}
}

// ProfileUpdate is a partial update of a Profile.
type ProfileUpdate struct {
	ApportionmentMethod FieldUpdate[ApportionmentMethod]
	Percentages         FieldUpdate[map[string]decimal.Decimal]
	ClosedMonths        FieldUpdate[[]string]
}

// Apply mutates p according to the update.
func (u ProfileUpdate) Apply(p *Profile) {
	if v, ok := u.ApportionmentMethod.Get(); ok {
		p.ApportionmentMethod = v
	}
	if v, ok := u.Percentages.Get(); ok {
		p.Percentages = v
	} else if u.Percentages.IsClear() {
		p.Percentages = nil
	}
	if v, ok := u.ClosedMonths.Get(); ok {
		p.ClosedMonths = v
	}
}
