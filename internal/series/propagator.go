package series

import (
	"time"

	"fjacquet/casa-ledger/internal/dateutils"
	"fjacquet/casa-ledger/internal/models"
)

// Scope selects how far an edit or delete reaches into a series.
type Scope string

const (
	// ScopeOne touches only the record itself.
	ScopeOne Scope = "one"
	// ScopeFuture touches the record and every later member of its series.
	ScopeFuture Scope = "future"
)

// ValidScope reports whether s is a known scope.
func ValidScope(s Scope) bool {
	return s == ScopeOne || s == ScopeFuture
}

// MemberUpdate pairs a series member id with the partial update to apply.
type MemberUpdate struct {
	ID     string
	Update models.TransactionUpdate
}

// PropagateEdit computes the updates for editing one installment of a
// series.
//
// With ScopeOne only the edited record changes, including its dates and paid
// flag; installment count metadata is series-level and never written.
//
// With ScopeFuture the non-date form fields apply uniformly to the edited
// record and every later member ("members" must be the series members with
// CurrentInstallment >= the edited one, the edited record included). When
// the form moves the edited record to a different month, every member's
// date, payment date, and due date shift by that same month offset. Paid is
// only ever written on the edited record.
func PropagateEdit(edited models.Transaction, form models.TransactionFormState, members []models.Transaction, scope Scope) []MemberUpdate {
	if scope == ScopeOne {
		upd := uniformUpdate(form)
		upd.Paid = models.Set(form.Paid)
		setExplicitDates(&upd, form)
		return []MemberUpdate{{ID: edited.ID, Update: upd}}
	}

	monthDiff := dateutils.MonthDiff(edited.Date, form.Date)

	updates := make([]MemberUpdate, 0, len(members))
	for _, member := range members {
		upd := uniformUpdate(form)
		if member.ID == edited.ID {
			upd.Paid = models.Set(form.Paid)
		}

		switch {
		case monthDiff == 0 && member.ID == edited.ID:
			// Same month: only the edited record takes the explicit dates
			// from the form (the day-of-month may still have changed).
			setExplicitDates(&upd, form)
		case monthDiff != 0:
			upd.Date = models.Set(dateutils.AddMonths(member.Date, monthDiff))
			if member.PaymentDate != nil {
				upd.PaymentDate = models.Set(dateutils.AddMonths(*member.PaymentDate, monthDiff))
			}
			if member.DueDate != nil {
				upd.DueDate = models.Set(dateutils.AddMonths(*member.DueDate, monthDiff))
			}
		}

		updates = append(updates, MemberUpdate{ID: member.ID, Update: upd})
	}
	return updates
}

// uniformUpdate builds the non-date field updates shared by every touched
// member, including the ownership change when the edit flips the series
// between shared and subprofile-owned.
func uniformUpdate(form models.TransactionFormState) models.TransactionUpdate {
	upd := models.TransactionUpdate{
		Type:        models.Set(form.Type),
		Description: models.Set(form.Description),
		Planned:     models.Set(form.Planned),
		Actual:      models.Set(form.Actual),
		Notes:       models.Set(form.Notes),
		LabelIDs:    models.Set(form.LabelIDs),
	}
	if form.IsShared {
		upd.IsShared = models.Set(true)
		upd.SubprofileID = models.Clear[string]()
	} else {
		upd.IsShared = models.Set(false)
		upd.SubprofileID = models.Set(form.SubprofileID)
	}
	return upd
}

func setExplicitDates(upd *models.TransactionUpdate, form models.TransactionFormState) {
	upd.Date = models.Set(form.Date)
	if form.PaymentDate != nil {
		upd.PaymentDate = models.Set(*form.PaymentDate)
	} else {
		upd.PaymentDate = models.Clear[time.Time]()
	}
	if form.DueDate != nil {
		upd.DueDate = models.Set(*form.DueDate)
	} else {
		upd.DueDate = models.Clear[time.Time]()
	}
}
