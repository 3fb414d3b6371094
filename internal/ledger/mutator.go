// Package ledger provides the mutation façade of the household ledger: it
// sequences every user command into exactly one atomic store batch, pulling
// in date rolling, installment expansion, apportionment, and recurrence as
// needed. No partial application is ever observable; a command either
// commits as a whole or fails before any write is visible.
package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/casa-ledger/internal/apportion"
	"fjacquet/casa-ledger/internal/dateutils"
	"fjacquet/casa-ledger/internal/ledgererror"
	"fjacquet/casa-ledger/internal/logging"
	"fjacquet/casa-ledger/internal/models"
	"fjacquet/casa-ledger/internal/recurrence"
	"fjacquet/casa-ledger/internal/series"
	"fjacquet/casa-ledger/internal/storage"
)

// Mutator orchestrates ledger mutations. The store is injected so tests can
// substitute an in-memory implementation.
type Mutator struct {
	store storage.Store
	log   logging.Logger
}

// NewMutator creates a Mutator writing through the given store.
func NewMutator(store storage.Store, log logging.Logger) *Mutator {
	return &Mutator{store: store, log: log}
}

// Create records a new transaction for the profile. An installment purchase
// expands into its full series; a shared expense under an auto-splitting
// apportionment method additionally gets its apportioned children, all in
// the same batch. It returns the ids of every record created.
func (m *Mutator) Create(ctx context.Context, profileID string, form models.TransactionFormState) ([]string, error) {
	profile, err := m.store.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	batch := m.store.NewBatch()
	var ids []string

	if form.IsInstallmentPurchase {
		installments, err := series.Generate(form, profileID)
		if err != nil {
			return nil, err
		}
		for _, tx := range installments {
			ids = append(ids, batch.CreateTransaction(tx))
		}
	} else {
		tx := form.NewTransaction(profileID)
		tx.ID = batch.CreateTransaction(tx)
		ids = append(ids, tx.ID)

		if needsChildren(tx, *profile) {
			props, err := m.proportions(ctx, *profile, &tx)
			if err != nil {
				return nil, err
			}
			for _, child := range apportion.BuildChildren(tx, props) {
				ids = append(ids, batch.CreateTransaction(child))
			}
		}
	}

	if err := batch.Commit(ctx); err != nil {
		return nil, err
	}
	m.log.Info("transaction created",
		logging.F("profile", profileID),
		logging.F("records", len(ids)),
		logging.F("installments", form.IsInstallmentPurchase))
	return ids, nil
}

// Edit applies the form to an existing transaction. Edits to a series member
// propagate per the scope: "one" touches only the record itself, "future"
// also rewrites every later installment, shifting dates by the month offset
// when the edit moves the record to another month. Edits to a shared parent
// rebuild its apportioned children from the new amounts.
func (m *Mutator) Edit(ctx context.Context, id string, form models.TransactionFormState, scope series.Scope) error {
	if !series.ValidScope(scope) {
		return &ledgererror.ValidationError{Field: "scope", Reason: "unknown scope " + string(scope)}
	}
	tx, err := m.store.GetTransaction(ctx, id)
	if err != nil {
		return err
	}
	profile, err := m.store.GetProfile(ctx, tx.ProfileID)
	if err != nil {
		return err
	}

	batch := m.store.NewBatch()

	if tx.IsSeriesMember() {
		members := []models.Transaction{*tx}
		if scope == series.ScopeFuture {
			members, err = m.store.QueryTransactions(ctx, storage.TransactionQuery{
				SeriesID:       tx.SeriesID,
				MinInstallment: tx.CurrentInstallment,
			})
			if err != nil {
				return err
			}
		}
		for _, u := range series.PropagateEdit(*tx, form, members, scope) {
			batch.UpdateTransaction(u.ID, u.Update)
		}
	} else {
		upd := fullUpdate(form)
		batch.UpdateTransaction(tx.ID, upd)

		updated := *tx
		upd.Apply(&updated)
		if err := m.refreshChildren(ctx, batch, *profile, *tx, updated); err != nil {
			return err
		}
	}

	if err := batch.Commit(ctx); err != nil {
		return err
	}
	m.log.Info("transaction edited",
		logging.F("id", id),
		logging.F("scope", string(scope)),
		logging.F("series", tx.IsSeriesMember()))
	return nil
}

// Delete removes a transaction. Scope "one" removes the record and any
// apportioned children hanging off it; scope "future" removes every series
// member from this installment onward, each together with its children.
func (m *Mutator) Delete(ctx context.Context, id string, scope series.Scope) error {
	if !series.ValidScope(scope) {
		return &ledgererror.ValidationError{Field: "scope", Reason: "unknown scope " + string(scope)}
	}
	tx, err := m.store.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	batch := m.store.NewBatch()
	deleted := 0

	if scope == series.ScopeFuture && tx.IsSeriesMember() {
		members, err := m.store.QueryTransactions(ctx, storage.TransactionQuery{
			SeriesID:       tx.SeriesID,
			MinInstallment: tx.CurrentInstallment,
		})
		if err != nil {
			return err
		}
		for _, member := range members {
			batch.DeleteTransaction(member.ID)
			deleted++
			children, err := m.store.QueryTransactions(ctx, storage.TransactionQuery{ParentID: member.ID})
			if err != nil {
				return err
			}
			for _, child := range children {
				batch.DeleteTransaction(child.ID)
				deleted++
			}
		}
	} else {
		batch.DeleteTransaction(tx.ID)
		deleted++
		children, err := m.store.QueryTransactions(ctx, storage.TransactionQuery{ParentID: tx.ID})
		if err != nil {
			return err
		}
		for _, child := range children {
			batch.DeleteTransaction(child.ID)
			deleted++
		}
	}

	if err := batch.Commit(ctx); err != nil {
		return err
	}
	m.log.Info("transaction deleted",
		logging.F("id", id),
		logging.F("scope", string(scope)),
		logging.F("records", deleted))
	return nil
}

// Skip marks a recurring transaction as skipped for the given month and
// materializes next month's occurrence in the same batch, back-referenced so
// Unskip can take it out again. Skipping an already-skipped month is a
// no-op.
func (m *Mutator) Skip(ctx context.Context, id, month string) error {
	if _, err := dateutils.ParseMonthKey(month); err != nil {
		return &ledgererror.ValidationError{Field: "month", Reason: err.Error()}
	}
	tx, err := m.store.GetTransaction(ctx, id)
	if err != nil {
		return err
	}
	if !tx.IsRecurring {
		return &ledgererror.ValidationError{Field: "id", Reason: "skip only applies to recurring transactions"}
	}

	successor, upd, ok := recurrence.Skip(*tx, month)
	if !ok {
		m.log.Debug("skip is a no-op, month already skipped",
			logging.F("id", id), logging.F("month", month))
		return nil
	}

	batch := m.store.NewBatch()
	successorID := batch.CreateTransaction(successor)
	upd.GeneratedFutureTransactionID = models.Set(successorID)
	batch.UpdateTransaction(tx.ID, upd)

	if err := batch.Commit(ctx); err != nil {
		return err
	}
	m.log.Info("transaction skipped",
		logging.F("id", id),
		logging.F("month", month),
		logging.F("successor", successorID))
	return nil
}

// Unskip reverses a skip: the month is unmarked and the materialized
// successor is deleted. Unskipping a month that was never skipped, or whose
// successor is already gone, is a no-op, not an error.
func (m *Mutator) Unskip(ctx context.Context, id, month string) error {
	tx, err := m.store.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	upd, deleteID, ok := recurrence.Unskip(*tx, month)
	if !ok {
		m.log.Debug("unskip is a no-op, month not skipped",
			logging.F("id", id), logging.F("month", month))
		return nil
	}

	batch := m.store.NewBatch()
	batch.UpdateTransaction(tx.ID, upd)
	if deleteID != "" {
		// The successor may have been deleted independently; only delete it
		// when it still exists.
		if _, err := m.store.GetTransaction(ctx, deleteID); err == nil {
			batch.DeleteTransaction(deleteID)
		} else if !ledgererror.IsNotFound(err) {
			return err
		}
	}

	if err := batch.Commit(ctx); err != nil {
		return err
	}
	m.log.Info("transaction unskipped",
		logging.F("id", id), logging.F("month", month))
	return nil
}

// TransferTarget names where a transaction moves: to the house (shared) or
// to one subprofile.
type TransferTarget struct {
	ToShared     bool
	SubprofileID string
}

// Transfer moves a transaction between house-shared and subprofile-owned.
// Moving into shared under an auto-splitting method generates apportioned
// children; moving out of shared deletes any existing ones.
func (m *Mutator) Transfer(ctx context.Context, id string, target TransferTarget) error {
	tx, err := m.store.GetTransaction(ctx, id)
	if err != nil {
		return err
	}
	if tx.IsApportioned {
		return &ledgererror.ValidationError{Field: "id", Reason: "apportioned children cannot be transferred"}
	}
	profile, err := m.store.GetProfile(ctx, tx.ProfileID)
	if err != nil {
		return err
	}

	var upd models.TransactionUpdate
	if target.ToShared {
		upd.IsShared = models.Set(true)
		upd.SubprofileID = models.Clear[string]()
	} else {
		if !hasActiveSubprofile(*profile, target.SubprofileID) {
			return &ledgererror.ValidationError{
				Field:  "subprofile_id",
				Reason: "unknown or archived subprofile " + target.SubprofileID,
			}
		}
		upd.IsShared = models.Set(false)
		upd.SubprofileID = models.Set(target.SubprofileID)
	}

	batch := m.store.NewBatch()
	batch.UpdateTransaction(tx.ID, upd)

	updated := *tx
	upd.Apply(&updated)
	if err := m.refreshChildren(ctx, batch, *profile, *tx, updated); err != nil {
		return err
	}

	if err := batch.Commit(ctx); err != nil {
		return err
	}
	m.log.Info("transaction transferred",
		logging.F("id", id), logging.F("shared", target.ToShared))
	return nil
}

// SetPaid toggles the paid flag, scoped like an edit: scope "future" also
// flips every later member of the record's series. Touching an
// un-apportioned shared parent under proportional apportionment triggers the
// profile-wide reconciliation pass, since any field touch can shift the
// income distribution.
func (m *Mutator) SetPaid(ctx context.Context, id string, paid bool, scope series.Scope) error {
	if !series.ValidScope(scope) {
		return &ledgererror.ValidationError{Field: "scope", Reason: "unknown scope " + string(scope)}
	}
	tx, err := m.store.GetTransaction(ctx, id)
	if err != nil {
		return err
	}
	profile, err := m.store.GetProfile(ctx, tx.ProfileID)
	if err != nil {
		return err
	}

	batch := m.store.NewBatch()
	upd := models.TransactionUpdate{Paid: models.Set(paid)}

	reconciled := false
	if tx.IsShared && !tx.IsApportioned && profile.ApportionmentMethod == models.MethodProportional {
		updated := *tx
		upd.Apply(&updated)
		if err := m.planReconcile(ctx, batch, *profile, &updated); err != nil {
			return err
		}
		reconciled = true
	}

	if scope == series.ScopeFuture && tx.IsSeriesMember() {
		members, err := m.store.QueryTransactions(ctx, storage.TransactionQuery{
			SeriesID:       tx.SeriesID,
			MinInstallment: tx.CurrentInstallment,
		})
		if err != nil {
			return err
		}
		for _, member := range members {
			batch.UpdateTransaction(member.ID, upd)
		}
	} else {
		batch.UpdateTransaction(tx.ID, upd)
	}

	if err := batch.Commit(ctx); err != nil {
		return err
	}
	m.log.Info("paid flag updated",
		logging.F("id", id),
		logging.F("paid", paid),
		logging.F("reconciled", reconciled))
	return nil
}

// CloseMonth rolls every eligible recurring parent of the month forward and
// marks the month closed on the profile. Parents already skipped for the
// month are excluded - their successor already exists. Child records planned
// against a temporary correlation id are re-linked to the successor's real
// store-assigned id before commit.
func (m *Mutator) CloseMonth(ctx context.Context, profileID, month string) error {
	if _, err := dateutils.ParseMonthKey(month); err != nil {
		return &ledgererror.ValidationError{Field: "month", Reason: err.Error()}
	}
	profile, err := m.store.GetProfile(ctx, profileID)
	if err != nil {
		return err
	}
	if profile.IsMonthClosed(month) {
		return &ledgererror.ValidationError{Field: "month", Reason: "month " + month + " is already closed"}
	}

	monthTxs, err := m.store.QueryTransactions(ctx, storage.TransactionQuery{
		ProfileID: profileID,
		MonthKey:  month,
	})
	if err != nil {
		return err
	}
	props, err := m.proportions(ctx, *profile, nil)
	if err != nil {
		return err
	}

	rollovers := recurrence.PlanClose(monthTxs, *profile, props, month)

	batch := m.store.NewBatch()
	created := 0
	for _, r := range rollovers {
		successorID := batch.CreateTransaction(r.Successor)
		created++
		for _, child := range r.Children {
			// Resolve the temporary correlation id to the real identity.
			child.ParentID = successorID
			batch.CreateTransaction(child)
			created++
		}
	}

	closed := append(append([]string(nil), profile.ClosedMonths...), month)
	batch.UpdateProfile(profileID, models.ProfileUpdate{
		ClosedMonths: models.Set(closed),
	})

	if err := batch.Commit(ctx); err != nil {
		return err
	}
	m.log.Info("month closed",
		logging.F("profile", profileID),
		logging.F("month", month),
		logging.F("rollovers", len(rollovers)),
		logging.F("records", created))
	return nil
}

// SetApportionmentMethod changes how the profile splits shared expenses and
// reconciles every shared parent's children against the new method in the
// same batch. Percentage configurations must sum to 100 across active
// subprofiles; invalid configurations are rejected, never normalized.
func (m *Mutator) SetApportionmentMethod(ctx context.Context, profileID string, method models.ApportionmentMethod, percentages map[string]decimal.Decimal) error {
	if !models.ValidMethod(method) {
		return &ledgererror.ValidationError{Field: "method", Reason: "unknown apportionment method " + string(method)}
	}
	profile, err := m.store.GetProfile(ctx, profileID)
	if err != nil {
		return err
	}

	upd := models.ProfileUpdate{ApportionmentMethod: models.Set(method)}
	if method == models.MethodPercentage {
		if err := apportion.ValidatePercentages(percentages, profile.Subprofiles); err != nil {
			return err
		}
		upd.Percentages = models.Set(percentages)
	}

	// Reconcile against the profile as it will look after the update.
	next := *profile
	upd.Apply(&next)

	batch := m.store.NewBatch()
	batch.UpdateProfile(profileID, upd)
	if err := m.planReconcile(ctx, batch, next, nil); err != nil {
		return err
	}

	if err := batch.Commit(ctx); err != nil {
		return err
	}
	m.log.Info("apportionment method changed",
		logging.F("profile", profileID),
		logging.F("method", string(method)))
	return nil
}

func hasActiveSubprofile(profile models.Profile, id string) bool {
	for _, sp := range profile.ActiveSubprofiles() {
		if sp.ID == id {
			return true
		}
	}
	return false
}

// fullUpdate converts a form into the complete partial update for a plain
// (non-series) record. Installment metadata never appears here: installment
// counts are immutable after creation.
func fullUpdate(form models.TransactionFormState) models.TransactionUpdate {
	upd := models.TransactionUpdate{
		Type:        models.Set(form.Type),
		Description: models.Set(form.Description),
		Planned:     models.Set(form.Planned),
		Actual:      models.Set(form.Actual),
		Date:        models.Set(form.Date),
		Paid:        models.Set(form.Paid),
		IsRecurring: models.Set(form.IsRecurring),
		Notes:       models.Set(form.Notes),
		LabelIDs:    models.Set(form.LabelIDs),
	}
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
	if form.IsShared {
		upd.IsShared = models.Set(true)
		upd.SubprofileID = models.Clear[string]()
	} else {
		upd.IsShared = models.Set(false)
		upd.SubprofileID = models.Set(form.SubprofileID)
	}
	return upd
}
