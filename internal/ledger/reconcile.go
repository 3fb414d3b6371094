package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"fjacquet/casa-ledger/internal/apportion"
	"fjacquet/casa-ledger/internal/logging"
	"fjacquet/casa-ledger/internal/models"
	"fjacquet/casa-ledger/internal/storage"
)

// needsChildren reports whether a record gets apportioned children: a shared
// expense, itself not a generated child and not an installment, under a
// method that auto-splits. Series members are never split, so creation and
// reconciliation agree on which records carry children.
func needsChildren(tx models.Transaction, profile models.Profile) bool {
	return tx.IsShared && tx.IsExpense() && !tx.IsApportioned && !tx.IsSeriesMember() &&
		profile.ApportionmentMethod.AutoSplits()
}

// proportions computes the profile's current proportion map from the full
// transaction snapshot. When override is non-nil it replaces the stored
// version of that record, so proportions already reflect an edit that is
// part of the batch under assembly.
func (m *Mutator) proportions(ctx context.Context, profile models.Profile, override *models.Transaction) (map[string]decimal.Decimal, error) {
	txs, err := m.store.QueryTransactions(ctx, storage.TransactionQuery{ProfileID: profile.ID})
	if err != nil {
		return nil, err
	}
	applyOverride(txs, override)
	return apportion.Proportions(profile, txs), nil
}

// refreshChildren deletes a parent's existing children and, when the record
// still qualifies as a splittable shared parent after the update, recreates
// them from the new amounts and the current proportions. Children are never
// patched in place.
func (m *Mutator) refreshChildren(ctx context.Context, batch storage.Batch, profile models.Profile, before, after models.Transaction) error {
	wasParent := before.IsShared && !before.IsApportioned
	isParent := needsChildren(after, profile)
	if !wasParent && !isParent {
		return nil
	}

	children, err := m.store.QueryTransactions(ctx, storage.TransactionQuery{ParentID: before.ID})
	if err != nil {
		return err
	}
	for _, child := range children {
		batch.DeleteTransaction(child.ID)
	}

	if !isParent {
		return nil
	}
	props, err := m.proportions(ctx, profile, &after)
	if err != nil {
		return err
	}
	for _, child := range apportion.BuildChildren(after, props) {
		batch.CreateTransaction(child)
	}
	return nil
}

// planReconcile adds the profile-wide reconciliation pass to the batch:
// every existing apportioned child is deleted, then children are rebuilt for
// every shared parent the profile's method splits. This is the explicit
// full-rescan operation behind apportionment-method switches and touches of
// proportional shared parents; its cost is linear in the profile's whole
// ledger.
func (m *Mutator) planReconcile(ctx context.Context, batch storage.Batch, profile models.Profile, override *models.Transaction) error {
	txs, err := m.store.QueryTransactions(ctx, storage.TransactionQuery{ProfileID: profile.ID})
	if err != nil {
		return err
	}
	applyOverride(txs, override)

	props := apportion.Proportions(profile, txs)

	deleted, created := 0, 0
	for _, tx := range txs {
		if tx.IsApportioned {
			batch.DeleteTransaction(tx.ID)
			deleted++
		}
	}
	if len(props) > 0 {
		for _, tx := range txs {
			if !needsChildren(tx, profile) {
				continue
			}
			for _, child := range apportion.BuildChildren(tx, props) {
				batch.CreateTransaction(child)
				created++
			}
		}
	}

	m.log.Debug("apportionment reconciliation planned",
		logging.F("profile", profile.ID),
		logging.F("children_deleted", deleted),
		logging.F("children_created", created))
	return nil
}

// ReconcileApportionment rebuilds every apportioned child in the profile
// from the current method and proportions, as one batch.
func (m *Mutator) ReconcileApportionment(ctx context.Context, profileID string) error {
	profile, err := m.store.GetProfile(ctx, profileID)
	if err != nil {
		return err
	}

	batch := m.store.NewBatch()
	if err := m.planReconcile(ctx, batch, *profile, nil); err != nil {
		return err
	}
	if err := batch.Commit(ctx); err != nil {
		return err
	}
	m.log.Info("apportionment reconciled", logging.F("profile", profileID))
	return nil
}

func applyOverride(txs []models.Transaction, override *models.Transaction) {
	if override == nil {
		return
	}
	for i := range txs {
		if txs[i].ID == override.ID {
			txs[i] = *override
			return
		}
	}
}
