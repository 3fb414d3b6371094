package recurrence

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fjacquet/casa-ledger/internal/apportion"
	"fjacquet/casa-ledger/internal/dateutils"
	"fjacquet/casa-ledger/internal/models"
)

// Rollover is one recurring parent rolled forward at month close. Children
// reference the successor through TempID, a correlation id the orchestrator
// resolves to the real store-assigned id when it creates the successor.
type Rollover struct {
	SourceID  string
	TempID    string
	Successor models.Transaction
	Children  []models.Transaction
}

// PlanClose selects every recurring parent of the closing month that still
// needs a next-month occurrence and plans its rollover.
//
// Eligible parents are recurring, not series members, not apportioned
// children, dated in the closing month, and not already skipped for it - a
// skip has already materialized its successor, and closing must not
// duplicate it. When the profile splits proportionally and the parent is
// shared, the successor gets fresh apportioned children from the current
// proportions.
func PlanClose(txs []models.Transaction, profile models.Profile, props map[string]decimal.Decimal, month string) []Rollover {
	var rollovers []Rollover
	for _, tx := range txs {
		if !tx.IsRecurringParent() {
			continue
		}
		if dateutils.MonthKey(tx.Date) != month {
			continue
		}
		if tx.IsSkippedIn(month) {
			continue
		}

		r := Rollover{
			SourceID:  tx.ID,
			TempID:    "pending-" + uuid.NewString(),
			Successor: NextOccurrence(tx),
		}

		if profile.ApportionmentMethod == models.MethodProportional && tx.IsShared && len(props) > 0 {
			splitParent := r.Successor
			splitParent.ID = r.TempID
			r.Children = apportion.BuildChildren(splitParent, props)
		}

		rollovers = append(rollovers, r)
	}
	return rollovers
}
