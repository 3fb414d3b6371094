// Package apportion computes shared-expense splits across subprofiles and
// builds the generated child records that realize them.
package apportion

import (
	"github.com/shopspring/decimal"

	"fjacquet/casa-ledger/internal/ledgererror"
	"fjacquet/casa-ledger/internal/models"
)

var hundred = decimal.NewFromInt(100)

// percentageTolerance allows for sub-cent noise when checking that
// configured percentages sum to 100.
var percentageTolerance = decimal.New(1, -9)

// Proportions computes, per active subprofile, its share (0..1) of a shared
// amount under the profile's apportionment method.
//
// Manual mode computes nothing and returns nil: the caller must not
// auto-split. With zero active subprofiles the result is an empty map and
// shared expenses stay unsplit. Otherwise the returned proportions sum to 1.
func Proportions(profile models.Profile, txs []models.Transaction) map[string]decimal.Decimal {
	if profile.ApportionmentMethod == models.MethodManual {
		return nil
	}

	active := profile.ActiveSubprofiles()
	props := make(map[string]decimal.Decimal, len(active))
	if len(active) == 0 {
		return props
	}

	switch profile.ApportionmentMethod {
	case models.MethodPercentage:
		for _, sp := range active {
			props[sp.ID] = profile.Percentages[sp.ID].Div(hundred)
		}

	case models.MethodProportional:
		incomes := make(map[string]decimal.Decimal, len(active))
		total := decimal.Zero
		for _, sp := range active {
			incomes[sp.ID] = decimal.Zero
		}
		for _, tx := range txs {
			if !tx.IsIncome() || tx.SubprofileID == "" {
				continue
			}
			sum, ok := incomes[tx.SubprofileID]
			if !ok {
				// Income owned by an archived subprofile does not shift the
				// split.
				continue
			}
			incomes[tx.SubprofileID] = sum.Add(tx.Actual)
			total = total.Add(tx.Actual)
		}

		if total.IsZero() {
			// No income recorded: fall back to an equal split.
			equal := decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(len(active))))
			for _, sp := range active {
				props[sp.ID] = equal
			}
			break
		}
		for _, sp := range active {
			props[sp.ID] = incomes[sp.ID].Div(total)
		}
	}

	return props
}

// ValidatePercentages checks that a percentage-mode configuration assigns a
// share to every active subprofile and that the shares sum to 100. Callers
// must reject the save on error rather than silently normalizing.
func ValidatePercentages(percentages map[string]decimal.Decimal, subprofiles []models.Subprofile) error {
	sum := decimal.Zero
	for _, sp := range subprofiles {
		if sp.Archived {
			continue
		}
		pct, ok := percentages[sp.ID]
		if !ok {
			return &ledgererror.ValidationError{
				Field:  "percentages",
				Reason: "no percentage configured for subprofile " + sp.ID,
			}
		}
		if pct.IsNegative() {
			return &ledgererror.ValidationError{
				Field:  "percentages",
				Reason: "percentage for subprofile " + sp.ID + " is negative",
			}
		}
		sum = sum.Add(pct)
	}
	if sum.Sub(hundred).Abs().GreaterThan(percentageTolerance) {
		return &ledgererror.ValidationError{
			Field:  "percentages",
			Reason: "percentages sum to " + sum.String() + ", want 100",
		}
	}
	return nil
}
