package apportion

import (
	"sort"

	"github.com/shopspring/decimal"

	"fjacquet/casa-ledger/internal/models"
)

// AllocationPrefix marks the description of generated child records.
const AllocationPrefix = "Allocation: "

// BuildChildren produces the child records that realize a shared parent's
// split across subprofiles. Each child carries one subprofile's slice of the
// parent's planned and actual amounts and links back via ParentID.
//
// Children are always rebuilt from scratch (delete all, then recreate from
// the current proportions) rather than patched incrementally, so amounts
// never drift from the parent. The returned records have no ids; the store
// assigns them at batch create.
func BuildChildren(parent models.Transaction, props map[string]decimal.Decimal) []models.Transaction {
	if len(props) == 0 {
		return nil
	}

	ids := make([]string, 0, len(props))
	for id := range props {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	children := make([]models.Transaction, 0, len(ids))
	for _, subID := range ids {
		p := props[subID]
		child := models.Transaction{
			ProfileID:     parent.ProfileID,
			Type:          parent.Type,
			Description:   AllocationPrefix + parent.Description,
			IsShared:      false,
			SubprofileID:  subID,
			Planned:       parent.Planned.Mul(p),
			Actual:        parent.Actual.Mul(p),
			Date:          parent.Date,
			Paid:          parent.Paid,
			IsApportioned: true,
			ParentID:      parent.ID,
			LabelIDs:      append([]string(nil), parent.LabelIDs...),
		}
		if parent.PaymentDate != nil {
			d := *parent.PaymentDate
			child.PaymentDate = &d
		}
		if parent.DueDate != nil {
			d := *parent.DueDate
			child.DueDate = &d
		}
		children = append(children, child)
	}
	return children
}
