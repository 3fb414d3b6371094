package models

import (
	"slices"

	"github.com/shopspring/decimal"
)

// ApportionmentMethod selects how shared expenses are split across
// subprofiles.
type ApportionmentMethod string

const (
	// MethodManual leaves shared expenses unsplit; the user allocates by hand.
	MethodManual ApportionmentMethod = "manual"
	// MethodProportional splits by each subprofile's share of total actual
	// income.
	MethodProportional ApportionmentMethod = "proportional"
	// MethodPercentage splits by administrator-set percentages.
	MethodPercentage ApportionmentMethod = "percentage"
)

// ValidMethod reports whether m is one of the known apportionment methods.
func ValidMethod(m ApportionmentMethod) bool {
	switch m {
	case MethodManual, MethodProportional, MethodPercentage:
		return true
	}
	return false
}

// AutoSplits reports whether the method generates apportioned children.
func (m ApportionmentMethod) AutoSplits() bool {
	return m == MethodProportional || m == MethodPercentage
}

// Subprofile is one member of a household profile.
type Subprofile struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Archived bool   `json:"archived,omitempty" yaml:"archived,omitempty"`
}

// Profile is the household: it owns the subprofiles, the apportionment
// configuration, and the set of months already closed.
type Profile struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Subprofiles []Subprofile `json:"subprofiles,omitempty" yaml:"subprofiles,omitempty"`

	ApportionmentMethod ApportionmentMethod `json:"apportionment_method" yaml:"apportionment_method"`

	// Percentages maps subprofile id to its share (0..100) when the method is
	// percentage. Validated to sum to 100 at configuration time.
	Percentages map[string]decimal.Decimal `json:"percentages,omitempty" yaml:"percentages,omitempty"`

	ClosedMonths []string `json:"closed_months,omitempty" yaml:"closed_months,omitempty"`
}

// ActiveSubprofiles returns the subprofiles that are not archived.
func (p Profile) ActiveSubprofiles() []Subprofile {
	var active []Subprofile
	for _, sp := range p.Subprofiles {
		if !sp.Archived {
			active = append(active, sp)
		}
	}
	return active
}

// IsMonthClosed reports whether the given month key has been closed.
func (p Profile) IsMonthClosed(month string) bool {
	return slices.Contains(p.ClosedMonths, month)
}
