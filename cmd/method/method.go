// Package method configures the profile's apportionment method.
package method

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/casa-ledger/cmd/root"
	"fjacquet/casa-ledger/internal/models"
)

var (
	methodName string
	percents   []string

	// Cmd is the method command.
	Cmd = &cobra.Command{
		Use:   "method",
		Short: "Set the shared-expense apportionment method",
		Long: `Sets how shared expenses split across subprofiles: manual (no
auto-split), proportional (by each subprofile's share of actual income), or
percentage (fixed shares via --percent, which must sum to 100). Switching
the method immediately rebuilds every shared record's children.`,
		RunE: run,
	}
)

func init() {
	Cmd.Flags().StringVarP(&methodName, "method", "m", "", "manual, proportional, or percentage")
	Cmd.Flags().StringSliceVar(&percents, "percent", nil, "subprofile share as id=percentage (repeatable)")
	_ = Cmd.MarkFlagRequired("method")
}

func parsePercents(raw []string) (map[string]decimal.Decimal, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	percentages := make(map[string]decimal.Decimal, len(raw))
	for _, entry := range raw {
		id, value, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --percent %q (want id=percentage)", entry)
		}
		pct, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("invalid percentage in %q: %w", entry, err)
		}
		percentages[id] = pct
	}
	return percentages, nil
}

func run(cmd *cobra.Command, args []string) error {
	c, profileID, err := root.Setup()
	if err != nil {
		return err
	}
	percentages, err := parsePercents(percents)
	if err != nil {
		return err
	}

	m := models.ApportionmentMethod(methodName)
	if err := c.Mutator().SetApportionmentMethod(cmd.Context(), profileID, m, percentages); err != nil {
		return err
	}
	fmt.Printf("Apportionment method set to %s\n", methodName)
	return nil
}
