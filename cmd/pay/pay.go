// Package pay toggles the paid flag on a transaction.
package pay

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/casa-ledger/cmd/root"
	"fjacquet/casa-ledger/internal/series"
)

var (
	id     string
	scope  string
	unpaid bool

	// Cmd is the pay command.
	Cmd = &cobra.Command{
		Use:   "pay",
		Short: "Mark a transaction paid (or unpaid with --unpaid)",
		Long: `Toggles the paid flag. With --scope future on a series member the flag
also applies to every later installment.`,
		RunE: run,
	}
)

func init() {
	Cmd.Flags().StringVar(&id, "id", "", "transaction id")
	Cmd.Flags().StringVar(&scope, "scope", string(series.ScopeOne), "scope: one or future")
	Cmd.Flags().BoolVar(&unpaid, "unpaid", false, "mark unpaid instead of paid")
	_ = Cmd.MarkFlagRequired("id")
}

func run(cmd *cobra.Command, args []string) error {
	c, _, err := root.Setup()
	if err != nil {
		return err
	}
	paid := !unpaid
	if err := c.Mutator().SetPaid(cmd.Context(), id, paid, series.Scope(scope)); err != nil {
		return err
	}
	fmt.Printf("Marked %s paid=%t (scope %s)\n", id, paid, scope)
	return nil
}
