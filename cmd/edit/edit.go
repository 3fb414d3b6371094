// Package edit applies a new form state to an existing transaction, with a
// one-vs-future scope for installment series.
package edit

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/casa-ledger/cmd/common"
	"fjacquet/casa-ledger/cmd/root"
	"fjacquet/casa-ledger/internal/series"
)

var (
	id    string
	scope string
	form  common.FormFlags

	// Cmd is the edit command.
	Cmd = &cobra.Command{
		Use:   "edit",
		Short: "Edit a transaction",
		Long: `Edits a transaction. For a series member, --scope one touches only the
record itself while --scope future also rewrites every later installment,
shifting dates by the month offset when the edit moves the record to a
different month.`,
		RunE: run,
	}
)

func init() {
	Cmd.Flags().StringVar(&id, "id", "", "transaction id")
	Cmd.Flags().StringVar(&scope, "scope", string(series.ScopeOne), "edit scope: one or future")
	_ = Cmd.MarkFlagRequired("id")
	form.Register(Cmd)
}

func run(cmd *cobra.Command, args []string) error {
	c, _, err := root.Setup()
	if err != nil {
		return err
	}
	state, err := form.Build()
	if err != nil {
		return err
	}

	if err := c.Mutator().Edit(cmd.Context(), id, state, series.Scope(scope)); err != nil {
		return err
	}
	fmt.Printf("Edited %s (scope %s)\n", id, scope)
	return nil
}
