// Package remove deletes transactions, cascading to apportioned children or
// to later series members depending on scope.
package remove

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/casa-ledger/cmd/root"
	"fjacquet/casa-ledger/internal/series"
)

var (
	id    string
	scope string

	// Cmd is the remove command.
	Cmd = &cobra.Command{
		Use:   "remove",
		Short: "Delete a transaction",
		Long: `Deletes a transaction. --scope one removes the record and any
apportioned children generated from it; --scope future removes every series
member from this installment onward.`,
		RunE: run,
	}
)

func init() {
	Cmd.Flags().StringVar(&id, "id", "", "transaction id")
	Cmd.Flags().StringVar(&scope, "scope", string(series.ScopeOne), "delete scope: one or future")
	_ = Cmd.MarkFlagRequired("id")
}

func run(cmd *cobra.Command, args []string) error {
	c, _, err := root.Setup()
	if err != nil {
		return err
	}
	if err := c.Mutator().Delete(cmd.Context(), id, series.Scope(scope)); err != nil {
		return err
	}
	fmt.Printf("Deleted %s (scope %s)\n", id, scope)
	return nil
}
