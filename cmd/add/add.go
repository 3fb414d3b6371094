// Package add records new transactions: plain, recurring, or installment
// purchases expanded into a series.
package add

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/casa-ledger/cmd/common"
	"fjacquet/casa-ledger/cmd/root"
)

var (
	form common.FormFlags

	// Cmd is the add command.
	Cmd = &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		Long: `Records a new income or expense. With --installment the purchase is
expanded into one dated record per installment, all linked as a series.
A --shared expense is split into subprofile children when the profile's
apportionment method auto-splits.`,
		RunE: run,
	}
)

func init() {
	form.Register(Cmd)
}

func run(cmd *cobra.Command, args []string) error {
	c, profileID, err := root.Setup()
	if err != nil {
		return err
	}
	state, err := form.Build()
	if err != nil {
		return err
	}

	ids, err := c.Mutator().Create(cmd.Context(), profileID, state)
	if err != nil {
		return err
	}

	fmt.Printf("Created %d record(s):\n", len(ids))
	for _, id := range ids {
		fmt.Printf("  %s\n", id)
	}
	return nil
}
