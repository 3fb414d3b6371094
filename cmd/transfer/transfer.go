// Package transfer moves transactions between house-shared and
// subprofile-owned.
package transfer

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/casa-ledger/cmd/root"
	"fjacquet/casa-ledger/internal/ledger"
)

var (
	id       string
	toShared bool
	toSub    string

	// Cmd is the transfer command.
	Cmd = &cobra.Command{
		Use:   "transfer",
		Short: "Move a transaction between the house and a subprofile",
		Long: `Moves a transaction to the house (--to-shared) or to one subprofile
(--to-sub). Moving into shared under an auto-splitting apportionment method
generates apportioned children; moving out deletes any existing ones.`,
		RunE: run,
	}
)

func init() {
	Cmd.Flags().StringVar(&id, "id", "", "transaction id")
	Cmd.Flags().BoolVar(&toShared, "to-shared", false, "move to the house")
	Cmd.Flags().StringVar(&toSub, "to-sub", "", "move to this subprofile id")
	_ = Cmd.MarkFlagRequired("id")
}

func run(cmd *cobra.Command, args []string) error {
	if toShared == (toSub != "") {
		return fmt.Errorf("exactly one of --to-shared or --to-sub is required")
	}
	c, _, err := root.Setup()
	if err != nil {
		return err
	}

	target := ledger.TransferTarget{ToShared: toShared, SubprofileID: toSub}
	if err := c.Mutator().Transfer(cmd.Context(), id, target); err != nil {
		return err
	}
	if toShared {
		fmt.Printf("Transferred %s to the house\n", id)
	} else {
		fmt.Printf("Transferred %s to subprofile %s\n", id, toSub)
	}
	return nil
}
