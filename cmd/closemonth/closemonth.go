// Package closemonth rolls the ledger from one accounting month into the
// next.
package closemonth

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fjacquet/casa-ledger/cmd/root"
	"fjacquet/casa-ledger/internal/dateutils"
)

var (
	month string

	// Cmd is the close command.
	Cmd = &cobra.Command{
		Use:   "close",
		Short: "Close a month, rolling recurring records forward",
		Long: `Closes an accounting month: every eligible recurring record gets its
next-month occurrence (shared ones with fresh apportioned children under
proportional splitting), and the month is locked against closing again.
Records already skipped for the month are left alone.`,
		RunE: run,
	}
)

func init() {
	Cmd.Flags().StringVar(&month, "month", "", "month key YYYY-MM (defaults to current month)")
}

func run(cmd *cobra.Command, args []string) error {
	c, profileID, err := root.Setup()
	if err != nil {
		return err
	}
	m := month
	if m == "" {
		m = dateutils.MonthKey(time.Now())
	}
	if err := c.Mutator().CloseMonth(cmd.Context(), profileID, m); err != nil {
		return err
	}
	fmt.Printf("Closed %s\n", m)
	return nil
}
