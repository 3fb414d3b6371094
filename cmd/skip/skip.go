// Package skip toggles the per-month skip state of recurring transactions.
package skip

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fjacquet/casa-ledger/cmd/root"
	"fjacquet/casa-ledger/internal/dateutils"
)

var (
	id    string
	month string

	// Cmd is the skip command.
	Cmd = &cobra.Command{
		Use:   "skip",
		Short: "Skip a recurring transaction for one month",
		Long: `Marks a recurring transaction as skipped for the given month and
materializes next month's occurrence in the same atomic batch. Use unskip
to reverse it.`,
		RunE: run,
	}

	// UnskipCmd reverses a skip.
	UnskipCmd = &cobra.Command{
		Use:   "unskip",
		Short: "Reverse a skip, deleting the materialized occurrence",
		RunE:  runUnskip,
	}
)

func init() {
	for _, cmd := range []*cobra.Command{Cmd, UnskipCmd} {
		cmd.Flags().StringVar(&id, "id", "", "transaction id")
		cmd.Flags().StringVar(&month, "month", "", "month key YYYY-MM (defaults to current month)")
		_ = cmd.MarkFlagRequired("id")
	}
}

func monthOrNow() string {
	if month != "" {
		return month
	}
	return dateutils.MonthKey(time.Now())
}

func run(cmd *cobra.Command, args []string) error {
	c, _, err := root.Setup()
	if err != nil {
		return err
	}
	m := monthOrNow()
	if err := c.Mutator().Skip(cmd.Context(), id, m); err != nil {
		return err
	}
	fmt.Printf("Skipped %s for %s\n", id, m)
	return nil
}

func runUnskip(cmd *cobra.Command, args []string) error {
	c, _, err := root.Setup()
	if err != nil {
		return err
	}
	m := monthOrNow()
	if err := c.Mutator().Unskip(cmd.Context(), id, m); err != nil {
		return err
	}
	fmt.Printf("Unskipped %s for %s\n", id, m)
	return nil
}
