// Package list prints one month of the ledger with planned and actual
// totals.
package list

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"fjacquet/casa-ledger/cmd/root"
	"fjacquet/casa-ledger/internal/dateutils"
	"fjacquet/casa-ledger/internal/models"
	"fjacquet/casa-ledger/internal/storage"
)

var (
	month string

	// Cmd is the list command.
	Cmd = &cobra.Command{
		Use:   "list",
		Short: "Show one month of the ledger",
		RunE:  run,
	}
)

func init() {
	Cmd.Flags().StringVar(&month, "month", "", "month key YYYY-MM (defaults to current month)")
}

func ownerLabel(tx models.Transaction, profile models.Profile) string {
	if tx.IsShared {
		return "house"
	}
	for _, sp := range profile.Subprofiles {
		if sp.ID == tx.SubprofileID {
			return sp.Name
		}
	}
	return tx.SubprofileID
}

func flagLabel(tx models.Transaction, month string) string {
	switch {
	case tx.IsApportioned:
		return "child"
	case tx.IsSeriesMember():
		return fmt.Sprintf("%d/%d", tx.CurrentInstallment, tx.TotalInstallments)
	case tx.IsRecurring && tx.IsSkippedIn(month):
		return "skipped"
	case tx.IsRecurring:
		return "recurring"
	}
	return ""
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

	ctx := cmd.Context()
	profile, err := c.Store().GetProfile(ctx, profileID)
	if err != nil {
		return err
	}
	txs, err := c.Store().QueryTransactions(ctx, storage.TransactionQuery{
		ProfileID: profileID,
		MonthKey:  m,
	})
	if err != nil {
		return err
	}

	closed := ""
	if profile.IsMonthClosed(m) {
		closed = " (closed)"
	}
	fmt.Printf("%s - %s%s\n\n", profile.Name, m, closed)

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTYPE\tDESCRIPTION\tOWNER\tPLANNED\tACTUAL\tPAID\t")

	plannedIn, actualIn := decimal.Zero, decimal.Zero
	plannedOut, actualOut := decimal.Zero, decimal.Zero
	subActual := map[string]decimal.Decimal{}

	for _, tx := range txs {
		paid := ""
		if tx.Paid {
			paid = "yes"
		}
		desc := tx.Description
		if label := flagLabel(tx, m); label != "" {
			desc = fmt.Sprintf("%s [%s]", desc, label)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			tx.ID,
			dateutils.ToISODate(tx.Date),
			tx.Type,
			desc,
			ownerLabel(tx, *profile),
			tx.Planned.StringFixed(2),
			tx.Actual.StringFixed(2),
			paid)

		// A subprofile's burden for the month: its own expenses plus its
		// apportioned slices of shared ones.
		if tx.IsExpense() && tx.SubprofileID != "" {
			subActual[tx.SubprofileID] = subActual[tx.SubprofileID].Add(tx.Actual)
		}

		// Children realize their parent's amount; counting both would double
		// the totals.
		if tx.IsApportioned {
			continue
		}
		if tx.IsIncome() {
			plannedIn = plannedIn.Add(tx.Planned)
			actualIn = actualIn.Add(tx.Actual)
		} else {
			plannedOut = plannedOut.Add(tx.Planned)
			actualOut = actualOut.Add(tx.Actual)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nincome   planned %s  actual %s\n", plannedIn.StringFixed(2), actualIn.StringFixed(2))
	fmt.Printf("expense  planned %s  actual %s\n", plannedOut.StringFixed(2), actualOut.StringFixed(2))
	fmt.Printf("balance  planned %s  actual %s\n",
		plannedIn.Sub(plannedOut).StringFixed(2),
		actualIn.Sub(actualOut).StringFixed(2))

	for _, sp := range profile.Subprofiles {
		total, ok := subActual[sp.ID]
		if !ok {
			continue
		}
		fmt.Printf("%-8s expenses %s\n", sp.Name, total.StringFixed(2))
	}
	return nil
}
