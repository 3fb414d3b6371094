// Package initcmd bootstraps a new household profile in the ledger file.
package initcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/casa-ledger/cmd/root"
)

var (
	name        string
	subprofiles []string

	// Cmd is the init command.
	Cmd = &cobra.Command{
		Use:   "init",
		Short: "Create the household profile",
		Long: `Creates the household profile this ledger tracks, together with its
subprofiles. The apportionment method starts out manual; use "method" to
switch to proportional or percentage splitting.`,
		RunE: run,
	}
)

func init() {
	Cmd.Flags().StringVarP(&name, "name", "n", "Household", "profile display name")
	Cmd.Flags().StringSliceVar(&subprofiles, "sub", nil, "subprofile name (repeatable)")
}

func run(cmd *cobra.Command, args []string) error {
	c, profileID, err := root.Setup()
	if err != nil {
		return err
	}

	profile, err := c.Mutator().CreateProfile(cmd.Context(), profileID, name, subprofiles)
	if err != nil {
		return err
	}

	fmt.Printf("Profile %q created as %s\n", profile.Name, profile.ID)
	for _, sp := range profile.Subprofiles {
		fmt.Printf("  subprofile %-20s %s\n", sp.Name, sp.ID)
	}
	return nil
}
