// Package root contains the root command for the application.
package root

import (
	"github.com/spf13/cobra"

	"fjacquet/casa-ledger/internal/config"
	"fjacquet/casa-ledger/internal/container"
)

var (
	ledgerFile string
	profileID  string

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "casa-ledger",
		Short: "A household ledger tracking planned vs. actual income and expenses.",
		Long: `casa-ledger is a household ledger CLI. It tracks planned vs. actual
income and expense records across a profile and its subprofiles, expands
installment purchases, rolls recurring records from month to month, and
splits shared expenses across subprofiles by the configured apportionment
method.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Init registers the persistent flags shared by every subcommand.
func Init() {
	Cmd.PersistentFlags().StringVar(&ledgerFile, "file", "", "ledger file path (overrides config)")
	Cmd.PersistentFlags().StringVar(&profileID, "profile", "", "profile id to act on (overrides config)")
}

// Setup loads the configuration, applies flag overrides, and wires the
// dependency container. It returns the container and the profile id the
// command should act on.
func Setup() (*container.Container, string, error) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return nil, "", err
	}
	if ledgerFile != "" {
		cfg.Ledger.File = ledgerFile
	}
	if profileID != "" {
		cfg.Ledger.Profile = profileID
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return nil, "", err
	}
	return c, cfg.Ledger.Profile, nil
}
