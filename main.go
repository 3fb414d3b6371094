package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"fjacquet/casa-ledger/cmd/add"
	"fjacquet/casa-ledger/cmd/closemonth"
	"fjacquet/casa-ledger/cmd/edit"
	"fjacquet/casa-ledger/cmd/initcmd"
	"fjacquet/casa-ledger/cmd/list"
	"fjacquet/casa-ledger/cmd/method"
	"fjacquet/casa-ledger/cmd/pay"
	"fjacquet/casa-ledger/cmd/remove"
	"fjacquet/casa-ledger/cmd/root"
	"fjacquet/casa-ledger/cmd/skip"
	"fjacquet/casa-ledger/cmd/transfer"
)

func init() {
	loadEnvSilently()

	root.Init()

	root.Cmd.AddCommand(initcmd.Cmd)
	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(edit.Cmd)
	root.Cmd.AddCommand(remove.Cmd)
	root.Cmd.AddCommand(skip.Cmd)
	root.Cmd.AddCommand(skip.UnskipCmd)
	root.Cmd.AddCommand(pay.Cmd)
	root.Cmd.AddCommand(transfer.Cmd)
	root.Cmd.AddCommand(closemonth.Cmd)
	root.Cmd.AddCommand(list.Cmd)
	root.Cmd.AddCommand(method.Cmd)
}

// loadEnvSilently loads environment variables before any logging is
// configured.
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
