// cmd/vaultkeeper/cmd/init.go
package cmd

import (
	"github.com/spf13/cobra"

	"vaultkeeper/cmd/vaultkeeper/cmd/account"
	"vaultkeeper/cmd/vaultkeeper/cmd/backup"
	"vaultkeeper/cmd/vaultkeeper/cmd/tag"
	"vaultkeeper/cmd/vaultkeeper/cmd/vault"
)

func register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(vault.NewCommand())
	rootCmd.AddCommand(tag.NewCommand())
	rootCmd.AddCommand(account.NewCommand())
	rootCmd.AddCommand(backup.NewCommand())
	rootCmd.AddCommand(newServeCmd())
}
