package account

import (
	"fmt"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/vaultkeeper/cmd/cliutil"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <vault-id> <account-id>",
		Short: "Удалить аккаунт",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cliutil.App(cmd)
			if err != nil {
				return err
			}

			deleted, err := a.Accounts.Delete(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("ошибка удаления аккаунта: %w", err)
			}
			if !deleted {
				return fmt.Errorf("аккаунт %s не найден", args[1])
			}
			cliutil.Success(cmd.OutOrStdout(), "Аккаунт %s удалён", args[1])
			return nil
		},
	}
}
