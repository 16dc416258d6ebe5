package vault

import (
	"fmt"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/vaultkeeper/cmd/cliutil"
	"vaultkeeper/internal/app/viewmodel"
)

func newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <vault-id>",
		Short: "Удалить хранилище вместе с тегами и аккаунтами",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cliutil.App(cmd)
			if err != nil {
				return err
			}

			detail, err := viewmodel.NewVaultDetail(cmd.Context(), args[0], a.Vaults, a.Tags, cliutil.Logger(a, cmd))
			if err != nil {
				return fmt.Errorf("ошибка получения хранилища: %w", err)
			}
			name := detail.State().Vault.Name

			if !yes {
				ok, err := cliutil.Confirm(cmd, fmt.Sprintf("Удалить хранилище '%s' со всеми аккаунтами?", name))
				if err != nil {
					return err
				}
				if !ok {
					return cliutil.ErrAborted
				}
			}

			if err := detail.Delete(cmd.Context()); err != nil {
				return fmt.Errorf("ошибка удаления хранилища: %w", err)
			}
			cliutil.Success(cmd.OutOrStdout(), "Хранилище '%s' удалено", name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "не спрашивать подтверждение")
	return cmd
}
