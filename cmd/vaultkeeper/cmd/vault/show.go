package vault

import (
	"fmt"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/vaultkeeper/cmd/cliutil"
	"vaultkeeper/internal/app/viewmodel"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <vault-id>",
		Short: "Показать хранилище и его теги",
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
			st := detail.State()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:         %s\n", st.Vault.ID)
			fmt.Fprintf(out, "Название:   %s\n", st.Vault.Name)
			fmt.Fprintf(out, "Описание:   %s\n", st.Vault.Description)
			fmt.Fprintf(out, "Обновлено:  %s\n", cliutil.Time(st.Vault.LastUpdate))
			fmt.Fprintln(out, "Теги:")
			for _, t := range st.Tags {
				if t.ID == "" {
					continue
				}
				fmt.Fprintf(out, "  %s  %s\n", t.ID, t.Label)
			}
			return nil
		},
	}
}
