package vault

import (
	"fmt"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/vaultkeeper/cmd/cliutil"
	"vaultkeeper/internal/app/viewmodel"
)

func newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Список хранилищ",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := cliutil.App(cmd)
			if err != nil {
				return err
			}

			list := viewmodel.NewVaultList(a.Vaults, cliutil.Logger(a, cmd))
			if err := list.Load(cmd.Context()); err != nil {
				return fmt.Errorf("ошибка получения списка хранилищ: %w", err)
			}
			vaults := list.State().Vaults

			out := cmd.OutOrStdout()
			if format == "json" {
				return cliutil.JSON(out, vaults)
			}
			if len(vaults) == 0 {
				fmt.Fprintln(out, "Хранилища не найдены")
				return nil
			}

			rows := make([][]string, 0, len(vaults))
			for _, v := range vaults {
				rows = append(rows, []string{v.ID, v.Name, cliutil.Truncate(v.Description, 40), cliutil.Time(v.LastUpdate)})
			}
			return cliutil.Table(out, []string{"ID", "Название", "Описание", "Обновлено"}, rows)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "формат вывода (table, json)")
	return cmd
}
