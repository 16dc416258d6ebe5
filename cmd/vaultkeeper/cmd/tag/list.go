package tag

import (
	"fmt"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/vaultkeeper/cmd/cliutil"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <vault-id>",
		Short: "Теги хранилища",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cliutil.App(cmd)
			if err != nil {
				return err
			}
			if _, err := a.Vaults.Get(cmd.Context(), args[0]); err != nil {
				return err
			}

			tags, err := a.Tags.List(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("ошибка получения тегов: %w", err)
			}
			if len(tags) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Теги не найдены")
				return nil
			}

			rows := make([][]string, 0, len(tags))
			for _, t := range tags {
				rows = append(rows, []string{t.ID, t.Label})
			}
			return cliutil.Table(cmd.OutOrStdout(), []string{"ID", "Метка"}, rows)
		},
	}
}
