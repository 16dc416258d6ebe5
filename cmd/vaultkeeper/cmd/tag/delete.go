package tag

import (
	"fmt"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/vaultkeeper/cmd/cliutil"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <vault-id> <tag-id>",
		Short: "Удалить тег",
		Long:  `Удаляет тег из хранилища. Ссылки на него в аккаунтах остаются и просто не показываются.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cliutil.App(cmd)
			if err != nil {
				return err
			}
			vaultID, tagID := args[0], args[1]

			tags, err := a.Tags.List(cmd.Context(), vaultID)
			if err != nil {
				return fmt.Errorf("ошибка получения тегов: %w", err)
			}
			for _, t := range tags {
				if t.ID != tagID {
					continue
				}
				deleted, err := a.Tags.Delete(cmd.Context(), vaultID, t)
				if err != nil {
					return fmt.Errorf("ошибка удаления тега: %w", err)
				}
				if deleted {
					cliutil.Success(cmd.OutOrStdout(), "Тег '%s' удалён", t.Label)
					return nil
				}
			}
			return fmt.Errorf("тег %s не найден", tagID)
		},
	}
}
