package account

import (
	"github.com/spf13/cobra"
)

// NewCommand - родительская команда для операций с аккаунтами
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Управление аккаунтами хранилища",
		Long:  `Создание, поиск, просмотр и удаление аккаунтов с их учётными данными.`,
	}
	cmd.AddCommand(newListCmd(), newShowCmd(), newSaveCmd(), newDeleteCmd())
	return cmd
}
