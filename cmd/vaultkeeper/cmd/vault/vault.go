package vault

import (
	"github.com/spf13/cobra"
)

// NewCommand - родительская команда для операций с хранилищами
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Управление хранилищами",
		Long:  `Создание, просмотр, изменение и удаление хранилищ вместе с их тегами.`,
	}
	cmd.AddCommand(newListCmd(), newShowCmd(), newSaveCmd(), newDeleteCmd())
	return cmd
}
