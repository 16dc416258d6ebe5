package tag

import (
	"github.com/spf13/cobra"
)

// NewCommand - родительская команда для операций с тегами хранилища
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Управление тегами хранилища",
	}
	cmd.AddCommand(newListCmd(), newSetCmd(), newDeleteCmd())
	return cmd
}
