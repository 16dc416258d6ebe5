package backup

import (
	"github.com/spf13/cobra"

	"vaultkeeper/cmd/vaultkeeper/cmd/cliutil"
	appbackup "vaultkeeper/internal/app/backup"
)

// NewCommand - родительская команда для резервных копий
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Экспорт и импорт хранилища в YAML",
	}
	cmd.AddCommand(newExportCmd(), newImportCmd())
	return cmd
}

func service(cmd *cobra.Command) (*appbackup.Service, error) {
	a, err := cliutil.App(cmd)
	if err != nil {
		return nil, err
	}
	return appbackup.NewService(a.Vaults, a.Tags, a.Accounts, cliutil.Logger(a, cmd)), nil
}
