package backup

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/vaultkeeper/cmd/cliutil"
	appbackup "vaultkeeper/internal/app/backup"
)

func newImportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Загрузить хранилище из YAML",
		Long:  `Создаёт новое хранилище из файла, выгруженного командой export.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("ошибка открытия файла: %w", err)
			}
			defer f.Close()

			doc, err := appbackup.Decode(f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "Хранилище '%s': тегов %d, аккаунтов %d\n", doc.Vault.Name, len(doc.Tags), len(doc.Accounts))
				cliutil.Warning(out, "Пробный запуск, изменения не сохранены")
				return nil
			}

			svc, err := service(cmd)
			if err != nil {
				return err
			}
			v, err := svc.Restore(cmd.Context(), doc)
			if err != nil {
				return fmt.Errorf("ошибка импорта: %w", err)
			}
			cliutil.Success(out, "Хранилище '%s' загружено (ID %s)", v.Name, v.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "только проверить файл")
	return cmd
}
