package backup

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/vaultkeeper/cmd/cliutil"
)

func newExportCmd() *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "export <vault-id>",
		Short: "Выгрузить хранилище в YAML",
		Long: `Выгружает хранилище, его теги и аккаунты вместе с учётными данными.
Файл содержит секреты в открытом виде и создаётся с правами 0600.

Примеры:
  vaultkeeper backup export 3f6c... -o personal.yaml
  vaultkeeper backup export 3f6c... > personal.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := service(cmd)
			if err != nil {
				return err
			}

			if output == "" {
				return svc.Export(cmd.Context(), args[0], cmd.OutOrStdout())
			}

			flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
			if force {
				flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
			}
			f, err := os.OpenFile(output, flags, 0o600)
			if err != nil {
				if os.IsExist(err) {
					return fmt.Errorf("файл %s уже существует, используйте --force", output)
				}
				return fmt.Errorf("ошибка создания файла: %w", err)
			}

			if err := svc.Export(cmd.Context(), args[0], f); err != nil {
				f.Close()
				os.Remove(output)
				return fmt.Errorf("ошибка экспорта: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("ошибка записи файла: %w", err)
			}

			cliutil.Success(cmd.OutOrStdout(), "Хранилище выгружено в %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "файл для записи (по умолчанию stdout)")
	cmd.Flags().BoolVar(&force, "force", false, "перезаписать существующий файл")
	return cmd
}
