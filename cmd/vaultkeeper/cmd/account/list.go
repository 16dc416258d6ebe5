package account

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/vaultkeeper/cmd/cliutil"
	"vaultkeeper/internal/app/viewmodel"
)

func newListCmd() *cobra.Command {
	var (
		search string
		labels []string
		format string
	)

	cmd := &cobra.Command{
		Use:   "list <vault-id>",
		Short: "Список аккаунтов с поиском и фильтром по тегам",
		Long: `Поиск ищет подстроку (с учётом регистра) в платформе, логине и email.
Несколько --tag оставляют аккаунты, у которых есть хотя бы один из тегов.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cliutil.App(cmd)
			if err != nil {
				return err
			}
			if _, err := a.Vaults.Get(cmd.Context(), args[0]); err != nil {
				return err
			}

			list := viewmodel.NewAccountList(args[0], a.Accounts, a.Tags, cliutil.Logger(a, cmd))
			if err := list.Load(cmd.Context()); err != nil {
				return fmt.Errorf("ошибка получения аккаунтов: %w", err)
			}
			for _, label := range labels {
				found := false
				for _, t := range list.State().Tags {
					if t.Label == label {
						list.ToggleTagSelection(t)
						found = true
						break
					}
				}
				if !found {
					return fmt.Errorf("тег '%s' не найден", label)
				}
			}
			list.Search(search)

			accounts := list.State().Filtered
			out := cmd.OutOrStdout()
			if format == "json" {
				return cliutil.JSON(out, accounts)
			}
			if len(accounts) == 0 {
				fmt.Fprintln(out, "Аккаунты не найдены")
				return nil
			}

			rows := make([][]string, 0, len(accounts))
			for _, acc := range accounts {
				tags := list.ResolveTags(acc)
				names := make([]string, 0, len(tags))
				for _, t := range tags {
					names = append(names, t.Label)
				}
				rows = append(rows, []string{
					acc.ID,
					acc.PlatformName,
					cliutil.Deref(acc.Username),
					cliutil.Deref(acc.Email),
					strings.Join(names, ", "),
				})
			}
			if err := cliutil.Table(out, []string{"ID", "Платформа", "Логин", "Email", "Теги"}, rows); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nВсего аккаунтов: %d из %d\n", len(accounts), len(list.State().Accounts))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "строка поиска")
	cmd.Flags().StringArrayVarP(&labels, "tag", "t", nil, "фильтр по метке тега (можно повторять)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "формат вывода (table, json)")
	return cmd
}
