package account

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/vaultkeeper/cmd/cliutil"
	"vaultkeeper/internal/app/viewmodel"
)

const mask = "********"

func newShowCmd() *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "show <vault-id> <account-id>",
		Short: "Показать аккаунт",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cliutil.App(cmd)
			if err != nil {
				return err
			}

			detail, err := viewmodel.NewAccountDetail(cmd.Context(), args[0], args[1], a.Accounts, a.Tags, cliutil.Logger(a, cmd))
			if err != nil {
				return fmt.Errorf("ошибка получения аккаунта: %w", err)
			}
			st := detail.State()
			acc := st.Account

			labels := make([]string, 0, len(st.Tags))
			for _, t := range st.Tags {
				labels = append(labels, t.Label)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:         %s\n", acc.ID)
			fmt.Fprintf(out, "Платформа:  %s\n", acc.PlatformName)
			fmt.Fprintf(out, "Логин:      %s\n", cliutil.Deref(acc.Username))
			fmt.Fprintf(out, "Email:      %s\n", cliutil.Deref(acc.Email))
			fmt.Fprintf(out, "Теги:       %s\n", strings.Join(labels, ", "))
			if acc.Note != "" {
				fmt.Fprintf(out, "Заметка:    %s\n", acc.Note)
			}
			fmt.Fprintln(out, "Учётные данные:")
			for _, c := range acc.Credentials {
				value := mask
				if reveal {
					value = c.Value
				}
				fmt.Fprintf(out, "  [%s] %-8s %s\n", c.ID, c.Type.DisplayName(), value)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "показать значения учётных данных")
	return cmd
}
