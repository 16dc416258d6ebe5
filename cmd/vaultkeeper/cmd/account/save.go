package account

import (
	"fmt"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/vaultkeeper/cmd/cliutil"
	"vaultkeeper/internal/app/viewmodel"
	"vaultkeeper/internal/domain/account"
)

type saveOptions struct {
	platform          string
	username          string
	email             string
	note              string
	addTags           []string
	removeTags        []string
	passwords         int
	pins              int
	removeCredentials []string
}

func newSaveCmd() *cobra.Command {
	opts := &saveOptions{}

	cmd := &cobra.Command{
		Use:   "save <vault-id> [account-id]",
		Short: "Создать или изменить аккаунт",
		Long: `Без ID аккаунта создаёт новый (с первым тегом хранилища), с ID изменяет
существующий. Значения паролей и PIN-кодов запрашиваются без отображения.

Примеры:
  vaultkeeper account save 3f6c... --platform GitHub --email me@example.com --password
  vaultkeeper account save 3f6c... 9a1b... --tag work --remove-credential 0 --pin`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cliutil.App(cmd)
			if err != nil {
				return err
			}
			vaultID, accountID := args[0], ""
			if len(args) == 2 {
				accountID = args[1]
			}
			if _, err := a.Vaults.Get(cmd.Context(), vaultID); err != nil {
				return err
			}

			detail, err := viewmodel.NewAccountDetail(cmd.Context(), vaultID, accountID, a.Accounts, a.Tags, cliutil.Logger(a, cmd))
			if err != nil {
				return fmt.Errorf("ошибка получения аккаунта: %w", err)
			}

			if err := opts.apply(cmd, detail); err != nil {
				return err
			}

			st := detail.State()
			if st.Errors.InvalidEmail {
				return fmt.Errorf("%w: %s", account.ErrInvalidEmail, cliutil.Deref(st.Account.Email))
			}
			if !st.CanSave() {
				return fmt.Errorf("нужно название платформы и непустые учётные данные")
			}

			err = detail.Save(cmd.Context())
			st = detail.State()
			fmt.Fprintf(cmd.OutOrStdout(), "Статус: %s\n", cliutil.Status(st.Status))
			if err != nil {
				return fmt.Errorf("ошибка сохранения аккаунта: %w", err)
			}
			cliutil.Success(cmd.OutOrStdout(), "Аккаунт '%s' сохранён (ID %s)", st.Account.PlatformName, st.Account.ID)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.platform, "platform", "p", "", "название платформы")
	f.StringVarP(&opts.username, "username", "u", "", "логин")
	f.StringVarP(&opts.email, "email", "e", "", "email")
	f.StringVar(&opts.note, "note", "", "заметка")
	f.StringArrayVarP(&opts.addTags, "tag", "t", nil, "добавить тег по метке (можно повторять)")
	f.StringArrayVar(&opts.removeTags, "untag", nil, "убрать тег по метке")
	f.CountVar(&opts.passwords, "password", "добавить пароль (значение запрашивается)")
	f.CountVar(&opts.pins, "pin", "добавить PIN-код (значение запрашивается)")
	f.StringArrayVar(&opts.removeCredentials, "remove-credential", nil, "удалить учётные данные по ID")
	return cmd
}

// apply edits the buffer the way a form would.
func (o *saveOptions) apply(cmd *cobra.Command, detail *viewmodel.AccountDetail) error {
	var change viewmodel.AccountChange
	flags := cmd.Flags()
	if flags.Changed("platform") {
		change.PlatformName = &o.platform
	}
	if flags.Changed("username") {
		change.Username = &o.username
	}
	if flags.Changed("email") {
		change.Email = &o.email
	}
	if flags.Changed("note") {
		change.Note = &o.note
	}
	detail.Update(change)

	for _, label := range o.removeTags {
		found := false
		for _, t := range detail.State().Tags {
			if t.Label == label {
				detail.RemoveTag(t)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("тег '%s' не привязан к аккаунту", label)
		}
	}

	for _, label := range o.addTags {
		found := false
		for _, t := range detail.State().TagOptions {
			if t.Label == label {
				detail.AddTag(t)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("тег '%s' не найден в хранилище", label)
		}
	}

	for _, id := range o.removeCredentials {
		found := false
		for _, c := range detail.State().Account.Credentials {
			if c.ID == id {
				detail.RemoveCredential(c)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("учётные данные %s не найдены", id)
		}
	}

	if err := addCredentials(cmd, detail, account.CredentialPassword, o.passwords); err != nil {
		return err
	}
	return addCredentials(cmd, detail, account.CredentialPIN, o.pins)
}

func addCredentials(cmd *cobra.Command, detail *viewmodel.AccountDetail, typ account.CredentialType, n int) error {
	for i := 0; i < n; i++ {
		value, err := cliutil.ReadSecret(cmd, typ.DisplayName()+": ")
		if err != nil {
			return err
		}
		detail.CreateCredential()
		creds := detail.State().Account.Credentials
		id := creds[len(creds)-1].ID
		detail.UpdateCredential(id, &value, &typ)
	}
	return nil
}
