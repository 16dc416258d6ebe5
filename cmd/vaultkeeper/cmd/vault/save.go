package vault

import (
	"fmt"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/vaultkeeper/cmd/cliutil"
	"vaultkeeper/internal/app/viewmodel"
	"vaultkeeper/internal/domain/tag"
)

type saveOptions struct {
	name        string
	description string
	addTags     []string
	removeTags  []string
	renameTags  map[string]string
}

func newSaveCmd() *cobra.Command {
	opts := &saveOptions{}

	cmd := &cobra.Command{
		Use:   "save [vault-id]",
		Short: "Создать или изменить хранилище",
		Long: `Без ID создаёт новое хранилище, с ID изменяет существующее.

Примеры:
  # Новое хранилище с двумя тегами
  vaultkeeper vault save --name Personal --tag mail --tag work

  # Переименовать тег и удалить другой
  vaultkeeper vault save 3f6c... --rename-tag mail=post --remove-tag work`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cliutil.App(cmd)
			if err != nil {
				return err
			}
			vaultID := ""
			if len(args) == 1 {
				vaultID = args[0]
			}

			detail, err := viewmodel.NewVaultDetail(cmd.Context(), vaultID, a.Vaults, a.Tags, cliutil.Logger(a, cmd))
			if err != nil {
				return fmt.Errorf("ошибка получения хранилища: %w", err)
			}

			if err := opts.apply(cmd, detail); err != nil {
				return err
			}

			if !detail.State().CanSave() {
				return fmt.Errorf("нужно название и хотя бы один непустой тег")
			}
			err = detail.Save(cmd.Context())
			st := detail.State()
			fmt.Fprintf(cmd.OutOrStdout(), "Статус: %s\n", cliutil.Status(st.Status))
			if err != nil {
				return fmt.Errorf("ошибка сохранения хранилища: %w", err)
			}

			cliutil.Success(cmd.OutOrStdout(), "Хранилище '%s' сохранено (ID %s, тегов %d)", st.Vault.Name, st.Vault.ID, len(st.Tags))
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "название хранилища")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "описание")
	cmd.Flags().StringArrayVarP(&opts.addTags, "tag", "t", nil, "добавить тег (можно повторять)")
	cmd.Flags().StringArrayVar(&opts.removeTags, "remove-tag", nil, "удалить тег по метке")
	cmd.Flags().StringToStringVar(&opts.renameTags, "rename-tag", nil, "переименовать тег: старая=новая")
	return cmd
}

// apply edits the buffer the way a form would.
func (o *saveOptions) apply(cmd *cobra.Command, detail *viewmodel.VaultDetail) error {
	var name, description *string
	if cmd.Flags().Changed("name") {
		name = &o.name
	}
	if cmd.Flags().Changed("description") {
		description = &o.description
	}
	detail.Update(name, description)

	for _, label := range o.removeTags {
		t, ok := findTag(detail.State().Tags, label)
		if !ok {
			return fmt.Errorf("тег '%s' не найден", label)
		}
		detail.RemoveTag(t)
	}

	for from, to := range o.renameTags {
		idx := indexOfLabel(detail.State().Tags, from)
		if idx < 0 {
			return fmt.Errorf("тег '%s' не найден", from)
		}
		detail.UpdateTag(idx, to)
	}

	for _, label := range o.addTags {
		tags := detail.State().Tags
		// пустая строка появляется у нового хранилища
		if idx := indexOfLabel(tags, ""); idx >= 0 {
			detail.UpdateTag(idx, label)
			continue
		}
		detail.CreateTag()
		detail.UpdateTag(len(tags), label)
	}
	return nil
}

func findTag(tags []tag.Tag, label string) (tag.Tag, bool) {
	if i := indexOfLabel(tags, label); i >= 0 {
		return tags[i], true
	}
	return tag.Tag{}, false
}

func indexOfLabel(tags []tag.Tag, label string) int {
	for i, t := range tags {
		if t.Label == label {
			return i
		}
	}
	return -1
}
