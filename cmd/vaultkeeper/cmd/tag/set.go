package tag

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vaultkeeper/cmd/vaultkeeper/cmd/cliutil"
	"vaultkeeper/internal/domain/tag"
)

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <vault-id> <label|id=label>...",
		Short: "Добавить или переименовать теги",
		Long: `Аргумент вида id=метка переименовывает существующий тег, просто метка
добавляет новый. Если метки совпадут, набор тегов не меняется.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := cliutil.App(cmd)
			if err != nil {
				return err
			}
			vaultID := args[0]
			if _, err := a.Vaults.Get(cmd.Context(), vaultID); err != nil {
				return err
			}

			desired := ParseTags(args[1:])
			ok, err := a.Tags.Reconcile(cmd.Context(), vaultID, desired)
			if err != nil {
				return fmt.Errorf("ошибка сохранения тегов: %w", err)
			}
			if !ok {
				return fmt.Errorf("%w: набор тегов не изменён", tag.ErrDuplicateLabel)
			}

			cliutil.Success(cmd.OutOrStdout(), "Теги сохранены: %d", len(desired))
			return nil
		},
	}
}

// ParseTags turns "id=label" and "label" arguments into tags.
func ParseTags(args []string) []tag.Tag {
	tags := make([]tag.Tag, 0, len(args))
	for _, arg := range args {
		if id, label, ok := strings.Cut(arg, "="); ok {
			tags = append(tags, tag.Tag{ID: id, Label: label})
			continue
		}
		tags = append(tags, tag.Tag{Label: arg})
	}
	return tags
}
