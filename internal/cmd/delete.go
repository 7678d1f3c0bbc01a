package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/coursedesk/internal/api"
	"github.com/gravitrone/coursedesk/internal/crud"
	"github.com/gravitrone/coursedesk/internal/paging"
)

// DeleteCmd returns the `coursedesk delete <kind> <id>` command.
func DeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <kind> <id>",
		Short: "Delete one record after confirmation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := api.ParseKind(args[0])
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q", args[1])
			}
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()

			confirm := crud.Confirmer(crud.AlwaysConfirm)
			if !yes {
				confirm = promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			}
			return runDelete(cmd.Context(), cmd.OutOrStdout(), s, kind, id, confirm)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func runDelete(ctx context.Context, out io.Writer, s *session, kind api.Kind, id int64, confirm crud.Confirmer) error {
	switch kind {
	case api.KindStudent:
		return deleteKind(ctx, out, s, kind, s.client.Students(), id, confirm)
	case api.KindTeacher:
		return deleteKind(ctx, out, s, kind, s.client.Teachers(), id, confirm)
	case api.KindSubject:
		return deleteKind(ctx, out, s, kind, s.client.Subjects(), id, confirm)
	case api.KindGroup:
		return deleteKind(ctx, out, s, kind, s.client.Groups(), id, confirm)
	}
	return fmt.Errorf("unsupported kind %s", kind)
}

func deleteKind[T crud.Entity, In any](ctx context.Context, out io.Writer, s *session, kind api.Kind, svc crud.Service[T, In], id int64, confirm crud.Confirmer) error {
	m := crud.New(crud.Config[T, In]{
		Kind:      kind,
		Service:   svc,
		Logger:    s.logger,
		Confirmer: confirm,
		Paging:    paging.Defaults{PageSize: s.cfg.PageSize},
	})
	defer m.Close()

	if m.DeleteItem(ctx, id, "") {
		fmt.Fprintln(out, m.Snapshot().SuccessMessage)
		return nil
	}
	if msg := m.Snapshot().Error; msg != "" {
		return errors.New(msg)
	}
	fmt.Fprintln(out, "cancelled")
	return nil
}

// promptConfirmer asks on out and accepts "y" or "yes" from in.
func promptConfirmer(in io.Reader, out io.Writer) crud.Confirmer {
	reader := bufio.NewReader(in)
	return func(message string) bool {
		fmt.Fprintf(out, "%s [y/N]: ", message)
		answer, _ := reader.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		}
		return false
	}
}
