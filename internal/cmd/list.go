package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gravitrone/coursedesk/internal/api"
	"github.com/gravitrone/coursedesk/internal/crud"
	"github.com/gravitrone/coursedesk/internal/paging"
	"github.com/gravitrone/coursedesk/internal/table"
)

// listFields are the JSON paths printed per kind.
var listFields = map[api.Kind][]string{
	api.KindStudent: {"id", "studentCode", "firstName", "lastName", "email", "group.name", "active"},
	api.KindTeacher: {"id", "firstName", "lastName", "email", "department", "phone"},
	api.KindSubject: {"id", "code", "name", "credits", "semester", "teacher.name"},
	api.KindGroup:   {"id", "name", "year", "capacity", "studentCount", "tutor.name"},
}

// ListOptions are the flags of `coursedesk list`. Page is 1-based.
type ListOptions struct {
	Page int
	Size int
	Sort string
}

// ListCmd returns the `coursedesk list <kind>` command.
func ListCmd() *cobra.Command {
	var opts ListOptions
	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "Print one page of students, teachers, subjects or groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := api.ParseKind(args[0])
			if err != nil {
				return err
			}
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.close()
			if opts.Size <= 0 {
				opts.Size = s.cfg.PageSize
			}
			return runList(cmd.Context(), cmd.OutOrStdout(), s, kind, opts)
		},
	}
	cmd.Flags().IntVarP(&opts.Page, "page", "p", 1, "page number, starting at 1")
	cmd.Flags().IntVarP(&opts.Size, "size", "s", 0, "page size (default from config)")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", `sort key such as "lastName,asc"`)
	return cmd
}

func runList(ctx context.Context, out io.Writer, s *session, kind api.Kind, opts ListOptions) error {
	switch kind {
	case api.KindStudent:
		return listKind(ctx, out, s, kind, s.client.Students(), opts)
	case api.KindTeacher:
		return listKind(ctx, out, s, kind, s.client.Teachers(), opts)
	case api.KindSubject:
		return listKind(ctx, out, s, kind, s.client.Subjects(), opts)
	case api.KindGroup:
		return listKind(ctx, out, s, kind, s.client.Groups(), opts)
	}
	return fmt.Errorf("unsupported kind %s", kind)
}

func listKind[T crud.Entity, In any](ctx context.Context, out io.Writer, s *session, kind api.Kind, svc crud.Service[T, In], opts ListOptions) error {
	m := crud.New(crud.Config[T, In]{
		Kind:    kind,
		Service: svc,
		Logger:  s.logger,
		Paging:  paging.Defaults{PageSize: opts.Size, Sort: opts.Sort},
	})
	defer m.Close()

	m.LoadItems(ctx)
	if opts.Page > 1 {
		m.GoToPage(ctx, opts.Page-1)
	}
	st := m.Snapshot()
	if st.Error != "" {
		return errors.New(st.Error)
	}
	if len(st.Items) == 0 {
		fmt.Fprintf(out, "no %s found\n", kind.Info().Plural)
		return nil
	}

	fields := listFields[kind]
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(fields, "\t")))
	for _, item := range st.Items {
		cells := make([]string, len(fields))
		for i, f := range fields {
			cells[i] = table.Display(item, f)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d-%d of %d (page %d/%d)\n",
		st.Range.Start, st.Range.End, st.TotalElements, st.CurrentPage+1, max(st.TotalPages, 1))
	return nil
}
