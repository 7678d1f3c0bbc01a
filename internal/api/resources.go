package api

import (
	"context"
	"fmt"

	"github.com/gravitrone/coursedesk/internal/paging"
)

// Resource binds the CRUD endpoints of one kind to its DTO and input types.
type Resource[T any, In any] struct {
	client *Client
	kind   Kind
}

// Kind returns the bound kind.
func (r Resource[T, In]) Kind() Kind {
	return r.kind
}

// List fetches one page. Bulk kinds ignore the request and return every
// record wrapped as a single page.
func (r Resource[T, In]) List(ctx context.Context, req paging.Request) (*Page[T], error) {
	info := r.kind.Info()
	if !info.Paged {
		data, err := r.client.get(ctx, info.Path)
		if err != nil {
			return nil, err
		}
		items, err := decodeList[T](data)
		if err != nil {
			return nil, err
		}
		return PageOf(items), nil
	}
	data, err := r.client.get(ctx, buildQuery(info.Path, pageQuery(req)))
	if err != nil {
		return nil, err
	}
	return decodePage[T](data)
}

func (r Resource[T, In]) Get(ctx context.Context, id int64) (*T, error) {
	data, err := r.client.get(ctx, r.itemPath(id))
	if err != nil {
		return nil, err
	}
	return decode[T](data)
}

func (r Resource[T, In]) Create(ctx context.Context, in In) (*T, error) {
	data, err := r.client.post(ctx, r.kind.Info().Path, in)
	if err != nil {
		return nil, err
	}
	return decode[T](data)
}

func (r Resource[T, In]) Update(ctx context.Context, id int64, in In) (*T, error) {
	data, err := r.client.put(ctx, r.itemPath(id), in)
	if err != nil {
		return nil, err
	}
	return decode[T](data)
}

func (r Resource[T, In]) Delete(ctx context.Context, id int64) error {
	_, err := r.client.del(ctx, r.itemPath(id))
	return err
}

func (r Resource[T, In]) itemPath(id int64) string {
	return fmt.Sprintf("%s/%d", r.kind.Info().Path, id)
}

// --- Kind bindings ---

func (c *Client) Students() Resource[Student, StudentInput] {
	return Resource[Student, StudentInput]{client: c, kind: KindStudent}
}

func (c *Client) Teachers() Resource[Teacher, TeacherInput] {
	return Resource[Teacher, TeacherInput]{client: c, kind: KindTeacher}
}

func (c *Client) Subjects() Resource[Subject, SubjectInput] {
	return Resource[Subject, SubjectInput]{client: c, kind: KindSubject}
}

func (c *Client) Groups() Resource[Group, GroupInput] {
	return Resource[Group, GroupInput]{client: c, kind: KindGroup}
}
