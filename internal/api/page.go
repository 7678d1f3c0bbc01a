package api

import (
	"strconv"

	"github.com/gravitrone/coursedesk/internal/paging"
)

// Page is a server-side paginated list body.
type Page[T any] struct {
	Content          []T  `json:"content"`
	TotalElements    int  `json:"totalElements"`
	TotalPages       int  `json:"totalPages"`
	Size             int  `json:"size"`
	Number           int  `json:"number"`
	First            bool `json:"first"`
	Last             bool `json:"last"`
	NumberOfElements int  `json:"numberOfElements"`
}

func (p *Page[T]) items() []T {
	if p.Content == nil {
		return []T{}
	}
	return p.Content
}

// PageOf wraps a bulk result as a single page holding every item.
func PageOf[T any](items []T) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Content:          items,
		TotalElements:    len(items),
		TotalPages:       1,
		Size:             len(items),
		Number:           0,
		First:            true,
		Last:             true,
		NumberOfElements: len(items),
	}
}

// pageQuery renders a page request as query params. Sort is omitted when unset.
func pageQuery(req paging.Request) QueryParams {
	params := QueryParams{
		"page": strconv.Itoa(req.Page),
		"size": strconv.Itoa(req.Size),
	}
	if req.Sort != "" {
		params["sort"] = req.Sort
	}
	return params
}

// decodePage decodes a paged body. A bare array is accepted and wrapped.
func decodePage[T any](data []byte) (*Page[T], error) {
	body, err := Normalize(data)
	if err != nil {
		return nil, err
	}
	if err := body.failure(); err != nil {
		return nil, err
	}
	if len(body.Payload) > 0 && body.Payload[0] == '[' {
		items, err := decodeList[T](body.Payload)
		if err != nil {
			return nil, err
		}
		return PageOf(items), nil
	}
	page, err := decode[Page[T]](body.Payload)
	if err != nil {
		return nil, err
	}
	page.Content = page.items()
	if page.NumberOfElements == 0 {
		page.NumberOfElements = len(page.Content)
	}
	return page, nil
}
