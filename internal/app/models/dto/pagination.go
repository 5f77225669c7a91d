package dto

// PageRequest carries zero-based pagination parameters.
type PageRequest struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Offset is the number of rows to skip for this page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// PageResponse is the standard paginated envelope: one page of content plus
// the totals a client needs to drive paging controls.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Last          bool  `json:"last"`
}

// NewPageResponse assembles the paginated envelope. A nil content slice
// becomes an empty one so clients always see a JSON array.
func NewPageResponse[T any](content []T, page PageRequest, total int64) PageResponse[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if page.Size > 0 {
		totalPages = int((total + int64(page.Size) - 1) / int64(page.Size))
	}

	return PageResponse[T]{
		Content:       content,
		PageNumber:    page.Page,
		PageSize:      page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		Last:          int64(page.Offset()+len(content)) >= total,
	}
}
