// Package responses defines the JSON envelopes earnbase services return from
// their HTTP handlers.
package responses

// Meta carries response metadata populated by the metadata middleware.
type Meta map[string]any

// Response is the base success envelope.
type Response struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Meta    Meta   `json:"meta,omitempty"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Code    string           `json:"code"`
	Error   string           `json:"error"`
	Details map[string]any   `json:"details,omitempty"`
	Errors  []map[string]any `json:"errors,omitempty"`
}

// PaginationMeta describes the window of a paginated listing.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// PaginatedResponse wraps a page of items with its pagination metadata.
type PaginatedResponse struct {
	Data []any          `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NewPaginationMeta computes pagination metadata for the given window.
// Page and perPage are clamped to sane minimums.
func NewPaginationMeta(page, perPage int, total int64) PaginationMeta {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	totalPages := total / int64(perPage)
	if total%int64(perPage) != 0 {
		totalPages++
	}

	return PaginationMeta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}
