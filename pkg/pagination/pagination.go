package pagination

// The CRM API paginates list endpoints with classic page/limit parameters
// because the admin UI renders numbered pages.

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 50
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 200
)

// Params holds pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps the inputs to sane values.
func (p Params) Normalize() Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the row offset for the normalized page.
func (p Params) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// Result describes one page of a list response.
type Result struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewResult computes the page envelope for a total row count.
func NewResult(params Params, total int64) Result {
	n := params.Normalize()
	pages := int(total) / n.Limit
	if int(total)%n.Limit != 0 {
		pages++
	}
	return Result{
		Total:      total,
		Page:       n.Page,
		Limit:      n.Limit,
		TotalPages: pages,
	}
}
