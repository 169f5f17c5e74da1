package dto

// ── shared briefs embedded across module responses ──

// BatchBrief is a batch summary.
type BatchBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ModuleBrief is a module summary.
type ModuleBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// FacultyBrief is a faculty summary.
type FacultyBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ── pagination ──

// PaginationRequest is the shared paging query block.
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage returns the page number with its default applied.
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize returns the page size with its default applied.
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset computes the row offset.
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
