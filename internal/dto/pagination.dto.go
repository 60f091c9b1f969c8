package dto

type PaginationDTO struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

func NewPagination(total int64, page, limit int) PaginationDTO {
	pages := int64(0)
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return PaginationDTO{Total: total, Page: page, Limit: limit, Pages: pages}
}
