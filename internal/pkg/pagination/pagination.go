package pagination

// PageInfo is the wire-shape page metadata returned with every list
// result. Field names follow the wire (camelCase) convention.
type PageInfo struct {
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	TotalCount      int64 `json:"totalCount"`
	TotalPages      int   `json:"totalPages"`
	CurrentPage     int   `json:"currentPage"`
}

// Offset returns the record offset of a 1-based page
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// TotalPages returns ceil(total / limit)
func TotalPages(total int64, limit int) int {
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	return pages
}

// GetPageInfo calculates page metadata for a list result
func GetPageInfo(total int64, page, limit int) PageInfo {
	totalPages := TotalPages(total, limit)
	return PageInfo{
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
		TotalCount:      total,
		TotalPages:      totalPages,
		CurrentPage:     page,
	}
}
