package model

import "strings"

type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// ParseSortDirection accepts asc/desc in any case and falls back to DESC.
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

type PageRequest struct {
	PageIndex     int
	PageSize      int
	SortDirection SortDirection
}

type PageResponse struct {
	TotalResultCount int64
	Records          []LogRecord
}
