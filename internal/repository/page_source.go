package repository

import (
	"context"

	"logtable-backend/internal/model"
)

// PageSource returns one page of log records for an encoded query string.
type PageSource interface {
	Fetch(ctx context.Context, rawQuery string) (*model.PageResponse, error)
}
