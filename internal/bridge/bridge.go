// Package bridge adapts the table widget's paging protocol to the log-search
// endpoint: it shapes the outbound query, fetches a page, maps the JSON reply
// and decorates each row with its severity label.
package bridge

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"logtable-backend/internal/repository"
)

// DefaultSortField is the widget's primary-sort-direction parameter.
const DefaultSortField = "sSortDir_0"

var (
	ErrMalformedResponse = errors.New("malformed log search response")
	ErrStaleResponse     = errors.New("superseded by a newer page request")
)

type Config struct {
	// SortField names the auxiliary parameter scanned for the sort direction.
	SortField string
}

type Bridge struct {
	sortField string
	source    repository.PageSource
}

// Initialize builds the bridge once at startup.
func Initialize(cfg Config, source repository.PageSource) (*Bridge, error) {
	sortField := strings.TrimSpace(cfg.SortField)
	if sortField == "" {
		return nil, errors.New("bridge: sort field must not be empty")
	}
	if source == nil {
		return nil, errors.New("bridge: page source is required")
	}
	log.Info().Str("sort_field", sortField).Msg("Table data bridge initialized")
	return &Bridge{
		sortField: sortField,
		source:    source,
	}, nil
}

func (b *Bridge) SortField() string {
	return b.sortField
}
