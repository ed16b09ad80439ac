package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"logtable-backend/config"
	"logtable-backend/internal/bridge"
	"logtable-backend/internal/dto"
	"logtable-backend/internal/metrics"
	"logtable-backend/internal/model"
	"logtable-backend/internal/store"
)

const maxPageSize = 1000

var ErrInvalidRequest = errors.New("invalid table request")

type TableService interface {
	LoadPage(ctx context.Context, req dto.TableRequest) (*dto.TableResponse, error)
}

type tableService struct {
	bridge          *bridge.Bridge
	tables          store.TableStore
	defaultPageSize int
}

func NewTableService(cfg *config.Config, b *bridge.Bridge, tables store.TableStore) TableService {
	return &tableService{
		bridge:          b,
		tables:          tables,
		defaultPageSize: cfg.Table.PageSize,
	}
}

type fetchResult struct {
	resp *model.PageResponse
	err  error
}

func (s *tableService) LoadPage(ctx context.Context, req dto.TableRequest) (*dto.TableResponse, error) {
	if req.DisplayStart < 0 {
		return nil, fmt.Errorf("%w: negative display start %d", ErrInvalidRequest, req.DisplayStart)
	}
	size := req.DisplayLength
	if size <= 0 {
		size = s.defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	pageReq := model.PageRequest{
		PageIndex: req.DisplayStart / size,
		PageSize:  size,
	}
	query := s.bridge.BuildQuery(pageReq, req.Params)

	log.Info().
		Str("table_id", req.TableID).
		Str("echo", req.Echo).
		Int("page", pageReq.PageIndex).
		Int("size", pageReq.PageSize).
		Msg("Loading log table page")

	done := make(chan fetchResult, 1)
	table := s.tables.Table(ctx, req.TableID)
	table.FetchPage(ctx, query,
		func(resp *model.PageResponse) { done <- fetchResult{resp: resp} },
		func(err error) { done <- fetchResult{err: err} },
	)

	var result fetchResult
	select {
	case result = <-done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if result.err != nil {
		return nil, result.err
	}

	rows := make([]dto.TableRow, 0, len(result.resp.Records))
	for _, record := range result.resp.Records {
		metrics.CountDecoratedRow(bridge.ClassifySeverity(record.SeverityType))
		rows = append(rows, dto.TableRow{
			Created: bridge.EscapeCell(record.Created),
			Source:  bridge.EscapeCell(record.Source),
			Type:    bridge.DecorateRow(record),
			Message: bridge.EscapeCell(record.Message),
		})
	}

	return &dto.TableResponse{
		Echo:                req.Echo,
		TotalRecords:        result.resp.TotalResultCount,
		TotalDisplayRecords: result.resp.TotalResultCount,
		Data:                rows,
	}, nil
}
