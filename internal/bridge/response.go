package bridge

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/valyala/fastjson"

	"logtable-backend/internal/model"
	"logtable-backend/internal/util"
)

const (
	fieldPagination   = "Pagination"
	fieldTotalResults = "TotalResults"
	fieldData         = "Data"
	fieldCreated      = "CREATED"
	fieldSource       = "SOURCE"
	fieldType         = "TYPE"
	fieldMessage      = "MESSAGE"
)

var parserPool fastjson.ParserPool

// MapResponse decodes a log-search reply. Pagination.TotalResults is required;
// a missing or null Data field is an empty page.
func MapResponse(body []byte) (*model.PageResponse, error) {
	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	pagination := v.Get(fieldPagination)
	if pagination == nil || pagination.Type() != fastjson.TypeObject {
		return nil, fmt.Errorf("%w: missing %s object", ErrMalformedResponse, fieldPagination)
	}
	totalVal := pagination.Get(fieldTotalResults)
	if totalVal == nil {
		return nil, fmt.Errorf("%w: missing %s.%s", ErrMalformedResponse, fieldPagination, fieldTotalResults)
	}
	total, err := totalVal.Int64()
	if err != nil || total < 0 {
		return nil, fmt.Errorf("%w: invalid %s.%s %s", ErrMalformedResponse, fieldPagination, fieldTotalResults, totalVal.String())
	}

	resp := &model.PageResponse{TotalResultCount: total}

	data := v.Get(fieldData)
	if data == nil || data.Type() == fastjson.TypeNull {
		resp.Records = []model.LogRecord{}
		return resp, nil
	}
	rows, err := data.Array()
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not an array", ErrMalformedResponse, fieldData)
	}

	resp.Records = make([]model.LogRecord, 0, len(rows))
	for i, row := range rows {
		if row.Type() != fastjson.TypeObject {
			return nil, fmt.Errorf("%w: %s[%d] is not an object", ErrMalformedResponse, fieldData, i)
		}
		resp.Records = append(resp.Records, mapRecord(row))
	}
	return resp, nil
}

func mapRecord(row *fastjson.Value) model.LogRecord {
	record := model.LogRecord{
		Created:      textField(row, fieldCreated),
		Source:       textField(row, fieldSource),
		SeverityType: textField(row, fieldType),
		Message:      textField(row, fieldMessage),
	}
	if record.Created != "" {
		createdAt, err := util.ParseTimeFlexible(record.Created)
		if err != nil {
			log.Debug().Str("created", record.Created).Msg("Unparseable CREATED value, keeping raw text")
		} else {
			record.CreatedAt = createdAt
		}
	}
	return record
}

// textField reads a string field, rendering numbers and booleans as text.
func textField(row *fastjson.Value, name string) string {
	v := row.Get(name)
	if v == nil {
		return ""
	}
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNull:
		return ""
	default:
		return v.String()
	}
}
