package bridge

import (
	"net/url"
	"strconv"
	"strings"

	"logtable-backend/internal/model"
)

const (
	ParamPage = "page"
	ParamSize = "size"
	ParamSort = "sort"
)

// Param is one widget query parameter. Order and duplicates are significant.
type Param struct {
	Name  string
	Value string
}

type Query []Param

// Get returns the value of the first parameter with the given name.
func (q Query) Get(name string) (string, bool) {
	for _, p := range q {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Encode serializes the query as a URL query string, keeping parameter order.
func (q Query) Encode() string {
	var sb strings.Builder
	for i, p := range q {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Name))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}

// ResolveSortDirection scans extra for the sort field. The first match wins;
// no match yields DESC.
func ResolveSortDirection(extra Query, sortField string) model.SortDirection {
	if v, ok := extra.Get(sortField); ok {
		return model.ParseSortDirection(v)
	}
	return model.SortDesc
}

// BuildQuery appends page, size and sort to the widget's own parameters.
// extra is left untouched.
func BuildQuery(req model.PageRequest, extra Query, sortField string) Query {
	out := make(Query, 0, len(extra)+3)
	out = append(out, extra...)

	dir := req.SortDirection
	if dir == "" {
		dir = ResolveSortDirection(extra, sortField)
	}

	return append(out,
		Param{Name: ParamPage, Value: strconv.Itoa(req.PageIndex)},
		Param{Name: ParamSize, Value: strconv.Itoa(req.PageSize)},
		Param{Name: ParamSort, Value: string(dir)},
	)
}

func (b *Bridge) BuildQuery(req model.PageRequest, extra Query) Query {
	return BuildQuery(req, extra, b.sortField)
}

// ParseQuery splits a raw query string into parameters in their original order.
func ParseQuery(rawQuery string) (Query, error) {
	q := Query{}
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		n, err := url.QueryUnescape(name)
		if err != nil {
			return nil, err
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			return nil, err
		}
		q = append(q, Param{Name: n, Value: v})
	}
	return q, nil
}
