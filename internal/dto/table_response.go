package dto

// TableRow is one rendered row. Cells are already escaped; TYPE carries the label markup.
type TableRow struct {
	Created string `json:"CREATED"`
	Source  string `json:"SOURCE"`
	Type    string `json:"TYPE"`
	Message string `json:"MESSAGE"`
}

// TableResponse is the widget's server-side processing reply. Both totals
// carry the upstream TotalResults.
type TableResponse struct {
	Echo                string     `json:"sEcho"`
	TotalRecords        int64      `json:"iTotalRecords"`
	TotalDisplayRecords int64      `json:"iTotalDisplayRecords"`
	Data                []TableRow `json:"Data"`
}

type SeverityResponse struct {
	Type  string `json:"type"`
	Class string `json:"class"`
	Label string `json:"label"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Upstream  string `json:"upstream"`
	CheckedAt string `json:"checkedAt,omitempty"`
	Error     string `json:"error,omitempty"`
}
