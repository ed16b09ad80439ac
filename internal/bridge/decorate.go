package bridge

import (
	"html"

	"logtable-backend/internal/model"
)

// EscapeCell is the escaping applied to every cell sent to the widget.
func EscapeCell(s string) string {
	return html.EscapeString(s)
}

// DecorateRow renders the TYPE cell of a record as a severity label.
func DecorateRow(record model.LogRecord) string {
	class := ClassifySeverity(record.SeverityType)
	return `<span class="label ` + class.LabelClass() + `">` + EscapeCell(record.SeverityType) + `</span>`
}
