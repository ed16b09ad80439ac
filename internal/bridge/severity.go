package bridge

import "logtable-backend/internal/model"

// severityTable is checked in order; the first set containing the type wins.
var severityTable = []struct {
	class model.SeverityClass
	types []string
}{
	{class: model.SeverityCritical, types: []string{"EMERGENCY", "ALERT", "CRITICAL"}},
	{class: model.SeverityWarning, types: []string{"ERROR", "WARNING"}},
	{class: model.SeverityNotice, types: []string{"NOTICE"}},
	{class: model.SeveritySuccess, types: []string{"INFORMATIONAL"}},
}

// ClassifySeverity maps a log type to its display class. Matching is case-sensitive.
func ClassifySeverity(severityType string) model.SeverityClass {
	for _, entry := range severityTable {
		for _, t := range entry.types {
			if t == severityType {
				return entry.class
			}
		}
	}
	return model.SeverityUnknown
}
