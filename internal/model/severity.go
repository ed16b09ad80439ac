package model

type SeverityClass int

const (
	SeverityUnknown SeverityClass = iota
	SeverityCritical
	SeverityWarning
	SeverityNotice
	SeveritySuccess
)

func (c SeverityClass) String() string {
	switch c {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityWarning:
		return "WARNING"
	case SeverityNotice:
		return "NOTICE"
	case SeveritySuccess:
		return "SUCCESS"
	default:
		return "UNKNOWN"
	}
}

// LabelClass returns the CSS modifier used on the row label. Unknown severities get none.
func (c SeverityClass) LabelClass() string {
	switch c {
	case SeverityCritical:
		return "important"
	case SeverityWarning:
		return "warning"
	case SeverityNotice:
		return "notice"
	case SeveritySuccess:
		return "success"
	default:
		return ""
	}
}
