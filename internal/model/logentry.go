package model

import "time"

// LogRecord is one row of the log table as served by the log-search endpoint.
type LogRecord struct {
	CreatedAt    time.Time `json:"-"`
	Created      string    `json:"CREATED"`
	Source       string    `json:"SOURCE"`
	SeverityType string    `json:"TYPE"`
	Message      string    `json:"MESSAGE"`
}
