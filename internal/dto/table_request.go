package dto

import "logtable-backend/internal/bridge"

// TableRequest is what the table widget sends on load, page change or sort change.
type TableRequest struct {
	Echo          string
	DisplayStart  int
	DisplayLength int
	TableID       string
	// Params holds every widget parameter as received, in order.
	Params bridge.Query
}
