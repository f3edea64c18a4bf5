package models

import "time"

// IPLog tracks submission volume per client address.
type IPLog struct {
	IPAddress     string    `json:"ip_address"`
	RequestCount  int       `json:"request_count"`
	LastRequestAt time.Time `json:"last_request_at"`
}
