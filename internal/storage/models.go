package storage

import "time"

// QueryRecord represents one stored symptom-analysis exchange.
type QueryRecord struct {
	ID        int64
	SessionID string // UUID minted per request; empty for legacy rows
	Symptoms  string // Original user input
	Response  string // Post-processed analysis text
	CreatedAt time.Time
}
