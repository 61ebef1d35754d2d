package models

import "time"

// TxStatus is the success/failure classification of a transaction.
type TxStatus string

const (
	StatusSuccess TxStatus = "success"
	StatusError   TxStatus = "error"
	// StatusPending marks a request with no correlated response. The strict
	// correlation policy never materializes pending transactions, but the
	// value is part of the public vocabulary for callers that render one.
	StatusPending TxStatus = "pending"
)

// MatchBasis records which strategy paired a request with a response.
type MatchBasis string

const (
	BasisKey  MatchBasis = "key"
	BasisTime MatchBasis = "time"
)

// Transaction is a correlated request/response pair.
type Transaction struct {
	// ID is derived from the matched key and the response timestamp. Unique
	// within one correlation run, not globally.
	ID string `json:"id" csv:"id"`

	// Request is always set; Response is nil for a pending transaction.
	Request  *LogRecord `json:"request" csv:"-"`
	Response *LogRecord `json:"response,omitempty" csv:"-"`

	// DurationMillis is response minus request time, clamped to 0 when
	// either timestamp is absent or the difference is negative.
	DurationMillis int64 `json:"duration_millis" csv:"duration_ms"`

	Status     TxStatus   `json:"status" csv:"status"`
	MatchBasis MatchBasis `json:"match_basis" csv:"match_basis"`

	// Timestamp equals the request timestamp and drives newest-first sorting.
	Timestamp time.Time `json:"timestamp" csv:"timestamp"`
}

// IsPending reports whether no response has been correlated yet.
func (t Transaction) IsPending() bool {
	return t.Response == nil
}
