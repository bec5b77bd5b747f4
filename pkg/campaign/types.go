package campaign

import (
	"math/big"
	"time"
)

// MinimumContribution is the floor for a single contribution and for vote
// eligibility, in the smallest value unit. Fixed after construction.
var MinimumContribution = big.NewInt(100)

// EventType identifies the kind of a campaign event
type EventType string

const (
	EventContribution   EventType = "contribution"
	EventRefund         EventType = "refund"
	EventRequestCreated EventType = "request_created"
	EventVoteCast       EventType = "vote_cast"
	EventPayment        EventType = "payment"
)

// Event represents a campaign notification delivered to the event sink
type Event struct {
	ID           string
	Type         EventType
	Address      string
	Amount       *big.Int
	RequestIndex int
	Time         time.Time
}

// Request represents an admin-created spending request
type Request struct {
	Index       int
	Description string
	Recipient   string
	Value       *big.Int
	Completed   bool
	Voters      map[string]bool
}

// RequestInfo is the read-only view of a request. The raw voter set is
// deliberately absent from the public read surface.
type RequestInfo struct {
	Index       int      `json:"index"`
	Description string   `json:"description"`
	Recipient   string   `json:"recipient"`
	Value       *big.Int `json:"value"`
	Completed   bool     `json:"completed"`
	VoteCount   int64    `json:"vote_count"`
}

// Config represents the campaign configuration
type Config struct {
	Goal            *big.Int      `json:"goal"`
	DeadlineOffset  time.Duration `json:"deadline_offset"`
	ApprovalPercent int64         `json:"approval_percent"`
}

// DefaultConfig returns the default campaign configuration
func DefaultConfig() *Config {
	return &Config{
		Goal:            big.NewInt(100000),
		DeadlineOffset:  7 * 24 * time.Hour, // 1 week
		ApprovalPercent: 50,
	}
}
