package campaign

import (
	"math/big"
	"time"
)

// Clock supplies the trusted current time
type Clock interface {
	Now() time.Time
}

// Transferrer is the injected value-transfer capability. Transfer must be
// synchronous and atomic: a non-nil error means no value moved. It may call
// back into the campaign before returning, so every caller commits its own
// state first.
type Transferrer interface {
	Transfer(to string, amount *big.Int) error
}

// EventSink receives campaign notifications. Emit is fire-and-forget and
// must not affect control flow.
type EventSink interface {
	Emit(event Event)
}

// RequestStore defines methods for storing spending requests
type RequestStore interface {
	// AppendRequest appends a request and returns its sequential index
	AppendRequest(request *Request) (int, error)

	// GetRequest returns the request at index, or nil if it does not exist
	GetRequest(index int) (*Request, error)

	// ListRequests returns all requests in index order
	ListRequests() ([]*Request, error)

	// HasVoted reports whether voter is in the request's voter set
	HasVoted(index int, voter string) (bool, error)

	// AddVote adds voter to the request's voter set
	AddVote(index int, voter string) error

	// VoteCount returns the cardinality of the request's voter set
	VoteCount(index int) (int64, error)

	// SetCompleted sets the request's completed flag
	SetCompleted(index int, completed bool) error
}
