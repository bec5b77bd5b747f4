package store

import (
	"sync"

	"crowdfund/pkg/campaign"
)

// MemoryStore is an in-memory implementation of RequestStore. Requests are
// held in an append-only slice; the index assigned at append time is the
// request's identity for its whole lifetime.
type MemoryStore struct {
	requests []*campaign.Request
	mutex    sync.RWMutex
}

// NewMemoryStore creates a new memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		requests: make([]*campaign.Request, 0),
	}
}

// AppendRequest appends a request and returns its sequential index
func (s *MemoryStore) AppendRequest(request *campaign.Request) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	index := len(s.requests)

	// Store a copy of the request
	copy := *request
	copy.Index = index
	copy.Voters = make(map[string]bool)
	for voter := range request.Voters {
		copy.Voters[voter] = true
	}
	s.requests = append(s.requests, &copy)
	return index, nil
}

// GetRequest retrieves the request at index, or nil if it does not exist
func (s *MemoryStore) GetRequest(index int) (*campaign.Request, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if index < 0 || index >= len(s.requests) {
		return nil, nil
	}

	// Return a copy of the request
	request := s.requests[index]
	copy := *request
	copy.Voters = make(map[string]bool)
	for voter := range request.Voters {
		copy.Voters[voter] = true
	}
	return &copy, nil
}

// ListRequests lists all requests in index order
func (s *MemoryStore) ListRequests() ([]*campaign.Request, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	requests := make([]*campaign.Request, 0, len(s.requests))
	for _, request := range s.requests {
		// Return a copy of each request
		copy := *request
		requests = append(requests, &copy)
	}
	return requests, nil
}

// HasVoted reports whether voter is in the request's voter set
func (s *MemoryStore) HasVoted(index int, voter string) (bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if index < 0 || index >= len(s.requests) {
		return false, nil
	}
	return s.requests[index].Voters[voter], nil
}

// AddVote adds voter to the request's voter set
func (s *MemoryStore) AddVote(index int, voter string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if index < 0 || index >= len(s.requests) {
		return nil
	}
	s.requests[index].Voters[voter] = true
	return nil
}

// VoteCount returns the cardinality of the request's voter set
func (s *MemoryStore) VoteCount(index int) (int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if index < 0 || index >= len(s.requests) {
		return 0, nil
	}
	return int64(len(s.requests[index].Voters)), nil
}

// SetCompleted sets the request's completed flag
func (s *MemoryStore) SetCompleted(index int, completed bool) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if index < 0 || index >= len(s.requests) {
		return nil
	}
	s.requests[index].Completed = completed
	return nil
}
