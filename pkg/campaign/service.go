package campaign

import (
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"crowdfund/pkg/ledger"
)

// Service is the fund-custody state machine for a single campaign. It pools
// contributions toward a goal, releases funds through admin-created,
// contributor-approved spending requests, and refunds contributors when the
// goal is missed by the deadline.
//
// Every operation that invokes the value-transfer capability commits its
// local state change and releases the service lock first, so a transfer
// that reenters the service observes post-mutation state and is rejected by
// the ordinary preconditions.
type Service struct {
	admin           string
	goal            *big.Int
	deadline        time.Time
	approvalPercent int64

	book     *ledger.Book
	store    RequestStore
	clock    Clock
	transfer Transferrer
	sink     EventSink
	logger   zerolog.Logger

	disbursed *big.Int
	mutex     sync.Mutex
}

// NewService creates a new campaign service. The deadline is fixed at
// construction time plus the configured offset and never changes.
func NewService(
	admin string,
	config *Config,
	store RequestStore,
	clock Clock,
	transfer Transferrer,
	sink EventSink,
	logger zerolog.Logger,
) *Service {
	if config == nil {
		config = DefaultConfig()
	}

	return &Service{
		admin:           admin,
		goal:            new(big.Int).Set(config.Goal),
		deadline:        clock.Now().Add(config.DeadlineOffset),
		approvalPercent: config.ApprovalPercent,
		book:            ledger.NewBook(),
		store:           store,
		clock:           clock,
		transfer:        transfer,
		sink:            sink,
		logger:          logger,
		disbursed:       big.NewInt(0),
	}
}

// Contribute adds the caller's contribution to the campaign pool
func (s *Service) Contribute(caller string, amount *big.Int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	// Contributions are only accepted strictly before the deadline
	if !s.clock.Now().Before(s.deadline) {
		return ErrDeadlinePassed
	}

	if amount.Cmp(MinimumContribution) < 0 {
		return ErrContributionTooSmall
	}

	s.book.Credit(caller, amount)

	s.logger.Info().
		Str("address", caller).
		Str("amount", amount.String()).
		Msg("contribution received")
	s.emit(EventContribution, caller, amount, -1)

	return nil
}

// GetRefund returns the caller's full stake when the goal was missed by the
// deadline. The ledger entry is zeroed and the refund event emitted before
// the external transfer is invoked; if the transfer fails, the stake is
// restored so the caller can retry.
func (s *Service) GetRefund(caller string) error {
	s.mutex.Lock()

	now := s.clock.Now()
	if !now.After(s.deadline) || s.book.Raised().Cmp(s.goal) >= 0 ||
		s.book.Balance(caller).Cmp(MinimumContribution) <= 0 {
		s.mutex.Unlock()
		return ErrNotEligibleForRefund
	}

	// Zero the stake before interacting with the transfer capability, so a
	// reentrant refund attempt sees no remaining balance
	amount := s.book.Clear(caller)
	s.mutex.Unlock()

	s.emit(EventRefund, caller, amount, -1)

	if err := s.transfer.Transfer(caller, amount); err != nil {
		s.mutex.Lock()
		s.book.Restore(caller, amount)
		s.mutex.Unlock()

		s.logger.Warn().
			Str("address", caller).
			Str("amount", amount.String()).
			Err(err).
			Msg("refund transfer failed, stake restored")
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	s.logger.Info().
		Str("address", caller).
		Str("amount", amount.String()).
		Msg("refund issued")

	return nil
}

// CreateRequest appends a new spending request and returns its index.
// Only the campaign admin may create requests.
func (s *Service) CreateRequest(caller, description, recipient string, value *big.Int) (int, error) {
	if caller != s.admin {
		return 0, ErrNotAdmin
	}

	request := &Request{
		Description: description,
		Recipient:   recipient,
		Value:       new(big.Int).Set(value),
		Voters:      make(map[string]bool),
	}

	index, err := s.store.AppendRequest(request)
	if err != nil {
		return 0, fmt.Errorf("failed to save request: %w", err)
	}

	s.logger.Info().
		Int("request", index).
		Str("recipient", recipient).
		Str("value", value.String()).
		Msg("spending request created")
	s.emit(EventRequestCreated, recipient, value, index)

	return index, nil
}

// VoteRequest records the caller's approval of a spending request. One
// address, one vote per request; votes cannot be withdrawn.
func (s *Service) VoteRequest(caller string, requestIndex int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	// Voting requires an active stake above the minimum contribution
	if s.book.Balance(caller).Cmp(MinimumContribution) <= 0 {
		return ErrNotContributor
	}

	request, err := s.store.GetRequest(requestIndex)
	if err != nil {
		return fmt.Errorf("failed to get request: %w", err)
	}
	if request == nil {
		return ErrRequestNotFound
	}

	voted, err := s.store.HasVoted(requestIndex, caller)
	if err != nil {
		return fmt.Errorf("failed to check voter set: %w", err)
	}
	if voted {
		return ErrAlreadyVoted
	}

	if err := s.store.AddVote(requestIndex, caller); err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}

	s.emit(EventVoteCast, caller, nil, requestIndex)

	return nil
}

// MakePayment disburses an approved request's value to its recipient. Only
// the admin may trigger it, the goal must be met and a majority of current
// contributors must have voted for the request. The completed flag is set
// and the payment event emitted before the external transfer is invoked; if
// the transfer fails, the flag is rolled back so the payment can be
// retried.
func (s *Service) MakePayment(caller string, requestIndex int) error {
	s.mutex.Lock()

	if caller != s.admin {
		s.mutex.Unlock()
		return ErrNotAdmin
	}

	if s.book.Raised().Cmp(s.goal) < 0 {
		s.mutex.Unlock()
		return ErrGoalNotReached
	}

	request, err := s.store.GetRequest(requestIndex)
	if err != nil {
		s.mutex.Unlock()
		return fmt.Errorf("failed to get request: %w", err)
	}
	if request == nil {
		s.mutex.Unlock()
		return ErrRequestNotFound
	}

	if request.Completed {
		s.mutex.Unlock()
		return ErrAlreadyCompleted
	}

	votes, err := s.store.VoteCount(requestIndex)
	if err != nil {
		s.mutex.Unlock()
		return fmt.Errorf("failed to count votes: %w", err)
	}

	// With no contributors the quorum can never be met, so the division
	// guard surfaces as a quorum failure
	percent, err := Percent(votes, s.book.Contributors(), 2)
	if err != nil || percent < s.approvalPercent {
		s.mutex.Unlock()
		return ErrQuorumNotMet
	}

	// Mark the request completed before interacting with the transfer
	// capability, so a reentrant payment attempt on the same request is
	// rejected as already completed
	if err := s.store.SetCompleted(requestIndex, true); err != nil {
		s.mutex.Unlock()
		return fmt.Errorf("failed to update request: %w", err)
	}
	s.disbursed = new(big.Int).Add(s.disbursed, request.Value)
	s.mutex.Unlock()

	s.emit(EventPayment, request.Recipient, request.Value, requestIndex)

	if err := s.transfer.Transfer(request.Recipient, request.Value); err != nil {
		// Roll back to a retryable state rather than freezing the request
		// as done with no funds sent
		s.mutex.Lock()
		s.store.SetCompleted(requestIndex, false)
		s.disbursed = new(big.Int).Sub(s.disbursed, request.Value)
		s.mutex.Unlock()

		s.logger.Warn().
			Int("request", requestIndex).
			Str("recipient", request.Recipient).
			Err(err).
			Msg("payment transfer failed, request reopened")
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	s.logger.Info().
		Int("request", requestIndex).
		Str("recipient", request.Recipient).
		Str("value", request.Value.String()).
		Msg("payment released")

	return nil
}

// Admin returns the campaign admin address
func (s *Service) Admin() string {
	return s.admin
}

// Goal returns the campaign funding goal
func (s *Service) Goal() *big.Int {
	return new(big.Int).Set(s.goal)
}

// Deadline returns the contribution deadline
func (s *Service) Deadline() time.Time {
	return s.deadline
}

// Raised returns the aggregate raised amount
func (s *Service) Raised() *big.Int {
	return s.book.Raised()
}

// Contributors returns the number of addresses with an active stake
func (s *Service) Contributors() int64 {
	return s.book.Contributors()
}

// BalanceOf returns the contributed balance of an address
func (s *Service) BalanceOf(address string) *big.Int {
	return s.book.Balance(address)
}

// Balance returns the total custodied value currently held: the raised
// amount minus everything already disbursed through completed requests.
// Refunds are excluded already, since a refund clears its ledger entry.
func (s *Service) Balance() *big.Int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return new(big.Int).Sub(s.book.Raised(), s.disbursed)
}

// GetRequest returns the read-only view of the request at index
func (s *Service) GetRequest(index int) (*RequestInfo, error) {
	request, err := s.store.GetRequest(index)
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	return requestInfo(request), nil
}

// ListRequests returns read-only views of all requests in index order
func (s *Service) ListRequests() ([]*RequestInfo, error) {
	requests, err := s.store.ListRequests()
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	infos := make([]*RequestInfo, 0, len(requests))
	for _, request := range requests {
		infos = append(infos, requestInfo(request))
	}
	return infos, nil
}

// requestInfo builds the public view of a request, omitting the voter set
func requestInfo(request *Request) *RequestInfo {
	return &RequestInfo{
		Index:       request.Index,
		Description: request.Description,
		Recipient:   request.Recipient,
		Value:       new(big.Int).Set(request.Value),
		Completed:   request.Completed,
		VoteCount:   int64(len(request.Voters)),
	}
}

// emit delivers an event to the sink, if one is configured
func (s *Service) emit(eventType EventType, address string, amount *big.Int, requestIndex int) {
	if s.sink == nil {
		return
	}

	event := Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		Address:      address,
		RequestIndex: requestIndex,
		Time:         s.clock.Now(),
	}
	if amount != nil {
		event.Amount = new(big.Int).Set(amount)
	}
	s.sink.Emit(event)
}
