package campaign

import "errors"

var (
	// ErrDeadlinePassed indicates a contribution arrived at or after the deadline
	ErrDeadlinePassed = errors.New("contribution deadline has passed")

	// ErrContributionTooSmall indicates a contribution below the minimum
	ErrContributionTooSmall = errors.New("contribution is below the minimum")

	// ErrNotEligibleForRefund indicates the refund preconditions are not met
	ErrNotEligibleForRefund = errors.New("not eligible for refund")

	// ErrNotAdmin indicates the caller lacks the administrative capability
	ErrNotAdmin = errors.New("caller is not the campaign admin")

	// ErrRequestNotFound indicates the request index does not exist
	ErrRequestNotFound = errors.New("spending request not found")

	// ErrAlreadyCompleted indicates the request has already been paid out
	ErrAlreadyCompleted = errors.New("spending request already completed")

	// ErrGoalNotReached indicates the raised amount is below the goal
	ErrGoalNotReached = errors.New("funding goal not reached")

	// ErrQuorumNotMet indicates the request lacks a contributor majority
	ErrQuorumNotMet = errors.New("vote quorum not met")

	// ErrNotContributor indicates the caller holds no qualifying stake
	ErrNotContributor = errors.New("caller is not a qualifying contributor")

	// ErrAlreadyVoted indicates the caller already voted on the request
	ErrAlreadyVoted = errors.New("caller already voted on this request")

	// ErrDivisionByZero indicates a zero denominator in percentage math
	ErrDivisionByZero = errors.New("division by zero")

	// ErrTransferFailed indicates the value-transfer capability reported failure
	ErrTransferFailed = errors.New("value transfer failed")
)
