package booking

import "errors"

var ErrInvalidTransition = errors.New("invalid status transition")

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	// completed still admits a refund, so it is not listed here
	switch s {
	case StatusCancelled, StatusRefunded:
		return true
	default:
		return false
	}
}

// validTransitions is the single source of truth for the booking workflow.
// Handlers must never set a status without going through CanTransitionTo.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {StatusRefunded},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", errors.New("invalid booking status")
	}
	return status, nil
}
