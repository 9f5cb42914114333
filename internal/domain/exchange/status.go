package exchange

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

var ErrUnknownStatus = errors.New("invalid exchange status")

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusAccepted, StatusCompleted, StatusCanceled:
		return Status(s), nil
	default:
		return "", ErrUnknownStatus
	}
}

// Terminal reports whether no further transitions are permitted.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// Rank orders statuses for listing: pending < accepted < completed < other.
func (s Status) Rank() int {
	switch s {
	case StatusPending:
		return 1
	case StatusAccepted:
		return 2
	case StatusCompleted:
		return 3
	default:
		return 4
	}
}

// Role is a participant's side of an exchange.
type Role int

const (
	RoleProvider Role = iota + 1
	RoleRequester
)

type Exchange struct {
	ID          uuid.UUID
	ProviderID  uuid.UUID
	RequesterID uuid.UUID
	OfferingID  uuid.UUID
	RequestID   *uuid.UUID
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RoleOf resolves a user's role within the exchange. The second return is
// false for non-participants, which callers report as not found rather than
// forbidden so that existence is not leaked.
func (e Exchange) RoleOf(userID uuid.UUID) (Role, bool) {
	switch userID {
	case e.ProviderID:
		return RoleProvider, true
	case e.RequesterID:
		return RoleRequester, true
	default:
		return 0, false
	}
}
