package exchange

import "errors"

var (
	ErrTerminalState     = errors.New("exchange is in a terminal state")
	ErrCannotRevert      = errors.New("cannot revert an exchange back to pending status")
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrProviderOnly  = errors.New("only the provider can accept an exchange")
	ErrRequesterOnly = errors.New("only the requester can mark an exchange as completed")
)

type actorMask uint8

const (
	actorProvider actorMask = 1 << iota
	actorRequester
)

func (m actorMask) allows(r Role) bool {
	switch r {
	case RoleProvider:
		return m&actorProvider != 0
	case RoleRequester:
		return m&actorRequester != 0
	default:
		return false
	}
}

type transition struct {
	actors actorMask
	denied error
}

// The whole rule set lives in this table; Authorize only interprets it.
var transitions = map[[2]Status]transition{
	{StatusPending, StatusAccepted}:   {actors: actorProvider, denied: ErrProviderOnly},
	{StatusAccepted, StatusCompleted}: {actors: actorRequester, denied: ErrRequesterOnly},
	{StatusPending, StatusCanceled}:   {actors: actorProvider | actorRequester},
	{StatusAccepted, StatusCanceled}:  {actors: actorProvider | actorRequester},
}

// Authorize decides whether the given participant may move an exchange from
// current to target. It returns nil when the transition is legal, one of the
// state errors when the pair is not in the table, and the rule's denial error
// when the pair is legal but reserved for the other participant.
func Authorize(current, target Status, actor Role) error {
	if current.Terminal() {
		return ErrTerminalState
	}
	if target == StatusPending {
		return ErrCannotRevert
	}

	t, ok := transitions[[2]Status{current, target}]
	if !ok {
		return ErrInvalidTransition
	}
	if !t.actors.allows(actor) {
		if t.denied != nil {
			return t.denied
		}
		return ErrInvalidTransition
	}
	return nil
}

// IsPermissionError separates actor-role denials (forbidden) from state
// legality failures (bad request).
func IsPermissionError(err error) bool {
	return errors.Is(err, ErrProviderOnly) || errors.Is(err, ErrRequesterOnly)
}
