package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// statusTransitions defines the state machine for booking status changes.
// cancelled and completed are terminal.
var statusTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCancelled: {},
	StatusCompleted: {},
}

// IsValid returns true if the status is a recognized booking status.
func (s Status) IsValid() bool {
	_, exists := statusTransitions[s]
	return exists
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s Status) IsTerminal() bool {
	allowed, exists := statusTransitions[s]
	return !exists || len(allowed) == 0
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range statusTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// Relationship describes how an actor is related to a booking.
// It is resolved once per operation and drives the transition rules.
type Relationship int

const (
	RelationshipNone Relationship = iota
	RelationshipOwner
	RelationshipGuideOwner
	RelationshipAdmin
)

func (r Relationship) String() string {
	switch r {
	case RelationshipOwner:
		return "owner"
	case RelationshipGuideOwner:
		return "guide_owner"
	case RelationshipAdmin:
		return "admin"
	default:
		return "none"
	}
}

// Transition validates a status change by the given relationship.
//
// Admins may set any valid status unconditionally, including moving a
// booking out of a terminal state. The booking owner may only cancel a
// pending booking. The guide behind the booking may confirm, complete or
// cancel along the transition graph. Anyone else is rejected outright.
func Transition(current Status, rel Relationship, target Status) error {
	if !target.IsValid() {
		return ErrInvalidStatus
	}

	switch rel {
	case RelationshipAdmin:
		return nil
	case RelationshipOwner:
		if target != StatusCancelled || current != StatusPending {
			return ErrIllegalTransition
		}
		return nil
	case RelationshipGuideOwner:
		if target == StatusPending {
			return ErrIllegalTransition
		}
		if !current.CanTransitionTo(target) {
			return ErrIllegalTransition
		}
		return nil
	default:
		return ErrPermissionDenied
	}
}
