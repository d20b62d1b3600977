package order

import (
	"fmt"

	"orders/internal/pkg/errs"
)

// Status is the position of an order in its fulfillment lifecycle.
//
// Transitions:
//
//	RECEIVED ──> CONFIRMED ──> DISPATCHED ──> DELIVERED
//	    │            │              │
//	    └────────────┴──────────────┴───────> CANCELED
//
// DELIVERED and CANCELED are terminal: they have no outgoing transitions.
// Status values travel over the wire and into storage as their upper-case names.
type Status int

const (
	// Unknown is the zero value. It is never valid and has no transitions.
	Unknown Status = iota

	// Received is assigned to every order at creation.
	Received

	// Confirmed means the store accepted the order.
	Confirmed

	// Dispatched means the order left the store.
	Dispatched

	// Delivered is terminal.
	Delivered

	// Canceled is terminal and reachable from every non-terminal status.
	Canceled
)

func getStatusNames() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Received:   "RECEIVED",
		Confirmed:  "CONFIRMED",
		Dispatched: "DISPATCHED",
		Delivered:  "DELIVERED",
		Canceled:   "CANCELED",
	}
}

// getTransitions returns the transition table. A fresh map is built on every call so that
// no caller can mutate the table shared by the rest of the package.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // Unknown has no transitions
	return map[Status][]Status{
		Received:   {Confirmed, Canceled},
		Confirmed:  {Dispatched, Canceled},
		Dispatched: {Delivered, Canceled},
		Delivered:  {},
		Canceled:   {},
	}
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Received, Confirmed, Dispatched, Delivered, Canceled}
}

// ParseStatus converts a wire name into a Status.
// Names are matched exactly and case-sensitively; "UNKNOWN" is not accepted.
//
// Example:
//
//	s, err := order.ParseStatus("CONFIRMED") // order.Confirmed, nil
//	_, err = order.ParseStatus("confirmed")  // ValueIsInvalidError
func ParseStatus(name string) (Status, error) {
	for s, n := range getStatusNames() {
		if s != Unknown && n == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status name", name))
}

// Validate returns a ValueIsInvalidError for Unknown and for values outside the enumeration.
func (s Status) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "UNKNOWN" for anything outside the enumeration.
func (s Status) String() string {
	if name, ok := getStatusNames()[s]; ok {
		return name
	}
	return getStatusNames()[Unknown]
}

// AllowedTransitions returns a copy of the statuses reachable from s in one step.
// The result is empty for terminal statuses and for values outside the enumeration.
func (s Status) AllowedTransitions() []Status {
	allowed := getTransitions()[s]
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// CanTransitionTo reports whether target is in the allowed set of s.
//
// Example:
//
//	order.Received.CanTransitionTo(order.Confirmed) // true
//	order.Confirmed.CanTransitionTo(order.Received) // false
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s is a known status with no outgoing transitions.
// Values outside the enumeration are not terminal; they simply have nowhere to go.
func (s Status) IsTerminal() bool {
	allowed, ok := getTransitions()[s]
	return ok && len(allowed) == 0
}

// IsCancelable reports whether Canceled is reachable from s.
func (s Status) IsCancelable() bool {
	return s.CanTransitionTo(Canceled)
}

// Next returns the single forward step from s:
// RECEIVED to CONFIRMED, CONFIRMED to DISPATCHED, DISPATCHED to DELIVERED.
// It returns false for terminal statuses and for Unknown.
func (s Status) Next() (Status, bool) {
	for _, allowed := range getTransitions()[s] {
		if allowed != Canceled {
			return allowed, true
		}
	}
	return Unknown, false
}

// MarshalText renders the wire name.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText parses a wire name.
func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
