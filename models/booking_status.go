package models

import "strings"

// BookingStatus is the booking lifecycle state. The set is closed and
// every transition goes through CanTransitionTo; call sites never
// compare raw strings.
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked_in"
	BookingStatusCheckedOut BookingStatus = "checked_out"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// transitions is the full lifecycle graph:
//
//	pending -> confirmed -> checked_in -> checked_out (terminal)
//	pending/confirmed -> cancelled (terminal)
//
// checked_in and checked_out can never be cancelled, and no edge skips
// a state.
var transitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCheckedIn, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusCheckedIn, BookingStatusCancelled},
	BookingStatusCheckedIn:  {BookingStatusCheckedOut},
	BookingStatusCheckedOut: {},
	BookingStatusCancelled:  {},
}

func (s BookingStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Active reports whether the booking still occupies the room timeline
// and therefore participates in conflict checks.
func (s BookingStatus) Active() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn:
		return true
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// ActiveStatuses returns the statuses counted by the conflict checker,
// in a form usable directly in an IN clause.
func ActiveStatuses() []BookingStatus {
	return []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn}
}

// NormalizeBookingStatus maps loosely typed input ("Checked-In",
// "CONFIRMED") onto the closed enum. Returns the empty status when
// nothing matches.
func NormalizeBookingStatus(raw string) BookingStatus {
	v := strings.ToLower(strings.TrimSpace(raw))
	v = strings.ReplaceAll(v, "-", "_")
	v = strings.ReplaceAll(v, " ", "_")
	s := BookingStatus(v)
	if s.Valid() {
		return s
	}
	return ""
}
