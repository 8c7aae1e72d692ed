// Package services holds the reservation engine: availability checks,
// pricing, the booking lifecycle commands and the room registry. All
// persistence goes through the injected repository.Store.
package services

import (
	"errors"
	"fmt"

	"github.com/reposekdz/eastgate-sub004/models"
)

// Engine error taxonomy. Controllers map these onto HTTP statuses with
// errors.Is; messages may carry detail but the sentinel decides the
// category.
var (
	// ErrInvalidDateRange covers unparseable dates and ranges where
	// check-in is not strictly before check-out.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrRoomNotAvailable is the definitive conflict answer: the room
	// has an active booking overlapping the requested interval. Also
	// reported when a write transaction loses a race twice, since by
	// then the room really did become unavailable between check and
	// commit.
	ErrRoomNotAvailable = errors.New("room not available for the requested dates")

	// ErrInvalidTransition rejects a lifecycle action from a state that
	// has no such edge.
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// ErrInvalidCancellation rejects cancelling a booking that is
	// already checked in, checked out or cancelled.
	ErrInvalidCancellation = errors.New("booking cannot be cancelled in its current state")

	// ErrValidation covers missing or malformed request fields.
	ErrValidation = errors.New("validation failed")
)

func invalidTransitionErr(from, to models.BookingStatus) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

func validationErr(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
