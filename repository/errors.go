// Package repository defines the storage contracts for the reservation
// engine plus the sentinel errors shared by its implementations.
// Handlers and services distinguish failure scenarios with errors.Is
// instead of matching message text.
package repository

import "errors"

// ErrNotFound is returned when a room, booking, branch or staff row
// does not exist. Controllers translate it into HTTP 404.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint is violated, such
// as creating a second room with the same number inside one branch.
var ErrDuplicate = errors.New("duplicate record")

// ErrTxConflict is returned when a write transaction loses to a
// concurrent writer (deadlock or lock wait timeout). Callers may retry
// the whole transaction once; a second loss means the room genuinely
// became unavailable.
var ErrTxConflict = errors.New("transaction conflict")
