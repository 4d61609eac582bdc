// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors.  For example, ErrSlotTaken is the
// conflict signal raised when the overlap check inside the reservation
// transaction finds a competing booking, while ErrDayBlocked indicates
// that the requested calendar day is administratively unavailable.
package repository

import "errors"

// ErrSlotTaken is returned when the requested time range overlaps an
// existing non-cancelled booking.  Handlers translate this into an
// HTTP 409 response so the client can prompt the user to pick a
// different slot.
var ErrSlotTaken = errors.New("slot no longer available")

// ErrDayBlocked is returned when the requested calendar day appears in
// the blocked_dates registry.  Handlers translate this into an HTTP
// 409 response regardless of time-range availability.
var ErrDayBlocked = errors.New("day is blocked")

// ErrBookingNotFound is returned when a booking lookup by ID matches
// no row.  Handlers translate this into an HTTP 404 response.
var ErrBookingNotFound = errors.New("booking not found")

// ErrInvalidTransition is returned when a status change would move a
// booking backwards in its lifecycle, such as un-cancelling.  Handlers
// translate this into an HTTP 409 response.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrDateAlreadyBlocked is returned when an admin attempts to block a
// calendar day that is already present in the registry.
var ErrDateAlreadyBlocked = errors.New("date already blocked")

// ErrEmailTaken is returned when provisioning an operator account with
// an email that already exists.
var ErrEmailTaken = errors.New("email already registered")
