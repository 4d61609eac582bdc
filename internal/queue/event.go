// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published after a reservation commits.  It
// carries enough information for downstream consumers to write audit
// logs or feed analytics without querying the primary database.  No
// customer-facing notification is driven from it.
type BookingCreatedEvent struct {
    BookingID     uint64 `json:"booking_id"`
    BookingNumber string `json:"booking_number"`
    Service       string `json:"service"`
    Location      string `json:"location"`
    TimeStart     string `json:"time_start"`
    TimeEnd       string `json:"time_end"`
    GuestName     string `json:"guest_name"`
    GuestEmail    string `json:"guest_email"`
    CreatedAt     string `json:"created_at"`
}
