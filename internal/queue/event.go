// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published after a booking has been durably
// committed.  It contains enough information for downstream consumers to
// send the guest confirmation and the admin notification without querying
// the primary database.
type BookingCreatedEvent struct {
    BookingID uint64 `json:"booking_id"`
    Name      string `json:"name"`
    Email     string `json:"email"`
    Start     string `json:"start"`
    End       string `json:"end"`
    CreatedAt string `json:"created_at"`
}
