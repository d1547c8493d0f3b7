// Package service implements the booking admission flow: validate the
// candidate reservation, admit it through the store's atomic
// check-then-insert, and fan out notifications without blocking the
// caller.
package service

import (
    "context"
    "errors"
    "fmt"
    "log"
    "strings"
    "time"

    "github.com/iliyamo/condo-booking/internal/model"
    "github.com/iliyamo/condo-booking/internal/queue"
)

// ErrInvalid marks a validation failure.  Handlers translate it into an
// HTTP 400 response carrying the wrapped message.
var ErrInvalid = errors.New("invalid booking")

// BookingStore is the durable collection of bookings.  CreateIfVacant
// must be atomic with respect to concurrent calls: of two overlapping
// candidates at most one may be inserted, the other must receive
// repository.ErrConflict.  The MySQL repository enforces this with a
// serializable transaction; test doubles use a mutex.
type BookingStore interface {
    List(ctx context.Context) ([]model.Booking, error)
    CreateIfVacant(ctx context.Context, b *model.Booking) error
}

// EventPublisher delivers booking events to the notification pipeline.
type EventPublisher interface {
    BookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error
}

// BookingService admits new reservations.  The store is the authoritative
// guard against double booking; the service owns validation and the
// fire-and-forget notification dispatch.
type BookingService struct {
    store  BookingStore
    events EventPublisher
}

// NewBookingService constructs a BookingService.  events may be nil when
// no broker is configured; successful bookings then go unannounced.
func NewBookingService(store BookingStore, events EventPublisher) *BookingService {
    if store == nil {
        panic("nil store passed to NewBookingService")
    }
    return &BookingService{store: store, events: events}
}

// CreateBooking validates the candidate, rejects it when its inclusive
// date range intersects any stored booking, and otherwise persists it
// with a store-assigned id.  On success the returned booking carries its
// id and creation time, and the booking.created event is published in the
// background; the caller never waits for it and never sees its failure.
//
// Returned errors: ErrInvalid (wrapped with a reason) for bad input,
// repository.ErrConflict for an overlap, anything else is a store error.
func (s *BookingService) CreateBooking(ctx context.Context, name, email, start, end string) (*model.Booking, error) {
    name = strings.TrimSpace(name)
    email = strings.TrimSpace(email)
    if name == "" || email == "" || start == "" || end == "" {
        return nil, fmt.Errorf("%w: name, email, start & end are required", ErrInvalid)
    }
    if !model.ValidDate(start) || !model.ValidDate(end) {
        return nil, fmt.Errorf("%w: start and end must be YYYY-MM-DD dates", ErrInvalid)
    }
    // ISO dates order lexicographically
    if start > end {
        return nil, fmt.Errorf("%w: start must not be after end", ErrInvalid)
    }

    b := &model.Booking{Name: name, Email: email, Start: start, End: end}
    if err := s.store.CreateIfVacant(ctx, b); err != nil {
        return nil, err
    }

    s.announce(*b)
    return b, nil
}

// ListBookings returns all bookings ordered by id ascending.
func (s *BookingService) ListBookings(ctx context.Context) ([]model.Booking, error) {
    return s.store.List(ctx)
}

// announce publishes the booking.created event from a fresh goroutine.
// The request path does not wait for the broker; a publish failure is
// logged and dropped.
func (s *BookingService) announce(b model.Booking) {
    if s.events == nil {
        return
    }
    ev := queue.BookingCreatedEvent{
        BookingID: b.ID,
        Name:      b.Name,
        Email:     b.Email,
        Start:     b.Start,
        End:       b.End,
        CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
    }
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        if err := s.events.BookingCreated(ctx, ev); err != nil {
            log.Printf("booking: event publish failed for booking %d: %v", ev.BookingID, err)
        }
    }()
}
