package service

import (
    "context"
    "errors"
    "sync"
    "testing"
    "time"

    "github.com/iliyamo/condo-booking/internal/model"
    "github.com/iliyamo/condo-booking/internal/queue"
    "github.com/iliyamo/condo-booking/internal/repository"
)

// memStore is an in-memory BookingStore.  Its mutex makes CreateIfVacant
// atomic, the same contract the MySQL repository provides through its
// transaction.
type memStore struct {
    mu       sync.Mutex
    bookings []model.Booking
    nextID   uint64
    fail     error // when set, CreateIfVacant returns it
}

func (s *memStore) List(ctx context.Context) ([]model.Booking, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    out := make([]model.Booking, len(s.bookings))
    copy(out, s.bookings)
    return out, nil
}

func (s *memStore) CreateIfVacant(ctx context.Context, b *model.Booking) error {
    s.mu.Lock()
    defer s.mu.Unlock()
    if s.fail != nil {
        return s.fail
    }
    for _, ex := range s.bookings {
        if ex.OverlapsRange(b.Start, b.End) {
            return repository.ErrConflict
        }
    }
    s.nextID++
    b.ID = s.nextID
    b.CreatedAt = time.Now().UTC()
    s.bookings = append(s.bookings, *b)
    return nil
}

type capturePublisher struct{ ch chan queue.BookingCreatedEvent }

func (p *capturePublisher) BookingCreated(ctx context.Context, ev queue.BookingCreatedEvent) error {
    p.ch <- ev
    return nil
}

type failPublisher struct{}

func (failPublisher) BookingCreated(context.Context, queue.BookingCreatedEvent) error {
    return errors.New("broker down")
}

func TestCreateBookingValidation(t *testing.T) {
    store := &memStore{}
    svc := NewBookingService(store, nil)
    ctx := context.Background()

    cases := []struct {
        name  string
        guest string
        email string
        start string
        end   string
    }{
        {"empty name", "", "a@b.c", "2024-01-01", "2024-01-02"},
        {"empty email", "Ann", "", "2024-01-01", "2024-01-02"},
        {"empty start", "Ann", "a@b.c", "", "2024-01-02"},
        {"empty end", "Ann", "a@b.c", "2024-01-01", ""},
        {"whitespace name", "   ", "a@b.c", "2024-01-01", "2024-01-02"},
        {"malformed start", "Ann", "a@b.c", "01/01/2024", "2024-01-02"},
        {"malformed end", "Ann", "a@b.c", "2024-01-01", "2024-1-2"},
        {"start after end", "Ann", "a@b.c", "2024-01-05", "2024-01-01"},
    }
    for _, tc := range cases {
        _, err := svc.CreateBooking(ctx, tc.guest, tc.email, tc.start, tc.end)
        if !errors.Is(err, ErrInvalid) {
            t.Errorf("%s: err = %v, want ErrInvalid", tc.name, err)
        }
    }
    if got, _ := store.List(ctx); len(got) != 0 {
        t.Fatalf("store has %d bookings after rejected input, want 0", len(got))
    }
}

func TestCreateBookingBoundaryConflict(t *testing.T) {
    svc := NewBookingService(&memStore{}, nil)
    ctx := context.Background()

    if _, err := svc.CreateBooking(ctx, "Ann", "ann@example.com", "2024-01-10", "2024-01-15"); err != nil {
        t.Fatalf("first booking: %v", err)
    }
    // shared boundary day counts as overlap
    if _, err := svc.CreateBooking(ctx, "Bob", "bob@example.com", "2024-01-15", "2024-01-20"); !errors.Is(err, repository.ErrConflict) {
        t.Fatalf("boundary booking: err = %v, want ErrConflict", err)
    }
    // the day after the end is free
    if _, err := svc.CreateBooking(ctx, "Bob", "bob@example.com", "2024-01-16", "2024-01-20"); err != nil {
        t.Fatalf("adjacent booking: %v", err)
    }
}

func TestCreateBookingIDsIncrease(t *testing.T) {
    svc := NewBookingService(&memStore{}, nil)
    ctx := context.Background()

    var last uint64
    ranges := [][2]string{
        {"2024-01-01", "2024-01-02"},
        {"2024-02-01", "2024-02-02"},
        {"2024-03-01", "2024-03-02"},
        {"2024-04-01", "2024-04-02"},
    }
    for _, r := range ranges {
        b, err := svc.CreateBooking(ctx, "Ann", "ann@example.com", r[0], r[1])
        if err != nil {
            t.Fatalf("booking %v: %v", r, err)
        }
        if b.ID <= last {
            t.Fatalf("id %d not greater than previous %d", b.ID, last)
        }
        last = b.ID
    }
}

func TestCreateBookingConcurrentSameRange(t *testing.T) {
    store := &memStore{}
    svc := NewBookingService(store, nil)
    ctx := context.Background()

    const workers = 8
    var wg sync.WaitGroup
    results := make(chan error, workers)
    start := make(chan struct{})
    for i := 0; i < workers; i++ {
        wg.Add(1)
        go func() {
            defer wg.Done()
            <-start
            _, err := svc.CreateBooking(ctx, "Ann", "ann@example.com", "2024-02-01", "2024-02-05")
            results <- err
        }()
    }
    close(start)
    wg.Wait()
    close(results)

    var ok, conflict int
    for err := range results {
        switch {
        case err == nil:
            ok++
        case errors.Is(err, repository.ErrConflict):
            conflict++
        default:
            t.Fatalf("unexpected error: %v", err)
        }
    }
    if ok != 1 || conflict != workers-1 {
        t.Fatalf("got %d successes and %d conflicts, want exactly 1 and %d", ok, conflict, workers-1)
    }
}

func TestStoredBookingsNeverOverlap(t *testing.T) {
    store := &memStore{}
    svc := NewBookingService(store, nil)
    ctx := context.Background()

    // a mix of accepted and rejected candidates
    candidates := [][2]string{
        {"2024-01-01", "2024-01-05"},
        {"2024-01-05", "2024-01-08"}, // conflict (boundary)
        {"2024-01-06", "2024-01-08"},
        {"2024-01-02", "2024-01-03"}, // conflict (contained)
        {"2024-01-09", "2024-01-09"},
        {"2023-12-30", "2024-01-01"}, // conflict (boundary)
        {"2023-12-28", "2023-12-31"},
    }
    for _, cand := range candidates {
        _, err := svc.CreateBooking(ctx, "Ann", "ann@example.com", cand[0], cand[1])
        if err != nil && !errors.Is(err, repository.ErrConflict) {
            t.Fatalf("candidate %v: %v", cand, err)
        }
    }

    stored, _ := store.List(ctx)
    for i := range stored {
        for j := i + 1; j < len(stored); j++ {
            if stored[i].OverlapsRange(stored[j].Start, stored[j].End) {
                t.Fatalf("stored bookings %d and %d overlap: %+v %+v", stored[i].ID, stored[j].ID, stored[i], stored[j])
            }
        }
    }
}

func TestCreateBookingPublishesEvent(t *testing.T) {
    pub := &capturePublisher{ch: make(chan queue.BookingCreatedEvent, 1)}
    svc := NewBookingService(&memStore{}, pub)

    b, err := svc.CreateBooking(context.Background(), "Ann", "ann@example.com", "2024-05-01", "2024-05-03")
    if err != nil {
        t.Fatalf("create: %v", err)
    }

    select {
    case ev := <-pub.ch:
        if ev.BookingID != b.ID || ev.Email != "ann@example.com" || ev.Start != "2024-05-01" || ev.End != "2024-05-03" {
            t.Fatalf("event %+v does not match booking %+v", ev, b)
        }
    case <-time.After(2 * time.Second):
        t.Fatal("booking.created event was never published")
    }
}

func TestCreateBookingIgnoresPublishFailure(t *testing.T) {
    svc := NewBookingService(&memStore{}, failPublisher{})

    b, err := svc.CreateBooking(context.Background(), "Ann", "ann@example.com", "2024-06-01", "2024-06-03")
    if err != nil {
        t.Fatalf("create: %v", err)
    }
    if b.ID == 0 {
        t.Fatal("booking has no id")
    }
}

func TestCreateBookingStoreError(t *testing.T) {
    boom := errors.New("connection reset")
    svc := NewBookingService(&memStore{fail: boom}, nil)

    _, err := svc.CreateBooking(context.Background(), "Ann", "ann@example.com", "2024-07-01", "2024-07-03")
    if !errors.Is(err, boom) {
        t.Fatalf("err = %v, want wrapped store error", err)
    }
}
