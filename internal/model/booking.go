package model

import "time"

// DateLayout is the wire and storage format for calendar dates.  Dates in
// this format order lexicographically, so string comparison is safe.
const DateLayout = "2006-01-02"

// Booking is a confirmed stay over an inclusive range of calendar dates.
// Identifiers are assigned by the store at creation time and are never
// reused or mutated.  A booking is immutable once created.
//
// Fields:
//  ID        – primary key identifier, strictly increasing.
//  Name      – guest name.
//  Email     – guest email address.
//  Start     – first occupied date (YYYY-MM-DD).
//  End       – last occupied date (YYYY-MM-DD), End >= Start.
//  CreatedAt – creation timestamp.
type Booking struct {
    ID        uint64    `json:"id"`
    Name      string    `json:"name"`
    Email     string    `json:"email"`
    Start     string    `json:"start"`
    End       string    `json:"end"`
    CreatedAt time.Time `json:"created_at"`
}

// Overlaps reports whether the inclusive ranges [s1,e1] and [s2,e2]
// intersect.  A booking ending on the day another starts counts as an
// overlap; there is no same-day turnover.
func Overlaps(s1, e1, s2, e2 string) bool {
    return !(e1 < s2 || s1 > e2)
}

// OverlapsRange reports whether b's range intersects [start,end].
func (b Booking) OverlapsRange(start, end string) bool {
    return Overlaps(b.Start, b.End, start, end)
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
    _, err := time.Parse(DateLayout, s)
    return err == nil
}
