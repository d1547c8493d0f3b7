// Package notify delivers human-readable notification messages produced
// from booking events.  The Notifier interface keeps the delivery channel
// pluggable (log, mail, chat); delivery is best effort and a failure never
// reaches the booking path.
package notify

import (
    "fmt"
    "log"
)

// Notifier sends a single message to a recipient.  Implementations must
// not retry internally; the consumer logs failures and moves on.
type Notifier interface {
    Notify(recipient, subject, body string) error
}

// LogNotifier writes notifications to the process log.  It stands in for
// a real mail transport in development and tests.
type LogNotifier struct{}

// NewLog returns a LogNotifier.
func NewLog() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) Notify(recipient, subject, body string) error {
    log.Printf("[notify] to=%s subject=%q %s", recipient, subject, body)
    return nil
}

// GuestConfirmation renders the message sent to the guest after a
// successful booking.
func GuestConfirmation(name, start, end string) (subject, body string) {
    subject = "Your booking is confirmed!"
    body = fmt.Sprintf("Hi %s, thanks for booking from %s to %s. We look forward to hosting you! – The Team", name, start, end)
    return subject, body
}

// AdminAlert renders the message sent to the administrator after a
// successful booking.
func AdminAlert(name, email, start, end string) (subject, body string) {
    subject = "New booking received"
    body = fmt.Sprintf("New booking by %s <%s> from %s to %s.", name, email, start, end)
    return subject, body
}
