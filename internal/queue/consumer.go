// consumer.go contains the background consumer that listens to the
// booking.created queue and turns each event into the guest confirmation
// and the admin notification.
package queue

import (
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/iliyamo/condo-booking/internal/notify"
)

// StartBookingConsumer connects to RabbitMQ, declares the booking.created
// queue (durable), and starts consuming messages.  Each event yields two
// independent notifications: a confirmation to the guest and an alert to
// adminEmail.  Notification failures are logged and the message is acked
// anyway; a malformed message is rejected without requeue so the consumer
// never loops on poison input.  The function runs a reconnect loop and
// keeps running until the process exits.
func StartBookingConsumer(n notify.Notifier, adminEmail string) error {
    url := BrokerURL()

    backoff := time.Second
    for {
        conn, err := amqp.Dial(url)
        if err != nil {
            log.Printf("booking-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
            time.Sleep(backoff)
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        if err := consumeLoop(conn, n, adminEmail); err != nil {
            log.Printf("booking-consumer: consume loop ended: %v; reconnecting", err)
            // Sleep briefly before reconnect
            time.Sleep(2 * time.Second)
            continue
        }
    }
}

func consumeLoop(conn *amqp.Connection, n notify.Notifier, adminEmail string) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        log.Printf("booking-consumer: set QoS failed: %v", err)
    }

    _, err = ch.QueueDeclare(bookingQueueName, true, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(bookingQueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for d := range msgs {
        if err := handleMessage(d.Body, n, adminEmail); err != nil {
            log.Printf("booking-consumer: handle message failed: %v", err)
            _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
            continue
        }
        _ = d.Ack(false)
    }
    return errors.New("deliveries channel closed")
}

// handleMessage dispatches both notifications for one event.  Only an
// unmarshal failure is treated as an error; delivery problems are logged
// per recipient and swallowed so the message is not redelivered.
func handleMessage(body []byte, n notify.Notifier, adminEmail string) error {
    var ev BookingCreatedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }

    subject, text := notify.GuestConfirmation(ev.Name, ev.Start, ev.End)
    if err := n.Notify(ev.Email, subject, text); err != nil {
        log.Printf("booking-consumer: guest notification failed for booking %d: %v", ev.BookingID, err)
    }

    if adminEmail != "" {
        subject, text = notify.AdminAlert(ev.Name, ev.Email, ev.Start, ev.End)
        if err := n.Notify(adminEmail, subject, text); err != nil {
            log.Printf("booking-consumer: admin notification failed for booking %d: %v", ev.BookingID, err)
        }
    }
    return nil
}
