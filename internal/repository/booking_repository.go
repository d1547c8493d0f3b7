package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/go-sql-driver/mysql"

    "github.com/iliyamo/condo-booking/internal/model"
)

// BookingRepo provides access to the bookings table.  Admission of a new
// booking runs the overlap check and the insert inside one transaction so
// that two concurrent requests for intersecting ranges can never both
// commit.  All dates are stored as DATE columns in UTC.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// List returns all bookings ordered by id ascending (creation order).
// When no bookings exist an empty slice is returned.
func (r *BookingRepo) List(ctx context.Context) ([]model.Booking, error) {
    const q = `SELECT id, name, email, start_date, end_date, created_at
               FROM bookings
               ORDER BY id ASC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Booking, 0)
    for rows.Next() {
        var b model.Booking
        var start, end time.Time
        if err := rows.Scan(&b.ID, &b.Name, &b.Email, &start, &end, &b.CreatedAt); err != nil {
            return nil, err
        }
        b.Start = start.UTC().Format(model.DateLayout)
        b.End = end.UTC().Format(model.DateLayout)
        out = append(out, b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// CreateIfVacant inserts a booking if and only if no stored booking
// overlaps [b.Start, b.End] inclusively.  On success it populates the
// generated ID and CreatedAt on b.  When an overlapping booking exists it
// returns ErrConflict and writes nothing.
//
// The check and the insert share a serializable transaction; the locking
// read takes InnoDB next-key locks over the scanned index range, so a
// concurrent overlapping insert blocks until commit and then fails its
// own check.  The loser of a deadlock retries once and observes the
// winner's row as a conflict.
func (r *BookingRepo) CreateIfVacant(ctx context.Context, b *model.Booking) error {
    var err error
    for attempt := 0; attempt < 2; attempt++ {
        err = r.admit(ctx, b)
        if err == nil || !retryable(err) {
            return err
        }
    }
    return err
}

func (r *BookingRepo) admit(ctx context.Context, b *model.Booking) error {
    tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // Inclusive overlap: existing.start <= candidate.end AND existing.end >= candidate.start.
    const check = `SELECT id FROM bookings
                   WHERE start_date <= ? AND end_date >= ?
                   LIMIT 1 FOR UPDATE`
    var existing uint64
    err = tx.QueryRowContext(ctx, check, b.End, b.Start).Scan(&existing)
    if err == nil {
        return ErrConflict
    }
    if !errors.Is(err, sql.ErrNoRows) {
        return err
    }

    const ins = `INSERT INTO bookings (name, email, start_date, end_date) VALUES (?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, ins, b.Name, b.Email, b.Start, b.End)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)

    // Query back the row to populate defaults
    const sel = `SELECT created_at FROM bookings WHERE id = ?`
    if err := tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt); err != nil {
        return err
    }

    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// retryable reports whether err is a transient serialization failure:
// 1213 is an InnoDB deadlock, 1205 a lock wait timeout.
func retryable(err error) bool {
    var me *mysql.MySQLError
    if errors.As(err, &me) {
        return me.Number == 1213 || me.Number == 1205
    }
    return false
}
