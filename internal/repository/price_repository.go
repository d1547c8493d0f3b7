package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/iliyamo/condo-booking/internal/model"
)

// PriceRepo provides access to the prices table.  Each calendar date has
// at most one price row; writes are upserts and last write wins.
type PriceRepo struct {
    db *sql.DB
}

// NewPriceRepo returns a new PriceRepo bound to the given database.
func NewPriceRepo(db *sql.DB) *PriceRepo { return &PriceRepo{db: db} }

// Upsert sets the price for a date, replacing any existing value.  The
// date column is the primary key, so ON DUPLICATE KEY UPDATE serializes
// concurrent writes to the same date and no duplicate entries can appear.
func (r *PriceRepo) Upsert(ctx context.Context, date string, price int64) error {
    const q = `INSERT INTO prices (date, price) VALUES (?, ?)
               ON DUPLICATE KEY UPDATE price = VALUES(price)`
    _, err := r.db.ExecContext(ctx, q, date, price)
    return err
}

// All returns a full snapshot of the catalog as a date -> price mapping.
// Only the latest committed write per date is visible.
func (r *PriceRepo) All(ctx context.Context) (map[string]int64, error) {
    const q = `SELECT date, price FROM prices`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make(map[string]int64)
    for rows.Next() {
        var e model.PriceEntry
        var date time.Time
        if err := rows.Scan(&date, &e.Price); err != nil {
            return nil, err
        }
        e.Date = date.UTC().Format(model.DateLayout)
        out[e.Date] = e.Price
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}
