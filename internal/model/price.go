package model

// PriceEntry is the nightly price for a single calendar date.  Dates are
// unique; setting a price for an existing date replaces the old value
// (last write wins).
//
// Fields:
//  Date  – calendar date (YYYY-MM-DD), primary key.
//  Price – nightly price in whole currency units.
type PriceEntry struct {
    Date  string `json:"date"`
    Price int64  `json:"price"`
}
