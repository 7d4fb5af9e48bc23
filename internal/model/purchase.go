package model

import "time"

// Purchase is a single expense registered by a user. Rows are immutable once
// inserted; there is no update or delete path.
type Purchase struct {
	ID       int64     `db:"id" json:"id"`
	UserID   int64     `db:"user_id" json:"user_id"`
	Product  string    `db:"product" json:"product"`
	Value    float64   `db:"value" json:"value"`
	Category string    `db:"category" json:"category"`
	Date     time.Time `db:"date" json:"date"`
}
