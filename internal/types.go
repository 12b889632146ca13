package internal

import (
	"time"
)

// ConversionRecord encodes one completed conversion for the history store.
type ConversionRecord struct {
	Fingerprint string    `db:"fingerprint"`
	Family      string    `db:"family"`
	FromFormat  string    `db:"from_format"`
	ToFormat    string    `db:"to_format"`
	Curve       string    `db:"curve"`
	ConvertedAt time.Time `db:"converted_at"`
}
