package market

import "time"

// Quote is a single observed price sample for the tracked index.
type Quote struct {
	Time  time.Time
	Price float64
}

// Bar is one fixed-width OHLC bucket. Start is the bucket floor of every
// sample that contributed to it.
type Bar struct {
	Start time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}
