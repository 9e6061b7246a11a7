package market

import "time"

// Aggregator folds a stream of timestamped price samples into fixed-width
// OHLC buckets. Samples must arrive in non-decreasing time order; the caller
// (the polling loop) guarantees that by construction.
//
// Gap buckets are not synthesized: if the stream skips one or more bucket
// boundaries, Observe still emits only the bucket that was in progress. This
// is a deliberate simplification — a quiet stretch produces no bars rather
// than flat filler bars.
type Aggregator struct {
	width time.Duration
	cur   Bar
	open  bool
}

// NewAggregator returns an aggregator with the given bucket width.
func NewAggregator(width time.Duration) *Aggregator {
	if width <= 0 {
		panic("aggregator width must be > 0")
	}
	return &Aggregator{width: width}
}

// Width returns the fixed bucket width.
func (a *Aggregator) Width() time.Duration { return a.width }

// Observe folds one sample into the current bucket. When the sample falls
// into a later bucket than the one in progress, the finished bucket is
// returned with ok=true and a new bucket is opened at the sample's price.
// At most one bar is emitted per call.
func (a *Aggregator) Observe(ts time.Time, price float64) (bar Bar, ok bool) {
	bucket := ts.Truncate(a.width)

	if !a.open || bucket.After(a.cur.Start) {
		bar, ok = a.cur, a.open
		a.cur = Bar{Start: bucket, Open: price, High: price, Low: price, Close: price}
		a.open = true
		return bar, ok
	}

	if price > a.cur.High {
		a.cur.High = price
	}
	if price < a.cur.Low {
		a.cur.Low = price
	}
	a.cur.Close = price
	return Bar{}, false
}

// Current returns the in-progress bucket, if any. It is a read-only peek;
// the bucket is not emitted.
func (a *Aggregator) Current() (Bar, bool) {
	return a.cur, a.open
}
