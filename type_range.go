package networth

import "iter"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// LastDays returns the range covering exactly n calendar days ending today.
func LastDays(n int) Range {
	today := Today()
	if n < 1 {
		n = 1
	}
	return Range{From: today.Add(-(n - 1)), To: today}
}

// Contains returns true if the date is included in the range (boundaries included).
func (r Range) Contains(on Date) bool { return !on.Before(r.From) && !on.After(r.To) }

// Days returns an iterator that yields each date within the range, inclusive.
//
// This is the dense walk the replay engine is built on: one yield per
// calendar day, no gaps.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Len returns the number of calendar days in the range, inclusive.
func (r Range) Len() int {
	n := 0
	for range r.Days() {
		n++
	}
	return n
}
