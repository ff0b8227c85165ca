package store

import (
	"fmt"
	"sort"

	"github.com/timshannon/badgerhold/v4"
)

// AllDaily returns every row of the portfolioHistory table in date order.
func (s *Store) AllDaily() ([]DailyPoint, error) {
	var points []DailyPoint
	if err := s.db.Find(&points, nil); err != nil {
		return nil, fmt.Errorf("failed to read portfolio history: %w", err)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points, nil
}

// GetDaily returns the daily point for a date, or ErrNotFound.
func (s *Store) GetDaily(date string) (DailyPoint, error) {
	var p DailyPoint
	if err := s.db.Get(date, &p); err != nil {
		return DailyPoint{}, fmt.Errorf("failed to get history point %s: %w", date, err)
	}
	return p, nil
}

// AddDaily inserts a daily point and fails with ErrKeyExists on a
// duplicate date. Bulk writes from recomputation must use BulkUpsertDaily
// instead: recomputed series legitimately overwrite same-dated rows.
func (s *Store) AddDaily(p DailyPoint) error {
	if err := s.db.Insert(p.Date, &p); err != nil {
		return fmt.Errorf("failed to add history point %s: %w", p.Date, err)
	}
	return nil
}

// PutDaily inserts or overwrites a daily point.
func (s *Store) PutDaily(p DailyPoint) error {
	if err := s.db.Upsert(p.Date, &p); err != nil {
		return fmt.Errorf("failed to put history point %s: %w", p.Date, err)
	}
	return nil
}

// DeleteDaily removes a daily point. Deleting an absent date is a no-op.
func (s *Store) DeleteDaily(date string) error {
	err := s.db.Delete(date, DailyPoint{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete history point %s: %w", date, err)
	}
	return nil
}

// BulkUpsertDaily writes a batch of daily points with insert-or-overwrite
// semantics. Running the same recomputation twice yields the same rows.
func (s *Store) BulkUpsertDaily(points []DailyPoint) error {
	for _, p := range points {
		if err := s.db.Upsert(p.Date, &p); err != nil {
			return fmt.Errorf("bulk upsert failed at history point %s: %w", p.Date, err)
		}
	}
	return nil
}

// DailyRange returns the daily points whose date lies in [start, end],
// bounds inclusive, in date order.
func (s *Store) DailyRange(start, end string) ([]DailyPoint, error) {
	var points []DailyPoint
	q := badgerhold.Where("Date").Ge(start).And("Date").Le(end)
	if err := s.db.Find(&points, q); err != nil {
		return nil, fmt.Errorf("failed to query history range [%s, %s]: %w", start, end, err)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points, nil
}

// AllIntraday returns every row of the portfolioIntradayData table in
// timestamp order.
func (s *Store) AllIntraday() ([]IntradayPoint, error) {
	var points []IntradayPoint
	if err := s.db.Find(&points, nil); err != nil {
		return nil, fmt.Errorf("failed to read intraday data: %w", err)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp < points[j].Timestamp })
	return points, nil
}

// GetIntraday returns the intraday point for a timestamp, or ErrNotFound.
func (s *Store) GetIntraday(timestamp string) (IntradayPoint, error) {
	var p IntradayPoint
	if err := s.db.Get(timestamp, &p); err != nil {
		return IntradayPoint{}, fmt.Errorf("failed to get intraday point %s: %w", timestamp, err)
	}
	return p, nil
}

// AddIntraday inserts an intraday point, failing on a duplicate timestamp.
func (s *Store) AddIntraday(p IntradayPoint) error {
	if err := s.db.Insert(p.Timestamp, &p); err != nil {
		return fmt.Errorf("failed to add intraday point %s: %w", p.Timestamp, err)
	}
	return nil
}

// PutIntraday inserts or overwrites an intraday point.
func (s *Store) PutIntraday(p IntradayPoint) error {
	if err := s.db.Upsert(p.Timestamp, &p); err != nil {
		return fmt.Errorf("failed to put intraday point %s: %w", p.Timestamp, err)
	}
	return nil
}

// DeleteIntraday removes an intraday point. Absent timestamps are a no-op.
func (s *Store) DeleteIntraday(timestamp string) error {
	err := s.db.Delete(timestamp, IntradayPoint{})
	if err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete intraday point %s: %w", timestamp, err)
	}
	return nil
}

// BulkUpsertIntraday writes a batch of intraday points with
// insert-or-overwrite semantics.
func (s *Store) BulkUpsertIntraday(points []IntradayPoint) error {
	for _, p := range points {
		if err := s.db.Upsert(p.Timestamp, &p); err != nil {
			return fmt.Errorf("bulk upsert failed at intraday point %s: %w", p.Timestamp, err)
		}
	}
	return nil
}

// IntradayRange returns the intraday points whose date lies in
// [start, end], bounds inclusive, in timestamp order.
func (s *Store) IntradayRange(start, end string) ([]IntradayPoint, error) {
	var points []IntradayPoint
	q := badgerhold.Where("Date").Ge(start).And("Date").Le(end).Index("Date")
	if err := s.db.Find(&points, q); err != nil {
		return nil, fmt.Errorf("failed to query intraday range [%s, %s]: %w", start, end, err)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp < points[j].Timestamp })
	return points, nil
}

// Prune deletes all rows, in both tables, dated strictly before the given
// date.
func (s *Store) Prune(before string) error {
	if err := s.db.DeleteMatching(&DailyPoint{}, badgerhold.Where("Date").Lt(before)); err != nil {
		return fmt.Errorf("failed to prune portfolio history before %s: %w", before, err)
	}
	if err := s.db.DeleteMatching(&IntradayPoint{}, badgerhold.Where("Date").Lt(before)); err != nil {
		return fmt.Errorf("failed to prune intraday data before %s: %w", before, err)
	}
	return nil
}

// ClearDaily wipes the portfolioHistory table.
func (s *Store) ClearDaily() error {
	if err := s.db.DeleteMatching(&DailyPoint{}, nil); err != nil {
		return fmt.Errorf("failed to clear portfolio history: %w", err)
	}
	return nil
}

// ClearIntraday wipes the portfolioIntradayData table.
func (s *Store) ClearIntraday() error {
	if err := s.db.DeleteMatching(&IntradayPoint{}, nil); err != nil {
		return fmt.Errorf("failed to clear intraday data: %w", err)
	}
	return nil
}

// Size describes how much data the store holds.
type Size struct {
	DailyRows    int    `json:"dailyRows"`
	IntradayRows int    `json:"intradayRows"`
	TotalRows    int    `json:"totalRows"`
	OldestDate   string `json:"oldestDate,omitempty"`
	NewestDate   string `json:"newestDate,omitempty"`
}

// SizeInfo reports row counts across both tables and the oldest and newest
// date seen in either.
func (s *Store) SizeInfo() (Size, error) {
	daily, err := s.AllDaily()
	if err != nil {
		return Size{}, err
	}
	intraday, err := s.AllIntraday()
	if err != nil {
		return Size{}, err
	}

	info := Size{
		DailyRows:    len(daily),
		IntradayRows: len(intraday),
		TotalRows:    len(daily) + len(intraday),
	}
	seen := func(date string) {
		if date == "" {
			return
		}
		if info.OldestDate == "" || date < info.OldestDate {
			info.OldestDate = date
		}
		if info.NewestDate == "" || date > info.NewestDate {
			info.NewestDate = date
		}
	}
	for _, p := range daily {
		seen(p.Date)
	}
	for _, p := range intraday {
		seen(p.Date)
	}
	return info, nil
}
