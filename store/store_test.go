package store

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phuslu/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = log.Logger{Writer: log.IOWriter{Writer: io.Discard}}

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history")
	s, err := Open(path, &testLogger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestStore_dailyCRUD(t *testing.T) {
	s, _ := openTestStore(t)

	p := DailyPoint{Date: "2024-01-01", Value: 100, Transactions: []TransactionRef{
		{ID: "t1", Type: "buy", AssetID: "a1", Quantity: 2},
	}}
	require.NoError(t, s.AddDaily(p))

	got, err := s.GetDaily("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	// Add fails on a duplicate key; Put overwrites.
	err = s.AddDaily(DailyPoint{Date: "2024-01-01", Value: 999})
	require.ErrorIs(t, err, ErrKeyExists)
	require.NoError(t, s.PutDaily(DailyPoint{Date: "2024-01-01", Value: 110}))
	got, err = s.GetDaily("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 110.0, got.Value)

	require.NoError(t, s.DeleteDaily("2024-01-01"))
	_, err = s.GetDaily("2024-01-01")
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent date stays a no-op.
	require.NoError(t, s.DeleteDaily("2024-01-01"))
}

func TestStore_bulkUpsertDailyIsIdempotent(t *testing.T) {
	s, _ := openTestStore(t)

	points := []DailyPoint{
		{Date: "2024-01-01", Value: 100},
		{Date: "2024-01-02", Value: 105},
		{Date: "2024-01-03", Value: 102},
	}
	require.NoError(t, s.BulkUpsertDaily(points))
	require.NoError(t, s.BulkUpsertDaily(points))

	all, err := s.AllDaily()
	require.NoError(t, err)
	assert.Equal(t, points, all)

	// Recomputation overwrites same-dated rows.
	points[1].Value = 200
	require.NoError(t, s.BulkUpsertDaily(points))
	got, err := s.GetDaily("2024-01-02")
	require.NoError(t, err)
	assert.Equal(t, 200.0, got.Value)
}

func TestStore_dailyRangeIsInclusive(t *testing.T) {
	s, _ := openTestStore(t)

	require.NoError(t, s.BulkUpsertDaily([]DailyPoint{
		{Date: "2024-01-01", Value: 1},
		{Date: "2024-01-02", Value: 2},
		{Date: "2024-01-03", Value: 3},
		{Date: "2024-01-04", Value: 4},
	}))

	got, err := s.DailyRange("2024-01-02", "2024-01-03")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-01-02", got[0].Date)
	assert.Equal(t, "2024-01-03", got[1].Date)

	empty, err := s.DailyRange("2025-01-01", "2025-12-31")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_intradayCRUD(t *testing.T) {
	s, _ := openTestStore(t)

	points := []IntradayPoint{
		{Timestamp: "2024-01-01T10:00:00Z", Date: "2024-01-01", Value: 100},
		{Timestamp: "2024-01-01T15:00:00Z", Date: "2024-01-01", Value: 101, Change: 1, ChangePercent: 1},
		{Timestamp: "2024-01-02T10:00:00Z", Date: "2024-01-02", Value: 99},
	}
	require.NoError(t, s.BulkUpsertIntraday(points))

	// Two samples per day coexist because the timestamp is the key.
	all, err := s.AllIntraday()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, points, all)

	day1, err := s.IntradayRange("2024-01-01", "2024-01-01")
	require.NoError(t, err)
	require.Len(t, day1, 2)
	assert.Equal(t, "2024-01-01T10:00:00Z", day1[0].Timestamp)

	require.NoError(t, s.DeleteIntraday("2024-01-01T10:00:00Z"))
	_, err = s.GetIntraday("2024-01-01T10:00:00Z")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_prune(t *testing.T) {
	s, _ := openTestStore(t)

	require.NoError(t, s.BulkUpsertDaily([]DailyPoint{
		{Date: "2023-12-31", Value: 1},
		{Date: "2024-01-01", Value: 2},
	}))
	require.NoError(t, s.BulkUpsertIntraday([]IntradayPoint{
		{Timestamp: "2023-12-31T10:00:00Z", Date: "2023-12-31", Value: 1},
		{Timestamp: "2024-01-01T10:00:00Z", Date: "2024-01-01", Value: 2},
	}))

	require.NoError(t, s.Prune("2024-01-01"))

	daily, err := s.AllDaily()
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, "2024-01-01", daily[0].Date)

	intraday, err := s.AllIntraday()
	require.NoError(t, err)
	require.Len(t, intraday, 1)
	assert.Equal(t, "2024-01-01", intraday[0].Date)
}

func TestStore_sizeInfo(t *testing.T) {
	s, _ := openTestStore(t)

	info, err := s.SizeInfo()
	require.NoError(t, err)
	assert.Equal(t, Size{}, info)

	require.NoError(t, s.BulkUpsertDaily([]DailyPoint{
		{Date: "2024-01-05", Value: 1},
		{Date: "2024-02-01", Value: 2},
	}))
	require.NoError(t, s.BulkUpsertIntraday([]IntradayPoint{
		{Timestamp: "2023-12-30T10:00:00Z", Date: "2023-12-30", Value: 3},
	}))

	info, err = s.SizeInfo()
	require.NoError(t, err)
	assert.Equal(t, Size{
		DailyRows:    2,
		IntradayRows: 1,
		TotalRows:    3,
		OldestDate:   "2023-12-30",
		NewestDate:   "2024-02-01",
	}, info)
}

func TestStore_exportImportRoundTrip(t *testing.T) {
	src, _ := openTestStore(t)
	require.NoError(t, src.BulkUpsertDaily([]DailyPoint{
		{Date: "2024-01-01", Value: 100, Transactions: []TransactionRef{{ID: "t1", Type: "buy", AssetID: "a1", Quantity: 1}}},
		{Date: "2024-01-02", Value: 101},
	}))
	require.NoError(t, src.BulkUpsertIntraday([]IntradayPoint{
		{Timestamp: "2024-01-02T12:00:00Z", Date: "2024-01-02", Value: 100.5},
	}))

	var buf bytes.Buffer
	require.NoError(t, src.Export(&buf))
	assert.Contains(t, buf.String(), `"version": "2.0.0"`)

	dst, _ := openTestStore(t)
	// Pre-existing rows must be replaced, not merged.
	require.NoError(t, dst.PutDaily(DailyPoint{Date: "1999-01-01", Value: 1}))
	require.NoError(t, dst.Import(&buf))

	daily, err := dst.AllDaily()
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.Equal(t, "2024-01-01", daily[0].Date)
	assert.Equal(t, "t1", daily[0].Transactions[0].ID)

	intraday, err := dst.AllIntraday()
	require.NoError(t, err)
	require.Len(t, intraday, 1)
	assert.Equal(t, 100.5, intraday[0].Value)
}

func TestStore_importValidatesBeforeClearing(t *testing.T) {
	s, _ := openTestStore(t)
	require.NoError(t, s.PutDaily(DailyPoint{Date: "2024-01-01", Value: 42}))

	tests := []struct {
		name    string
		payload string
	}{
		{"not JSON", "{broken"},
		{"missing version", `{"data":{"portfolioHistory":[]}}`},
		{"missing data", `{"version":"2.0.0"}`},
		{"unsupported version", `{"version":"9.0.0","data":{"portfolioHistory":[]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Import(strings.NewReader(tt.payload))
			require.Error(t, err)

			got, err := s.GetDaily("2024-01-01")
			require.NoError(t, err, "a rejected import must not clear existing data")
			assert.Equal(t, 42.0, got.Value)
		})
	}
}

func TestStore_importV1Envelope(t *testing.T) {
	s, _ := openTestStore(t)

	payload := `{
		"version": "1.2.0",
		"timestamp": "2023-06-01T00:00:00Z",
		"data": {
			"assets": [{"timestamp":"2023-05-31T10:00:00Z","date":"2023-05-31","value":50}],
			"portfolioHistory": [{"date":"2023-05-31","value":50,"assets":[{"id":"t1","type":"buy","assetId":"a1","quantity":1}]}]
		}
	}`
	require.NoError(t, s.Import(strings.NewReader(payload)))

	daily, err := s.AllDaily()
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, 50.0, daily[0].Value)
	require.Len(t, daily[0].Transactions, 1, "v1 asset annotations must be lifted to transactions")
	assert.Equal(t, "t1", daily[0].Transactions[0].ID)

	intraday, err := s.AllIntraday()
	require.NoError(t, err)
	require.Len(t, intraday, 1)
	assert.Equal(t, "2023-05-31T10:00:00Z", intraday[0].Timestamp)
}

func TestStore_migratesLegacySchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	// Build a v1 store by hand: stamp the old version and leave a legacy
	// intraday row behind.
	s, err := Open(path, &testLogger)
	require.NoError(t, err)
	require.NoError(t, s.db.Upsert(schemaMetaKey, &schemaMeta{ID: schemaMetaKey, Version: 1}))
	require.NoError(t, s.db.Insert("2023-01-01T10:00:00Z", &intradayEntry{Timestamp: "2023-01-01T10:00:00Z", Value: 5}))
	require.NoError(t, s.PutDaily(DailyPoint{Date: "2023-01-01", Value: 5}))
	require.NoError(t, s.Close())

	s, err = Open(path, &testLogger)
	require.NoError(t, err)
	defer s.Close()

	var meta schemaMeta
	require.NoError(t, s.db.Get(schemaMetaKey, &meta))
	assert.Equal(t, schemaVersion, meta.Version)

	var legacy []intradayEntry
	require.NoError(t, s.db.Find(&legacy, nil))
	assert.Empty(t, legacy, "legacy intraday rows must be destroyed by the migration")

	// Unrelated tables survive.
	got, err := s.GetDaily("2023-01-01")
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Value)
}

func TestStore_rejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")

	s, err := Open(path, &testLogger)
	require.NoError(t, err)
	require.NoError(t, s.db.Upsert(schemaMetaKey, &schemaMeta{ID: schemaMetaKey, Version: schemaVersion + 1}))
	require.NoError(t, s.Close())

	_, err = Open(path, &testLogger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer")
}

func TestStore_clear(t *testing.T) {
	s, _ := openTestStore(t)
	require.NoError(t, s.PutDaily(DailyPoint{Date: "2024-01-01", Value: 1}))
	require.NoError(t, s.PutIntraday(IntradayPoint{Timestamp: "2024-01-01T10:00:00Z", Date: "2024-01-01", Value: 1}))

	require.NoError(t, s.ClearDaily())
	daily, err := s.AllDaily()
	require.NoError(t, err)
	assert.Empty(t, daily)

	// Clearing one table leaves the other alone.
	intraday, err := s.AllIntraday()
	require.NoError(t, err)
	assert.Len(t, intraday, 1)

	require.NoError(t, s.ClearIntraday())
	intraday, err = s.AllIntraday()
	require.NoError(t, err)
	assert.Empty(t, intraday)
}
