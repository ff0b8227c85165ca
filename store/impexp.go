package store

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// EnvelopeVersion is the current export payload version.
const EnvelopeVersion = "2.0.0"

// Envelope is the full-database JSON serialization.
type Envelope struct {
	Version   string       `json:"version"`
	Timestamp string       `json:"timestamp"`
	Data      EnvelopeData `json:"data"`
}

// EnvelopeData carries both tables.
type EnvelopeData struct {
	PortfolioIntradayData []IntradayPoint `json:"portfolioIntradayData"`
	PortfolioHistory      []DailyPoint    `json:"portfolioHistory"`
}

// envelopeHead is the version-agnostic first pass over an import payload:
// enough to validate the envelope and dispatch on its version before
// anything destructive happens.
type envelopeHead struct {
	Version string          `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// dataV1 is the deprecated 1.x payload shape: intraday rows lived under
// "assets" and daily rows carried "assets" annotations instead of
// "transactions". Kept as an explicit migration target rather than
// presence checks scattered through the import path.
type dataV1 struct {
	Assets           []IntradayPoint `json:"assets"`
	PortfolioHistory []dailyPointV1  `json:"portfolioHistory"`
}

type dailyPointV1 struct {
	Date   string           `json:"date"`
	Value  float64          `json:"value"`
	Assets []TransactionRef `json:"assets,omitempty"`
}

// Export writes the whole store as a versioned JSON envelope.
func (s *Store) Export(w io.Writer) error {
	daily, err := s.AllDaily()
	if err != nil {
		return err
	}
	intraday, err := s.AllIntraday()
	if err != nil {
		return err
	}

	env := Envelope{
		Version:   EnvelopeVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Data: EnvelopeData{
			PortfolioIntradayData: intraday,
			PortfolioHistory:      daily,
		},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("failed to serialize export envelope: %w", err)
	}
	return nil
}

// Import replaces the store contents with an exported envelope. The
// payload is validated structurally before anything is cleared: a
// malformed envelope must never cost existing data. Import is a
// destructive replace, not a merge.
func (s *Store) Import(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read import payload: %w", err)
	}

	data, err := decodeEnvelope(raw)
	if err != nil {
		return err
	}

	if err := s.ClearDaily(); err != nil {
		return err
	}
	if err := s.ClearIntraday(); err != nil {
		return err
	}
	if err := s.BulkUpsertDaily(data.PortfolioHistory); err != nil {
		return err
	}
	if err := s.BulkUpsertIntraday(data.PortfolioIntradayData); err != nil {
		return err
	}

	s.log.Info().
		Int("dailyRows", len(data.PortfolioHistory)).
		Int("intradayRows", len(data.PortfolioIntradayData)).
		Msg("portfolio history import complete")
	return nil
}

// decodeEnvelope validates and decodes a payload, migrating deprecated
// versions to the current shape.
func decodeEnvelope(raw []byte) (EnvelopeData, error) {
	var head envelopeHead
	if err := json.Unmarshal(raw, &head); err != nil {
		return EnvelopeData{}, fmt.Errorf("import payload is not valid JSON: %w", err)
	}
	if head.Version == "" {
		return EnvelopeData{}, fmt.Errorf("import payload has no version tag")
	}
	if len(head.Data) == 0 {
		return EnvelopeData{}, fmt.Errorf("import payload has no data section")
	}

	switch major(head.Version) {
	case "1":
		var v1 dataV1
		if err := json.Unmarshal(head.Data, &v1); err != nil {
			return EnvelopeData{}, fmt.Errorf("malformed v1 import payload: %w", err)
		}
		return migrateDataV1(v1), nil
	case "2":
		var data EnvelopeData
		if err := json.Unmarshal(head.Data, &data); err != nil {
			return EnvelopeData{}, fmt.Errorf("malformed import payload: %w", err)
		}
		return data, nil
	default:
		return EnvelopeData{}, fmt.Errorf("unsupported import payload version %q", head.Version)
	}
}

// migrateDataV1 lifts a 1.x payload to the current shape.
func migrateDataV1(v1 dataV1) EnvelopeData {
	daily := make([]DailyPoint, 0, len(v1.PortfolioHistory))
	for _, p := range v1.PortfolioHistory {
		daily = append(daily, DailyPoint{Date: p.Date, Value: p.Value, Transactions: p.Assets})
	}
	return EnvelopeData{
		PortfolioIntradayData: v1.Assets,
		PortfolioHistory:      daily,
	}
}

func major(version string) string {
	for i := 0; i < len(version); i++ {
		if version[i] == '.' {
			return version[:i]
		}
	}
	return version
}
