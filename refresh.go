package networth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/nboul/networth/store"
)

// EntityStore is the primary entity store, an external collaborator that
// owns transactions, asset definitions and the secondary entities. The
// orchestrator only ever reads from it.
type EntityStore interface {
	Transactions(ctx context.Context) ([]Transaction, error)
	AssetDefinitions(ctx context.Context) ([]*AssetDefinition, error)
	Categories(ctx context.Context) ([]Category, error)
	Liabilities(ctx context.Context) ([]Liability, error)
	Expenses(ctx context.Context) ([]Expense, error)
	IncomeSources(ctx context.Context) ([]IncomeSource, error)
}

// Cache is any derived cache the orchestrator must invalidate before
// recomputing: portfolio snapshot, calculated-data cache, recent activity.
type Cache interface {
	Invalidate()
}

// SnapshotCalculator recomputes the current portfolio snapshot from fresh
// entities. External collaborator.
type SnapshotCalculator interface {
	Recompute(ctx context.Context, txs []Transaction, defs []*AssetDefinition) error
}

// ForecastCalculator recomputes forward-looking aggregates from fresh
// entities. External collaborator.
type ForecastCalculator interface {
	Recompute(ctx context.Context, txs []Transaction, defs []*AssetDefinition) error
}

// IntradayAggregator produces intraday value samples from current
// positions. External collaborator; its output is persisted by the
// orchestrator.
type IntradayAggregator interface {
	Aggregate(ctx context.Context, positions map[string]Quantity, defs []*AssetDefinition) ([]store.IntradayPoint, error)
}

// AdvisorInit is the optional recommendation engine bootstrap. Failure to
// initialize is logged and skipped; recommendations are a nicety, caches
// are not.
type AdvisorInit interface {
	Init(ctx context.Context) error
}

// Refresher orchestrates a full cache refresh: invalidate, re-fetch,
// recompute, persist. Triggered on demand (pull-to-refresh, data
// deletion, bulk import).
type Refresher struct {
	Entities EntityStore  // required
	Store    *store.Store // required

	Caches   []Cache            // invalidated before any recompute
	Snapshot SnapshotCalculator // optional
	Forecast ForecastCalculator // optional
	Intraday IntradayAggregator // optional
	Advisor  AdvisorInit        // optional
	Worker   *Worker            // optional; nil replays inline

	group singleflight.Group
}

// entities is one coherent read of the primary store.
type entities struct {
	txs  []Transaction
	defs []*AssetDefinition
}

// RefreshAll invalidates every derived cache and rebuilds them from fresh
// base entities. Concurrent calls share a single in-flight refresh.
//
// A failed base-entity fetch aborts the whole refresh with prior cache
// state intact. Failures of optional steps are logged, collected into the
// returned error, and do not stop sibling steps.
func (r *Refresher) RefreshAll(ctx context.Context) error {
	_, err, _ := r.group.Do("refresh-all", func() (any, error) {
		return nil, r.refreshAll(ctx)
	})
	return err
}

func (r *Refresher) refreshAll(ctx context.Context) error {
	// Invalidation strictly precedes re-fetch, which strictly precedes
	// recomputation.
	for _, c := range r.Caches {
		c.Invalidate()
	}

	ents, err := r.fetchEntities(ctx)
	if err != nil {
		Log.Error().Err(err).Msg("base entity fetch failed, aborting refresh")
		return err
	}

	var soft []error

	if r.Advisor != nil {
		if err := r.Advisor.Init(ctx); err != nil {
			Log.Warn().Err(err).Msg("advisor initialization failed, continuing without recommendations")
			soft = append(soft, err)
		}
	}

	if r.Snapshot != nil {
		if err := r.Snapshot.Recompute(ctx, ents.txs, ents.defs); err != nil {
			Log.Error().Err(err).Msg("portfolio snapshot recompute failed")
			soft = append(soft, err)
		}
	}

	if r.Forecast != nil {
		if err := r.Forecast.Recompute(ctx, ents.txs, ents.defs); err != nil {
			Log.Error().Err(err).Msg("forecast recompute failed")
			soft = append(soft, err)
		}
	}

	if err := r.refreshHistory(ctx, ents); err != nil {
		Log.Error().Err(err).Msg("portfolio history refresh failed")
		soft = append(soft, err)
	}

	if err := r.refreshIntraday(ctx, ents); err != nil {
		Log.Warn().Err(err).Msg("intraday aggregation failed, continuing")
		soft = append(soft, err)
	}

	Log.Info().Int("failedSteps", len(soft)).Msg("cache refresh complete")
	return errors.Join(soft...)
}

// RefreshPortfolioHistory rebuilds only the persisted history series.
func (r *Refresher) RefreshPortfolioHistory(ctx context.Context) error {
	ents, err := r.fetchEntities(ctx)
	if err != nil {
		return err
	}
	return r.refreshHistory(ctx, ents)
}

// fetchEntities re-reads all base entities from the primary store in
// parallel. Entity counts are personal-finance scale, so all fetches are
// issued at once. Transactions and asset definitions are load-bearing;
// the secondary entities only warm their caches, but a failure still
// aborts since it signals the primary store itself is unhealthy.
func (r *Refresher) fetchEntities(ctx context.Context) (entities, error) {
	var ents entities
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ents.txs, err = r.Entities.Transactions(ctx)
		return err
	})
	g.Go(func() (err error) {
		ents.defs, err = r.Entities.AssetDefinitions(ctx)
		return err
	})
	g.Go(func() (err error) { _, err = r.Entities.Categories(ctx); return err })
	g.Go(func() (err error) { _, err = r.Entities.Liabilities(ctx); return err })
	g.Go(func() (err error) { _, err = r.Entities.Expenses(ctx); return err })
	g.Go(func() (err error) { _, err = r.Entities.IncomeSources(ctx); return err })
	if err := g.Wait(); err != nil {
		return entities{}, fmt.Errorf("failed to fetch base entities: %w", err)
	}
	return ents, nil
}

// refreshHistory recomputes the daily series across the full horizon and
// every supported time range, then replaces the stored rows. The store is
// cleared only after the replacement series has been computed, so a failed
// recompute leaves the previous rows readable.
func (r *Refresher) refreshHistory(ctx context.Context, ents entities) error {
	full, err := r.compute(ents, 0)
	if err != nil {
		return fmt.Errorf("full-horizon recompute failed: %w", err)
	}

	if err := r.Store.ClearDaily(); err != nil {
		return err
	}
	if err := r.Store.BulkUpsertDaily(toDailyPoints(full)); err != nil {
		return err
	}

	// Each named range is recomputed and upserted as well. The ranges are
	// suffixes of the full horizon so the rows overlap; upsert semantics
	// make the overlap harmless and the result idempotent.
	for _, tr := range AllTimeRanges() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		days, _ := tr.DaysBack()
		series, err := r.compute(ents, days)
		if err != nil {
			return fmt.Errorf("recompute for range %s failed: %w", tr, err)
		}
		if err := r.Store.BulkUpsertDaily(toDailyPoints(series)); err != nil {
			return err
		}
	}
	return nil
}

// refreshIntraday rebuilds the intraday table from current positions.
// Having no positions is not an error: there is simply nothing to sample.
func (r *Refresher) refreshIntraday(ctx context.Context, ents entities) error {
	if r.Intraday == nil {
		return nil
	}
	positions := PositionsAsOf(ents.txs, Today())
	points, err := r.Intraday.Aggregate(ctx, positions, ents.defs)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return nil
	}
	return r.Store.BulkUpsertIntraday(points)
}

// compute runs the replay, delegating to the background worker when one is
// configured so large transaction sets stay off the caller's goroutine.
func (r *Refresher) compute(ents entities, daysBack int) ([]HistoryPoint, error) {
	if r.Worker != nil {
		return r.Worker.Calculate(CalcRequest{
			Type:             CalculateAll,
			Transactions:     ents.txs,
			AssetDefinitions: ents.defs,
			DaysBack:         daysBack,
		})
	}
	if daysBack > 0 {
		return ComputeHistoryForDays(ents.txs, ents.defs, daysBack), nil
	}
	return ComputeHistory(ents.txs, ents.defs), nil
}

// SaveDaily persists a computed series into the history store with
// insert-or-overwrite semantics.
func SaveDaily(s *store.Store, history []HistoryPoint) error {
	return s.BulkUpsertDaily(toDailyPoints(history))
}

// toDailyPoints converts computed history points into store rows.
func toDailyPoints(history []HistoryPoint) []store.DailyPoint {
	rows := make([]store.DailyPoint, 0, len(history))
	for _, p := range history {
		row := store.DailyPoint{Date: p.Date.String(), Value: p.Value}
		for _, tx := range p.Transactions {
			row.Transactions = append(row.Transactions, store.TransactionRef{
				ID:       tx.ID,
				Type:     string(tx.Type),
				AssetID:  tx.AssetID,
				Quantity: tx.EffectiveQuantity().Float(),
			})
		}
		rows = append(rows, row)
	}
	return rows
}
