package pricesync

import (
	"context"
	"time"

	"cash/core"
	"cash/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

const checkpointKey = "price_sync_checkpoint"

// Worker pulls fresh quotes for every enabled collateral's oracle feed and
// stores them for the engine to read.
type Worker struct {
	worker.BaseJob
	db              *db.DB
	collateralStore core.ICollateralStore
	priceStore      core.IPriceStore
	oracleService   core.IPriceOracleService
	property        property.Store
}

// New new price sync worker
func New(
	location string,
	db *db.DB,
	collateralStr core.ICollateralStore,
	priceStr core.IPriceStore,
	oracleSrv core.IPriceOracleService,
	property property.Store,
) *Worker {
	w := Worker{
		db:              db,
		collateralStore: collateralStr,
		priceStore:      priceStr,
		oracleService:   oracleSrv,
		property:        property,
	}

	l, _ := time.LoadLocation(location)
	w.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 10s"
	w.Cron.AddFunc(spec, w.Run)
	w.OnWork = func() error {
		return w.onWork(context.Background())
	}

	return &w
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "pricesync")

	collaterals, err := w.collateralStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("collaterals.All")
		return err
	}

	// one pull per distinct feed
	feeds := make(map[string]bool)
	for _, c := range collaterals {
		if c.Enabled && c.OracleID != "" {
			feeds[c.OracleID] = true
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for oracleID := range feeds {
		oracleID := oracleID
		g.Go(func() error {
			return w.syncFeed(ctx, oracleID)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if err := w.property.Save(ctx, checkpointKey, time.Now().Unix()); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	return nil
}

func (w *Worker) syncFeed(ctx context.Context, oracleID string) error {
	log := logger.FromContext(ctx).WithFields(map[string]interface{}{
		"worker": "pricesync",
		"oracle": oracleID,
	})

	ticker, err := w.oracleService.PullPrice(ctx, oracleID)
	if err != nil {
		log.WithError(err).Errorln("pull price failed")
		return err
	}

	if ticker.Price == 0 {
		log.Errorln("ticker price is zero, dropped")
		return nil
	}

	return w.db.Tx(func(tx *db.DB) error {
		return w.priceStore.Save(ctx, tx, &core.Price{
			OracleID:  oracleID,
			Price:     ticker.Price,
			Timestamp: time.Unix(ticker.Timestamp, 0),
		})
	})
}
