package oracle

import (
	"context"
	"fmt"
	"time"

	"cash/core"
	"cash/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

// Config oracle endpoint config
type Config struct {
	EndPoint string `json:"end_point"`
}

type priceService struct {
	db     *db.DB
	cfg    Config
	system *core.System
	store  core.IPriceStore
}

// New new price oracle service
func New(db *db.DB, cfg Config, system *core.System, store core.IPriceStore) core.IPriceOracleService {
	return &priceService{
		db:     db,
		cfg:    cfg,
		system: system,
		store:  store,
	}
}

// GetPrice reads the latest stored quote for the collateral's oracle feed and
// rejects it when older than max_price_age.
func (s *priceService) GetPrice(ctx context.Context, collateral *core.Collateral) (uint64, error) {
	price, err := s.store.Find(ctx, collateral.OracleID)
	if err != nil {
		return 0, err
	}
	if price.Price == 0 {
		return 0, core.ErrInvalidPrice
	}

	if collateral.MaxPriceAge > 0 {
		age := time.Since(price.Timestamp)
		if age > time.Duration(collateral.MaxPriceAge)*time.Second {
			return 0, core.ErrPriceStale
		}
	}

	return price.Price, nil
}

// SetPrice admin/test fallback path; production quotes arrive through the
// price-sync worker.
func (s *priceService) SetPrice(ctx context.Context, admin, oracleID string, price uint64, at time.Time) error {
	if !s.system.IsAdmin(admin) {
		return core.ErrNotAdmin
	}
	if price == 0 {
		return core.ErrInvalidPrice
	}

	return s.db.Tx(func(tx *db.DB) error {
		return s.store.Save(ctx, tx, &core.Price{
			OracleID:  oracleID,
			Price:     price,
			Timestamp: at,
		})
	})
}

// PullPrice fetches a ticker from the configured oracle endpoint.
func (s *priceService) PullPrice(ctx context.Context, oracleID string) (*core.PriceTicker, error) {
	if s.cfg.EndPoint == "" {
		return nil, core.ErrInvalidPrice
	}

	url := fmt.Sprintf("%s/api/tickers/%s", s.cfg.EndPoint, oracleID)
	logger.FromContext(ctx).Debugln("pull price:", url)

	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	var ticker core.PriceTicker
	if err := resthttp.ParseResponse(resp, &ticker); err != nil {
		return nil, err
	}

	return &ticker, nil
}
