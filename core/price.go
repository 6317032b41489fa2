package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Price latest quote for one oracle feed. The value is quoted in debt-token
// terms with 8 implied decimals, e.g. 200_000_000 = $2.00.
type Price struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	OracleID  string    `sql:"size:36;unique_index:idx_prices_oracle" json:"oracle_id"`
	Price     uint64    `json:"price"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// PriceTicker external oracle ticker payload.
type PriceTicker struct {
	OracleID  string `json:"oracle_id"`
	Price     uint64 `json:"price"`
	Timestamp int64  `json:"timestamp"`
}

// IPriceStore price store interface
type IPriceStore interface {
	Save(ctx context.Context, tx *db.DB, price *Price) error
	Find(ctx context.Context, oracleID string) (*Price, error)
}

// IPriceOracleService the price adapter consumed by the engine. GetPrice
// rejects prices older than the collateral's max_price_age.
type IPriceOracleService interface {
	GetPrice(ctx context.Context, collateral *Collateral) (uint64, error)
	SetPrice(ctx context.Context, admin, oracleID string, price uint64, at time.Time) error
	PullPrice(ctx context.Context, oracleID string) (*PriceTicker, error)
}
