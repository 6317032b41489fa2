package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// TotalStat running sums over all active troves of one collateral type.
// Must equal the sum of the active trove rows after every operation.
type TotalStat struct {
	ID              uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID         string `sql:"size:36;unique_index:idx_total_stats_asset" json:"asset_id"`
	TotalCollateral uint64 `json:"total_collateral"`
	TotalDebt       uint64 `json:"total_debt"`

	Version   int64     `sql:"default:0" json:"version"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IStatStore total stat store interface
type IStatStore interface {
	Find(ctx context.Context, assetID string) (*TotalStat, error)
	Save(ctx context.Context, tx *db.DB, stat *TotalStat) error
	Update(ctx context.Context, tx *db.DB, stat *TotalStat) error
}
