package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// RedemptionProvider opt-in flag per (collateral, owner). Set automatically on
// the first open_trove, toggleable by the owner afterwards.
type RedemptionProvider struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID   string    `sql:"size:36;unique_index:idx_providers_asset_user" json:"asset_id"`
	UserID    string    `sql:"size:36;unique_index:idx_providers_asset_user" json:"user_id"`
	Enabled   bool      `sql:"default:0" json:"enabled"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IProviderStore redemption provider flag store
type IProviderStore interface {
	// Set overwrites the flag, creating the row when absent.
	Set(ctx context.Context, tx *db.DB, assetID, userID string, enabled bool) error
	// Init creates the row enabled when absent and leaves an existing row
	// untouched, so a reopened trove cannot re-enrol an opted-out owner.
	Init(ctx context.Context, tx *db.DB, assetID, userID string) error
	Enabled(ctx context.Context, assetID, userID string) (bool, error)
}
