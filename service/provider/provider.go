package provider

import (
	"context"

	"cash/core"

	"github.com/fox-one/pkg/store/db"
)

type providerService struct {
	db    *db.DB
	store core.IProviderStore
}

// New new redemption provider service
func New(db *db.DB, store core.IProviderStore) core.IProviderService {
	return &providerService{
		db:    db,
		store: store,
	}
}

func (s *providerService) Register(ctx context.Context, userID, assetID string, enabled bool) error {
	return s.db.Tx(func(tx *db.DB) error {
		return s.store.Set(ctx, tx, assetID, userID, enabled)
	})
}

func (s *providerService) IsProvider(ctx context.Context, assetID, userID string) (bool, error) {
	return s.store.Enabled(ctx, assetID, userID)
}
