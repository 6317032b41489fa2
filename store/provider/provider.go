package provider

import (
	"context"

	"cash/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type providerStore struct {
	db *db.DB
}

// New new redemption provider store
func New(db *db.DB) core.IProviderStore {
	return &providerStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.RedemptionProvider{})
		if err := tx.AutoMigrate(core.RedemptionProvider{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *providerStore) Set(ctx context.Context, tx *db.DB, assetID, userID string, enabled bool) error {
	return tx.Update().
		Where("asset_id = ? and user_id = ?", assetID, userID).
		Assign(map[string]interface{}{"enabled": enabled}).
		FirstOrCreate(&core.RedemptionProvider{
			AssetID: assetID,
			UserID:  userID,
			Enabled: enabled,
		}).Error
}

func (s *providerStore) Init(ctx context.Context, tx *db.DB, assetID, userID string) error {
	return tx.Update().
		Where("asset_id = ? and user_id = ?", assetID, userID).
		FirstOrCreate(&core.RedemptionProvider{
			AssetID: assetID,
			UserID:  userID,
			Enabled: true,
		}).Error
}

func (s *providerStore) Enabled(ctx context.Context, assetID, userID string) (bool, error) {
	var provider core.RedemptionProvider
	if err := s.db.View().Where("asset_id = ? and user_id = ?", assetID, userID).First(&provider).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return false, nil
		}
		return false, err
	}

	return provider.Enabled, nil
}
