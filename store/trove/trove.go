package trove

import (
	"context"

	"cash/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type troveStore struct {
	db *db.DB
}

// New new trove store
func New(db *db.DB) core.ITroveStore {
	return &troveStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Trove{})
		if err := tx.AutoMigrate(core.Trove{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *troveStore) Save(ctx context.Context, tx *db.DB, trove *core.Trove) error {
	return tx.Update().
		Where("asset_id = ? and user_id = ?", trove.AssetID, trove.UserID).
		Assign(map[string]interface{}{
			"collateral": trove.Collateral,
			"debt":       trove.Debt,
			"active":     trove.Active,
		}).FirstOrCreate(trove).Error
}

func (s *troveStore) Find(ctx context.Context, assetID, userID string) (*core.Trove, error) {
	var trove core.Trove
	if err := s.db.View().Where("asset_id = ? and user_id = ?", assetID, userID).First(&trove).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrPositionNotFound
		}
		return nil, err
	}

	return &trove, nil
}

func (s *troveStore) FindByAsset(ctx context.Context, assetID string) ([]*core.Trove, error) {
	var troves []*core.Trove
	if err := s.db.View().Where("asset_id = ? and active = ?", assetID, true).Find(&troves).Error; err != nil {
		return nil, err
	}
	return troves, nil
}

func (s *troveStore) CountActive(ctx context.Context, assetID string) (int64, error) {
	var count int64
	if err := s.db.View().Model(core.Trove{}).
		Where("asset_id = ? and active = ?", assetID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *troveStore) Update(ctx context.Context, tx *db.DB, trove *core.Trove) error {
	version := trove.Version
	trove.Version++

	update := tx.Update().Model(core.Trove{}).
		Where("asset_id = ? and user_id = ? and version = ?", trove.AssetID, trove.UserID, version).
		Updates(map[string]interface{}{
			"collateral": trove.Collateral,
			"debt":       trove.Debt,
			"active":     trove.Active,
			"version":    trove.Version,
		})
	if update.Error != nil {
		return update.Error
	}
	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
