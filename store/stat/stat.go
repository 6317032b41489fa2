package stat

import (
	"context"

	"cash/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type statStore struct {
	db *db.DB
}

// New new total stat store
func New(db *db.DB) core.IStatStore {
	return &statStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.TotalStat{})
		if err := tx.AutoMigrate(core.TotalStat{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *statStore) Find(ctx context.Context, assetID string) (*core.TotalStat, error) {
	var stat core.TotalStat
	if err := s.db.View().Where("asset_id = ?", assetID).First(&stat).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.TotalStat{AssetID: assetID}, nil
		}
		return nil, err
	}

	return &stat, nil
}

func (s *statStore) Save(ctx context.Context, tx *db.DB, stat *core.TotalStat) error {
	return tx.Update().Create(stat).Error
}

func (s *statStore) Update(ctx context.Context, tx *db.DB, stat *core.TotalStat) error {
	if stat.ID == 0 {
		return s.Save(ctx, tx, stat)
	}

	version := stat.Version
	stat.Version++

	update := tx.Update().Model(core.TotalStat{}).
		Where("asset_id = ? and version = ?", stat.AssetID, version).
		Updates(map[string]interface{}{
			"total_collateral": stat.TotalCollateral,
			"total_debt":       stat.TotalDebt,
			"version":          stat.Version,
		})
	if update.Error != nil {
		return update.Error
	}
	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
