package price

import (
	"context"

	"cash/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type priceStore struct {
	db *db.DB
}

// New new price store
func New(db *db.DB) core.IPriceStore {
	return &priceStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Price{})
		if err := tx.AutoMigrate(core.Price{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *priceStore) Save(ctx context.Context, tx *db.DB, price *core.Price) error {
	return tx.Update().
		Where("oracle_id = ?", price.OracleID).
		Assign(map[string]interface{}{
			"price":     price.Price,
			"timestamp": price.Timestamp,
		}).FirstOrCreate(price).Error
}

func (s *priceStore) Find(ctx context.Context, oracleID string) (*core.Price, error) {
	var price core.Price
	if err := s.db.View().Where("oracle_id = ?", oracleID).First(&price).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrInvalidPrice
		}
		return nil, err
	}

	return &price, nil
}
