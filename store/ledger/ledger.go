package ledger

import (
	"context"

	"cash/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type ledgerStore struct {
	db *db.DB
}

// New new ledger store
func New(db *db.DB) core.ILedgerStore {
	return &ledgerStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update()
		if err := tx.AutoMigrate(core.Token{}).Error; err != nil {
			return err
		}
		if err := tx.AutoMigrate(core.LedgerBalance{}).Error; err != nil {
			return err
		}
		if err := tx.AutoMigrate(core.JournalEntry{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *ledgerStore) CreateToken(ctx context.Context, tx *db.DB, token *core.Token) error {
	return tx.Update().
		Where("asset_id = ?", token.AssetID).
		FirstOrCreate(token).Error
}

func (s *ledgerStore) FindToken(ctx context.Context, assetID string) (*core.Token, error) {
	var token core.Token
	if err := s.db.View().Where("asset_id = ?", assetID).First(&token).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrCoinNotInitialized
		}
		return nil, err
	}

	return &token, nil
}

func (s *ledgerStore) FindBalance(ctx context.Context, assetID, account string) (*core.LedgerBalance, error) {
	var balance core.LedgerBalance
	if err := s.db.View().Where("asset_id = ? and account = ?", assetID, account).First(&balance).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.LedgerBalance{AssetID: assetID, Account: account}, nil
		}
		return nil, err
	}

	return &balance, nil
}

func (s *ledgerStore) FindBalanceForUpdate(ctx context.Context, tx *db.DB, assetID, account string) (*core.LedgerBalance, error) {
	var balance core.LedgerBalance
	if err := tx.Update().Where("asset_id = ? and account = ?", assetID, account).First(&balance).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.LedgerBalance{AssetID: assetID, Account: account}, nil
		}
		return nil, err
	}

	return &balance, nil
}

func (s *ledgerStore) SaveBalance(ctx context.Context, tx *db.DB, balance *core.LedgerBalance) error {
	if balance.ID == 0 {
		return tx.Update().Create(balance).Error
	}

	version := balance.Version
	balance.Version++

	update := tx.Update().Model(core.LedgerBalance{}).
		Where("id = ? and version = ?", balance.ID, version).
		Updates(map[string]interface{}{
			"amount":  balance.Amount,
			"version": balance.Version,
		})
	if update.Error != nil {
		return update.Error
	}
	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *ledgerStore) Journal(ctx context.Context, tx *db.DB, entry *core.JournalEntry) error {
	return tx.Update().Create(entry).Error
}

func (s *ledgerStore) ListJournal(ctx context.Context, traceID string) ([]*core.JournalEntry, error) {
	var entries []*core.JournalEntry
	if err := s.db.View().Where("trace_id = ?", traceID).Order("id").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
