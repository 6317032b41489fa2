package ledger

import (
	"context"

	"cash/core"
	"cash/pkg/fixedpoint"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

type ledgerService struct {
	db    *db.DB
	store core.ILedgerStore
}

// New new custody ledger service
func New(db *db.DB, store core.ILedgerStore) core.CustodyLedger {
	return &ledgerService{
		db:    db,
		store: store,
	}
}

func (s *ledgerService) RegisterToken(ctx context.Context, assetID, symbol string) error {
	return s.db.Tx(func(tx *db.DB) error {
		return s.store.CreateToken(ctx, tx, &core.Token{
			AssetID: assetID,
			Symbol:  symbol,
		})
	})
}

func (s *ledgerService) HasToken(ctx context.Context, assetID string) (bool, error) {
	if _, err := s.store.FindToken(ctx, assetID); err != nil {
		if err == core.ErrCoinNotInitialized {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (s *ledgerService) Mint(ctx context.Context, tx *db.DB, assetID, to string, amount uint64, reason, traceID string) error {
	if amount == 0 {
		return nil
	}

	balance, err := s.store.FindBalanceForUpdate(ctx, tx, assetID, to)
	if err != nil {
		return err
	}

	next, err := fixedpoint.Add(balance.Amount, amount)
	if err != nil {
		return err
	}
	balance.Amount = next

	if err := s.store.SaveBalance(ctx, tx, balance); err != nil {
		return err
	}

	return s.journal(ctx, tx, assetID, "", to, amount, reason, traceID)
}

func (s *ledgerService) Burn(ctx context.Context, tx *db.DB, assetID, from string, amount uint64, reason, traceID string) error {
	if amount == 0 {
		return nil
	}

	balance, err := s.store.FindBalanceForUpdate(ctx, tx, assetID, from)
	if err != nil {
		return err
	}
	if balance.Amount < amount {
		return core.ErrInsufficientBalance
	}
	balance.Amount -= amount

	if err := s.store.SaveBalance(ctx, tx, balance); err != nil {
		return err
	}

	return s.journal(ctx, tx, assetID, from, "", amount, reason, traceID)
}

func (s *ledgerService) Transfer(ctx context.Context, tx *db.DB, assetID, from, to string, amount uint64, reason, traceID string) error {
	if amount == 0 {
		return nil
	}

	source, err := s.store.FindBalanceForUpdate(ctx, tx, assetID, from)
	if err != nil {
		return err
	}
	if source.Amount < amount {
		return core.ErrInsufficientBalance
	}
	source.Amount -= amount

	if err := s.store.SaveBalance(ctx, tx, source); err != nil {
		return err
	}

	target, err := s.store.FindBalanceForUpdate(ctx, tx, assetID, to)
	if err != nil {
		return err
	}

	next, err := fixedpoint.Add(target.Amount, amount)
	if err != nil {
		return err
	}
	target.Amount = next

	if err := s.store.SaveBalance(ctx, tx, target); err != nil {
		return err
	}

	return s.journal(ctx, tx, assetID, from, to, amount, reason, traceID)
}

func (s *ledgerService) Balance(ctx context.Context, assetID, account string) (uint64, error) {
	balance, err := s.store.FindBalance(ctx, assetID, account)
	if err != nil {
		return 0, err
	}

	return balance.Amount, nil
}

func (s *ledgerService) journal(ctx context.Context, tx *db.DB, assetID, from, to string, amount uint64, reason, traceID string) error {
	logger.FromContext(ctx).
		WithField("service", "ledger").
		Debugf("%s %s: %d %s -> %s", reason, assetID, amount, from, to)

	return s.store.Journal(ctx, tx, &core.JournalEntry{
		TraceID: traceID,
		AssetID: assetID,
		From:    from,
		To:      to,
		Amount:  amount,
		Reason:  reason,
	})
}
