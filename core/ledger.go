package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// named system accounts on the custody ledger
const (
	// LedgerAccountCustody holds locked trove collateral
	LedgerAccountCustody = "custody"
	// LedgerAccountReserve holds minted liquidation reserves
	LedgerAccountReserve = "reserve"
	// LedgerAccountFee collects protocol fees
	LedgerAccountFee = "fee"
	// LedgerAccountGratuity collects redemption gratuities
	LedgerAccountGratuity = "gratuity"
)

// journal reasons, one per engine event
const (
	JournalReasonTroveOpened        = "trove_opened"
	JournalReasonTroveClosed        = "trove_closed"
	JournalReasonCollateralDeposit  = "collateral_deposit"
	JournalReasonCollateralWithdraw = "collateral_withdraw"
	JournalReasonDebtMinted         = "debt_minted"
	JournalReasonDebtRepaid         = "debt_repaid"
	JournalReasonTroveLiquidated    = "trove_liquidated"
	JournalReasonRedemption         = "redemption"
	JournalReasonFaucet             = "faucet"
)

// Token a mintable token registered on the custody ledger. Adding a
// collateral type requires its token row to exist.
type Token struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID   string    `sql:"size:36;unique_index:idx_tokens_asset" json:"asset_id"`
	Symbol    string    `sql:"size:20" json:"symbol"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// LedgerBalance accounting mirror of one (token, account) balance.
type LedgerBalance struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string `sql:"size:36;unique_index:idx_ledger_asset_account" json:"asset_id"`
	Account string `sql:"size:36;unique_index:idx_ledger_asset_account" json:"account"`
	Amount  uint64 `json:"amount"`

	Version   int64     `sql:"default:0" json:"version"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// JournalEntry append-only record of one ledger movement. From or To is empty
// for mints and burns.
type JournalEntry struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string    `sql:"size:36;index:idx_journal_trace" json:"trace_id"`
	AssetID   string    `sql:"size:36" json:"asset_id"`
	From      string    `gorm:"column:from_account" sql:"size:36" json:"from"`
	To        string    `gorm:"column:to_account" sql:"size:36" json:"to"`
	Amount    uint64    `json:"amount"`
	Reason    string    `sql:"size:36" json:"reason"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// ILedgerStore custody ledger store interface
type ILedgerStore interface {
	CreateToken(ctx context.Context, tx *db.DB, token *Token) error
	FindToken(ctx context.Context, assetID string) (*Token, error)
	FindBalance(ctx context.Context, assetID, account string) (*LedgerBalance, error)
	// FindBalanceForUpdate reads through the open transaction so that
	// consecutive movements inside one call observe each other
	FindBalanceForUpdate(ctx context.Context, tx *db.DB, assetID, account string) (*LedgerBalance, error)
	SaveBalance(ctx context.Context, tx *db.DB, balance *LedgerBalance) error
	Journal(ctx context.Context, tx *db.DB, entry *JournalEntry) error
	ListJournal(ctx context.Context, traceID string) ([]*JournalEntry, error)
}

// CustodyLedger mint/burn/transfer primitives keyed by token and account.
// The engine computes amounts; this ledger is the accounting mirror of the
// real balances held by the custody accounts.
type CustodyLedger interface {
	RegisterToken(ctx context.Context, assetID, symbol string) error
	HasToken(ctx context.Context, assetID string) (bool, error)
	Mint(ctx context.Context, tx *db.DB, assetID, to string, amount uint64, reason, traceID string) error
	Burn(ctx context.Context, tx *db.DB, assetID, from string, amount uint64, reason, traceID string) error
	Transfer(ctx context.Context, tx *db.DB, assetID, from, to string, amount uint64, reason, traceID string) error
	Balance(ctx context.Context, assetID, account string) (uint64, error)
}
