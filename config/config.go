package config

import (
	"cash/service/oracle"

	"github.com/fox-one/pkg/store/db"
)

// Config cash engine configuration
type Config struct {
	DB     db.Config     `json:"db"`
	Oracle oracle.Config `json:"oracle"`

	// user ids allowed to run admin operations
	Admins []string `json:"admins"`
	// asset id of the CASH debt token
	CashAssetID string `json:"cash_asset_id"`
	Genesis     int64  `json:"genesis"`
	Location    string `json:"location"`
}
