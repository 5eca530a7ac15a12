package schema

import (
	"time"
)

// SettingsRowID is the primary key of the singleton settings row
const SettingsRowID = 1

// CollectionSettings represents the collection_settings table - a singleton
// row holding the collection's durable configuration and counters.
type CollectionSettings struct {
	// ID is always SettingsRowID; the table holds exactly one row
	ID int64 `gorm:"column:id;primaryKey"`
	// Name is the collection name
	Name string `gorm:"column:name;not null;type:text"`
	// Symbol is the collection symbol
	Symbol string `gorm:"column:symbol;not null;type:text"`
	// CollectionURI is the collection-level metadata URI
	CollectionURI string `gorm:"column:collection_uri;not null;type:text"`
	// OwnerAddress is the controlling authority
	OwnerAddress string `gorm:"column:owner_address;not null;type:text"`
	// RoyaltyReceiver is the collection-wide royalty receiver address
	RoyaltyReceiver string `gorm:"column:royalty_receiver;not null;type:text"`
	// RoyaltyBasisPoints is the collection-wide royalty rate
	RoyaltyBasisPoints uint16 `gorm:"column:royalty_basis_points;not null"`
	// MintCounter is the number of tokens ever minted; it never decreases
	MintCounter uint64 `gorm:"column:mint_counter;not null;default:0"`
	// TreasuryBalance is the accrued treasury balance (string to support up to 78 digits)
	TreasuryBalance string `gorm:"column:treasury_balance;not null;default:0;type:numeric(78,0)"`
	// CreatedAt is the timestamp the settings row was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp the settings row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the CollectionSettings model
func (CollectionSettings) TableName() string {
	return "collection_settings"
}
