package schema

import (
	"time"
)

// Token represents the tokens table - one row per minted token. Token ids
// are assigned by the mint counter and are never reused, so rows are only
// ever inserted, never deleted.
type Token struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TokenID is the id assigned by the mint counter (zero-based, monotonic)
	TokenID uint64 `gorm:"column:token_id;not null;uniqueIndex"`
	// URI is the metadata URI recorded for the token (embedded data URI or external locator)
	URI string `gorm:"column:uri;not null;type:text"`
	// Recipient is the address the token was minted to
	Recipient string `gorm:"column:recipient;not null;type:text;index"`
	// MintedAt is the timestamp the mint was committed
	MintedAt time.Time `gorm:"column:minted_at;not null;type:timestamptz"`
	// CreatedAt is the timestamp this row was written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp this row was last updated (URI replacements)
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Token model
func (Token) TableName() string {
	return "tokens"
}
