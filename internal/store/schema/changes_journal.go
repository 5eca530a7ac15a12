package schema

import (
	"time"

	"gorm.io/datatypes"
)

// ChangesJournal represents the changes_journal table - the append-only
// audit log of every committed collection state change. The ledger records
// into it before committing any in-memory change.
type ChangesJournal struct {
	// Cursor is an auto-incrementing sequence number for ordering and pagination
	Cursor int64 `gorm:"column:\"cursor\";primaryKey;autoIncrement"`
	// EventID is the ULID assigned to the change
	EventID string `gorm:"column:event_id;not null;uniqueIndex;type:text"`
	// EventType is the kind of change (token.minted, royalty.rate_changed, ...)
	EventType string `gorm:"column:event_type;not null;type:text;index"`
	// TokenID is set for token-scoped changes
	TokenID *uint64 `gorm:"column:token_id;index"`
	// Actor is the address that performed the operation
	Actor string `gorm:"column:actor;not null;type:text"`
	// Meta carries the event payload as JSON (old/new values, mint details)
	Meta datatypes.JSON `gorm:"column:meta;type:jsonb"`
	// ChangedAt is the timestamp the change was committed
	ChangedAt time.Time `gorm:"column:changed_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ChangesJournal model
func (ChangesJournal) TableName() string {
	return "changes_journal"
}
