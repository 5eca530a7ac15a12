package schema

import (
	"time"

	"gorm.io/datatypes"
)

// WebhookClient represents the webhook_clients table - registered endpoints
// that receive signed collection events.
type WebhookClient struct {
	// ID is the client identifier (UUID)
	ID string `gorm:"column:id;primaryKey;type:uuid"`
	// URL is the delivery endpoint
	URL string `gorm:"column:url;not null;type:text"`
	// Secret is the HMAC signing secret shared with the client
	Secret string `gorm:"column:secret;not null;type:text"`
	// EventTypes is the JSON list of event types the client subscribes to ("*" for all)
	EventTypes datatypes.JSON `gorm:"column:event_types;not null;type:jsonb"`
	// Active indicates whether deliveries are enabled for this client
	Active bool `gorm:"column:active;not null;default:true"`
	// CreatedAt is the timestamp the client was registered
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the WebhookClient model
func (WebhookClient) TableName() string {
	return "webhook_clients"
}
