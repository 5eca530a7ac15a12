package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-collection/internal/domain"
	"github.com/feral-file/ff-collection/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the database schema
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.CollectionSettings{},
		&schema.Token{},
		&schema.ChangesJournal{},
		&schema.WebhookClient{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns <= 0 {
		maxOpenConns = 20
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// InitSettings writes the settings row on first boot, keeping the existing
// row when one is already present
func (s *pgStore) InitSettings(ctx context.Context, settings schema.CollectionSettings) (*schema.CollectionSettings, error) {
	settings.ID = schema.SettingsRowID
	if settings.TreasuryBalance == "" {
		settings.TreasuryBalance = "0"
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&settings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to init settings: %w", err)
	}

	return s.GetSettings(ctx)
}

// GetSettings retrieves the singleton settings row
func (s *pgStore) GetSettings(ctx context.Context) (*schema.CollectionSettings, error) {
	var settings schema.CollectionSettings
	err := s.db.WithContext(ctx).
		Where("id = ?", schema.SettingsRowID).
		First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &settings, nil
}

// Record appends the journal entry and applies the row effects of the
// event in a single transaction
func (s *pgStore) Record(ctx context.Context, event domain.CollectionEvent) error {
	meta, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	entry := schema.ChangesJournal{
		EventID:   event.EventID,
		EventType: string(event.Type),
		TokenID:   event.TokenID,
		Actor:     event.Actor.String(),
		Meta:      meta,
		ChangedAt: event.Timestamp,
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to append journal entry: %w", err)
		}
		return s.applyEvent(tx, event)
	})
}

// applyEvent updates the rows affected by the event
func (s *pgStore) applyEvent(tx *gorm.DB, event domain.CollectionEvent) error {
	settings := tx.Model(&schema.CollectionSettings{}).Where("id = ?", schema.SettingsRowID)

	switch event.Type {
	case domain.EventTypeTokenMinted:
		if event.TokenID == nil {
			return errors.New("mint event without token id")
		}
		token := schema.Token{
			TokenID:   *event.TokenID,
			URI:       payloadString(event.Payload, "uri"),
			Recipient: payloadString(event.Payload, "recipient"),
			MintedAt:  event.Timestamp,
		}
		if err := tx.Create(&token).Error; err != nil {
			return fmt.Errorf("failed to create token row: %w", err)
		}
		// counter invariant: the counter equals the number of tokens ever minted
		return settings.Update("mint_counter", *event.TokenID+1).Error

	case domain.EventTypeTokenURIUpdated:
		if event.TokenID == nil {
			return errors.New("uri update event without token id")
		}
		return tx.Model(&schema.Token{}).
			Where("token_id = ?", *event.TokenID).
			Updates(map[string]any{
				"uri":        payloadString(event.Payload, "new"),
				"updated_at": event.Timestamp,
			}).Error

	case domain.EventTypeRoyaltyReceiverSet:
		return settings.Update("royalty_receiver", payloadString(event.Payload, "new")).Error

	case domain.EventTypeRoyaltyRateSet:
		return settings.Update("royalty_basis_points", payloadUint(event.Payload, "new")).Error

	case domain.EventTypeCollectionURIUpdated:
		return settings.Update("collection_uri", payloadString(event.Payload, "new")).Error

	case domain.EventTypeOwnershipTransferred:
		return settings.Update("owner_address", payloadString(event.Payload, "new")).Error

	case domain.EventTypeFundsDeposited:
		return settings.Update("treasury_balance", payloadString(event.Payload, "balance")).Error

	case domain.EventTypeFundsWithdrawn:
		return settings.Update("treasury_balance", "0").Error

	case domain.EventTypeERC20Withdrawn:
		// journal only; the external balance is not collection state
		return nil

	default:
		return fmt.Errorf("unknown event type: %s", event.Type)
	}
}

// GetToken retrieves a minted token row by its token id
func (s *pgStore) GetToken(ctx context.Context, tokenID uint64) (*schema.Token, error) {
	var token schema.Token
	err := s.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	return &token, nil
}

// ListTokens retrieves minted token rows ordered by token id
func (s *pgStore) ListTokens(ctx context.Context, limit, offset int) ([]schema.Token, int64, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&schema.Token{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tokens: %w", err)
	}

	var tokens []schema.Token
	err := s.db.WithContext(ctx).
		Order("token_id ASC").
		Limit(limit).
		Offset(offset).
		Find(&tokens).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, total, nil
}

// ListAllTokens retrieves every minted token row, for state restore
func (s *pgStore) ListAllTokens(ctx context.Context) ([]schema.Token, error) {
	var tokens []schema.Token
	err := s.db.WithContext(ctx).
		Order("token_id ASC").
		Find(&tokens).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}

// ListJournal retrieves journal entries after the given cursor
func (s *pgStore) ListJournal(ctx context.Context, afterCursor int64, limit int) ([]schema.ChangesJournal, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}

	var entries []schema.ChangesJournal
	err := s.db.WithContext(ctx).
		Where(`"cursor" > ?`, afterCursor).
		Order(`"cursor" ASC`).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list journal: %w", err)
	}
	return entries, nil
}

// CreateWebhookClient registers a webhook client
func (s *pgStore) CreateWebhookClient(ctx context.Context, client *schema.WebhookClient) error {
	if err := s.db.WithContext(ctx).Create(client).Error; err != nil {
		return fmt.Errorf("failed to create webhook client: %w", err)
	}
	return nil
}

// ListActiveWebhookClients retrieves clients with deliveries enabled
func (s *pgStore) ListActiveWebhookClients(ctx context.Context) ([]schema.WebhookClient, error) {
	var clients []schema.WebhookClient
	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list webhook clients: %w", err)
	}
	return clients, nil
}

// payloadString extracts a string field from an event payload
func payloadString(payload map[string]any, key string) string {
	if payload == nil {
		return ""
	}
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

// payloadUint extracts an unsigned integer field from an event payload.
// Payloads built in-process carry native integers; payloads decoded from
// JSON carry float64.
func payloadUint(payload map[string]any, key string) uint64 {
	if payload == nil {
		return 0
	}
	switch v := payload[key].(type) {
	case uint16:
		return uint64(v)
	case uint64:
		return v
	case int:
		return uint64(v)
	case float64:
		return uint64(v)
	default:
		return 0
	}
}
