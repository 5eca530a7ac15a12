package store

import (
	"context"

	"github.com/feral-file/ff-collection/internal/domain"
	"github.com/feral-file/ff-collection/internal/store/schema"
)

// MaxListLimit caps how many rows a single listing call returns. The REST
// pagination bounds reuse it so the echoed limit always matches what the
// store applied.
const MaxListLimit = 200

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// InitSettings writes the singleton settings row if it does not exist
	// yet and returns the row that is now current
	InitSettings(ctx context.Context, settings schema.CollectionSettings) (*schema.CollectionSettings, error)
	// GetSettings retrieves the singleton settings row (nil when absent)
	GetSettings(ctx context.Context) (*schema.CollectionSettings, error)

	// Record durably applies a collection event: it appends the journal
	// entry and updates the affected rows in a single transaction. The
	// ledger calls this before committing any in-memory change.
	Record(ctx context.Context, event domain.CollectionEvent) error

	// GetToken retrieves a minted token row by its token id
	GetToken(ctx context.Context, tokenID uint64) (*schema.Token, error)
	// ListTokens retrieves minted token rows ordered by token id
	ListTokens(ctx context.Context, limit, offset int) ([]schema.Token, int64, error)
	// ListAllTokens retrieves every minted token row, for state restore
	ListAllTokens(ctx context.Context) ([]schema.Token, error)

	// ListJournal retrieves journal entries after the given cursor
	ListJournal(ctx context.Context, afterCursor int64, limit int) ([]schema.ChangesJournal, error)

	// CreateWebhookClient registers a webhook client
	CreateWebhookClient(ctx context.Context, client *schema.WebhookClient) error
	// ListActiveWebhookClients retrieves clients with deliveries enabled
	ListActiveWebhookClients(ctx context.Context) ([]schema.WebhookClient, error)
}
