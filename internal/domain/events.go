package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// EventType identifies the kind of collection state change
type EventType string

const (
	EventTypeTokenMinted          EventType = "token.minted"
	EventTypeTokenURIUpdated      EventType = "token.uri_updated"
	EventTypeRoyaltyReceiverSet   EventType = "royalty.receiver_changed"
	EventTypeRoyaltyRateSet       EventType = "royalty.rate_changed"
	EventTypeCollectionURIUpdated EventType = "collection.metadata_updated"
	EventTypeOwnershipTransferred EventType = "ownership.transferred"
	EventTypeFundsWithdrawn       EventType = "treasury.withdrawn"
	EventTypeERC20Withdrawn       EventType = "treasury.erc20_withdrawn"
	EventTypeFundsDeposited       EventType = "treasury.deposited"
)

// CollectionEvent is the normalized record of a single committed state
// change. Events are emitted after the change is durably recorded and are
// the payload published to JetStream and delivered to webhook clients.
type CollectionEvent struct {
	// EventID is a ULID assigned at emission time (time-sortable, unique)
	EventID string `json:"event_id"`
	// Type is the kind of change
	Type EventType `json:"type"`
	// TokenID is set for token-scoped events
	TokenID *uint64 `json:"token_id,omitempty"`
	// Actor is the address that performed the operation
	Actor common.Address `json:"actor"`
	// Payload carries event-specific fields (old/new values, mint details)
	Payload map[string]any `json:"payload,omitempty"`
	// Timestamp is when the change was committed
	Timestamp time.Time `json:"timestamp"`
}

// MintedEventPayload builds the payload for a mint-with-fields event
func MintedEventPayload(recipient common.Address, name, description, image string) map[string]any {
	return map[string]any{
		"recipient":   recipient.String(),
		"name":        name,
		"description": description,
		"image":       image,
	}
}

// MintedURIEventPayload builds the payload for a mint-with-URI event
func MintedURIEventPayload(recipient common.Address, uri string) map[string]any {
	return map[string]any{
		"recipient": recipient.String(),
		"uri":       uri,
	}
}

// ChangedEventPayload builds the payload for a value-replacement event
func ChangedEventPayload(oldValue, newValue any) map[string]any {
	return map[string]any{
		"old": oldValue,
		"new": newValue,
	}
}
