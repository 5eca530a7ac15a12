package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-collection/internal/domain"
)

// knownEventTypes is the set of event types webhook clients may subscribe to
var knownEventTypes = map[string]bool{
	string(domain.EventTypeTokenMinted):          true,
	string(domain.EventTypeTokenURIUpdated):      true,
	string(domain.EventTypeRoyaltyReceiverSet):   true,
	string(domain.EventTypeRoyaltyRateSet):       true,
	string(domain.EventTypeCollectionURIUpdated): true,
	string(domain.EventTypeOwnershipTransferred): true,
	string(domain.EventTypeFundsWithdrawn):       true,
	string(domain.EventTypeERC20Withdrawn):       true,
	string(domain.EventTypeFundsDeposited):       true,
}

// MintTokenRequest is the body of POST /api/v1/tokens
type MintTokenRequest struct {
	To          string `json:"to" binding:"required"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Validate checks address format; metadata fields are validated by the ledger
func (r *MintTokenRequest) Validate() error {
	if !common.IsHexAddress(r.To) {
		return fmt.Errorf("invalid recipient address: %s", r.To)
	}
	return nil
}

// MintTokenURIRequest is the body of POST /api/v1/tokens/uri
type MintTokenURIRequest struct {
	To  string `json:"to" binding:"required"`
	URI string `json:"uri" binding:"required"`
}

// Validate checks address format
func (r *MintTokenURIRequest) Validate() error {
	if !common.IsHexAddress(r.To) {
		return fmt.Errorf("invalid recipient address: %s", r.To)
	}
	return nil
}

// UpdateURIRequest is the body of PUT /api/v1/tokens/:id/uri and
// PUT /api/v1/collection/uri
type UpdateURIRequest struct {
	URI string `json:"uri" binding:"required"`
}

// UpdateRoyaltyReceiverRequest is the body of PUT /api/v1/royalty/receiver
type UpdateRoyaltyReceiverRequest struct {
	Receiver string `json:"receiver" binding:"required"`
}

// Validate checks address format
func (r *UpdateRoyaltyReceiverRequest) Validate() error {
	if !common.IsHexAddress(r.Receiver) {
		return fmt.Errorf("invalid receiver address: %s", r.Receiver)
	}
	return nil
}

// UpdateRoyaltyBasisPointsRequest is the body of PUT /api/v1/royalty/basis-points
type UpdateRoyaltyBasisPointsRequest struct {
	BasisPoints uint16 `json:"basis_points"`
}

// TransferOwnershipRequest is the body of PUT /api/v1/collection/owner
type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner" binding:"required"`
}

// Validate checks address format
func (r *TransferOwnershipRequest) Validate() error {
	if !common.IsHexAddress(r.NewOwner) {
		return fmt.Errorf("invalid owner address: %s", r.NewOwner)
	}
	return nil
}

// DepositRequest is the body of POST /api/v1/treasury/deposits. Amount is a
// decimal string, wei-scale.
type DepositRequest struct {
	From   string `json:"from" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

// Validate checks address format; the amount is parsed by the handler
func (r *DepositRequest) Validate() error {
	if !common.IsHexAddress(r.From) {
		return fmt.Errorf("invalid depositor address: %s", r.From)
	}
	return nil
}

// WithdrawERC20Request is the body of POST /api/v1/treasury/erc20-withdrawals
type WithdrawERC20Request struct {
	TokenAddress string `json:"token_address" binding:"required"`
	To           string `json:"to" binding:"required"`
}

// Validate checks address formats
func (r *WithdrawERC20Request) Validate() error {
	if !common.IsHexAddress(r.TokenAddress) {
		return fmt.Errorf("invalid token address: %s", r.TokenAddress)
	}
	if !common.IsHexAddress(r.To) {
		return fmt.Errorf("invalid recipient address: %s", r.To)
	}
	return nil
}

// CreateWebhookClientRequest is the body of POST /api/v1/webhooks/clients
type CreateWebhookClientRequest struct {
	URL        string   `json:"url" binding:"required"`
	EventTypes []string `json:"event_types" binding:"required"`
}

// Validate checks the delivery URL and the subscription filter. Plain HTTP is
// only allowed in debug mode.
func (r *CreateWebhookClientRequest) Validate(debug bool) error {
	u, err := url.Parse(r.URL)
	if err != nil {
		return fmt.Errorf("invalid webhook URL: %w", err)
	}
	switch u.Scheme {
	case "https":
	case "http":
		if !debug {
			return errors.New("webhook URL must use https")
		}
	default:
		return fmt.Errorf("unsupported webhook URL scheme: %s", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("webhook URL must have a host")
	}

	if len(r.EventTypes) == 0 {
		return errors.New("at least one event type is required")
	}
	for _, t := range r.EventTypes {
		if t == "*" {
			continue
		}
		if !knownEventTypes[t] {
			return fmt.Errorf("unknown event type: %s", t)
		}
	}
	return nil
}

// MintTokenResponse is returned by the mint endpoints
type MintTokenResponse struct {
	TokenID uint64 `json:"token_id"`
	URI     string `json:"uri"`
}

// TokenMetadataResponse surfaces what an embedded data URI contains
type TokenMetadataResponse struct {
	MimeType         string          `json:"mime_type"`
	DetectedMimeType string          `json:"detected_mime_type"`
	Document         json.RawMessage `json:"document,omitempty"`
}

// TokenResponse describes a minted token
type TokenResponse struct {
	TokenID  uint64                 `json:"token_id"`
	URI      string                 `json:"uri"`
	Owner    string                 `json:"owner,omitempty"`
	MintedAt time.Time              `json:"minted_at"`
	Metadata *TokenMetadataResponse `json:"metadata,omitempty"`
}

// ListTokensResponse is a paginated token listing
type ListTokensResponse struct {
	Tokens []TokenResponse `json:"tokens"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// RoyaltyPolicyResponse describes the collection-wide royalty configuration
type RoyaltyPolicyResponse struct {
	Receiver    string `json:"receiver"`
	BasisPoints uint16 `json:"basis_points"`
}

// CollectionResponse describes the collection's current state
type CollectionResponse struct {
	Name            string                `json:"name"`
	Symbol          string                `json:"symbol"`
	CollectionURI   string                `json:"collection_metadata_uri"`
	Owner           string                `json:"owner"`
	Royalty         RoyaltyPolicyResponse `json:"royalty"`
	TotalMinted     uint64                `json:"total_minted"`
	TreasuryBalance string                `json:"treasury_balance"`
}

// RoyaltyInfoResponse is the royalty quote for a sale
type RoyaltyInfoResponse struct {
	TokenID  uint64 `json:"token_id"`
	Receiver string `json:"receiver"`
	Amount   string `json:"amount"`
}

// WithdrawalResponse reports a completed withdrawal
type WithdrawalResponse struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// DepositResponse reports the treasury balance after a deposit
type DepositResponse struct {
	Balance string `json:"balance"`
}

// WebhookClientResponse is returned on client registration. The secret is
// shown exactly once.
type WebhookClientResponse struct {
	ClientID   string   `json:"client_id"`
	URL        string   `json:"url"`
	EventTypes []string `json:"event_types"`
	Secret     string   `json:"secret"`
}

// ChangeEntry is one journal entry in a changes listing
type ChangeEntry struct {
	Cursor    int64           `json:"cursor"`
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	TokenID   *uint64         `json:"token_id,omitempty"`
	Actor     string          `json:"actor"`
	Meta      json.RawMessage `json:"meta,omitempty"`
	ChangedAt time.Time       `json:"changed_at"`
}

// ListChangesResponse is a cursor-paginated journal listing
type ListChangesResponse struct {
	Changes    []ChangeEntry `json:"changes"`
	NextCursor int64         `json:"next_cursor"`
}
