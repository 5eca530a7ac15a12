package rest

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/feral-file/ff-collection/internal/api/middleware"
	"github.com/feral-file/ff-collection/internal/domain"
	"github.com/feral-file/ff-collection/internal/ledger"
	"github.com/feral-file/ff-collection/internal/metadata"
	"github.com/feral-file/ff-collection/internal/service"
	"github.com/feral-file/ff-collection/internal/store"
	"github.com/feral-file/ff-collection/internal/store/schema"
)

// ERC20Factory builds a token contract client for an external token address.
// Deployments without chain connectivity leave it nil, which disables the
// ERC-20 withdrawal endpoint.
type ERC20Factory func(token common.Address) ledger.TokenContract

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// MintToken mints a token from raw metadata fields (owner only)
	// POST /api/v1/tokens
	MintToken(c *gin.Context)

	// MintTokenWithURI mints a token with a pre-built URI (owner only)
	// POST /api/v1/tokens/uri
	MintTokenWithURI(c *gin.Context)

	// UpdateTokenURI replaces an existing token's URI (owner only)
	// PUT /api/v1/tokens/:id/uri
	UpdateTokenURI(c *gin.Context)

	// GetToken retrieves a single token by its id
	// GET /api/v1/tokens/:id
	GetToken(c *gin.Context)

	// GetTokenURI retrieves only the URI of a token
	// GET /api/v1/tokens/:id/uri
	GetTokenURI(c *gin.Context)

	// ListTokens retrieves minted tokens with pagination
	// GET /api/v1/tokens?limit=<limit>&offset=<offset>
	ListTokens(c *gin.Context)

	// GetCollection retrieves the collection's current state
	// GET /api/v1/collection
	GetCollection(c *gin.Context)

	// UpdateCollectionURI replaces the collection metadata URI (owner only)
	// PUT /api/v1/collection/uri
	UpdateCollectionURI(c *gin.Context)

	// TransferOwnership hands the collection authority to a new address (owner only)
	// PUT /api/v1/collection/owner
	TransferOwnership(c *gin.Context)

	// RenounceOwnership permanently disables owner-gated operations (owner only)
	// DELETE /api/v1/collection/owner
	RenounceOwnership(c *gin.Context)

	// UpdateRoyaltyReceiver replaces the royalty receiver (owner only)
	// PUT /api/v1/royalty/receiver
	UpdateRoyaltyReceiver(c *gin.Context)

	// UpdateRoyaltyBasisPoints replaces the royalty rate (owner only)
	// PUT /api/v1/royalty/basis-points
	UpdateRoyaltyBasisPoints(c *gin.Context)

	// GetRoyaltyInfo quotes the royalty for a sale of the given token
	// GET /api/v1/royalty/:id?sale_price=<price>
	GetRoyaltyInfo(c *gin.Context)

	// Deposit accrues funds into the treasury (open)
	// POST /api/v1/treasury/deposits
	Deposit(c *gin.Context)

	// WithdrawFunds sends the treasury balance to the owner (owner only)
	// POST /api/v1/treasury/withdrawals
	WithdrawFunds(c *gin.Context)

	// WithdrawERC20 sweeps an external token balance (owner only)
	// POST /api/v1/treasury/erc20-withdrawals
	WithdrawERC20(c *gin.Context)

	// ListChanges retrieves journal entries after a cursor
	// GET /api/v1/changes?anchor=<cursor>&limit=<limit>
	ListChanges(c *gin.Context)

	// CreateWebhookClient creates a new webhook client (requires API key)
	// POST /api/v1/webhooks/clients
	CreateWebhookClient(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	debug   bool
	service *service.Service
	erc20   ERC20Factory
}

// NewHandler creates a new REST API handler
func NewHandler(debug bool, svc *service.Service, erc20 ERC20Factory) Handler {
	return &handler{
		debug:   debug,
		service: svc,
		erc20:   erc20,
	}
}

// callerAddress resolves the acting address for a mutating operation. A JWT
// subject carrying a hex address acts as that address; API key callers act as
// the collection owner.
func (h *handler) callerAddress(c *gin.Context) common.Address {
	if subject, ok := c.Get(middleware.AuthSubjectKey); ok {
		if s, ok := subject.(string); ok && common.IsHexAddress(s) {
			return common.HexToAddress(s)
		}
	}
	return h.service.Collection().Owner()
}

// MintToken mints a token from raw metadata fields
func (h *handler) MintToken(c *gin.Context) {
	var req MintTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	caller := h.callerAddress(c)
	id, err := h.service.MintWithFields(c.Request.Context(), caller,
		common.HexToAddress(req.To), req.Name, req.Description, req.Image)
	if err != nil {
		respondLedgerError(c, err, "Failed to mint token")
		return
	}

	uri, _ := h.service.Collection().TokenURI(id)
	c.JSON(http.StatusCreated, MintTokenResponse{TokenID: id, URI: uri})
}

// MintTokenWithURI mints a token with a pre-built URI
func (h *handler) MintTokenWithURI(c *gin.Context) {
	var req MintTokenURIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	caller := h.callerAddress(c)
	id, err := h.service.MintWithURI(c.Request.Context(), caller,
		common.HexToAddress(req.To), req.URI)
	if err != nil {
		respondLedgerError(c, err, "Failed to mint token")
		return
	}

	c.JSON(http.StatusCreated, MintTokenResponse{TokenID: id, URI: req.URI})
}

// UpdateTokenURI replaces an existing token's URI
func (h *handler) UpdateTokenURI(c *gin.Context) {
	id, err := parseTokenID(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	var req UpdateURIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	caller := h.callerAddress(c)
	if err := h.service.SetTokenURI(c.Request.Context(), caller, id, req.URI); err != nil {
		respondLedgerError(c, err, "Failed to update token URI")
		return
	}

	c.JSON(http.StatusOK, MintTokenResponse{TokenID: id, URI: req.URI})
}

// GetToken retrieves a single token by its id
func (h *handler) GetToken(c *gin.Context) {
	id, err := parseTokenID(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	uri, err := h.service.Collection().TokenURI(id)
	if err != nil {
		respondLedgerError(c, err, "Failed to get token")
		return
	}

	resp := TokenResponse{TokenID: id, URI: uri}
	if owner, err := h.service.OwnerOf(id); err == nil {
		resp.Owner = owner.String()
	}
	if row, err := h.service.Store().GetToken(c.Request.Context(), id); err == nil && row != nil {
		resp.MintedAt = row.MintedAt
	}
	if metadata.IsDataURI(uri) {
		if parsed, err := metadata.ParseDataURI(uri); err == nil {
			resp.Metadata = &TokenMetadataResponse{
				MimeType:         parsed.MimeType,
				DetectedMimeType: parsed.DetectedMimeType,
			}
			if json.Valid(parsed.DecodedData) {
				resp.Metadata.Document = json.RawMessage(parsed.DecodedData)
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

// GetTokenURI retrieves only the URI of a token
func (h *handler) GetTokenURI(c *gin.Context) {
	id, err := parseTokenID(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	uri, err := h.service.Collection().TokenURI(id)
	if err != nil {
		respondLedgerError(c, err, "Failed to get token URI")
		return
	}

	c.JSON(http.StatusOK, MintTokenResponse{TokenID: id, URI: uri})
}

// ListTokens retrieves minted tokens with pagination
func (h *handler) ListTokens(c *gin.Context) {
	limit, offset, err := parsePagination(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	rows, total, err := h.service.Store().ListTokens(c.Request.Context(), limit, offset)
	if err != nil {
		respondInternalError(c, err, "Failed to list tokens")
		return
	}

	tokens := make([]TokenResponse, 0, len(rows))
	for _, row := range rows {
		tokens = append(tokens, TokenResponse{
			TokenID:  row.TokenID,
			URI:      row.URI,
			Owner:    row.Recipient,
			MintedAt: row.MintedAt,
		})
	}

	c.JSON(http.StatusOK, ListTokensResponse{
		Tokens: tokens,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// GetCollection retrieves the collection's current state
func (h *handler) GetCollection(c *gin.Context) {
	col := h.service.Collection()
	policy := col.RoyaltyPolicy()

	c.JSON(http.StatusOK, CollectionResponse{
		Name:          col.Name(),
		Symbol:        col.Symbol(),
		CollectionURI: col.CollectionURI(),
		Owner:         col.Owner().String(),
		Royalty: RoyaltyPolicyResponse{
			Receiver:    policy.Receiver.String(),
			BasisPoints: uint16(policy.BasisPoints),
		},
		TotalMinted:     col.TotalMinted(),
		TreasuryBalance: col.TreasuryBalance().String(),
	})
}

// UpdateCollectionURI replaces the collection metadata URI
func (h *handler) UpdateCollectionURI(c *gin.Context) {
	var req UpdateURIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	caller := h.callerAddress(c)
	if err := h.service.SetCollectionURI(c.Request.Context(), caller, req.URI); err != nil {
		respondLedgerError(c, err, "Failed to update collection URI")
		return
	}

	c.JSON(http.StatusOK, gin.H{"collection_metadata_uri": req.URI})
}

// TransferOwnership hands the collection authority to a new address
func (h *handler) TransferOwnership(c *gin.Context) {
	var req TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	caller := h.callerAddress(c)
	if err := h.service.TransferOwnership(c.Request.Context(), caller, common.HexToAddress(req.NewOwner)); err != nil {
		respondLedgerError(c, err, "Failed to transfer ownership")
		return
	}

	c.JSON(http.StatusOK, gin.H{"owner": req.NewOwner})
}

// RenounceOwnership permanently disables owner-gated operations. The caller
// address comes from the JWT subject; API key callers act as the owner, so an
// accidental renounce through an API key is irreversible. The endpoint exists
// for completeness with the ownership model.
func (h *handler) RenounceOwnership(c *gin.Context) {
	caller := h.callerAddress(c)
	if err := h.service.RenounceOwnership(c.Request.Context(), caller); err != nil {
		respondLedgerError(c, err, "Failed to renounce ownership")
		return
	}

	c.JSON(http.StatusOK, gin.H{"owner": common.Address{}.String()})
}

// UpdateRoyaltyReceiver replaces the royalty receiver
func (h *handler) UpdateRoyaltyReceiver(c *gin.Context) {
	var req UpdateRoyaltyReceiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	caller := h.callerAddress(c)
	if err := h.service.SetRoyaltyReceiver(c.Request.Context(), caller, common.HexToAddress(req.Receiver)); err != nil {
		respondLedgerError(c, err, "Failed to update royalty receiver")
		return
	}

	c.JSON(http.StatusOK, gin.H{"receiver": req.Receiver})
}

// UpdateRoyaltyBasisPoints replaces the royalty rate
func (h *handler) UpdateRoyaltyBasisPoints(c *gin.Context) {
	var req UpdateRoyaltyBasisPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	caller := h.callerAddress(c)
	if err := h.service.SetRoyaltyBasisPoints(c.Request.Context(), caller, domain.BasisPoints(req.BasisPoints)); err != nil {
		respondLedgerError(c, err, "Failed to update royalty rate")
		return
	}

	c.JSON(http.StatusOK, gin.H{"basis_points": req.BasisPoints})
}

// GetRoyaltyInfo quotes the royalty for a sale of the given token. Per the
// royalty convention the token id is echoed without existence validation.
func (h *handler) GetRoyaltyInfo(c *gin.Context) {
	id, err := parseTokenID(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	salePriceRaw := c.DefaultQuery("sale_price", "0")
	salePrice, ok := new(big.Int).SetString(salePriceRaw, 10)
	if !ok || salePrice.Sign() < 0 {
		respondValidationError(c, fmt.Sprintf("invalid sale_price: %s", salePriceRaw))
		return
	}

	receiver, amount := h.service.Collection().RoyaltyInfo(id, salePrice)
	c.JSON(http.StatusOK, RoyaltyInfoResponse{
		TokenID:  id,
		Receiver: receiver.String(),
		Amount:   amount.String(),
	})
}

// Deposit accrues funds into the treasury
func (h *handler) Deposit(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	amount, ok := new(big.Int).SetString(req.Amount, 10)
	if !ok {
		respondValidationError(c, fmt.Sprintf("invalid amount: %s", req.Amount))
		return
	}

	if err := h.service.Deposit(c.Request.Context(), common.HexToAddress(req.From), amount); err != nil {
		respondLedgerError(c, err, "Failed to deposit")
		return
	}

	c.JSON(http.StatusCreated, DepositResponse{
		Balance: h.service.Collection().TreasuryBalance().String(),
	})
}

// WithdrawFunds sends the treasury balance to the owner
func (h *handler) WithdrawFunds(c *gin.Context) {
	caller := h.callerAddress(c)
	amount, err := h.service.WithdrawFunds(c.Request.Context(), caller)
	if err != nil {
		respondLedgerError(c, err, "Failed to withdraw funds")
		return
	}

	c.JSON(http.StatusOK, WithdrawalResponse{
		To:     h.service.Collection().Owner().String(),
		Amount: amount.String(),
	})
}

// WithdrawERC20 sweeps an external token balance to the recipient
func (h *handler) WithdrawERC20(c *gin.Context) {
	if h.erc20 == nil {
		respondWithError(c, http.StatusServiceUnavailable, errCodeServiceError,
			"ERC-20 withdrawals are not available: no token client configured")
		return
	}

	var req WithdrawERC20Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	caller := h.callerAddress(c)
	contract := h.erc20(common.HexToAddress(req.TokenAddress))
	amount, err := h.service.WithdrawERC20(c.Request.Context(), caller, contract, common.HexToAddress(req.To))
	if err != nil {
		respondLedgerError(c, err, "Failed to withdraw tokens")
		return
	}

	c.JSON(http.StatusOK, WithdrawalResponse{To: req.To, Amount: amount.String()})
}

// ListChanges retrieves journal entries after a cursor
func (h *handler) ListChanges(c *gin.Context) {
	anchorRaw := c.DefaultQuery("anchor", "0")
	anchor, err := strconv.ParseInt(anchorRaw, 10, 64)
	if err != nil || anchor < 0 {
		respondValidationError(c, fmt.Sprintf("invalid anchor: %s", anchorRaw))
		return
	}

	limit, _, err := parsePagination(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	entries, err := h.service.Store().ListJournal(c.Request.Context(), anchor, limit)
	if err != nil {
		respondInternalError(c, err, "Failed to list changes")
		return
	}

	changes := make([]ChangeEntry, 0, len(entries))
	nextCursor := anchor
	for _, e := range entries {
		changes = append(changes, ChangeEntry{
			Cursor:    e.Cursor,
			EventID:   e.EventID,
			EventType: e.EventType,
			TokenID:   e.TokenID,
			Actor:     e.Actor,
			Meta:      json.RawMessage(e.Meta),
			ChangedAt: e.ChangedAt,
		})
		nextCursor = e.Cursor
	}

	c.JSON(http.StatusOK, ListChangesResponse{Changes: changes, NextCursor: nextCursor})
}

// CreateWebhookClient creates a new webhook client
func (h *handler) CreateWebhookClient(c *gin.Context) {
	var req CreateWebhookClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(h.debug); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	secret, err := generateSecret()
	if err != nil {
		respondInternalError(c, err, "Failed to create webhook client")
		return
	}

	eventTypes, err := json.Marshal(req.EventTypes)
	if err != nil {
		respondInternalError(c, err, "Failed to create webhook client")
		return
	}

	client := &schema.WebhookClient{
		ID:         uuid.NewString(),
		URL:        req.URL,
		Secret:     secret,
		EventTypes: eventTypes,
		Active:     true,
	}
	if err := h.service.Store().CreateWebhookClient(c.Request.Context(), client); err != nil {
		respondInternalError(c, err, "Failed to create webhook client")
		return
	}

	c.JSON(http.StatusCreated, WebhookClientResponse{
		ClientID:   client.ID,
		URL:        client.URL,
		EventTypes: req.EventTypes,
		Secret:     secret,
	})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "ff-collection-api",
	})
}

// parseTokenID parses the :id path parameter
func parseTokenID(c *gin.Context) (uint64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid token id: %s", raw)
	}
	return id, nil
}

// parsePagination parses limit/offset query parameters with bounds
func parsePagination(c *gin.Context) (limit, offset int, err error) {
	limitRaw := c.DefaultQuery("limit", "50")
	limit, err = strconv.Atoi(limitRaw)
	if err != nil || limit <= 0 || limit > store.MaxListLimit {
		return 0, 0, fmt.Errorf("invalid limit: %s", limitRaw)
	}

	offsetRaw := c.DefaultQuery("offset", "0")
	offset, err = strconv.Atoi(offsetRaw)
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset: %s", offsetRaw)
	}

	return limit, offset, nil
}

// generateSecret returns a hex-encoded 32-byte webhook signing secret
func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
