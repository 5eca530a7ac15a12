package rest_test

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-collection/internal/api/middleware"
	"github.com/feral-file/ff-collection/internal/api/rest"
	"github.com/feral-file/ff-collection/internal/domain"
	"github.com/feral-file/ff-collection/internal/ledger"
	"github.com/feral-file/ff-collection/internal/logger"
	"github.com/feral-file/ff-collection/internal/mocks"
	"github.com/feral-file/ff-collection/internal/service"
	"github.com/feral-file/ff-collection/internal/store"
	"github.com/feral-file/ff-collection/internal/store/schema"
)

const (
	testAPIKey     = "test-api-key"
	testAuthHeader = "apikey " + testAPIKey
)

var (
	testOwner     = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testRecipient = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testAPIMocks contains all the mocks needed for testing the REST handlers
type testAPIMocks struct {
	ctrl   *gomock.Controller
	store  *mocks.MockStore
	sink   *mocks.MockEventSink
	router *gin.Engine
}

// setupTestAPI wires a real service over a mocked store behind the full
// route table, so requests pass through the same auth middleware as in
// production.
func setupTestAPI(t *testing.T, erc20 rest.ERC20Factory) *testAPIMocks {
	ctrl := gomock.NewController(t)

	tm := &testAPIMocks{
		ctrl:  ctrl,
		store: mocks.NewMockStore(ctrl),
		sink:  mocks.NewMockEventSink(ctrl),
	}

	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)).AnyTimes()

	tm.store.
		EXPECT().
		InitSettings(gomock.Any(), gomock.Any()).
		Return(&schema.CollectionSettings{
			ID:                 schema.SettingsRowID,
			Name:               "Test Collection",
			Symbol:             "TST",
			CollectionURI:      "ipfs://collection-metadata",
			OwnerAddress:       testOwner.String(),
			RoyaltyReceiver:    testOwner.String(),
			RoyaltyBasisPoints: 500,
			TreasuryBalance:    "0",
		}, nil)
	tm.store.
		EXPECT().
		ListAllTokens(gomock.Any()).
		Return(nil, nil)

	svc, err := service.New(context.Background(), service.Config{
		Name:               "Test Collection",
		Symbol:             "TST",
		CollectionURI:      "ipfs://collection-metadata",
		RoyaltyBasisPoints: 500,
		Owner:              testOwner,
		Address:            common.HexToAddress("0x4444444444444444444444444444444444444444"),
	}, tm.store, tm.sink, nil, clock)
	require.NoError(t, err)

	tm.router = gin.New()
	rest.SetupRoutes(tm.router, rest.NewHandler(true, svc, erc20), middleware.AuthConfig{
		APIKeys: []string{testAPIKey},
	})

	return tm
}

// expectCommit sets up the store and sink for one successful ledger mutation
func (tm *testAPIMocks) expectCommit() {
	tm.store.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
	tm.sink.EXPECT().Emit(gomock.Any())
}

func performRequest(router *gin.Engine, method, path, body, authHeader string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	w := performRequest(tm.router, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestMintToken(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	tm.expectCommit()

	w := performRequest(tm.router, http.MethodPost, "/api/v1/tokens",
		`{"to":"`+testRecipient.String()+`","name":"Item1","description":"First item","image":"ipfs://img1"}`,
		testAuthHeader)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp rest.MintTokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(0), resp.TokenID)
	assert.True(t, strings.HasPrefix(resp.URI, "data:application/json;base64,"))
}

func TestMintToken_Unauthorized(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	w := performRequest(tm.router, http.MethodPost, "/api/v1/tokens",
		`{"to":"`+testRecipient.String()+`","name":"Item1","image":"ipfs://img1"}`, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMintToken_Validation(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	// Malformed recipient address
	w := performRequest(tm.router, http.MethodPost, "/api/v1/tokens",
		`{"to":"not-an-address","name":"Item1","image":"ipfs://img1"}`, testAuthHeader)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid recipient address")

	// Empty name is rejected by the ledger
	w = performRequest(tm.router, http.MethodPost, "/api/v1/tokens",
		`{"to":"`+testRecipient.String()+`","name":"","image":"ipfs://img1"}`, testAuthHeader)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_failed")
}

func TestMintTokenWithURI(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	tm.expectCommit()

	w := performRequest(tm.router, http.MethodPost, "/api/v1/tokens/uri",
		`{"to":"`+testRecipient.String()+`","uri":"ipfs://prebuilt"}`, testAuthHeader)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp rest.MintTokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(0), resp.TokenID)
	assert.Equal(t, "ipfs://prebuilt", resp.URI)
}

func TestUpdateTokenURI(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	tm.expectCommit()
	w := performRequest(tm.router, http.MethodPost, "/api/v1/tokens/uri",
		`{"to":"`+testRecipient.String()+`","uri":"ipfs://old"}`, testAuthHeader)
	require.Equal(t, http.StatusCreated, w.Code)

	tm.expectCommit()
	w = performRequest(tm.router, http.MethodPut, "/api/v1/tokens/0/uri",
		`{"uri":"ipfs://new"}`, testAuthHeader)
	assert.Equal(t, http.StatusOK, w.Code)

	// Unminted id
	w = performRequest(tm.router, http.MethodPut, "/api/v1/tokens/7/uri",
		`{"uri":"ipfs://new"}`, testAuthHeader)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetToken(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	tm.expectCommit()
	w := performRequest(tm.router, http.MethodPost, "/api/v1/tokens/uri",
		`{"to":"`+testRecipient.String()+`","uri":"ipfs://meta"}`, testAuthHeader)
	require.Equal(t, http.StatusCreated, w.Code)

	mintedAt := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	tm.store.
		EXPECT().
		GetToken(gomock.Any(), uint64(0)).
		Return(&schema.Token{TokenID: 0, URI: "ipfs://meta", Recipient: testRecipient.String(), MintedAt: mintedAt}, nil)

	w = performRequest(tm.router, http.MethodGet, "/api/v1/tokens/0", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(0), resp.TokenID)
	assert.Equal(t, "ipfs://meta", resp.URI)
	assert.Equal(t, testRecipient.String(), resp.Owner)
	assert.True(t, mintedAt.Equal(resp.MintedAt))
}

func TestGetToken_EmbeddedMetadata(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	tm.expectCommit()
	w := performRequest(tm.router, http.MethodPost, "/api/v1/tokens",
		`{"to":"`+testRecipient.String()+`","name":"Item1","image":"ipfs://img1"}`, testAuthHeader)
	require.Equal(t, http.StatusCreated, w.Code)

	tm.store.
		EXPECT().
		GetToken(gomock.Any(), uint64(0)).
		Return(nil, nil)

	w = performRequest(tm.router, http.MethodGet, "/api/v1/tokens/0", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	// Tokens minted from fields carry a data URI, so the read surfaces the
	// decoded document
	var resp rest.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Metadata)
	assert.Equal(t, "application/json", resp.Metadata.MimeType)
	assert.Contains(t, string(resp.Metadata.Document), `"name":"Item1"`)
}

func TestGetTokenURI(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	tm.expectCommit()
	w := performRequest(tm.router, http.MethodPost, "/api/v1/tokens/uri",
		`{"to":"`+testRecipient.String()+`","uri":"ipfs://meta"}`, testAuthHeader)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(tm.router, http.MethodGet, "/api/v1/tokens/0/uri", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.MintTokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ipfs://meta", resp.URI)

	w = performRequest(tm.router, http.MethodGet, "/api/v1/tokens/7/uri", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetToken_NotFound(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	w := performRequest(tm.router, http.MethodGet, "/api/v1/tokens/0", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(tm.router, http.MethodGet, "/api/v1/tokens/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTokens(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	tm.store.
		EXPECT().
		ListTokens(gomock.Any(), 50, 0).
		Return([]schema.Token{
			{TokenID: 0, URI: "ipfs://t0", Recipient: testRecipient.String()},
			{TokenID: 1, URI: "ipfs://t1", Recipient: testRecipient.String()},
		}, int64(2), nil)

	w := performRequest(tm.router, http.MethodGet, "/api/v1/tokens", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.ListTokensResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Total)
	require.Len(t, resp.Tokens, 2)
	assert.Equal(t, uint64(1), resp.Tokens[1].TokenID)

	// The largest accepted limit is the store's listing cap, so the echoed
	// limit always matches what was applied
	tm.store.
		EXPECT().
		ListTokens(gomock.Any(), store.MaxListLimit, 0).
		Return(nil, int64(0), nil)
	w = performRequest(tm.router, http.MethodGet, fmt.Sprintf("/api/v1/tokens?limit=%d", store.MaxListLimit), "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, store.MaxListLimit, resp.Limit)

	// Out-of-range pagination
	w = performRequest(tm.router, http.MethodGet, fmt.Sprintf("/api/v1/tokens?limit=%d", store.MaxListLimit+1), "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCollection(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	w := performRequest(tm.router, http.MethodGet, "/api/v1/collection", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.CollectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Test Collection", resp.Name)
	assert.Equal(t, "TST", resp.Symbol)
	assert.Equal(t, "ipfs://collection-metadata", resp.CollectionURI)
	assert.Equal(t, testOwner.String(), resp.Owner)
	assert.Equal(t, uint16(500), resp.Royalty.BasisPoints)
	assert.Equal(t, uint64(0), resp.TotalMinted)
	assert.Equal(t, "0", resp.TreasuryBalance)
}

func TestUpdateCollectionURI(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	tm.expectCommit()
	w := performRequest(tm.router, http.MethodPut, "/api/v1/collection/uri",
		`{"uri":"ipfs://new-metadata"}`, testAuthHeader)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(tm.router, http.MethodGet, "/api/v1/collection", "", "")
	assert.Contains(t, w.Body.String(), "ipfs://new-metadata")
}

func TestGetRoyaltyInfo(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	// The quote does not validate token existence
	w := performRequest(tm.router, http.MethodGet, "/api/v1/royalty/0?sale_price=100", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.RoyaltyInfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, testOwner.String(), resp.Receiver)
	assert.Equal(t, "5", resp.Amount)

	w = performRequest(tm.router, http.MethodGet, "/api/v1/royalty/0?sale_price=-5", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateRoyaltyBasisPoints(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	// Above the maximum
	w := performRequest(tm.router, http.MethodPut, "/api/v1/royalty/basis-points",
		`{"basis_points":10001}`, testAuthHeader)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unchanged value
	w = performRequest(tm.router, http.MethodPut, "/api/v1/royalty/basis-points",
		`{"basis_points":500}`, testAuthHeader)
	assert.Equal(t, http.StatusConflict, w.Code)

	tm.expectCommit()
	w = performRequest(tm.router, http.MethodPut, "/api/v1/royalty/basis-points",
		`{"basis_points":1000}`, testAuthHeader)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateRoyaltyReceiver(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	tm.expectCommit()
	w := performRequest(tm.router, http.MethodPut, "/api/v1/royalty/receiver",
		`{"receiver":"`+testRecipient.String()+`"}`, testAuthHeader)
	assert.Equal(t, http.StatusOK, w.Code)

	// Setting it again to the same value conflicts
	w = performRequest(tm.router, http.MethodPut, "/api/v1/royalty/receiver",
		`{"receiver":"`+testRecipient.String()+`"}`, testAuthHeader)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeposit(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	// Deposits require no authentication
	tm.expectCommit()
	w := performRequest(tm.router, http.MethodPost, "/api/v1/treasury/deposits",
		`{"from":"`+testRecipient.String()+`","amount":"100"}`, "")

	require.Equal(t, http.StatusCreated, w.Code)

	var resp rest.DepositResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "100", resp.Balance)

	// Non-numeric and non-positive amounts
	w = performRequest(tm.router, http.MethodPost, "/api/v1/treasury/deposits",
		`{"from":"`+testRecipient.String()+`","amount":"abc"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(tm.router, http.MethodPost, "/api/v1/treasury/deposits",
		`{"from":"`+testRecipient.String()+`","amount":"0"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWithdrawFunds(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	// Empty treasury
	w := performRequest(tm.router, http.MethodPost, "/api/v1/treasury/withdrawals", "", testAuthHeader)
	assert.Equal(t, http.StatusConflict, w.Code)

	tm.expectCommit()
	w = performRequest(tm.router, http.MethodPost, "/api/v1/treasury/deposits",
		`{"from":"`+testRecipient.String()+`","amount":"250"}`, "")
	require.Equal(t, http.StatusCreated, w.Code)

	tm.expectCommit()
	w = performRequest(tm.router, http.MethodPost, "/api/v1/treasury/withdrawals", "", testAuthHeader)
	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.WithdrawalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, testOwner.String(), resp.To)
	assert.Equal(t, "250", resp.Amount)
}

func TestWithdrawERC20_NotConfigured(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	w := performRequest(tm.router, http.MethodPost, "/api/v1/treasury/erc20-withdrawals",
		`{"token_address":"`+testRecipient.String()+`","to":"`+testRecipient.String()+`"}`, testAuthHeader)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "no token client configured")
}

func TestWithdrawERC20(t *testing.T) {
	ctrl := gomock.NewController(t)
	token := mocks.NewMockTokenContract(ctrl)

	tm := setupTestAPI(t, func(addr common.Address) ledger.TokenContract {
		assert.Equal(t, common.HexToAddress("0x5555555555555555555555555555555555555555"), addr)
		return token
	})
	defer tm.ctrl.Finish()
	defer ctrl.Finish()

	token.
		EXPECT().
		BalanceOf(gomock.Any(), gomock.Any()).
		Return(big.NewInt(500), nil)
	token.
		EXPECT().
		Transfer(gomock.Any(), testRecipient, big.NewInt(500)).
		Return(true, nil)
	tm.expectCommit()

	w := performRequest(tm.router, http.MethodPost, "/api/v1/treasury/erc20-withdrawals",
		`{"token_address":"0x5555555555555555555555555555555555555555","to":"`+testRecipient.String()+`"}`,
		testAuthHeader)

	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.WithdrawalResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "500", resp.Amount)
}

func TestOwnershipEndpoints(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	// Transfer to a malformed address
	w := performRequest(tm.router, http.MethodPut, "/api/v1/collection/owner",
		`{"new_owner":"nope"}`, testAuthHeader)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	tm.expectCommit()
	w = performRequest(tm.router, http.MethodPut, "/api/v1/collection/owner",
		`{"new_owner":"`+testRecipient.String()+`"}`, testAuthHeader)
	assert.Equal(t, http.StatusOK, w.Code)

	// API key callers act as the current owner, so the renounce succeeds
	tm.expectCommit()
	w = performRequest(tm.router, http.MethodDelete, "/api/v1/collection/owner", "", testAuthHeader)
	assert.Equal(t, http.StatusOK, w.Code)

	// With the authority renounced every gated operation is forbidden
	w = performRequest(tm.router, http.MethodPost, "/api/v1/tokens/uri",
		`{"to":"`+testRecipient.String()+`","uri":"ipfs://meta"}`, testAuthHeader)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListChanges(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	tokenID := uint64(0)
	tm.store.
		EXPECT().
		ListJournal(gomock.Any(), int64(0), 50).
		Return([]schema.ChangesJournal{
			{
				Cursor:    1,
				EventID:   "01JF0000000000000000000001",
				EventType: string(domain.EventTypeTokenMinted),
				TokenID:   &tokenID,
				Actor:     testOwner.String(),
				Meta:      []byte(`{"uri":"ipfs://meta"}`),
			},
		}, nil)

	w := performRequest(tm.router, http.MethodGet, "/api/v1/changes", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.ListChangesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Changes, 1)
	assert.Equal(t, "01JF0000000000000000000001", resp.Changes[0].EventID)
	assert.Equal(t, int64(1), resp.NextCursor)

	// Malformed anchor
	w = performRequest(tm.router, http.MethodGet, "/api/v1/changes?anchor=-1", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateWebhookClient(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	var created *schema.WebhookClient
	tm.store.
		EXPECT().
		CreateWebhookClient(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, client *schema.WebhookClient) error {
			created = client
			return nil
		})

	w := performRequest(tm.router, http.MethodPost, "/api/v1/webhooks/clients",
		`{"url":"https://example.com/hooks","event_types":["token.minted","*"]}`, testAuthHeader)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp rest.WebhookClientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ClientID)
	assert.Len(t, resp.Secret, 64)

	require.NotNil(t, created)
	assert.Equal(t, resp.ClientID, created.ID)
	assert.Equal(t, resp.Secret, created.Secret)
	assert.True(t, created.Active)
}

func TestCreateWebhookClient_Validation(t *testing.T) {
	tm := setupTestAPI(t, nil)
	defer tm.ctrl.Finish()

	// Unsupported scheme
	w := performRequest(tm.router, http.MethodPost, "/api/v1/webhooks/clients",
		`{"url":"ftp://example.com/hooks","event_types":["*"]}`, testAuthHeader)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown event type
	w = performRequest(tm.router, http.MethodPost, "/api/v1/webhooks/clients",
		`{"url":"https://example.com/hooks","event_types":["bogus.event"]}`, testAuthHeader)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Requires API key auth, not just any credentials
	w = performRequest(tm.router, http.MethodPost, "/api/v1/webhooks/clients",
		`{"url":"https://example.com/hooks","event_types":["*"]}`, "bearer some-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
