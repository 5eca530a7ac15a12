// Package service binds the collection ledger to its collaborators: the
// PostgreSQL store (durable journal and rows), the ownership registry and
// the event dispatcher. One mutating API call maps to one ledger operation;
// the service serializes them so concurrent API calls queue instead of
// tripping the ledger's reentrancy guard, which stays reserved for genuine
// reentrancy through collaborators.
package service

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-collection/internal/adapter"
	"github.com/feral-file/ff-collection/internal/domain"
	"github.com/feral-file/ff-collection/internal/ledger"
	"github.com/feral-file/ff-collection/internal/store"
	"github.com/feral-file/ff-collection/internal/store/schema"
)

// Config holds the collection's constructor parameters
type Config struct {
	Name               string
	Symbol             string
	CollectionURI      string
	RoyaltyBasisPoints domain.BasisPoints
	Owner              common.Address
	Address            common.Address
}

// Service is the single entry point the API layer talks to
type Service struct {
	mu         sync.Mutex
	collection *ledger.Collection
	registry   *ledger.MemoryRegistry
	store      store.Store
	transferor ledger.ValueTransferor
}

// New builds the service: it initializes (or re-reads) the durable settings
// row, restores the ledger and registry from the recorded state, and wires
// the dispatcher as the ledger's event sink.
func New(ctx context.Context, cfg Config, st store.Store, sink ledger.EventSink, vt ledger.ValueTransferor, clock adapter.Clock) (*Service, error) {
	registry := ledger.NewMemoryRegistry()

	collection, err := ledger.New(ledger.Config{
		Name:               cfg.Name,
		Symbol:             cfg.Symbol,
		CollectionURI:      cfg.CollectionURI,
		RoyaltyBasisPoints: cfg.RoyaltyBasisPoints,
		Owner:              cfg.Owner,
		Address:            cfg.Address,
	}, registry, st, sink, clock)
	if err != nil {
		return nil, err
	}

	settings, err := st.InitSettings(ctx, schema.CollectionSettings{
		Name:               cfg.Name,
		Symbol:             cfg.Symbol,
		CollectionURI:      cfg.CollectionURI,
		OwnerAddress:       cfg.Owner.String(),
		RoyaltyReceiver:    cfg.Owner.String(),
		RoyaltyBasisPoints: uint16(cfg.RoyaltyBasisPoints),
	})
	if err != nil {
		return nil, err
	}

	if err := restore(ctx, collection, registry, st, settings); err != nil {
		return nil, err
	}

	if vt == nil {
		vt = ledger.LogTransferor{}
	}

	return &Service{
		collection: collection,
		registry:   registry,
		store:      st,
		transferor: vt,
	}, nil
}

// restore rebuilds in-memory state from the recorded settings and token rows
func restore(ctx context.Context, collection *ledger.Collection, registry *ledger.MemoryRegistry, st store.Store, settings *schema.CollectionSettings) error {
	if settings == nil {
		return nil
	}

	rows, err := st.ListAllTokens(ctx)
	if err != nil {
		return err
	}

	tokens := make([]domain.Token, 0, len(rows))
	holders := make(map[uint64]common.Address, len(rows))
	for _, row := range rows {
		tokens = append(tokens, domain.Token{ID: row.TokenID, URI: row.URI})
		holders[row.TokenID] = common.HexToAddress(row.Recipient)
	}
	registry.Restore(holders)

	treasury, ok := new(big.Int).SetString(settings.TreasuryBalance, 10)
	if !ok {
		return fmt.Errorf("invalid recorded treasury balance: %q", settings.TreasuryBalance)
	}

	return collection.Restore(ledger.RestoredState{
		Owner:           common.HexToAddress(settings.OwnerAddress),
		CollectionURI:   settings.CollectionURI,
		RoyaltyReceiver: common.HexToAddress(settings.RoyaltyReceiver),
		RoyaltyBPS:      domain.BasisPoints(settings.RoyaltyBasisPoints),
		Counter:         settings.MintCounter,
		Tokens:          tokens,
		Treasury:        treasury,
	})
}

// Collection exposes the underlying ledger for read-only access
func (s *Service) Collection() *ledger.Collection {
	return s.collection
}

// Store exposes the store for read-only access
func (s *Service) Store() store.Store {
	return s.store
}

// MintWithFields mints a token built from raw metadata fields
func (s *Service) MintWithFields(ctx context.Context, caller, to common.Address, name, description, image string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.MintWithFields(ctx, caller, to, name, description, image)
}

// MintWithURI mints a token with a pre-built URI
func (s *Service) MintWithURI(ctx context.Context, caller, to common.Address, uri string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.MintWithURI(ctx, caller, to, uri)
}

// SetTokenURI replaces an existing token's URI
func (s *Service) SetTokenURI(ctx context.Context, caller common.Address, id uint64, uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.SetTokenURI(ctx, caller, id, uri)
}

// SetRoyaltyReceiver replaces the royalty receiver
func (s *Service) SetRoyaltyReceiver(ctx context.Context, caller, receiver common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.SetRoyaltyReceiver(ctx, caller, receiver)
}

// SetRoyaltyBasisPoints replaces the royalty rate
func (s *Service) SetRoyaltyBasisPoints(ctx context.Context, caller common.Address, bps domain.BasisPoints) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.SetRoyaltyBasisPoints(ctx, caller, bps)
}

// SetCollectionURI replaces the collection metadata URI
func (s *Service) SetCollectionURI(ctx context.Context, caller common.Address, uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.SetCollectionURI(ctx, caller, uri)
}

// TransferOwnership hands the authority to a new address
func (s *Service) TransferOwnership(ctx context.Context, caller, newOwner common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.TransferOwnership(ctx, caller, newOwner)
}

// RenounceOwnership sets the authority to the zero address
func (s *Service) RenounceOwnership(ctx context.Context, caller common.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.RenounceOwnership(ctx, caller)
}

// Deposit accrues treasury funds
func (s *Service) Deposit(ctx context.Context, from common.Address, amount *big.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.Deposit(ctx, from, amount)
}

// WithdrawFunds sends the treasury balance to the owner
func (s *Service) WithdrawFunds(ctx context.Context, caller common.Address) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.WithdrawFunds(ctx, caller, s.transferor)
}

// WithdrawERC20 sweeps an external token balance to the recipient
func (s *Service) WithdrawERC20(ctx context.Context, caller common.Address, token ledger.TokenContract, to common.Address) (*big.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection.WithdrawERC20(ctx, caller, token, to)
}

// OwnerOf returns the holder recorded in the ownership registry
func (s *Service) OwnerOf(id uint64) (common.Address, error) {
	return s.registry.OwnerOf(id)
}
