// Package ledger implements the collection's state: the mint counter, the
// per-token URI records, the royalty policy, the collection metadata URI and
// the treasury balance. All state is owned by a single Collection instance;
// nothing here is process-global.
package ledger

import (
	"context"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/oklog/ulid/v2"

	"github.com/feral-file/ff-collection/internal/adapter"
	"github.com/feral-file/ff-collection/internal/domain"
	"github.com/feral-file/ff-collection/internal/metadata"
)

// Recorder persists a prospective state change before the ledger commits it
// in memory. A Recorder failure aborts the operation with no state change,
// which is what gives every mutating entry point its full-revert semantics.
//
//go:generate mockgen -source=collection.go -destination=../mocks/recorder.go -package=mocks -mock_names=Recorder=MockRecorder
type Recorder interface {
	Record(ctx context.Context, event domain.CollectionEvent) error
}

// EventSink receives events after the corresponding change has been
// committed. Emission is post-commit and must not feed back into the ledger.
type EventSink interface {
	Emit(event domain.CollectionEvent)
}

// Config holds the constructor parameters of a collection
type Config struct {
	// Name is the collection name (ERC-721 name)
	Name string
	// Symbol is the collection symbol (ERC-721 symbol)
	Symbol string
	// CollectionURI is the initial collection-level metadata URI (non-empty)
	CollectionURI string
	// RoyaltyBasisPoints is the initial royalty rate (<= 10000)
	RoyaltyBasisPoints domain.BasisPoints
	// Owner is the controlling authority (non-zero). It is also the initial
	// royalty receiver.
	Owner common.Address
	// Address is the collection's own account identity, used when querying
	// external asset balances held on its behalf
	Address common.Address
}

// Collection is the single-writer ledger behind the service. Mutating entry
// points check the caller against the owner, hold the reentrancy guard for
// the duration of the call, persist through the Recorder and only then touch
// in-memory state.
type Collection struct {
	cfg      Config
	registry OwnershipRegistry
	recorder Recorder
	sink     EventSink
	clock    adapter.Clock

	entered atomic.Bool

	owner           common.Address
	collectionURI   string
	royaltyReceiver common.Address
	royaltyBPS      domain.BasisPoints
	counter         uint64
	tokenURIs       map[uint64]string
	treasury        *big.Int
}

// New creates a collection ledger. The owner becomes the initial royalty
// receiver, matching the constructor behavior of the contract this models.
func New(cfg Config, registry OwnershipRegistry, recorder Recorder, sink EventSink, clock adapter.Clock) (*Collection, error) {
	if cfg.CollectionURI == "" {
		return nil, domain.ErrEmptyMetadata
	}
	if !cfg.RoyaltyBasisPoints.Valid() {
		return nil, domain.ErrRoyaltyTooHigh
	}
	if domain.IsZeroAddress(cfg.Owner) {
		return nil, domain.ErrZeroAddress
	}
	if clock == nil {
		clock = adapter.NewClock()
	}

	return &Collection{
		cfg:             cfg,
		registry:        registry,
		recorder:        recorder,
		sink:            sink,
		clock:           clock,
		owner:           cfg.Owner,
		collectionURI:   cfg.CollectionURI,
		royaltyReceiver: cfg.Owner,
		royaltyBPS:      cfg.RoyaltyBasisPoints,
		tokenURIs:       make(map[uint64]string),
		treasury:        new(big.Int),
	}, nil
}

// enter acquires the reentrancy guard. Release must be deferred immediately
// so the guard cannot be left held when an operation fails partway.
func (c *Collection) enter() error {
	if !c.entered.CompareAndSwap(false, true) {
		return domain.ErrReentrantCall
	}
	return nil
}

func (c *Collection) exit() {
	c.entered.Store(false)
}

func (c *Collection) authorize(caller common.Address) error {
	if caller != c.owner {
		return domain.ErrNotAuthorized
	}
	return nil
}

// record persists the change, then hands the committed event to the sink
func (c *Collection) record(ctx context.Context, event domain.CollectionEvent) error {
	if c.recorder == nil {
		return nil
	}
	return c.recorder.Record(ctx, event)
}

func (c *Collection) emit(event domain.CollectionEvent) {
	if c.sink != nil {
		c.sink.Emit(event)
	}
}

func (c *Collection) newEvent(t domain.EventType, actor common.Address, tokenID *uint64, payload map[string]any) domain.CollectionEvent {
	return domain.CollectionEvent{
		EventID:   ulid.Make().String(),
		Type:      t,
		TokenID:   tokenID,
		Actor:     actor,
		Payload:   payload,
		Timestamp: c.clock.Now(),
	}
}

// MintWithFields mints a new token to the recipient, building its URI from
// the raw metadata fields. Returns the assigned id.
func (c *Collection) MintWithFields(ctx context.Context, caller, to common.Address, name, description, image string) (uint64, error) {
	if err := c.enter(); err != nil {
		return 0, err
	}
	defer c.exit()

	if err := c.authorize(caller); err != nil {
		return 0, err
	}
	if domain.IsZeroAddress(to) {
		return 0, domain.ErrZeroAddress
	}
	if err := metadata.ValidateFields(name, description, image); err != nil {
		return 0, err
	}

	uri, err := metadata.BuildTokenURI(name, description, image)
	if err != nil {
		return 0, err
	}

	id := c.counter
	payload := domain.MintedEventPayload(to, name, description, image)
	payload["uri"] = uri
	event := c.newEvent(domain.EventTypeTokenMinted, caller, &id, payload)

	// Registry first: its failure reverts nothing durable, and a record
	// failure afterwards unwinds the assignment.
	if err := c.registry.MintTo(to, id); err != nil {
		return 0, err
	}
	if err := c.record(ctx, event); err != nil {
		c.registry.Revoke(id)
		return 0, err
	}

	c.tokenURIs[id] = uri
	c.counter++
	c.emit(event)
	return id, nil
}

// MintWithURI mints a new token recording the supplied URI verbatim. The URI
// content is not validated beyond being non-empty.
func (c *Collection) MintWithURI(ctx context.Context, caller, to common.Address, uri string) (uint64, error) {
	if err := c.enter(); err != nil {
		return 0, err
	}
	defer c.exit()

	if err := c.authorize(caller); err != nil {
		return 0, err
	}
	if domain.IsZeroAddress(to) {
		return 0, domain.ErrZeroAddress
	}
	if uri == "" {
		return 0, domain.ErrEmptyTokenURI
	}

	id := c.counter
	event := c.newEvent(domain.EventTypeTokenMinted, caller, &id, domain.MintedURIEventPayload(to, uri))

	if err := c.registry.MintTo(to, id); err != nil {
		return 0, err
	}
	if err := c.record(ctx, event); err != nil {
		c.registry.Revoke(id)
		return 0, err
	}

	c.tokenURIs[id] = uri
	c.counter++
	c.emit(event)
	return id, nil
}

// SetTokenURI replaces the recorded URI of an existing token
func (c *Collection) SetTokenURI(ctx context.Context, caller common.Address, id uint64, uri string) error {
	if err := c.enter(); err != nil {
		return err
	}
	defer c.exit()

	if err := c.authorize(caller); err != nil {
		return err
	}
	if !c.exists(id) {
		return domain.ErrTokenDoesNotExist
	}
	if uri == "" {
		return domain.ErrEmptyURI
	}

	old := c.tokenURIs[id]
	payload := domain.ChangedEventPayload(old, uri)
	event := c.newEvent(domain.EventTypeTokenURIUpdated, caller, &id, payload)

	if err := c.record(ctx, event); err != nil {
		return err
	}

	c.tokenURIs[id] = uri
	c.emit(event)
	return nil
}

// SetRoyaltyReceiver replaces the collection-wide royalty receiver
func (c *Collection) SetRoyaltyReceiver(ctx context.Context, caller, receiver common.Address) error {
	if err := c.enter(); err != nil {
		return err
	}
	defer c.exit()

	if err := c.authorize(caller); err != nil {
		return err
	}
	if domain.IsZeroAddress(receiver) {
		return domain.ErrZeroAddress
	}
	if receiver == c.royaltyReceiver {
		return domain.ErrSameRoyaltyReceiver
	}

	event := c.newEvent(domain.EventTypeRoyaltyReceiverSet, caller, nil,
		domain.ChangedEventPayload(c.royaltyReceiver.String(), receiver.String()))

	if err := c.record(ctx, event); err != nil {
		return err
	}

	c.royaltyReceiver = receiver
	c.emit(event)
	return nil
}

// SetRoyaltyBasisPoints replaces the collection-wide royalty rate
func (c *Collection) SetRoyaltyBasisPoints(ctx context.Context, caller common.Address, bps domain.BasisPoints) error {
	if err := c.enter(); err != nil {
		return err
	}
	defer c.exit()

	if err := c.authorize(caller); err != nil {
		return err
	}
	if !bps.Valid() {
		return domain.ErrRoyaltyTooHigh
	}
	if bps == c.royaltyBPS {
		return domain.ErrSameRoyaltyBasisPoints
	}

	event := c.newEvent(domain.EventTypeRoyaltyRateSet, caller, nil,
		domain.ChangedEventPayload(uint16(c.royaltyBPS), uint16(bps)))

	if err := c.record(ctx, event); err != nil {
		return err
	}

	c.royaltyBPS = bps
	c.emit(event)
	return nil
}

// SetCollectionURI replaces the collection-level metadata URI
func (c *Collection) SetCollectionURI(ctx context.Context, caller common.Address, uri string) error {
	if err := c.enter(); err != nil {
		return err
	}
	defer c.exit()

	if err := c.authorize(caller); err != nil {
		return err
	}
	if uri == "" {
		return domain.ErrEmptyURI
	}

	event := c.newEvent(domain.EventTypeCollectionURIUpdated, caller, nil,
		domain.ChangedEventPayload(c.collectionURI, uri))

	if err := c.record(ctx, event); err != nil {
		return err
	}

	c.collectionURI = uri
	c.emit(event)
	return nil
}

// TransferOwnership hands the controlling authority to a new address
func (c *Collection) TransferOwnership(ctx context.Context, caller, newOwner common.Address) error {
	if err := c.enter(); err != nil {
		return err
	}
	defer c.exit()

	if err := c.authorize(caller); err != nil {
		return err
	}
	if domain.IsZeroAddress(newOwner) {
		return domain.ErrZeroAddress
	}

	event := c.newEvent(domain.EventTypeOwnershipTransferred, caller, nil,
		domain.ChangedEventPayload(c.owner.String(), newOwner.String()))

	if err := c.record(ctx, event); err != nil {
		return err
	}

	c.owner = newOwner
	c.emit(event)
	return nil
}

// RenounceOwnership sets the authority to the zero address, permanently
// disabling every authority-gated operation
func (c *Collection) RenounceOwnership(ctx context.Context, caller common.Address) error {
	if err := c.enter(); err != nil {
		return err
	}
	defer c.exit()

	if err := c.authorize(caller); err != nil {
		return err
	}

	event := c.newEvent(domain.EventTypeOwnershipTransferred, caller, nil,
		domain.ChangedEventPayload(c.owner.String(), common.Address{}.String()))

	if err := c.record(ctx, event); err != nil {
		return err
	}

	c.owner = common.Address{}
	c.emit(event)
	return nil
}

// exists reports whether a token id was ever successfully minted. Existence
// is defined solely by the mint counter, independent of the current holder.
func (c *Collection) exists(id uint64) bool {
	return id < c.counter
}

// TokenURI returns the recorded URI for an existing token id
func (c *Collection) TokenURI(id uint64) (string, error) {
	if !c.exists(id) {
		return "", domain.ErrTokenDoesNotExist
	}
	return c.tokenURIs[id], nil
}

// TotalMinted returns the mint counter: the number of tokens ever minted
func (c *Collection) TotalMinted() uint64 {
	return c.counter
}

// RoyaltyInfo returns the royalty receiver and floor(salePrice * bps / 10000).
// The token id is accepted unvalidated, as the royalty convention requires.
func (c *Collection) RoyaltyInfo(_ uint64, salePrice *big.Int) (common.Address, *big.Int) {
	return c.royaltyReceiver, c.royaltyBPS.RoyaltyAmount(salePrice)
}

// RoyaltyPolicy returns the current royalty configuration
func (c *Collection) RoyaltyPolicy() domain.RoyaltyPolicy {
	return domain.RoyaltyPolicy{Receiver: c.royaltyReceiver, BasisPoints: c.royaltyBPS}
}

// CollectionURI returns the collection-level metadata URI
func (c *Collection) CollectionURI() string {
	return c.collectionURI
}

// Owner returns the controlling authority address
func (c *Collection) Owner() common.Address {
	return c.owner
}

// Name returns the collection name
func (c *Collection) Name() string {
	return c.cfg.Name
}

// Symbol returns the collection symbol
func (c *Collection) Symbol() string {
	return c.cfg.Symbol
}

// Address returns the collection's own account identity
func (c *Collection) Address() common.Address {
	return c.cfg.Address
}

// Registry returns the ownership registry collaborator
func (c *Collection) Registry() OwnershipRegistry {
	return c.registry
}

// RestoredState is the durable state handed back to a collection at startup
type RestoredState struct {
	Owner           common.Address
	CollectionURI   string
	RoyaltyReceiver common.Address
	RoyaltyBPS      domain.BasisPoints
	Counter         uint64
	Tokens          []domain.Token
	Treasury        *big.Int
}

// Restore replaces the in-memory state with previously recorded state. It is
// meant to be called once, before the collection starts serving operations,
// and does not invoke the recorder.
func (c *Collection) Restore(state RestoredState) error {
	if err := c.enter(); err != nil {
		return err
	}
	defer c.exit()

	if state.CollectionURI != "" {
		c.collectionURI = state.CollectionURI
	}
	if !domain.IsZeroAddress(state.Owner) {
		c.owner = state.Owner
	}
	if !domain.IsZeroAddress(state.RoyaltyReceiver) {
		c.royaltyReceiver = state.RoyaltyReceiver
	}
	c.royaltyBPS = state.RoyaltyBPS
	c.counter = state.Counter
	for _, t := range state.Tokens {
		c.tokenURIs[t.ID] = t.URI
	}
	if state.Treasury != nil {
		c.treasury = new(big.Int).Set(state.Treasury)
	}
	return nil
}
