package ledger

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ff-collection/internal/domain"
)

// OwnershipRegistry is the external collaborator that tracks which account
// holds which token id. The ledger only ever mints into it and queries it;
// transfers and burns are the registry's own concern.
//
//go:generate mockgen -source=registry.go -destination=../mocks/registry.go -package=mocks -mock_names=OwnershipRegistry=MockOwnershipRegistry
type OwnershipRegistry interface {
	// MintTo assigns a freshly created token id to the recipient
	MintTo(to common.Address, id uint64) error
	// Revoke removes an assignment whose mint never committed. The ledger
	// calls it to unwind MintTo when the durable record fails.
	Revoke(id uint64)
	// OwnerOf returns the current holder of a token id
	OwnerOf(id uint64) (common.Address, error)
	// Exists reports whether the registry has ever seen the token id
	Exists(id uint64) bool
}

// MemoryRegistry is an in-process ownership registry
type MemoryRegistry struct {
	mu     sync.RWMutex
	owners map[uint64]common.Address
}

// NewMemoryRegistry creates an empty in-process ownership registry
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{owners: make(map[uint64]common.Address)}
}

// MintTo assigns a token id to the recipient
func (r *MemoryRegistry) MintTo(to common.Address, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.owners[id]; ok {
		return domain.ErrTokenAlreadyExists
	}
	if domain.IsZeroAddress(to) {
		return domain.ErrZeroAddress
	}
	r.owners[id] = to
	return nil
}

// Revoke removes an uncommitted assignment
func (r *MemoryRegistry) Revoke(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.owners, id)
}

// OwnerOf returns the holder of a token id
func (r *MemoryRegistry) OwnerOf(id uint64) (common.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.owners[id]
	if !ok {
		return common.Address{}, domain.ErrTokenDoesNotExist
	}
	return owner, nil
}

// Exists reports whether a token id has been minted into the registry
func (r *MemoryRegistry) Exists(id uint64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.owners[id]
	return ok
}

// Restore seeds the registry with previously recorded holders
func (r *MemoryRegistry) Restore(owners map[uint64]common.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, owner := range owners {
		r.owners[id] = owner
	}
}
