package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Metadata field limits, measured in bytes of the UTF-8 encoding
const (
	// MaxNameLength is the maximum length of a token name
	MaxNameLength = 256
	// MaxDescriptionLength is the maximum length of a token description
	MaxDescriptionLength = 4096
	// MaxImageURILength is the maximum length of a token image URI
	MaxImageURILength = 512
)

// MaxBasisPoints is the royalty rate denominator: 10000 basis points = 100%
const MaxBasisPoints = 10000

// BasisPoints represents a royalty rate in basis points
type BasisPoints uint16

// Valid checks that the rate does not exceed MaxBasisPoints
func (b BasisPoints) Valid() bool {
	return b <= MaxBasisPoints
}

// RoyaltyAmount computes floor(salePrice * b / 10000) without overflow.
// salePrice is treated as a non-negative integer; a nil price yields zero.
func (b BasisPoints) RoyaltyAmount(salePrice *big.Int) *big.Int {
	if salePrice == nil || salePrice.Sign() <= 0 {
		return new(big.Int)
	}
	amount := new(big.Int).Mul(salePrice, big.NewInt(int64(b)))
	return amount.Quo(amount, big.NewInt(MaxBasisPoints))
}

// IsZeroAddress checks if an address is the zero address
func IsZeroAddress(addr common.Address) bool {
	return addr == (common.Address{})
}

// NormalizeAddress normalizes a hex address string to EIP-55 checksum format
func NormalizeAddress(address string) string {
	if common.IsHexAddress(address) {
		return common.HexToAddress(address).String()
	}
	return address
}

// RoyaltyPolicy is the collection-wide royalty configuration, applied
// uniformly to every token; there is no per-token override.
type RoyaltyPolicy struct {
	Receiver    common.Address
	BasisPoints BasisPoints
}

// Token is a minted item: an id assigned by the mint counter plus the
// metadata URI recorded for it. Holder bookkeeping lives in the ownership
// registry, not here.
type Token struct {
	ID  uint64
	URI string
}
