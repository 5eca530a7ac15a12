package domain

import "errors"

var (
	// ErrNotAuthorized is returned when the caller is not the collection owner
	ErrNotAuthorized = errors.New("caller is not the collection owner")

	// ErrReentrantCall is returned when a mutating call is detected while another is in progress
	ErrReentrantCall = errors.New("reentrant call")

	// ErrZeroAddress is returned when an address argument is the zero address
	ErrZeroAddress = errors.New("zero address")

	// ErrEmptyName is returned when the token name is empty
	ErrEmptyName = errors.New("empty token name")

	// ErrEmptyImage is returned when the token image URI is empty
	ErrEmptyImage = errors.New("empty token image")

	// ErrNameTooLong is returned when the token name exceeds MaxNameLength
	ErrNameTooLong = errors.New("token name too long")

	// ErrDescriptionTooLong is returned when the token description exceeds MaxDescriptionLength
	ErrDescriptionTooLong = errors.New("token description too long")

	// ErrImageURITooLong is returned when the token image URI exceeds MaxImageURILength
	ErrImageURITooLong = errors.New("token image URI too long")

	// ErrEmptyTokenURI is returned when minting with an empty pre-built URI
	ErrEmptyTokenURI = errors.New("empty token URI")

	// ErrEmptyURI is returned when updating a URI to an empty value
	ErrEmptyURI = errors.New("empty URI")

	// ErrEmptyMetadata is returned when constructing a collection without a metadata URI
	ErrEmptyMetadata = errors.New("empty collection metadata URI")

	// ErrTokenDoesNotExist is returned when referencing a token id that was never minted
	ErrTokenDoesNotExist = errors.New("token does not exist")

	// ErrTokenAlreadyExists is returned by an ownership registry when minting a duplicate id
	ErrTokenAlreadyExists = errors.New("token already exists")

	// ErrRoyaltyTooHigh is returned when a royalty rate exceeds MaxBasisPoints
	ErrRoyaltyTooHigh = errors.New("royalty basis points exceed maximum")

	// ErrSameRoyaltyReceiver is returned when setting the royalty receiver to its current value
	ErrSameRoyaltyReceiver = errors.New("royalty receiver unchanged")

	// ErrSameRoyaltyBasisPoints is returned when setting the royalty rate to its current value
	ErrSameRoyaltyBasisPoints = errors.New("royalty basis points unchanged")

	// ErrNoFundsToWithdraw is returned when withdrawing from an empty treasury
	ErrNoFundsToWithdraw = errors.New("no funds to withdraw")

	// ErrNoTokensToWithdraw is returned when the collection holds no balance of the given token
	ErrNoTokensToWithdraw = errors.New("no tokens to withdraw")

	// ErrInvalidAmount is returned when a deposit amount is nil, zero or negative
	ErrInvalidAmount = errors.New("invalid amount")
)
