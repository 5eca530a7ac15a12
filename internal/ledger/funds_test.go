package ledger_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-collection/internal/domain"
	"github.com/feral-file/ff-collection/internal/mocks"
)

func TestCollection_Deposit(t *testing.T) {
	mocks := setupTestCollection(t)
	defer tearDownTestCollection(mocks)

	ctx := context.Background()

	testCases := []struct {
		name        string
		amount      *big.Int
		expectedErr error
	}{
		{name: "nil amount", amount: nil, expectedErr: domain.ErrInvalidAmount},
		{name: "zero amount", amount: big.NewInt(0), expectedErr: domain.ErrInvalidAmount},
		{name: "negative amount", amount: big.NewInt(-1), expectedErr: domain.ErrInvalidAmount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := mocks.collection.Deposit(ctx, testRecipient, tc.amount)
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Equal(t, int64(0), mocks.collection.TreasuryBalance().Int64())
		})
	}

	// Anyone may deposit, not just the owner
	var recorded domain.CollectionEvent
	mocks.recorder.
		EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event domain.CollectionEvent) error {
			recorded = event
			return nil
		})
	mocks.sink.EXPECT().Emit(gomock.Any())

	err := mocks.collection.Deposit(ctx, testOutsider, big.NewInt(100))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), mocks.collection.TreasuryBalance())
	assert.Equal(t, domain.EventTypeFundsDeposited, recorded.Type)
	assert.Equal(t, testOutsider, recorded.Actor)
	assert.Equal(t, "100", recorded.Payload["amount"])
	assert.Equal(t, "100", recorded.Payload["balance"])

	// Deposits accrue
	mocks.expectCommit()
	err = mocks.collection.Deposit(ctx, testRecipient, big.NewInt(50))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(150), mocks.collection.TreasuryBalance())
}

func TestCollection_TreasuryBalance_ReturnsCopy(t *testing.T) {
	mocks := setupTestCollection(t)
	defer tearDownTestCollection(mocks)

	mocks.expectCommit()
	err := mocks.collection.Deposit(context.Background(), testRecipient, big.NewInt(100))
	require.NoError(t, err)

	balance := mocks.collection.TreasuryBalance()
	balance.SetInt64(0)
	assert.Equal(t, big.NewInt(100), mocks.collection.TreasuryBalance())
}

func TestCollection_WithdrawFunds(t *testing.T) {
	mocks := setupTestCollection(t)
	defer tearDownTestCollection(mocks)

	ctx := context.Background()
	transferor := newMockValueTransferor(mocks.ctrl)

	// Empty treasury
	_, err := mocks.collection.WithdrawFunds(ctx, testOwner, transferor)
	assert.ErrorIs(t, err, domain.ErrNoFundsToWithdraw)

	mocks.expectCommit()
	err = mocks.collection.Deposit(ctx, testRecipient, big.NewInt(250))
	require.NoError(t, err)

	// Non-owner caller
	_, err = mocks.collection.WithdrawFunds(ctx, testOutsider, transferor)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)

	// Successful withdrawal sends the full balance to the owner
	mocks.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
	mocks.sink.EXPECT().Emit(gomock.Any())
	transferor.
		EXPECT().
		Transfer(gomock.Any(), testOwner, big.NewInt(250)).
		Return(nil)

	amount, err := mocks.collection.WithdrawFunds(ctx, testOwner, transferor)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(250), amount)
	assert.Equal(t, int64(0), mocks.collection.TreasuryBalance().Int64())

	// The treasury is now empty again
	_, err = mocks.collection.WithdrawFunds(ctx, testOwner, transferor)
	assert.ErrorIs(t, err, domain.ErrNoFundsToWithdraw)
}

func TestCollection_WithdrawFunds_TransferFailure(t *testing.T) {
	mocks := setupTestCollection(t)
	defer tearDownTestCollection(mocks)

	ctx := context.Background()
	transferor := newMockValueTransferor(mocks.ctrl)

	mocks.expectCommit()
	err := mocks.collection.Deposit(ctx, testRecipient, big.NewInt(250))
	require.NoError(t, err)

	// The withdrawal record succeeds, the external transfer fails, and a
	// compensating deposit record restores the balance. Nothing is emitted.
	recorded := make([]domain.CollectionEvent, 0, 2)
	mocks.recorder.
		EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event domain.CollectionEvent) error {
			recorded = append(recorded, event)
			return nil
		}).
		Times(2)
	transferor.
		EXPECT().
		Transfer(gomock.Any(), testOwner, big.NewInt(250)).
		Return(assert.AnError)

	_, err = mocks.collection.WithdrawFunds(ctx, testOwner, transferor)

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, big.NewInt(250), mocks.collection.TreasuryBalance())

	require.Len(t, recorded, 2)
	assert.Equal(t, domain.EventTypeFundsWithdrawn, recorded[0].Type)
	assert.Equal(t, domain.EventTypeFundsDeposited, recorded[1].Type)
	assert.Equal(t, "250", recorded[1].Payload["balance"])
}

func TestCollection_WithdrawERC20(t *testing.T) {
	mocks := setupTestCollection(t)
	defer tearDownTestCollection(mocks)

	ctx := context.Background()
	token := newMockTokenContract(mocks.ctrl)

	// Zero recipient
	_, err := mocks.collection.WithdrawERC20(ctx, testOwner, token, common.Address{})
	assert.ErrorIs(t, err, domain.ErrZeroAddress)

	// Non-owner caller
	_, err = mocks.collection.WithdrawERC20(ctx, testOutsider, token, testRecipient)
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)

	// The balance is queried for the collection's own account
	token.
		EXPECT().
		BalanceOf(gomock.Any(), testCollectionAddr).
		Return(big.NewInt(0), nil)
	_, err = mocks.collection.WithdrawERC20(ctx, testOwner, token, testRecipient)
	assert.ErrorIs(t, err, domain.ErrNoTokensToWithdraw)

	// Successful sweep transfers the entire balance
	token.
		EXPECT().
		BalanceOf(gomock.Any(), testCollectionAddr).
		Return(big.NewInt(500), nil)
	token.
		EXPECT().
		Transfer(gomock.Any(), testRecipient, big.NewInt(500)).
		Return(true, nil)
	mocks.recorder.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
	mocks.sink.EXPECT().Emit(gomock.Any())

	amount, err := mocks.collection.WithdrawERC20(ctx, testOwner, token, testRecipient)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(500), amount)
}

func TestCollection_WithdrawERC20_TransferFailures(t *testing.T) {
	mocks := setupTestCollection(t)
	defer tearDownTestCollection(mocks)

	ctx := context.Background()
	token := newMockTokenContract(mocks.ctrl)

	// Balance query error
	token.
		EXPECT().
		BalanceOf(gomock.Any(), testCollectionAddr).
		Return(nil, assert.AnError)
	_, err := mocks.collection.WithdrawERC20(ctx, testOwner, token, testRecipient)
	assert.ErrorIs(t, err, assert.AnError)

	// Transfer error
	token.
		EXPECT().
		BalanceOf(gomock.Any(), testCollectionAddr).
		Return(big.NewInt(500), nil)
	token.
		EXPECT().
		Transfer(gomock.Any(), testRecipient, big.NewInt(500)).
		Return(false, assert.AnError)
	_, err = mocks.collection.WithdrawERC20(ctx, testOwner, token, testRecipient)
	assert.ErrorIs(t, err, assert.AnError)

	// Transfer reporting false without an error
	token.
		EXPECT().
		BalanceOf(gomock.Any(), testCollectionAddr).
		Return(big.NewInt(500), nil)
	token.
		EXPECT().
		Transfer(gomock.Any(), testRecipient, big.NewInt(500)).
		Return(false, nil)
	_, err = mocks.collection.WithdrawERC20(ctx, testOwner, token, testRecipient)
	assert.ErrorIs(t, err, domain.ErrNoTokensToWithdraw)
}

// The test helpers below exist because the setup struct shadows the mocks
// package name inside test bodies.
func newMockValueTransferor(ctrl *gomock.Controller) *mocks.MockValueTransferor {
	return mocks.NewMockValueTransferor(ctrl)
}

func newMockTokenContract(ctrl *gomock.Controller) *mocks.MockTokenContract {
	return mocks.NewMockTokenContract(ctrl)
}
