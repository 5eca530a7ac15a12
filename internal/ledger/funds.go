package ledger

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ff-collection/internal/domain"
	"github.com/feral-file/ff-collection/internal/logger"
)

// ValueTransferor is the external collaborator that moves withdrawn treasury
// funds to the recipient. The call happens while the reentrancy guard is
// held, so an implementation that calls back into a mutating operation gets
// ErrReentrantCall rather than observing intermediate state.
//
//go:generate mockgen -source=funds.go -destination=../mocks/funds.go -package=mocks -mock_names=ValueTransferor=MockValueTransferor,TokenContract=MockTokenContract
type ValueTransferor interface {
	Transfer(ctx context.Context, to common.Address, amount *big.Int) error
}

// TokenContract is the minimal capability set of an external fungible asset:
// exactly balanceOf and transfer, nothing else. Callers supply a concrete
// implementation; no runtime type inspection happens here.
type TokenContract interface {
	BalanceOf(ctx context.Context, account common.Address) (*big.Int, error)
	Transfer(ctx context.Context, to common.Address, amount *big.Int) (bool, error)
}

// LogTransferor is a ValueTransferor for deployments where settlement happens
// out of band: it records the outbound transfer in the service log and
// reports success.
type LogTransferor struct{}

// Transfer logs the outbound transfer
func (LogTransferor) Transfer(ctx context.Context, to common.Address, amount *big.Int) error {
	logger.InfoCtx(ctx, "Treasury transfer",
		zap.String("to", to.String()),
		zap.String("amount", amount.String()),
	)
	return nil
}

// Deposit accrues funds into the treasury. Anyone may deposit; this is the
// payable-receive analog.
func (c *Collection) Deposit(ctx context.Context, from common.Address, amount *big.Int) error {
	if err := c.enter(); err != nil {
		return err
	}
	defer c.exit()

	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}

	newBalance := new(big.Int).Add(c.treasury, amount)
	event := c.newEvent(domain.EventTypeFundsDeposited, from, nil, map[string]any{
		"amount":  amount.String(),
		"balance": newBalance.String(),
	})

	if err := c.record(ctx, event); err != nil {
		return err
	}

	c.treasury = newBalance
	c.emit(event)
	return nil
}

// TreasuryBalance returns the current treasury balance
func (c *Collection) TreasuryBalance() *big.Int {
	return new(big.Int).Set(c.treasury)
}

// WithdrawFunds sends the entire treasury balance to the owner via the
// transferor. The balance is zeroed and the change recorded before the
// external call; if the transfer then fails, a compensating record restores
// the balance.
func (c *Collection) WithdrawFunds(ctx context.Context, caller common.Address, vt ValueTransferor) (*big.Int, error) {
	if err := c.enter(); err != nil {
		return nil, err
	}
	defer c.exit()

	if err := c.authorize(caller); err != nil {
		return nil, err
	}
	if c.treasury.Sign() == 0 {
		return nil, domain.ErrNoFundsToWithdraw
	}

	amount := new(big.Int).Set(c.treasury)
	event := c.newEvent(domain.EventTypeFundsWithdrawn, caller, nil, map[string]any{
		"to":     c.owner.String(),
		"amount": amount.String(),
	})

	if err := c.record(ctx, event); err != nil {
		return nil, err
	}
	c.treasury = new(big.Int)

	if err := vt.Transfer(ctx, c.owner, amount); err != nil {
		c.treasury = amount
		restore := c.newEvent(domain.EventTypeFundsDeposited, caller, nil, map[string]any{
			"amount":  amount.String(),
			"balance": amount.String(),
		})
		if rerr := c.record(ctx, restore); rerr != nil {
			logger.ErrorCtx(ctx, rerr, zap.String("component", "ledger"),
				zap.String("detail", "failed to record treasury restore after failed withdrawal"))
		}
		return nil, err
	}

	c.emit(event)
	return amount, nil
}

// WithdrawERC20 sweeps the collection's entire balance of an external token
// to the recipient
func (c *Collection) WithdrawERC20(ctx context.Context, caller common.Address, token TokenContract, to common.Address) (*big.Int, error) {
	if err := c.enter(); err != nil {
		return nil, err
	}
	defer c.exit()

	if err := c.authorize(caller); err != nil {
		return nil, err
	}
	if domain.IsZeroAddress(to) {
		return nil, domain.ErrZeroAddress
	}

	balance, err := token.BalanceOf(ctx, c.cfg.Address)
	if err != nil {
		return nil, err
	}
	if balance == nil || balance.Sign() == 0 {
		return nil, domain.ErrNoTokensToWithdraw
	}

	ok, err := token.Transfer(ctx, to, balance)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNoTokensToWithdraw
	}

	// The external balance is not ledger state, so the journal entry follows
	// the completed transfer.
	event := c.newEvent(domain.EventTypeERC20Withdrawn, caller, nil, map[string]any{
		"to":     to.String(),
		"amount": balance.String(),
	})
	if err := c.record(ctx, event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("component", "ledger"),
			zap.String("detail", "erc20 withdrawal completed but journal write failed"))
	}

	c.emit(event)
	return balance, nil
}
