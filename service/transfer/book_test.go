package transfer

import (
	"context"
	"errors"
	"testing"

	"lending/pkg/fixed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferIn(t *testing.T) {
	ctx := context.Background()
	b := NewBook("vault")
	require.Nil(t, b.Mint("A", "alice", fixed.Int(100)))

	err := b.TransferIn(ctx, "A", "alice", fixed.Int(10))
	assert.True(t, errors.Is(err, ErrInsufficientAllowance))

	b.Approve("A", "alice", fixed.Int(200))
	err = b.TransferIn(ctx, "A", "alice", fixed.Int(150))
	assert.True(t, errors.Is(err, ErrInsufficientFunds))
	assert.Equal(t, fixed.Int(200), b.Allowance("A", "alice"))

	require.Nil(t, b.TransferIn(ctx, "A", "alice", fixed.Int(60)))
	assert.Equal(t, fixed.Int(40), b.BalanceOf("A", "alice"))
	assert.Equal(t, fixed.Int(60), b.BalanceOf("A", "vault"))
	assert.Equal(t, fixed.Int(140), b.Allowance("A", "alice"))
}

func TestTransferOut(t *testing.T) {
	ctx := context.Background()
	b := NewBook("vault")
	require.Nil(t, b.Mint("A", "vault", fixed.Int(50)))

	err := b.TransferOut(ctx, "A", "bob", fixed.Int(51))
	assert.True(t, errors.Is(err, ErrInsufficientFunds))

	require.Nil(t, b.TransferOut(ctx, "A", "bob", fixed.Int(50)))
	assert.Equal(t, fixed.Int(50), b.BalanceOf("A", "bob"))
	assert.True(t, b.BalanceOf("A", "vault").IsZero())
	assert.True(t, b.BalanceOf("B", "bob").IsZero())
}
