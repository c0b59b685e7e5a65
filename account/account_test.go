package account_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorum/betting/account"
	"github.com/scorum/betting/kv"
	"github.com/scorum/betting/types"
)

func TestLoadUnknownAccountIsZeroBalance(t *testing.T) {
	db := account.New(kv.NewMemDB())
	a, err := db.Load("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", a.Name)
	assert.Equal(t, int64(0), a.Balance)

	ok, err := db.Exists("alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIncreaseThenDecreaseBalance(t *testing.T) {
	db := account.New(kv.NewMemDB())
	require.NoError(t, db.IncreaseBalance("alice", 500))

	ok, err := db.Exists("alice")
	require.NoError(t, err)
	assert.True(t, ok)

	bal, err := db.Balance("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(500), bal)

	require.NoError(t, db.DecreaseBalance("alice", 200))
	bal, err = db.Balance("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(300), bal)
}

func TestDecreaseBalanceInsufficientFundsLeavesBalanceUntouched(t *testing.T) {
	db := account.New(kv.NewMemDB())
	require.NoError(t, db.IncreaseBalance("alice", 100))

	err := db.DecreaseBalance("alice", 200)
	assert.ErrorIs(t, err, types.ErrInsufficientFunds)

	bal, err := db.Balance("alice")
	require.NoError(t, err)
	assert.Equal(t, int64(100), bal)
}
