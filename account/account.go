// Package account is the external account-service adapter the betting
// core debits and credits. It is grounded directly on account/account.go's
// LoadAccount/SaveAccount/GetKVSet shape, trimmed to the balance
// primitives the betting service actually calls: an external collaborator
// exposing only balance-adjustment primitives.
package account

import (
	"github.com/pkg/errors"

	"github.com/scorum/betting/kv"
	"github.com/scorum/betting/types"
)

const keyPrefix = "account:"

// Account is the persisted balance record for one better.
type Account struct {
	Name    string
	Balance int64
}

func key(name string) []byte {
	return []byte(keyPrefix + name)
}

// DB is a thin balance ledger keyed by account name.
type DB struct {
	db kv.DB
}

// New wraps db as an account ledger.
func New(db kv.DB) *DB {
	return &DB{db: db}
}

// Load returns the account, or a fresh zero-balance record if it does not
// yet exist, mirroring LoadAccount's "not found returns a zero Account"
// behavior rather than an error.
func (d *DB) Load(name string) (Account, error) {
	v, err := d.db.Get(key(name))
	if err == kv.ErrNotFound {
		return Account{Name: name}, nil
	}
	if err != nil {
		return Account{}, err
	}
	var a Account
	if err := types.Decode(v, &a); err != nil {
		panic(err) // data already corrupted
	}
	return a, nil
}

func (d *DB) save(a Account) error {
	return d.db.Set(key(a.Name), types.Encode(a))
}

// Exists reports whether name has ever received a balance mutation.
func (d *DB) Exists(name string) (bool, error) {
	_, err := d.db.Get(key(name))
	if err == kv.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Balance returns name's current balance (zero if the account is unknown).
func (d *DB) Balance(name string) (int64, error) {
	a, err := d.Load(name)
	if err != nil {
		return 0, err
	}
	return a.Balance, nil
}

// IncreaseBalance credits amount to name, creating the account if absent.
func (d *DB) IncreaseBalance(name string, amount int64) error {
	a, err := d.Load(name)
	if err != nil {
		return err
	}
	a.Balance += amount
	return d.save(a)
}

// DecreaseBalance debits amount from name. It returns
// types.ErrInsufficientFunds and leaves the account untouched rather than
// letting the balance go negative, mirroring CheckTransfer/ErrNoBalance.
func (d *DB) DecreaseBalance(name string, amount int64) error {
	a, err := d.Load(name)
	if err != nil {
		return err
	}
	if a.Balance < amount {
		return errors.Wrapf(types.ErrInsufficientFunds, "account %s: balance %d < stake %d", name, a.Balance, amount)
	}
	a.Balance -= amount
	return d.save(a)
}
