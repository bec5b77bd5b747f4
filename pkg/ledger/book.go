package ledger

import (
	"math/big"
	"sync"
)

// Book tracks contributor stakes for a single campaign: per-address
// balances, the aggregate raised amount, and the count of addresses with a
// nonzero balance. A zero balance is the no-active-stake sentinel; entries
// are never deleted.
type Book struct {
	balances     map[string]*big.Int
	raised       *big.Int
	contributors int64
	mutex        sync.RWMutex
}

// NewBook creates an empty contributor book
func NewBook() *Book {
	return &Book{
		balances: make(map[string]*big.Int),
		raised:   big.NewInt(0),
	}
}

// Credit adds amount to the address's balance and to the raised amount.
// It returns true if the address transitioned from zero to a nonzero
// balance, i.e. became a contributor.
func (b *Book) Credit(address string, amount *big.Int) bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	balance, exists := b.balances[address]
	if !exists {
		balance = big.NewInt(0)
	}

	isNew := balance.Sign() == 0

	b.balances[address] = new(big.Int).Add(balance, amount)
	b.raised = new(big.Int).Add(b.raised, amount)
	if isNew {
		b.contributors++
	}
	return isNew
}

// Clear zeroes the address's balance, subtracts it from the raised amount
// and decrements the contributor count. It returns the balance that was
// cleared; clearing an address with no stake returns zero and changes
// nothing.
func (b *Book) Clear(address string) *big.Int {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	balance, exists := b.balances[address]
	if !exists || balance.Sign() == 0 {
		return big.NewInt(0)
	}

	b.balances[address] = big.NewInt(0)
	b.raised = new(big.Int).Sub(b.raised, balance)
	b.contributors--
	return balance
}

// Restore reverses a Clear: it re-credits amount to the address and to the
// raised amount, re-incrementing the contributor count if the address held
// no stake.
func (b *Book) Restore(address string, amount *big.Int) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	balance, exists := b.balances[address]
	if !exists {
		balance = big.NewInt(0)
	}

	if balance.Sign() == 0 && amount.Sign() > 0 {
		b.contributors++
	}
	b.balances[address] = new(big.Int).Add(balance, amount)
	b.raised = new(big.Int).Add(b.raised, amount)
}

// Balance returns the balance of an address
func (b *Book) Balance(address string) *big.Int {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	if balance, exists := b.balances[address]; exists {
		return new(big.Int).Set(balance)
	}
	return big.NewInt(0)
}

// Raised returns the aggregate raised amount
func (b *Book) Raised() *big.Int {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	return new(big.Int).Set(b.raised)
}

// Contributors returns the count of addresses with a nonzero balance
func (b *Book) Contributors() int64 {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	return b.contributors
}
