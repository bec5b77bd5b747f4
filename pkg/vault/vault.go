package vault

import (
	"errors"
	"math/big"
	"sync"
)

// ErrInsufficientFunds indicates a transfer larger than the source balance
var ErrInsufficientFunds = errors.New("insufficient funds")

// Vault holds actual value in named accounts and moves it atomically. A
// failed transfer moves nothing.
type Vault struct {
	accounts map[string]*big.Int
	mutex    sync.RWMutex
}

// NewVault creates an empty vault
func NewVault() *Vault {
	return &Vault{
		accounts: make(map[string]*big.Int),
	}
}

// Deposit adds amount to an account
func (v *Vault) Deposit(address string, amount *big.Int) {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	balance, exists := v.accounts[address]
	if !exists {
		balance = big.NewInt(0)
	}
	v.accounts[address] = new(big.Int).Add(balance, amount)
}

// Transfer moves amount from one account to another. It fails with
// ErrInsufficientFunds if the source balance does not cover the amount, in
// which case neither account changes.
func (v *Vault) Transfer(from, to string, amount *big.Int) error {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	fromBalance, exists := v.accounts[from]
	if !exists {
		fromBalance = big.NewInt(0)
	}

	if fromBalance.Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}

	toBalance, exists := v.accounts[to]
	if !exists {
		toBalance = big.NewInt(0)
	}

	v.accounts[from] = new(big.Int).Sub(fromBalance, amount)
	v.accounts[to] = new(big.Int).Add(toBalance, amount)
	return nil
}

// Balance returns the balance of an account
func (v *Vault) Balance(address string) *big.Int {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	if balance, exists := v.accounts[address]; exists {
		return new(big.Int).Set(balance)
	}
	return big.NewInt(0)
}

// TotalValue returns the sum of all account balances
func (v *Vault) TotalValue() *big.Int {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	total := big.NewInt(0)
	for _, balance := range v.accounts {
		total = new(big.Int).Add(total, balance)
	}
	return total
}

// Escrow binds one vault account to a campaign as its value-transfer
// capability: every outgoing transfer is paid from that account.
type Escrow struct {
	vault   *Vault
	account string
}

// NewEscrow creates an escrow over the given vault account
func NewEscrow(vault *Vault, account string) *Escrow {
	return &Escrow{
		vault:   vault,
		account: account,
	}
}

// Transfer pays amount to the recipient from the escrow account
func (e *Escrow) Transfer(to string, amount *big.Int) error {
	return e.vault.Transfer(e.account, to, amount)
}

// Account returns the escrow account address
func (e *Escrow) Account() string {
	return e.account
}
