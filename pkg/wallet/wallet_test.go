package wallet

import (
	"strings"
	"testing"
)

func TestCreateWallet(t *testing.T) {
	wallet, err := CreateWallet()
	if err != nil {
		t.Fatalf("Failed to create wallet: %v", err)
	}

	if wallet.KeyPair == nil {
		t.Fatal("Expected wallet to have a key pair, got nil")
	}

	if !strings.HasPrefix(wallet.Address, "0x") {
		t.Errorf("Expected address to have 0x prefix, got '%s'", wallet.Address)
	}

	if len(wallet.Address) != 42 {
		t.Errorf("Expected address length 42, got %d", len(wallet.Address))
	}

	if !ValidAddress(wallet.Address) {
		t.Errorf("Expected generated address to be valid, got '%s'", wallet.Address)
	}
}

func TestAddressesAreUnique(t *testing.T) {
	first, err := CreateWallet()
	if err != nil {
		t.Fatalf("Failed to create wallet: %v", err)
	}

	second, err := CreateWallet()
	if err != nil {
		t.Fatalf("Failed to create wallet: %v", err)
	}

	if first.Address == second.Address {
		t.Error("Expected distinct wallets to have distinct addresses")
	}
}

func TestValidAddress(t *testing.T) {
	cases := []struct {
		address string
		valid   bool
	}{
		{"0x" + strings.Repeat("ab", 20), true},
		{"0x" + strings.Repeat("ab", 19), false},
		{strings.Repeat("ab", 21), false},
		{"0x" + strings.Repeat("zz", 20), false},
		{"", false},
	}

	for _, c := range cases {
		if got := ValidAddress(c.address); got != c.valid {
			t.Errorf("ValidAddress(%q) = %v, expected %v", c.address, got, c.valid)
		}
	}
}
