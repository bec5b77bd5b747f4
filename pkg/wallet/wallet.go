package wallet

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// KeyPair holds an ECDSA key pair
type KeyPair struct {
	PrivateKey *ecdsa.PrivateKey
	PublicKey  *ecdsa.PublicKey
}

// NewKeyPair generates a new ECDSA key pair
func NewKeyPair() (*KeyPair, error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}

	return &KeyPair{
		PrivateKey: privateKey,
		PublicKey:  &privateKey.PublicKey,
	}, nil
}

// Wallet represents a participant identity with a key pair
type Wallet struct {
	Address string
	KeyPair *KeyPair
}

// CreateWallet creates a new wallet and derives its address
func CreateWallet() (*Wallet, error) {
	keyPair, err := NewKeyPair()
	if err != nil {
		return nil, err
	}

	return &Wallet{
		Address: GenerateAddress(keyPair.PublicKey),
		KeyPair: keyPair,
	}, nil
}

// GenerateAddress derives an address from a public key: the last 20 bytes
// of the SHA-256 hash of the marshalled key, hex-encoded with a 0x prefix
func GenerateAddress(pubKey *ecdsa.PublicKey) string {
	pubKeyBytes := elliptic.Marshal(pubKey.Curve, pubKey.X, pubKey.Y)

	hash := sha256.Sum256(pubKeyBytes)
	addressBytes := hash[len(hash)-20:]

	return "0x" + hex.EncodeToString(addressBytes)
}

// ValidAddress reports whether s has the canonical address form: 0x
// followed by 40 hex characters
func ValidAddress(s string) bool {
	if len(s) != 42 || !strings.HasPrefix(s, "0x") {
		return false
	}
	_, err := hex.DecodeString(s[2:])
	return err == nil
}
