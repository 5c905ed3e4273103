package msgsign

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// PrivateKey is a secp256k1 private key together with the serialization
// format of its public key, which decides the address it controls.
type PrivateKey struct {
	Key        *secp256k1.PrivateKey
	Compressed bool
}

// NewPrivateKey parses a 32-byte big-endian private key. Zero and values not
// below the curve order are rejected with ErrInvalidKey.
func NewPrivateKey(b []byte, compressed bool) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("%w: must be 32 bytes, got %d", ErrInvalidKey, len(b))
	}

	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow {
		return nil, fmt.Errorf("%w: not below the curve order", ErrInvalidKey)
	}
	if scalar.IsZero() {
		return nil, fmt.Errorf("%w: zero", ErrInvalidKey)
	}

	return &PrivateKey{Key: secp256k1.NewPrivateKey(&scalar), Compressed: compressed}, nil
}

// PrivateKeyFromWIF decodes a key in wallet import format.
func PrivateKeyFromWIF(wif string) (*PrivateKey, error) {
	decoded, err := btcutil.DecodeWIF(wif)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	// DecodeWIF accepts any 32-byte payload, so the range check is repeated.
	keyBytes := decoded.PrivKey.Serialize()
	return NewPrivateKey(keyBytes, decoded.CompressPubKey)
}

// PubKey returns the serialized public key in the key's own format.
func (k *PrivateKey) PubKey() []byte {
	return serializePubKey(k.Key.PubKey(), k.Compressed)
}

// PubKeyHash returns hash160 of the serialized public key.
func (k *PrivateKey) PubKeyHash() []byte {
	return btcutil.Hash160(k.PubKey())
}

// AddressPubKeyHash returns the P2PKH address of the key on net.
func (k *PrivateKey) AddressPubKeyHash(net *Network) (*btcutil.AddressPubKeyHash, error) {
	return btcutil.NewAddressPubKeyHash(k.PubKeyHash(), net.Params)
}

// AddressWitnessPubKeyHash returns the P2WPKH address of the key on net.
// Segwit outputs require compressed keys.
func (k *PrivateKey) AddressWitnessPubKeyHash(net *Network) (*btcutil.AddressWitnessPubKeyHash, error) {
	if !k.Compressed {
		return nil, fmt.Errorf("segwit addresses require a compressed public key")
	}
	return btcutil.NewAddressWitnessPubKeyHash(k.PubKeyHash(), net.Params)
}

// DecodeAddress decodes an address string for net.
func DecodeAddress(addr string, net *Network) (btcutil.Address, error) {
	decoded, err := btcutil.DecodeAddress(addr, net.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to decode address %q: %w", addr, err)
	}
	if !decoded.IsForNet(net.Params) {
		return nil, fmt.Errorf("address %q is not for network %s", addr, net.Name)
	}
	return decoded, nil
}

func serializePubKey(pub *secp256k1.PublicKey, compressed bool) []byte {
	if compressed {
		return pub.SerializeCompressed()
	}
	return pub.SerializeUncompressed()
}
