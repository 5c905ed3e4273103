package msgsign

import (
	"bytes"
	"errors"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Signer signs messages and verifies signed messages against addresses.
// A Signer holds no mutable state once configured and may be shared between
// goroutines.
type Signer struct {
	network *Network
	nonce   NonceFunc
}

// NewSigner creates a signer for Bitcoin mainnet using RFC 6979 nonces.
func NewSigner() *Signer {
	return &Signer{
		network: BitcoinMainnet(),
		nonce:   RFC6979SHA256,
	}
}

// WithDefaultNetwork sets the network used when a call passes a nil network.
func (s *Signer) WithDefaultNetwork(net *Network) *Signer {
	s.network = net
	return s
}

// WithNonceFunc replaces the deterministic nonce derivation.
func (s *Signer) WithNonceFunc(nonce NonceFunc) *Signer {
	s.nonce = nonce
	return s
}

// DefaultNetwork returns the network used when none is supplied.
func (s *Signer) DefaultNetwork() *Network {
	return s.network
}

func (s *Signer) resolve(net *Network) *Network {
	if net == nil {
		return s.network
	}
	return net
}

// Digest returns the message digest on net, or on the default network when
// net is nil.
func (s *Signer) Digest(message string, net *Network) chainhash.Hash {
	return MessageDigest(s.resolve(net), message)
}

// Sign produces a deterministic compact signature of message with key.
// Signing the same message with the same key on the same network always
// yields the same signature bytes.
func (s *Signer) Sign(message string, key *PrivateKey, net *Network) (*SignedMessage, error) {
	if key == nil || key.Key == nil {
		return nil, ErrInvalidKey
	}

	digest := s.Digest(message, net)
	sig, err := s.signDigest(key, digest[:])
	if err != nil {
		return nil, err
	}

	return &SignedMessage{Message: message, Signature: sig}, nil
}

// signDigest computes an ECDSA signature over hash and the recovery code
// that identifies the signer's public key among the candidates:
//
//	r = (kG).x mod N
//	s = k^-1 (e + d*r) mod N, negated when above N/2
//
// Bit 0 of the recovery code is the parity of (kG).y and bit 1 is set when
// (kG).x was not below N.
func (s *Signer) signDigest(key *PrivateKey, hash []byte) (*CompactSignature, error) {
	d := &key.Key.Key
	privKeyBytes := d.Bytes()
	defer func() {
		for i := range privKeyBytes {
			privKeyBytes[i] = 0
		}
	}()

	var e secp256k1.ModNScalar
	e.SetByteSlice(hash)

	for iteration := uint32(0); ; iteration++ {
		k := s.nonce(privKeyBytes[:], hash, iteration)
		if k == nil || k.IsZero() {
			return nil, errors.New("nonce function returned a zero nonce")
		}

		var kG secp256k1.JacobianPoint
		secp256k1.ScalarBaseMultNonConst(k, &kG)
		kG.ToAffine()

		var r secp256k1.ModNScalar
		overflow := r.SetByteSlice(kG.X.Bytes()[:])
		if r.IsZero() {
			continue
		}

		var recoveryID byte
		if overflow {
			recoveryID |= 2
		}
		if kG.Y.IsOdd() {
			recoveryID |= 1
		}

		kInv := new(secp256k1.ModNScalar).InverseValNonConst(k)
		sc := new(secp256k1.ModNScalar).Mul2(d, &r).Add(&e).Mul(kInv)
		if sc.IsZero() {
			continue
		}
		// -k produces the same r with the opposite y parity.
		if sc.IsOverHalfOrder() {
			sc.Negate()
			recoveryID ^= 1
		}

		sig := &CompactSignature{RecoveryID: recoveryID, Compressed: key.Compressed}
		r.PutBytes(&sig.R)
		sc.PutBytes(&sig.S)
		return sig, nil
	}
}

// RecoverPubKey recovers the public key that produced sm on net. The boolean
// reports whether the signature declares a compressed key.
func (s *Signer) RecoverPubKey(sm *SignedMessage, net *Network) (*secp256k1.PublicKey, bool, error) {
	if sm == nil || sm.Signature == nil {
		return nil, false, &RecoveryError{Err: errors.New("missing signature")}
	}

	digest := s.Digest(sm.Message, net)
	pub, compressed, err := ecdsa.RecoverCompact(sm.Signature.Serialize(), digest[:])
	if err != nil {
		return nil, false, &RecoveryError{Err: err}
	}
	return pub, compressed, nil
}

// Verify reports whether sm was signed by the key behind addr.
//
// Address kinds other than P2PKH and version 0 segwit fail with an
// *AddressFormatError before any curve arithmetic. A signature that cannot
// be recovered fails with a *RecoveryError. A valid signature by a different
// key, or over a different message or network, returns false and no error.
func (s *Signer) Verify(sm *SignedMessage, addr btcutil.Address, net *Network) (bool, error) {
	expected, err := addressHash(addr)
	if err != nil {
		return false, err
	}

	pub, compressed, err := s.RecoverPubKey(sm, net)
	if err != nil {
		return false, err
	}

	return bytes.Equal(btcutil.Hash160(serializePubKey(pub, compressed)), expected), nil
}
