package msgsign

import "github.com/decred/dcrd/dcrec/secp256k1/v4"

// NonceFunc derives the signing nonce from the private key and the message
// digest. It must be a pure function: the same inputs always produce the same
// nonce. The iteration counter starts at 0 and is incremented only when a
// nonce yields an invalid signature (r or s equal to zero).
type NonceFunc func(privKey, hash []byte, iteration uint32) *secp256k1.ModNScalar

// RFC6979SHA256 is the RFC 6979 deterministic nonce over HMAC-SHA256 with no
// additional data. It matches Bitcoin Core and libsecp256k1, so signatures
// are reproducible across implementations.
func RFC6979SHA256(privKey, hash []byte, iteration uint32) *secp256k1.ModNScalar {
	return secp256k1.NonceRFC6979(privKey, hash, nil, nil, iteration)
}
