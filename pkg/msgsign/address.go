package msgsign

import "github.com/btcsuite/btcd/btcutil"

// witnessAddress is implemented by every segwit address kind in btcutil
// (P2WPKH, P2WSH and P2TR).
type witnessAddress interface {
	btcutil.Address
	WitnessVersion() byte
	WitnessProgram() []byte
}

// addressHash returns the hash a recovered public key must match for addr.
// Only P2PKH and version 0 witness addresses can carry a message signature;
// every other kind is rejected here, before any curve arithmetic.
func addressHash(addr btcutil.Address) ([]byte, error) {
	switch a := addr.(type) {
	case *btcutil.AddressPubKeyHash:
		return a.Hash160()[:], nil
	case witnessAddress:
		if a.WitnessVersion() != 0 {
			return nil, &AddressFormatError{Reason: "unsupported segwit version"}
		}
		return a.WitnessProgram(), nil
	default:
		return nil, &AddressFormatError{Reason: "unsupported address format"}
	}
}
