package msgsign

import (
	"errors"
	"fmt"
)

// ErrInvalidKey is returned when a private key is malformed, zero or not
// below the curve order.
var ErrInvalidKey = errors.New("invalid private key")

// AddressFormatError reports an address kind that cannot be used with signed
// messages. It is returned before any elliptic curve work is done.
type AddressFormatError struct {
	Reason string
}

func (e *AddressFormatError) Error() string {
	return e.Reason
}

// RecoveryError reports a signature from which no public key can be
// recovered, either because its encoding is malformed or because (r, s) and
// the recovery id do not describe a point on the curve.
type RecoveryError struct {
	Err error
}

func (e *RecoveryError) Error() string {
	return fmt.Sprintf("signature recovery failed: %v", e.Err)
}

func (e *RecoveryError) Unwrap() error {
	return e.Err
}
