package msgsign

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	// CompactSignatureSize is the size of a serialized compact signature:
	// one header byte followed by 32-byte r and 32-byte s.
	CompactSignatureSize = 65

	compactSigMagicOffset = 27
	compactSigCompPubKey  = 4
)

// CompactSignature is an ECDSA signature extended with the information
// needed to recover the signing public key.
type CompactSignature struct {
	RecoveryID byte     // Public key recovery code in [0, 3]
	Compressed bool     // Whether the signer's public key is serialized compressed
	R          [32]byte // Big-endian r component
	S          [32]byte // Big-endian s component
}

// Header returns the first byte of the serialized signature:
// 27 + recovery id, plus 4 when the key is compressed.
func (sig *CompactSignature) Header() byte {
	h := byte(compactSigMagicOffset) + sig.RecoveryID
	if sig.Compressed {
		h += compactSigCompPubKey
	}
	return h
}

// Serialize returns the 65-byte <header><r><s> encoding.
func (sig *CompactSignature) Serialize() []byte {
	b := make([]byte, CompactSignatureSize)
	b[0] = sig.Header()
	copy(b[1:33], sig.R[:])
	copy(b[33:], sig.S[:])
	return b
}

// Base64 returns the standard base64 encoding of the serialized signature,
// which is the form wallets exchange.
func (sig *CompactSignature) Base64() string {
	return base64.StdEncoding.EncodeToString(sig.Serialize())
}

// ParseCompactSignature decodes a 65-byte compact signature.
func ParseCompactSignature(b []byte) (*CompactSignature, error) {
	if len(b) != CompactSignatureSize {
		return nil, &RecoveryError{Err: fmt.Errorf("compact signature must be %d bytes, got %d", CompactSignatureSize, len(b))}
	}

	header := b[0]
	if header < compactSigMagicOffset || header > compactSigMagicOffset+compactSigCompPubKey+3 {
		return nil, &RecoveryError{Err: fmt.Errorf("invalid compact signature header %d", header)}
	}
	code := header - compactSigMagicOffset

	sig := &CompactSignature{
		RecoveryID: code & 3,
		Compressed: code&compactSigCompPubKey != 0,
	}
	copy(sig.R[:], b[1:33])
	copy(sig.S[:], b[33:])
	return sig, nil
}

// ParseCompactSignatureBase64 decodes a base64 compact signature.
func ParseCompactSignatureBase64(s string) (*CompactSignature, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, &RecoveryError{Err: fmt.Errorf("failed to decode base64 signature: %w", err)}
	}
	return ParseCompactSignature(raw)
}

// SignedMessage pairs a message with its compact signature.
type SignedMessage struct {
	Message   string
	Signature *CompactSignature
}

const (
	armorHeader    = "-----BEGIN BITCOIN SIGNED MESSAGE-----"
	armorSignature = "-----BEGIN SIGNATURE-----"
	armorFooter    = "-----END BITCOIN SIGNED MESSAGE-----"
)

// Armor returns the signed message in the text block format:
//
//	-----BEGIN BITCOIN SIGNED MESSAGE-----
//	<message>
//	-----BEGIN SIGNATURE-----
//	<base64 signature>
//	-----END BITCOIN SIGNED MESSAGE-----
func (sm *SignedMessage) Armor() string {
	var b strings.Builder
	b.WriteString(armorHeader)
	b.WriteByte('\n')
	b.WriteString(sm.Message)
	b.WriteByte('\n')
	b.WriteString(armorSignature)
	b.WriteByte('\n')
	b.WriteString(sm.Signature.Base64())
	b.WriteByte('\n')
	b.WriteString(armorFooter)
	return b.String()
}

// ParseArmoredMessage parses the output of Armor. The message is everything
// between the header line and the last signature marker, so messages that
// contain the marker themselves survive a round trip.
func ParseArmoredMessage(text string) (*SignedMessage, error) {
	text = strings.TrimRight(text, "\r\n")

	if !strings.HasPrefix(text, armorHeader+"\n") {
		return nil, errors.New("missing signed message header")
	}
	if !strings.HasSuffix(text, "\n"+armorFooter) {
		return nil, errors.New("missing signed message footer")
	}
	body := strings.TrimSuffix(strings.TrimPrefix(text, armorHeader+"\n"), "\n"+armorFooter)

	sep := "\n" + armorSignature + "\n"
	idx := strings.LastIndex(body, sep)
	if idx < 0 {
		return nil, errors.New("missing signature marker")
	}

	sig, err := ParseCompactSignatureBase64(body[idx+len(sep):])
	if err != nil {
		return nil, err
	}
	return &SignedMessage{Message: body[:idx], Signature: sig}, nil
}

type signedMessageJSON struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

// MarshalJSON encodes the message with a base64 signature.
func (sm *SignedMessage) MarshalJSON() ([]byte, error) {
	if sm.Signature == nil {
		return nil, errors.New("signed message has no signature")
	}
	return json.Marshal(signedMessageJSON{Message: sm.Message, Signature: sm.Signature.Base64()})
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (sm *SignedMessage) UnmarshalJSON(data []byte) error {
	var raw signedMessageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	sig, err := ParseCompactSignatureBase64(raw.Signature)
	if err != nil {
		return err
	}
	sm.Message = raw.Message
	sm.Signature = sig
	return nil
}
