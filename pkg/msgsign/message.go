package msgsign

import (
	"bytes"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// EncodeMessage builds the byte sequence that gets hashed for a message:
//
//	varint(len(prefix)) || prefix || varint(len(message)) || message
//
// where prefix is the network magic followed by ":\n". Lengths are byte
// lengths of the UTF-8 encoding.
func EncodeMessage(net *Network, message string) []byte {
	prefix := net.SignedMessageMagic() + ":\n"

	var buf bytes.Buffer
	buf.Grow(len(prefix) + len(message) + 2*wire.MaxVarIntPayload)

	// Writes to a bytes.Buffer cannot fail.
	_ = wire.WriteVarInt(&buf, 0, uint64(len(prefix)))
	buf.WriteString(prefix)
	_ = wire.WriteVarInt(&buf, 0, uint64(len(message)))
	buf.WriteString(message)

	return buf.Bytes()
}

// MessageDigest returns the double SHA-256 of the encoded message.
func MessageDigest(net *Network, message string) chainhash.Hash {
	return chainhash.DoubleHashH(EncodeMessage(net, message))
}
