package msgsign

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSignature() *CompactSignature {
	sig := &CompactSignature{RecoveryID: 1, Compressed: true}
	for i := range sig.R {
		sig.R[i] = byte(i + 1)
		sig.S[i] = byte(0xff - i)
	}
	return sig
}

func TestCompactSignature_Header(t *testing.T) {
	tests := []struct {
		recoveryID byte
		compressed bool
		header     byte
	}{
		{0, false, 27},
		{3, false, 30},
		{0, true, 31},
		{1, true, 32},
		{3, true, 34},
	}

	for _, tt := range tests {
		sig := &CompactSignature{RecoveryID: tt.recoveryID, Compressed: tt.compressed}
		assert.Equal(t, tt.header, sig.Header())

		parsed, err := ParseCompactSignature(sig.Serialize())
		require.NoError(t, err)
		assert.Equal(t, tt.recoveryID, parsed.RecoveryID)
		assert.Equal(t, tt.compressed, parsed.Compressed)
	}
}

func TestCompactSignature_SerializeLayout(t *testing.T) {
	sig := sampleSignature()
	b := sig.Serialize()

	require.Len(t, b, CompactSignatureSize)
	assert.Equal(t, byte(32), b[0])
	assert.Equal(t, sig.R[:], b[1:33])
	assert.Equal(t, sig.S[:], b[33:])

	parsed, err := ParseCompactSignature(b)
	require.NoError(t, err)
	assert.Equal(t, sig, parsed)
}

func TestParseCompactSignature_Invalid(t *testing.T) {
	valid := sampleSignature().Serialize()

	tests := map[string][]byte{
		"empty":       nil,
		"short":       valid[:64],
		"long":        append(append([]byte{}, valid...), 0),
		"header low":  append([]byte{26}, valid[1:]...),
		"header high": append([]byte{35}, valid[1:]...),
	}

	for name, b := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCompactSignature(b)
			var recErr *RecoveryError
			assert.True(t, errors.As(err, &recErr), "expected RecoveryError, got %v", err)
		})
	}
}

func TestCompactSignature_Base64(t *testing.T) {
	sig := sampleSignature()

	parsed, err := ParseCompactSignatureBase64(sig.Base64())
	require.NoError(t, err)
	assert.Equal(t, sig, parsed)

	_, err = ParseCompactSignatureBase64("%%%")
	var recErr *RecoveryError
	assert.True(t, errors.As(err, &recErr))
}

func TestSignedMessage_ArmorRoundTrip(t *testing.T) {
	messages := []string{
		"hello",
		"",
		"multi\nline\nmessage",
		"trailing newline\n",
		"\nleading newline",
		"contains\n-----BEGIN SIGNATURE-----\nmarker",
		"-----END BITCOIN SIGNED MESSAGE-----",
		"ünïcödé ✓",
	}

	for _, message := range messages {
		sm := &SignedMessage{Message: message, Signature: sampleSignature()}

		parsed, err := ParseArmoredMessage(sm.Armor())
		require.NoError(t, err, "message %q", message)
		assert.Equal(t, sm, parsed, "message %q", message)
	}
}

func TestSignedMessage_ArmorFormat(t *testing.T) {
	sm := &SignedMessage{Message: "hi", Signature: sampleSignature()}

	expected := "-----BEGIN BITCOIN SIGNED MESSAGE-----\n" +
		"hi\n" +
		"-----BEGIN SIGNATURE-----\n" +
		sm.Signature.Base64() + "\n" +
		"-----END BITCOIN SIGNED MESSAGE-----"
	assert.Equal(t, expected, sm.Armor())

	// A trailing newline, as written by most editors, is accepted.
	parsed, err := ParseArmoredMessage(expected + "\n")
	require.NoError(t, err)
	assert.Equal(t, "hi", parsed.Message)
}

func TestParseArmoredMessage_Invalid(t *testing.T) {
	sig := sampleSignature().Base64()

	tests := map[string]string{
		"no header":     "hi\n-----BEGIN SIGNATURE-----\n" + sig + "\n-----END BITCOIN SIGNED MESSAGE-----",
		"no footer":     "-----BEGIN BITCOIN SIGNED MESSAGE-----\nhi\n-----BEGIN SIGNATURE-----\n" + sig,
		"no marker":     "-----BEGIN BITCOIN SIGNED MESSAGE-----\nhi\n" + sig + "\n-----END BITCOIN SIGNED MESSAGE-----",
		"bad signature": "-----BEGIN BITCOIN SIGNED MESSAGE-----\nhi\n-----BEGIN SIGNATURE-----\nAAAA\n-----END BITCOIN SIGNED MESSAGE-----",
	}

	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseArmoredMessage(text)
			assert.Error(t, err)
		})
	}
}

func TestSignedMessage_JSON(t *testing.T) {
	sm := &SignedMessage{Message: "hello", Signature: sampleSignature()}

	data, err := json.Marshal(sm)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"hello","signature":"`+sm.Signature.Base64()+`"}`, string(data))

	var decoded SignedMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, sm, &decoded)

	err = json.Unmarshal([]byte(`{"message":"hello","signature":"AAAA"}`), &decoded)
	assert.Error(t, err)
}
