package msgsign

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

type testKeyInfo struct {
	WIF          string `json:"wif"`
	Address      string `json:"address"`
	OtherAddress string `json:"other_address"`
	Message      string `json:"message"`
	Signature    string `json:"signature"`
}

// fixturesDir returns the repository fixtures directory
func fixturesDir() string {
	return filepath.Join("..", "..", "fixtures")
}

// loadTestKeyInfo reads the known key and signature from fixtures/test_key_info.json
func loadTestKeyInfo(t *testing.T) testKeyInfo {
	t.Helper()

	var keyInfo testKeyInfo
	data, err := os.ReadFile(filepath.Join(fixturesDir(), "test_key_info.json"))
	if err != nil {
		t.Fatalf("Failed to read key info: %v", err)
	}
	if err := json.Unmarshal(data, &keyInfo); err != nil {
		t.Fatalf("Failed to parse key info: %v", err)
	}
	return keyInfo
}

// testKey derives a reproducible private key from a seed
func testKey(t *testing.T, seed int, compressed bool) *PrivateKey {
	t.Helper()

	b := sha256.Sum256([]byte(fmt.Sprintf("msgsign test key %d", seed)))
	key, err := NewPrivateKey(b[:], compressed)
	if err != nil {
		t.Fatalf("Failed to create test key %d: %v", seed, err)
	}
	return key
}
