package msgsign

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Client provides a high-level, string-oriented API over Signer for the
// formats wallets exchange: WIF keys, encoded addresses and base64
// signatures.
type Client struct {
	signer *Signer
	parser RecordParser
	net    *Network
	batch  BatchConfig
	logger *zap.Logger
}

// NewClient creates a new client with default settings.
func NewClient() *Client {
	return &Client{
		signer: NewSigner(),
		parser: &JSONParser{},
		batch:  DefaultBatchConfig(),
		logger: zap.NewNop(),
	}
}

// WithSigner sets a custom signer.
func (c *Client) WithSigner(signer *Signer) *Client {
	c.signer = signer
	return c
}

// WithParser sets a custom record parser.
func (c *Client) WithParser(parser RecordParser) *Client {
	c.parser = parser
	return c
}

// WithNetwork sets the network for every operation of the client.
// Without it the signer's default network is used.
func (c *Client) WithNetwork(net *Network) *Client {
	c.net = net
	return c
}

// WithBatchConfig sets the configuration used by VerifyFile and VerifyRecords.
func (c *Client) WithBatchConfig(config BatchConfig) *Client {
	c.batch = config
	return c
}

// WithLogger sets the logger.
func (c *Client) WithLogger(logger *zap.Logger) *Client {
	c.logger = logger
	return c
}

// Network returns the network the client operates on.
func (c *Client) Network() *Network {
	return c.signer.resolve(c.net)
}

// SignMessage signs message with a WIF encoded private key.
func (c *Client) SignMessage(message string, wif string) (*SignedMessage, error) {
	key, err := PrivateKeyFromWIF(wif)
	if err != nil {
		return nil, err
	}
	return c.signer.Sign(message, key, c.net)
}

// VerifyMessage verifies a base64 compact signature of message against an
// encoded address.
func (c *Client) VerifyMessage(message, signatureBase64, address string) (bool, error) {
	sig, err := ParseCompactSignatureBase64(signatureBase64)
	if err != nil {
		return false, err
	}
	return c.verify(&SignedMessage{Message: message, Signature: sig}, address)
}

// VerifyArmored verifies a signed message block produced by Armor.
func (c *Client) VerifyArmored(text, address string) (bool, error) {
	sm, err := ParseArmoredMessage(text)
	if err != nil {
		return false, fmt.Errorf("failed to parse signed message: %w", err)
	}
	return c.verify(sm, address)
}

func (c *Client) verify(sm *SignedMessage, address string) (bool, error) {
	net := c.Network()
	addr, err := DecodeAddress(address, net)
	if err != nil {
		return false, err
	}

	valid, err := c.signer.Verify(sm, addr, net)
	if err != nil {
		return false, err
	}
	c.logger.Debug("Verified signed message",
		zap.String("address", address),
		zap.String("network", net.Name),
		zap.Bool("valid", valid),
	)
	return valid, nil
}

// VerifyFile verifies every record of a file read with the client's parser.
//
// Args:
//   - ctx: Context for cancellation.
//   - source: Path to the record file (JSON or CSV, depending on the parser).
//
// Returns:
//   - One result per record, in file order.
func (c *Client) VerifyFile(ctx context.Context, source string) ([]*VerificationResult, error) {
	records, err := c.parser.ParseRecords(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse records: %w", err)
	}
	return c.VerifyRecords(ctx, records)
}

// VerifyRecords verifies in-memory records.
// Use this when records come from your own parser or API.
func (c *Client) VerifyRecords(ctx context.Context, records []*Record) ([]*VerificationResult, error) {
	return NewBatchVerifier(c.signer, c.batch, c.logger).VerifyRecords(ctx, records, c.Network())
}
