package msgsign

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchConfig configures concurrent verification of many records.
type BatchConfig struct {
	// NumWorkers controls parallelization (0 = number of CPUs)
	NumWorkers int

	// FailFast stops at the first record that does not verify
	FailFast bool
}

// DefaultBatchConfig returns a sensible default configuration.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		NumWorkers: 0, // Auto-detect
		FailFast:   false,
	}
}

// VerificationResult is the outcome of verifying one record.
type VerificationResult struct {
	Index   int    // Position of the record in the input
	Address string // Address the record claims
	Valid   bool   // Whether the signature belongs to the address
	Err     error  // Structural failure (bad address, signature or encoding)
}

// BatchVerifier verifies records concurrently with a shared Signer.
type BatchVerifier struct {
	signer *Signer
	config BatchConfig
	logger *zap.Logger
}

// NewBatchVerifier creates a batch verifier.
func NewBatchVerifier(signer *Signer, config BatchConfig, logger *zap.Logger) *BatchVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchVerifier{signer: signer, config: config, logger: logger}
}

// VerifyRecords verifies every record on net and returns one result per
// record, in input order. Per-record failures are reported in the result;
// the returned error is only set when ctx is cancelled. With FailFast the
// remaining records are skipped after the first failure and carry
// context.Canceled.
func (b *BatchVerifier) VerifyRecords(ctx context.Context, records []*Record, net *Network) ([]*VerificationResult, error) {
	numWorkers := b.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	results := make([]*VerificationResult, len(records))
	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g := new(errgroup.Group)
	g.SetLimit(numWorkers)

	b.logger.Debug("Verifying records",
		zap.Int("records", len(records)),
		zap.Int("workers", numWorkers),
	)

	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			select {
			case <-workCtx.Done():
				results[i] = &VerificationResult{Index: i, Address: rec.Address, Err: workCtx.Err()}
				return nil
			default:
			}

			res := b.verifyRecord(i, rec, net)
			results[i] = res
			if b.config.FailFast && (!res.Valid || res.Err != nil) {
				cancel()
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}

	valid := 0
	for _, res := range results {
		if res.Valid {
			valid++
		}
	}
	b.logger.Debug("Verification complete",
		zap.Int("records", len(records)),
		zap.Int("valid", valid),
	)

	return results, nil
}

func (b *BatchVerifier) verifyRecord(i int, rec *Record, net *Network) *VerificationResult {
	res := &VerificationResult{Index: i, Address: rec.Address}
	net = b.signer.resolve(net)

	addr, err := DecodeAddress(rec.Address, net)
	if err != nil {
		res.Err = err
		return res
	}

	sig, err := ParseCompactSignatureBase64(rec.Signature)
	if err != nil {
		res.Err = err
		return res
	}

	res.Valid, res.Err = b.signer.Verify(&SignedMessage{Message: rec.Message, Signature: sig}, addr, net)
	if res.Err != nil {
		b.logger.Debug("Record failed verification",
			zap.Int("index", i),
			zap.String("address", rec.Address),
			zap.Error(res.Err),
		)
	}
	return res
}
