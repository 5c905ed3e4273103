// Package msgsign implements the Bitcoin signed message protocol: proving
// control of an address by signing a text message, without spending funds.
//
// A message is encoded together with a network specific magic string,
// hashed with double SHA-256, and signed with a deterministic (RFC 6979)
// recoverable ECDSA signature over secp256k1. Verification recovers the
// public key from the signature and compares its hash160 with the hash
// embedded in the claimed P2PKH or version 0 segwit address.
//
// # Quick Start
//
//	import "github.com/mahdiidarabi/msgsign/pkg/msgsign"
//
//	client := msgsign.NewClient()
//
//	signed, err := client.SignMessage("hello", "L4rK1yDtCWekvXuE6oXD9jCYfFNV2cWRpVuPLBcCU2z8TrisoyY1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(signed.Signature.Base64())
//
//	ok, err := client.VerifyMessage("hello", signed.Signature.Base64(), "1F3sAm6ZtwLAUnj7d38pGFxtP3RVEvtsbV")
//
// # Lower-level API
//
// Signer works on parsed keys and addresses and lets the caller choose the
// network per call:
//
//	signer := msgsign.NewSigner().WithDefaultNetwork(msgsign.BitcoinTestnet3())
//	signed, err := signer.Sign("hello", key, nil)
//	ok, err := signer.Verify(signed, addr, nil)
//
// Verify returns an *AddressFormatError for address kinds that cannot carry
// a message signature (P2SH, P2TR and other segwit versions) and a
// *RecoveryError for signatures from which no key can be recovered. A
// signature made by another key is not an error: Verify returns false.
//
// # Batch Verification
//
// Records loaded from JSON or CSV files are verified concurrently:
//
//	client := msgsign.NewClient().
//	    WithParser(&msgsign.CSVParser{}).
//	    WithBatchConfig(msgsign.BatchConfig{NumWorkers: 8})
//
//	results, err := client.VerifyFile(ctx, "signatures.csv")
package msgsign
