package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/mahdiidarabi/msgsign/internal/config"
	"github.com/mahdiidarabi/msgsign/internal/logger"
	"github.com/mahdiidarabi/msgsign/pkg/msgsign"
)

func main() {
	app := &cli.App{
		Name:  "signmessage",
		Usage: "Sign and verify Bitcoin signed messages",
		Description: `Signs messages with a WIF private key and verifies signed messages against
P2PKH and P2WPKH addresses, compatible with Bitcoin Core's signmessage and
verifymessage RPCs.

Networks other than the built-in Bitcoin ones (mainnet, testnet3, regtest,
signet) can be described in a YAML file passed with --networks-config.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "network",
				Usage: "Network name (mainnet, testnet3, regtest, signet or one from --networks-config)",
				Value: "mainnet",
			},
			&cli.StringFlag{
				Name:  "networks-config",
				Usage: "Path to a YAML file with additional networks",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "digest",
				Usage: "Print the hex digest that is signed for a message",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "message", Usage: "Message text", Required: true},
				},
				Action: digestCommand,
			},
			{
				Name:  "encode",
				Usage: "Print the hex encoding of a message before hashing",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "message", Usage: "Message text", Required: true},
				},
				Action: encodeCommand,
			},
			{
				Name:  "sign",
				Usage: "Sign a message with a WIF private key",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "wif", Usage: "Private key in wallet import format", Required: true},
					&cli.StringFlag{Name: "message", Usage: "Message text", Required: true},
					&cli.BoolFlag{Name: "armor", Usage: "Print an armored signed message block instead of the bare signature"},
				},
				Action: signCommand,
			},
			{
				Name:  "verify",
				Usage: "Verify a signed message against an address",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "address", Usage: "P2PKH or P2WPKH address", Required: true},
					&cli.StringFlag{Name: "message", Usage: "Message text"},
					&cli.StringFlag{Name: "signature", Usage: "Base64 compact signature"},
					&cli.StringFlag{Name: "armored-file", Usage: "Path to an armored signed message block"},
				},
				Action: verifyCommand,
			},
			{
				Name:  "verify-batch",
				Usage: "Verify every record of a JSON or CSV file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "Path to the records file", Required: true},
					&cli.StringFlag{Name: "format", Usage: "Records file format (json or csv)", Value: "json"},
					&cli.IntFlag{Name: "workers", Usage: "Number of parallel workers (0 = number of CPUs)"},
					&cli.BoolFlag{Name: "fail-fast", Usage: "Stop at the first record that does not verify"},
				},
				Action: verifyBatchCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newClient builds a client for the network selected on the command line
func newClient(c *cli.Context) (*msgsign.Client, *zap.Logger, error) {
	zapLogger, err := logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("verbose")})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to create logger")
	}

	var custom map[string]*msgsign.Network
	if path := c.String("networks-config"); path != "" {
		custom, err = config.LoadNetworks(path)
		if err != nil {
			return nil, nil, err
		}
		zapLogger.Debug("Loaded networks", zap.String("path", path), zap.Int("count", len(custom)))
	}

	net, err := config.Resolve(c.String("network"), custom)
	if err != nil {
		return nil, nil, err
	}

	client := msgsign.NewClient().
		WithNetwork(net).
		WithLogger(zapLogger)
	return client, zapLogger, nil
}

// digestCommand handles the digest subcommand
func digestCommand(c *cli.Context) error {
	client, _, err := newClient(c)
	if err != nil {
		return err
	}

	digest := msgsign.MessageDigest(client.Network(), c.String("message"))
	fmt.Println(hex.EncodeToString(digest[:]))
	return nil
}

// encodeCommand handles the encode subcommand
func encodeCommand(c *cli.Context) error {
	client, _, err := newClient(c)
	if err != nil {
		return err
	}

	fmt.Println(hex.EncodeToString(msgsign.EncodeMessage(client.Network(), c.String("message"))))
	return nil
}

// signCommand handles the sign subcommand
func signCommand(c *cli.Context) error {
	client, _, err := newClient(c)
	if err != nil {
		return err
	}

	signed, err := client.SignMessage(c.String("message"), c.String("wif"))
	if err != nil {
		return errors.Wrap(err, "failed to sign message")
	}

	if c.Bool("armor") {
		fmt.Println(signed.Armor())
	} else {
		fmt.Println(signed.Signature.Base64())
	}
	return nil
}

// verifyCommand handles the verify subcommand
func verifyCommand(c *cli.Context) error {
	client, _, err := newClient(c)
	if err != nil {
		return err
	}

	address := c.String("address")
	var valid bool
	if path := c.String("armored-file"); path != "" {
		text, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "failed to read %s", path)
		}
		valid, err = client.VerifyArmored(string(text), address)
		if err != nil {
			return errors.Wrap(err, "failed to verify message")
		}
	} else {
		if !c.IsSet("message") || !c.IsSet("signature") {
			return cli.Exit("either --armored-file or both --message and --signature are required", 2)
		}
		valid, err = client.VerifyMessage(c.String("message"), c.String("signature"), address)
		if err != nil {
			return errors.Wrap(err, "failed to verify message")
		}
	}

	if !valid {
		return cli.Exit(fmt.Sprintf("signature is not valid for %s", address), 1)
	}
	fmt.Printf("✓ Signature is valid for %s\n", address)
	return nil
}

// verifyBatchCommand handles the verify-batch subcommand
func verifyBatchCommand(c *cli.Context) error {
	client, zapLogger, err := newClient(c)
	if err != nil {
		return err
	}

	var parser msgsign.RecordParser
	switch format := c.String("format"); format {
	case "json":
		parser = &msgsign.JSONParser{}
	case "csv":
		parser = &msgsign.CSVParser{}
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q, expected json or csv", format), 2)
	}

	client = client.
		WithParser(parser).
		WithBatchConfig(msgsign.BatchConfig{
			NumWorkers: c.Int("workers"),
			FailFast:   c.Bool("fail-fast"),
		})

	results, err := client.VerifyFile(context.Background(), c.String("file"))
	if err != nil {
		return errors.Wrap(err, "failed to verify records")
	}

	invalid := 0
	for _, res := range results {
		switch {
		case res.Err != nil:
			invalid++
			fmt.Printf("[%d] %s: error: %v\n", res.Index, res.Address, res.Err)
		case res.Valid:
			fmt.Printf("[%d] %s: valid\n", res.Index, res.Address)
		default:
			invalid++
			fmt.Printf("[%d] %s: invalid\n", res.Index, res.Address)
		}
	}
	zapLogger.Debug("Batch verification finished",
		zap.Int("records", len(results)),
		zap.Int("invalid", invalid),
	)

	if invalid > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d records did not verify", invalid, len(results)), 1)
	}
	return nil
}
