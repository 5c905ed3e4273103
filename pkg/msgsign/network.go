package msgsign

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// BitcoinMessageMagic is the domain separation string used by Bitcoin Core.
const BitcoinMessageMagic = "Bitcoin Signed Message"

// Network carries the signed-message magic of a chain together with the
// address parameters used to decode and encode its addresses.
type Network struct {
	Name         string           // Short name, e.g. "mainnet"
	MessageMagic string           // Magic string prepended to every message
	Params       *chaincfg.Params // Address parameters for the chain
}

// SignedMessageMagic returns the magic string used for domain separation.
func (n *Network) SignedMessageMagic() string {
	return n.MessageMagic
}

// BitcoinMainnet returns the Bitcoin main network.
func BitcoinMainnet() *Network {
	return &Network{Name: "mainnet", MessageMagic: BitcoinMessageMagic, Params: &chaincfg.MainNetParams}
}

// BitcoinTestnet3 returns the Bitcoin test network (version 3).
func BitcoinTestnet3() *Network {
	return &Network{Name: "testnet3", MessageMagic: BitcoinMessageMagic, Params: &chaincfg.TestNet3Params}
}

// BitcoinRegtest returns the Bitcoin regression test network.
func BitcoinRegtest() *Network {
	return &Network{Name: "regtest", MessageMagic: BitcoinMessageMagic, Params: &chaincfg.RegressionNetParams}
}

// BitcoinSignet returns the default Bitcoin signet.
func BitcoinSignet() *Network {
	return &Network{Name: "signet", MessageMagic: BitcoinMessageMagic, Params: &chaincfg.SigNetParams}
}

// NetworkByName looks up one of the built-in networks.
func NetworkByName(name string) (*Network, error) {
	switch strings.ToLower(name) {
	case "mainnet", "bitcoin", "main":
		return BitcoinMainnet(), nil
	case "testnet3", "testnet", "test":
		return BitcoinTestnet3(), nil
	case "regtest":
		return BitcoinRegtest(), nil
	case "signet":
		return BitcoinSignet(), nil
	default:
		return nil, fmt.Errorf("unknown network: %s", name)
	}
}
