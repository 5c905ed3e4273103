package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mahdiidarabi/msgsign/pkg/msgsign"
)

// NetworksConfig is the root of a networks file.
type NetworksConfig struct {
	Networks []NetworkConfig `yaml:"networks"`
}

// NetworkConfig describes a chain that signs messages with its own magic
// string and, optionally, its own address encoding.
type NetworkConfig struct {
	// Name identifies the network on the command line
	Name string `yaml:"name"`
	// Base is the built-in network whose address parameters are inherited
	Base string `yaml:"base"`
	// Magic is the signed message magic, e.g. "Litecoin Signed Message"
	Magic string `yaml:"magic"`
	// Net is the wire magic of the chain. Required when any address
	// parameter is overridden, since address prefixes are registered per net.
	Net uint32 `yaml:"net"`
	// Bech32HRP overrides the segwit human readable part
	Bech32HRP string `yaml:"bech32_hrp"`
	// PubKeyHashAddrID overrides the P2PKH version byte
	PubKeyHashAddrID *uint8 `yaml:"pubkey_hash_addr_id"`
	// ScriptHashAddrID overrides the P2SH version byte
	ScriptHashAddrID *uint8 `yaml:"script_hash_addr_id"`
}

func (c *NetworkConfig) overridesAddresses() bool {
	return c.Bech32HRP != "" || c.PubKeyHashAddrID != nil || c.ScriptHashAddrID != nil
}

// Validate checks a single network definition.
func (c *NetworkConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("network name is required")
	}
	if c.Magic == "" {
		return fmt.Errorf("network %s: magic is required", c.Name)
	}
	if c.overridesAddresses() && c.Net == 0 {
		return fmt.Errorf("network %s: net is required when address parameters are overridden", c.Name)
	}
	return nil
}

// LoadNetworks reads and validates a networks file and builds the networks
// it defines, keyed by lower-case name.
func LoadNetworks(path string) (map[string]*msgsign.Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read networks file %s", path)
	}
	return ParseNetworks(data)
}

// ParseNetworks builds networks from YAML data.
func ParseNetworks(data []byte) (map[string]*msgsign.Network, error) {
	var cfg NetworksConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse networks file")
	}

	networks := make(map[string]*msgsign.Network, len(cfg.Networks))
	for i := range cfg.Networks {
		nc := &cfg.Networks[i]
		if err := nc.Validate(); err != nil {
			return nil, err
		}
		key := strings.ToLower(nc.Name)
		if _, exists := networks[key]; exists {
			return nil, fmt.Errorf("duplicate network %s", nc.Name)
		}

		net, err := buildNetwork(nc)
		if err != nil {
			return nil, errors.Wrapf(err, "network %s", nc.Name)
		}
		networks[key] = net
	}

	return networks, nil
}

func buildNetwork(nc *NetworkConfig) (*msgsign.Network, error) {
	baseName := nc.Base
	if baseName == "" {
		baseName = "mainnet"
	}
	base, err := msgsign.NetworkByName(baseName)
	if err != nil {
		return nil, err
	}

	if !nc.overridesAddresses() {
		return &msgsign.Network{Name: nc.Name, MessageMagic: nc.Magic, Params: base.Params}, nil
	}

	params := *base.Params
	params.Name = nc.Name
	params.Net = wire.BitcoinNet(nc.Net)
	if nc.Bech32HRP != "" {
		params.Bech32HRPSegwit = nc.Bech32HRP
	}
	if nc.PubKeyHashAddrID != nil {
		params.PubKeyHashAddrID = *nc.PubKeyHashAddrID
	}
	if nc.ScriptHashAddrID != nil {
		params.ScriptHashAddrID = *nc.ScriptHashAddrID
	}

	// Registration makes the segwit prefix known to the address decoder.
	// Loading the same definition twice is harmless.
	if err := chaincfg.Register(&params); err != nil && err != chaincfg.ErrDuplicateNet {
		return nil, errors.Wrap(err, "failed to register address parameters")
	}

	return &msgsign.Network{Name: nc.Name, MessageMagic: nc.Magic, Params: &params}, nil
}

// Resolve returns the named network from custom, falling back to the
// built-in networks.
func Resolve(name string, custom map[string]*msgsign.Network) (*msgsign.Network, error) {
	if net, ok := custom[strings.ToLower(name)]; ok {
		return net, nil
	}
	return msgsign.NetworkByName(name)
}
