package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configFile  = "config.json"
	walletsFile = "wallets.json"
)

// Load reads config from dir (or creates defaults). dir defaults to ~/.nftmkt.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".nftmkt")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.configDir = dir
	applyEnv(cfg)
	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath returns the path of the wallet store file.
func (c *Config) WalletsPath() string {
	return filepath.Join(c.configDir, walletsFile)
}

// --- helpers ---

func defaults(dir string) *Config {
	cfg := &Config{
		RPCURL:      DefaultRPCURL,
		ChainID:     DefaultChainID,
		Collection:  DefaultCollection,
		Marketplace: DefaultMarketplace,
		IPFSGateway: DefaultIPFSGateway,
		PinEndpoint: DefaultPinEndpoint,
		PinGateway:  DefaultPinGateway,
		MintFee:     DefaultMintFee,
		configDir:   dir,
	}
	applyEnv(cfg)
	return cfg
}

// applyEnv overlays pin credentials from the environment. Keys never land in
// config.json.
func applyEnv(cfg *Config) {
	if k := os.Getenv("NFTMKT_PIN_KEY"); k != "" {
		cfg.PinKey = k
	}
	if s := os.Getenv("NFTMKT_PIN_SECRET"); s != "" {
		cfg.PinSecret = s
	}
}
