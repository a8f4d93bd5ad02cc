package cmd

import (
	"errors"
	"fmt"

	"github.com/tradeplumber/oa/internal/config"
	"github.com/tradeplumber/oa/internal/keyring"
)

// clientOptions holds the resolved dependencies shared by every command
// that talks to the server. Tests fill it directly with an httptest URL;
// production commands fill it from config and keyring in PreRunE.
type clientOptions struct {
	host           string
	apiKey         string
	exchange       string
	indexExchange  string
	product        string
	optionsProduct string
	strategyTag    string
	tradingEnabled bool
	jsonMode       bool
}

// getAPIKey retrieves the stored API key, translating a missing key into
// a first-run hint.
func getAPIKey(store keyring.Store) (string, error) {
	key, err := store.Get(keyring.ServiceName, keyring.KeyAPIKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("CLI not configured. Run: oa configure")
		}
		return "", fmt.Errorf("failed to retrieve API key: %w", err)
	}
	return key, nil
}

// resolveClientOptions loads config and credentials for a command run.
func resolveClientOptions() (clientOptions, error) {
	cfg, err := config.Load(config.Path())
	if err != nil {
		return clientOptions{}, fmt.Errorf("failed to load config: %w", err)
	}

	store := keyring.NewEnvStore(keyring.NewSystemStore())
	key, err := getAPIKey(store)
	if err != nil {
		return clientOptions{}, err
	}

	return clientOptions{
		host:           cfg.Host,
		apiKey:         key,
		exchange:       cfg.Exchange,
		indexExchange:  cfg.IndexExchange,
		product:        cfg.Product,
		optionsProduct: cfg.OptionsProduct,
		strategyTag:    cfg.Strategy,
		tradingEnabled: cfg.TradingEnabled,
		jsonMode:       GetJSONMode(),
	}, nil
}

// resolveInto is the PreRunE body shared by the init() wiring: it fills
// the options struct the command factory closed over.
func resolveInto(opts *clientOptions) error {
	resolved, err := resolveClientOptions()
	if err != nil {
		return err
	}
	*opts = resolved
	return nil
}
