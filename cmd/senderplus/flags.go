package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/senderplus/internal/client"
	"github.com/nao1215/senderplus/internal/config"
)

// addClientFlags registers the flags shared by every command that talks
// to the submission service.
func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("base-url", "u", "",
		"Submission service endpoint (default: base_url from .senderplus, then "+config.DefaultBaseURL+")")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Per-request timeout")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .senderplus in current or home directory)")
}

// buildClientConfig creates a Config from the shared client flags and the
// configuration file.
//
// Precedence for the endpoint: --base-url flag, then base_url from the
// configuration file, then the built-in default.
func buildClientConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}
	cfg.Verbose = getVerboseFlag(cmd)

	// Load configuration file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.Profiles, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if cfg.Profiles.BaseURL != "" {
			cfg.BaseURL = cfg.Profiles.BaseURL
		}
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		// Use empty config if no file found and user didn't explicitly specify one
		cfg.Profiles = &config.File{
			Profiles: make(map[string]config.Profile),
		}
	}

	// Flag beats config file
	baseURL, err := cmd.Flags().GetString("base-url")
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return cfg, nil
}

// newServiceClient creates a submission service client from the config.
func newServiceClient(cfg *config.Config, logger *slog.Logger) (*client.Client, error) {
	return client.NewClient(cfg.BaseURL,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(logger),
		client.WithMaxBodySize(cfg.MaxBodySize),
	)
}
