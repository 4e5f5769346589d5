// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/blinklabs-io/cleansweep/database/plugin"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "cleansweep.config"

const DefaultMetadataPlugin = "sqlite"

// ErrPluginListRequested is returned when the user requests to list available plugins
// This is not an error condition but a successful operation that displays plugin information
var ErrPluginListRequested = errors.New("plugin list requested")

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

type tempConfig struct {
	Config   *Config                   `yaml:"config,omitempty"`
	Database *databaseConfig           `yaml:"database,omitempty"`
	Metadata map[string]map[string]any `yaml:"metadata,omitempty"`
}

type databaseConfig struct {
	Metadata map[string]any `yaml:"metadata,omitempty"`
}

type Config struct {
	MetadataPlugin string `yaml:"metadataPlugin" envconfig:"CLEANSWEEP_DATABASE_METADATA_PLUGIN"`
	DataDir        string `yaml:"dataDir"                                                        split_words:"true"`
	MetricsPort    uint   `yaml:"metricsPort"                                                    split_words:"true"`
	Tracing        bool   `yaml:"tracing"`
	TracingStdout  bool   `yaml:"tracingStdout"                                                  split_words:"true"`
}

var globalConfig = &Config{
	DataDir:        ".cleansweep",
	MetricsPort:    12798,
	MetadataPlugin: DefaultMetadataPlugin,
}

func LoadConfig(configFile string) (*Config, error) {
	// Load config file as YAML if provided
	if configFile == "" {
		// Check for config file in this path: ~/.cleansweep/cleansweep.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(homeDir, ".cleansweep", "cleansweep.yaml")
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}

		// Try to check for /etc/cleansweep/cleansweep.yaml if still not found
		if configFile == "" {
			systemPath := "/etc/cleansweep/cleansweep.yaml"
			if _, err := os.Stat(systemPath); err == nil {
				configFile = systemPath
			}
		}
	}

	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		// First unmarshal into temp config to handle plugin sections
		var tempCfg tempConfig
		err = yaml.Unmarshal(buf, &tempCfg)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}

		// If config section exists, use it for main config
		if tempCfg.Config != nil {
			// Overlay config values onto existing defaults
			configBytes, err := yaml.Marshal(tempCfg.Config)
			if err != nil {
				return nil, fmt.Errorf("error re-marshalling config: %w", err)
			}
			err = yaml.Unmarshal(configBytes, globalConfig)
			if err != nil {
				return nil, fmt.Errorf("error parsing config section: %w", err)
			}
		} else {
			// Otherwise unmarshal the whole file as main config (backward compatibility)
			err = yaml.Unmarshal(buf, globalConfig)
			if err != nil {
				return nil, fmt.Errorf("error parsing config file: %w", err)
			}
		}

		// Process plugin configurations
		pluginConfig := make(map[string]map[string]map[string]any)
		if tempCfg.Metadata != nil {
			pluginConfig["metadata"] = tempCfg.Metadata
		}
		// Handle database section if present
		if tempCfg.Database != nil && tempCfg.Database.Metadata != nil {
			// Extract plugin name if specified
			if pluginVal, exists := tempCfg.Database.Metadata["plugin"]; exists {
				if pluginName, ok := pluginVal.(string); ok {
					globalConfig.MetadataPlugin = pluginName
					// Remove plugin from config map
					delete(tempCfg.Database.Metadata, "plugin")
				}
			}
			// Build plugin config map
			metadataConfig := make(map[string]map[string]any)
			for k, v := range tempCfg.Database.Metadata {
				if val, ok := v.(map[string]any); ok {
					metadataConfig[k] = val
				} else if val, ok := v.(map[any]any); ok {
					// Convert map[any]any to map[string]any
					stringAnyMap := make(map[string]any)
					for vk, vv := range val {
						if keyStr, ok := vk.(string); ok {
							stringAnyMap[keyStr] = vv
						}
					}
					metadataConfig[k] = stringAnyMap
				} else {
					// Log skipped non-map config entries
					fmt.Fprintf(os.Stderr, "warning: skipping metadata config entry %q: expected map, got %T\n", k, v)
				}
			}
			// Merge with existing metadata config instead of overwriting
			if pluginConfig["metadata"] == nil {
				pluginConfig["metadata"] = metadataConfig
			} else {
				maps.Copy(pluginConfig["metadata"], metadataConfig)
			}
		}
		if len(pluginConfig) > 0 {
			err = plugin.ProcessConfig(pluginConfig)
			if err != nil {
				return nil, fmt.Errorf(
					"error processing plugin config: %w",
					err,
				)
			}
		}
	}
	// Process environment variables
	err := envconfig.Process("cleansweep", globalConfig)
	if err != nil {
		return nil, fmt.Errorf("error processing environment: %+w", err)
	}

	// Process plugin environment variables
	err = plugin.ProcessEnvVars()
	if err != nil {
		return nil, fmt.Errorf(
			"error processing plugin environment variables: %w",
			err,
		)
	}

	return globalConfig, nil
}

func GetConfig() *Config {
	return globalConfig
}
