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

package plugin

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

type PluginType int

const (
	PluginTypeMetadata PluginType = iota
)

// PluginTypeName returns the name for a plugin type
func PluginTypeName(pluginType PluginType) string {
	switch pluginType {
	case PluginTypeMetadata:
		return "metadata"
	default:
		return "unknown"
	}
}

type PluginOptionType int

const (
	PluginOptionTypeString PluginOptionType = iota
	PluginOptionTypeBool
	PluginOptionTypeInt
)

// PluginOption describes a single configurable option for a plugin.
// Dest points at the variable that receives the value from command
// line flags, environment variables, or the config file.
type PluginOption struct {
	DefaultValue any
	Dest         any
	Name         string
	Description  string
	Type         PluginOptionType
}

type PluginEntry struct {
	NewFromOptionsFunc func() Plugin
	Name               string
	Description        string
	Options            []PluginOption
	Type               PluginType
}

var pluginEntries []PluginEntry

// Register adds a plugin entry to the global registry. It's expected
// to be called from an init() in each plugin implementation package.
func Register(entry PluginEntry) {
	pluginEntries = append(pluginEntries, entry)
}

// GetPlugins returns registered plugin entries of the given type
func GetPlugins(pluginType PluginType) []PluginEntry {
	var ret []PluginEntry
	for _, entry := range pluginEntries {
		if entry.Type == pluginType {
			ret = append(ret, entry)
		}
	}
	return ret
}

// GetPlugin instantiates the named plugin of the given type using its
// current option values, or returns nil if no such plugin is registered
func GetPlugin(pluginType PluginType, pluginName string) Plugin {
	for _, entry := range pluginEntries {
		if entry.Type == pluginType && entry.Name == pluginName {
			return entry.NewFromOptionsFunc()
		}
	}
	return nil
}

// optionFlagName builds the command line flag name for a plugin option,
// e.g. metadata-sqlite-data-dir
func optionFlagName(entry PluginEntry, opt PluginOption) string {
	return fmt.Sprintf(
		"%s-%s-%s",
		PluginTypeName(entry.Type),
		entry.Name,
		opt.Name,
	)
}

// optionEnvName builds the environment variable name for a plugin
// option, e.g. CLEANSWEEP_METADATA_SQLITE_DATA_DIR
func optionEnvName(entry PluginEntry, opt PluginOption) string {
	tmpName := fmt.Sprintf(
		"cleansweep_%s_%s_%s",
		PluginTypeName(entry.Type),
		entry.Name,
		opt.Name,
	)
	return strings.ToUpper(strings.ReplaceAll(tmpName, "-", "_"))
}

// PopulateCmdlineOptions adds flags for all registered plugin options
// to the provided flag set
func PopulateCmdlineOptions(fs *pflag.FlagSet) error {
	for _, entry := range pluginEntries {
		for _, opt := range entry.Options {
			flagName := optionFlagName(entry, opt)
			switch opt.Type {
			case PluginOptionTypeString:
				dest, ok := opt.Dest.(*string)
				if !ok {
					return fmt.Errorf("invalid destination for option %s", flagName)
				}
				defaultValue, _ := opt.DefaultValue.(string)
				fs.StringVar(dest, flagName, defaultValue, opt.Description)
			case PluginOptionTypeBool:
				dest, ok := opt.Dest.(*bool)
				if !ok {
					return fmt.Errorf("invalid destination for option %s", flagName)
				}
				defaultValue, _ := opt.DefaultValue.(bool)
				fs.BoolVar(dest, flagName, defaultValue, opt.Description)
			case PluginOptionTypeInt:
				dest, ok := opt.Dest.(*int)
				if !ok {
					return fmt.Errorf("invalid destination for option %s", flagName)
				}
				defaultValue, _ := opt.DefaultValue.(int)
				fs.IntVar(dest, flagName, defaultValue, opt.Description)
			default:
				return fmt.Errorf(
					"unknown option type %d for option %s",
					opt.Type,
					flagName,
				)
			}
		}
	}
	return nil
}

// ProcessEnvVars applies environment variable values to registered
// plugin options
func ProcessEnvVars() error {
	for _, entry := range pluginEntries {
		for _, opt := range entry.Options {
			envValue, ok := os.LookupEnv(optionEnvName(entry, opt))
			if !ok {
				continue
			}
			switch opt.Type {
			case PluginOptionTypeString:
				if err := SetPluginOption(entry.Type, entry.Name, opt.Name, envValue); err != nil {
					return err
				}
			case PluginOptionTypeBool:
				boolValue, err := strconv.ParseBool(envValue)
				if err != nil {
					return fmt.Errorf(
						"invalid value for %s: %w",
						optionEnvName(entry, opt),
						err,
					)
				}
				if err := SetPluginOption(entry.Type, entry.Name, opt.Name, boolValue); err != nil {
					return err
				}
			case PluginOptionTypeInt:
				intValue, err := strconv.Atoi(envValue)
				if err != nil {
					return fmt.Errorf(
						"invalid value for %s: %w",
						optionEnvName(entry, opt),
						err,
					)
				}
				if err := SetPluginOption(entry.Type, entry.Name, opt.Name, intValue); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// ProcessConfig applies plugin option values from the config file. The
// outer map is keyed on plugin type name, then plugin name, then option
// name.
func ProcessConfig(pluginConfig map[string]map[string]map[string]any) error {
	for typeName, plugins := range pluginConfig {
		var pluginType PluginType
		switch typeName {
		case "metadata":
			pluginType = PluginTypeMetadata
		default:
			return fmt.Errorf("unknown plugin type: %s", typeName)
		}
		for pluginName, options := range plugins {
			for optName, optValue := range options {
				if err := SetPluginOption(pluginType, pluginName, optName, optValue); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
