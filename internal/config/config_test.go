package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func resetGlobalConfig() {
	globalConfig = &Config{
		DataDir:        ".cleansweep",
		MetricsPort:    12798,
		MetadataPlugin: DefaultMetadataPlugin,
	}
}

func TestLoad_CompareFullStruct(t *testing.T) {
	resetGlobalConfig()
	yamlContent := `
metadataPlugin: "sqlite"
dataDir: "/var/lib/cleansweep"
metricsPort: 8088
tracing: true
tracingStdout: true
`

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test-cleansweep.yaml")

	err := os.WriteFile(tmpFile, []byte(yamlContent), 0644)
	if err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	defer os.Remove(tmpFile)

	expected := &Config{
		MetadataPlugin: "sqlite",
		DataDir:        "/var/lib/cleansweep",
		MetricsPort:    8088,
		Tracing:        true,
		TracingStdout:  true,
	}

	actual, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if !reflect.DeepEqual(actual, expected) {
		t.Errorf(
			"Loaded config does not match expected.\nActual: %+v\nExpected: %+v",
			actual,
			expected,
		)
	}
}

func TestLoad_WithConfigSection(t *testing.T) {
	resetGlobalConfig()

	// Values under a config section overlay the defaults
	yamlContent := `
config:
  metricsPort: 9099
`

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test-config-section.yaml")

	err := os.WriteFile(tmpFile, []byte(yamlContent), 0644)
	if err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if cfg.MetricsPort != 9099 {
		t.Errorf("expected MetricsPort to be 9099, got: %v", cfg.MetricsPort)
	}
	if cfg.DataDir != ".cleansweep" {
		t.Errorf("expected DataDir default to survive, got: %v", cfg.DataDir)
	}
}

func TestLoad_WithDatabaseMetadataPlugin(t *testing.T) {
	resetGlobalConfig()

	// Plugin name under database.metadata selects the metadata plugin
	yamlContent := `
database:
  metadata:
    plugin: "sqlite"
`

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test-metadata-plugin.yaml")

	err := os.WriteFile(tmpFile, []byte(yamlContent), 0644)
	if err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if cfg.MetadataPlugin != "sqlite" {
		t.Errorf(
			"expected MetadataPlugin to be sqlite, got: %v",
			cfg.MetadataPlugin,
		)
	}
}

func TestLoad_ContextRoundTrip(t *testing.T) {
	resetGlobalConfig()

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	ctx := WithContext(t.Context(), cfg)
	if got := FromContext(ctx); got != cfg {
		t.Errorf("expected config from context to match, got: %+v", got)
	}
	if got := FromContext(t.Context()); got != nil {
		t.Errorf("expected nil config from empty context, got: %+v", got)
	}
}
