package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/pelletier/go-toml/v2"
	"github.com/secops-lab/panoptes/pkg/cli/config"
	"github.com/secops-lab/panoptes/pkg/domain/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "panoptes.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func loadConfig(t *testing.T, content string) (*config.AppConfig, error) {
	t.Helper()
	data, err := os.ReadFile(writeConfig(t, content))
	gt.NoError(t, err).Required()

	var cfg config.AppConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func TestAppConfig(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		cfg, err := loadConfig(t, `
[organization]
id = "acme"

[ai]
enabled = true

[archive]
bucket = "acme-detection-snapshots"

[[mitigation]]
id = "net-segmentation"
name = "Network segmentation"
description = "Isolate the asset on its own VLAN"
category = "asset"
reduction = 20

[[mitigation]]
id = "travel-briefing"
name = "Travel security briefing"
category = "travel"
reduction = 10
`)
		gt.NoError(t, err).Required()

		gt.Value(t, cfg.Organization.ID).Equal("acme")
		gt.Bool(t, cfg.AI.Enabled).True()
		gt.Value(t, cfg.Archive.Bucket).Equal("acme-detection-snapshots")

		defs := cfg.SeededMitigations()
		gt.Array(t, defs).Length(2)
		gt.Value(t, defs[0].ID).Equal(types.MitigationID("net-segmentation"))
		gt.Value(t, defs[0].Category).Equal(types.MitigationCategoryAsset)
		gt.Value(t, defs[0].DefaultReduction).Equal(20)
		gt.Bool(t, defs[0].IsCustom).False()
	})

	t.Run("missing organization ID", func(t *testing.T) {
		_, err := loadConfig(t, `
[ai]
enabled = true
`)
		gt.Error(t, err)
	})

	t.Run("duplicate mitigation IDs", func(t *testing.T) {
		_, err := loadConfig(t, `
[organization]
id = "acme"

[[mitigation]]
id = "dup"
name = "First"
category = "general"
reduction = 10

[[mitigation]]
id = "dup"
name = "Second"
category = "general"
reduction = 15
`)
		gt.Error(t, err)
	})

	t.Run("reduction out of range", func(t *testing.T) {
		_, err := loadConfig(t, `
[organization]
id = "acme"

[[mitigation]]
id = "too-strong"
name = "Too strong"
category = "general"
reduction = 150
`)
		gt.Error(t, err)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := loadConfig(t, `
[organization]
id = "acme"

[[mitigation]]
id = "odd"
name = "Odd category"
category = "orbital"
reduction = 10
`)
		gt.Error(t, err)
	})

	t.Run("mitigation without ID", func(t *testing.T) {
		_, err := loadConfig(t, `
[organization]
id = "acme"

[[mitigation]]
name = "No ID"
category = "general"
reduction = 10
`)
		gt.Error(t, err)
	})
}
