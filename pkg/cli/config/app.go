package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secops-lab/panoptes/pkg/domain/model"
	"github.com/secops-lab/panoptes/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// AppConfig is the TOML application configuration: the organization identity,
// AI detection switch, snapshot archive bucket and the seeded mitigation
// catalog. Seeded mitigations carry fixed IDs so that applied references stay
// valid across restarts.
type AppConfig struct {
	path string

	Organization Organization `toml:"organization"`
	AI           AI           `toml:"ai"`
	Archive      Archive      `toml:"archive"`
	Mitigations  []Mitigation `toml:"mitigation"`
}

type Organization struct {
	ID string `toml:"id"`
}

type AI struct {
	Enabled bool `toml:"enabled"`
}

type Archive struct {
	Bucket string `toml:"bucket"`
}

// Mitigation is a seeded mitigation catalog entry
type Mitigation struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Category    string `toml:"category"`
	Reduction   int    `toml:"reduction"`
}

// Validate checks if the Mitigation entry is valid
func (m *Mitigation) Validate() error {
	if m.ID == "" {
		return goerr.New("mitigation ID is required", goerr.V("name", m.Name))
	}
	def := m.toDefinition()
	if err := def.Validate(); err != nil {
		return goerr.Wrap(err, "invalid mitigation entry", goerr.V("id", m.ID))
	}
	return nil
}

func (m *Mitigation) toDefinition() *model.MitigationDefinition {
	return &model.MitigationDefinition{
		ID:               types.MitigationID(m.ID),
		Name:             m.Name,
		Description:      m.Description,
		Category:         types.MitigationCategory(m.Category),
		DefaultReduction: m.Reduction,
	}
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if a.Organization.ID == "" {
		return goerr.New("organization ID is required")
	}

	seen := make(map[string]bool)
	for _, m := range a.Mitigations {
		if err := m.Validate(); err != nil {
			return err
		}
		if seen[m.ID] {
			return goerr.New("duplicate mitigation ID", goerr.V("id", m.ID))
		}
		seen[m.ID] = true
	}

	return nil
}

// SeededMitigations converts the configured entries into catalog definitions
func (a *AppConfig) SeededMitigations() []*model.MitigationDefinition {
	defs := make([]*model.MitigationDefinition, len(a.Mitigations))
	for i, m := range a.Mitigations {
		defs[i] = m.toDefinition()
	}
	return defs
}

// Flags returns CLI flags for the application configuration
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to the application configuration TOML file",
			Sources:     cli.EnvVars("PANOPTES_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Configure loads and validates the configuration file. When no path is set,
// an empty configuration with AI detection disabled is returned.
func (a *AppConfig) Configure() error {
	if a.path == "" {
		return nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(a.path)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", a.path))
	}

	if err := toml.Unmarshal(data, a); err != nil {
		return goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", a.path))
	}

	if err := a.Validate(); err != nil {
		return goerr.Wrap(err, "config validation failed", goerr.V("path", a.path))
	}

	return nil
}
