package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secops-lab/panoptes/pkg/cli/config"
	"github.com/secops-lab/panoptes/pkg/repository/memory"
	"github.com/secops-lab/panoptes/pkg/service/catalog"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var appCfg config.AppConfig

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the application configuration file",
		Flags:   appCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			fail := color.New(color.FgRed, color.Bold)
			ok := color.New(color.FgGreen)

			if err := appCfg.Configure(); err != nil {
				fail.Println("Configuration validation failed")
				return err
			}

			// The seeded catalog applies its own checks (duplicates, categories)
			if _, err := catalog.New(memory.New().Mitigation(), appCfg.SeededMitigations()); err != nil {
				fail.Println("Mitigation catalog validation failed")
				return goerr.Wrap(err, "invalid mitigation catalog")
			}

			ok.Println("Configuration is valid")
			fmt.Printf("  organization: %s\n", appCfg.Organization.ID)
			fmt.Printf("  ai detection: %t\n", appCfg.AI.Enabled)
			fmt.Printf("  archive bucket: %s\n", appCfg.Archive.Bucket)
			fmt.Printf("  seeded mitigations: %d\n", len(appCfg.Mitigations))
			for _, m := range appCfg.Mitigations {
				fmt.Printf("    - %s (%s, -%d)\n", m.Name, m.Category, m.Reduction)
			}

			return nil
		},
	}
}
