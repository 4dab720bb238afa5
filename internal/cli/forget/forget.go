package forget

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/dgst/internal/core/config"
	"github.com/nightconcept/dgst/internal/core/manifest"
)

// ForgetCommand defines the structure for the 'forget' CLI command.
func ForgetCommand() *cli.Command {
	return &cli.Command{
		Name:      "forget",
		Usage:     "Removes files from the checksum manifest",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "manifest",
				Aliases: []string{"m"},
				Usage:   "Path of the checksum manifest (defaults to dgst.toml, then dgst-sums.toml)",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return cli.Exit("Error: Missing file argument.", 1)
			}

			cfg, err := config.Load(".")
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error loading %s: %v", config.ConfigTomlName, err), 1)
			}
			manifestPath := cfg.Manifest.File
			if c.IsSet("manifest") {
				manifestPath = c.String("manifest")
			}

			if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
				return cli.Exit(fmt.Sprintf("Error: %s not found.", manifestPath), 1)
			}
			m, err := manifest.Load(manifestPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: Failed to load %s: %v", manifestPath, err), 1)
			}

			missing := 0
			for _, name := range c.Args().Slice() {
				key, err := manifest.KeyFor(manifestPath, name)
				if err != nil {
					return cli.Exit(fmt.Sprintf("Error resolving '%s': %v", name, err), 1)
				}
				if !m.Remove(key) {
					fmt.Fprintf(c.App.ErrWriter, "Warning: '%s' is not recorded in %s.\n", key, manifestPath)
					missing++
					continue
				}
				fmt.Fprintf(c.App.Writer, "Removed '%s' from %s\n", key, manifestPath)
			}

			if missing == c.NArg() {
				return cli.Exit(fmt.Sprintf("Error: None of the given files are recorded in %s.", manifestPath), 1)
			}
			if err := manifest.Save(manifestPath, m); err != nil {
				return cli.Exit(fmt.Sprintf("Error saving manifest: %v", err), 1)
			}
			return nil
		},
	}
}
