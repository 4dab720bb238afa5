package initcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/dgst/internal/core/config"
	"github.com/nightconcept/dgst/internal/core/hasher"
)

// GetInitCommand returns the definition for the "init" command.
func GetInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Creates a dgst.toml with default settings in the current directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Default digest format: hex, prefixed or multihash",
				Value:   string(hasher.FormatPrefixed),
			},
			&cli.StringFlag{
				Name:    "manifest",
				Aliases: []string{"m"},
				Usage:   "Default checksum manifest path",
				Value:   config.DefaultManifestName,
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing dgst.toml",
			},
		},
		Action: func(c *cli.Context) error {
			format, err := hasher.ParseFormat(c.String("format"))
			if err != nil {
				return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
			}
			if c.String("manifest") == "" {
				return cli.Exit("Error: --manifest cannot be empty.", 1)
			}

			if _, err := os.Stat(filepath.Join(".", config.ConfigTomlName)); err == nil && !c.Bool("force") {
				return cli.Exit(fmt.Sprintf("Error: %s already exists. Use --force to overwrite it.", config.ConfigTomlName), 1)
			} else if err != nil && !os.IsNotExist(err) {
				return cli.Exit(fmt.Sprintf("Error checking %s: %v", config.ConfigTomlName, err), 1)
			}

			cfg := config.Default()
			cfg.Output.Format = string(format)
			cfg.Manifest.File = c.String("manifest")

			if err := config.Write(".", cfg); err != nil {
				return cli.Exit(fmt.Sprintf("Error writing %s: %v", config.ConfigTomlName, err), 1)
			}

			fmt.Fprintf(c.App.Writer, "Wrote %s (format: %s, manifest: %s)\n", config.ConfigTomlName, cfg.Output.Format, cfg.Manifest.File)
			return nil
		},
	}
}
