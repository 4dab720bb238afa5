// Command dgst computes and verifies SHA-256 digests using a from-scratch
// implementation of the hash.
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/dgst/internal/cli/bench"
	"github.com/nightconcept/dgst/internal/cli/check"
	"github.com/nightconcept/dgst/internal/cli/forget"
	"github.com/nightconcept/dgst/internal/cli/hash"
	"github.com/nightconcept/dgst/internal/cli/initcmd"
	"github.com/nightconcept/dgst/internal/cli/self"
	"github.com/nightconcept/dgst/internal/cli/selftest"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "v0.1.0"

func main() {
	app := &cli.App{
		Name:    "dgst",
		Usage:   "Compute and verify SHA-256 digests",
		Version: version,
		Action: func(c *cli.Context) error {
			// Default action if no command is specified
			_ = cli.ShowAppHelp(c)
			return nil
		},
		Commands: []*cli.Command{
			initcmd.GetInitCommand(),
			hash.HashCommand,
			check.CheckCmd,
			forget.ForgetCommand(),
			selftest.SelfTestCmd,
			bench.BenchCmd,
			self.NewSelfCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
