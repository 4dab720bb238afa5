package hash

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/dgst/internal/core/config"
	"github.com/nightconcept/dgst/internal/core/downloader"
	"github.com/nightconcept/dgst/internal/core/hasher"
	"github.com/nightconcept/dgst/internal/core/manifest"
)

// stdinName is both the argument that selects stdin and the name printed for it.
const stdinName = "-"

// HashCommand defines the structure for the "hash" command.
var HashCommand = &cli.Command{
	Name:      "hash",
	Aliases:   []string{"sum"},
	Usage:     "Prints the SHA-256 digest of files, stdin, a string or a URL",
	ArgsUsage: "[FILE...]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "string",
			Aliases: []string{"s"},
			Usage:   "Hash the given UTF-8 text instead of files",
		},
		&cli.StringFlag{
			Name:    "url",
			Aliases: []string{"u"},
			Usage:   "Download the given URL and hash the response body",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Digest format: hex, prefixed or multihash (defaults to dgst.toml, then prefixed)",
		},
		&cli.BoolFlag{
			Name:    "write",
			Aliases: []string{"w"},
			Usage:   "Record file digests in the checksum manifest",
		},
		&cli.StringFlag{
			Name:    "manifest",
			Aliases: []string{"m"},
			Usage:   "Path of the checksum manifest (defaults to dgst.toml, then dgst-sums.toml)",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable verbose output",
		},
	},
	Action: hashAction,
}

func hashAction(cCtx *cli.Context) error {
	cfg, err := config.Load(".")
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error loading %s: %v", config.ConfigTomlName, err), 1)
	}

	format := cfg.OutputFormat()
	if cCtx.IsSet("format") {
		format, err = hasher.ParseFormat(cCtx.String("format"))
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
	}

	manifestPath := cfg.Manifest.File
	if cCtx.IsSet("manifest") {
		manifestPath = cCtx.String("manifest")
	}

	verbose := cCtx.Bool("verbose")
	out := cCtx.App.Writer

	if cCtx.IsSet("string") && cCtx.IsSet("url") {
		return cli.Exit("Error: --string and --url cannot be used together.", 1)
	}

	if cCtx.IsSet("string") {
		digest, err := hasher.FormatString(cCtx.String("string"), format)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error hashing string: %v", err), 1)
		}
		fmt.Fprintf(out, "%s  %s\n", digest, cCtx.String("string"))
		return nil
	}

	if cCtx.IsSet("url") {
		url := cCtx.String("url")
		if verbose {
			fmt.Fprintf(out, "Downloading from %s...\n", url)
		}
		content, err := downloader.DownloadFile(cCtx.Context, url)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error downloading '%s': %v", url, err), 1)
		}
		if verbose {
			fmt.Fprintf(out, "Downloaded %d bytes successfully.\n", len(content))
		}
		digest, err := hasher.Format(content, format)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error hashing '%s': %v", url, err), 1)
		}
		fmt.Fprintf(out, "%s  %s\n", digest, url)
		return nil
	}

	files := cCtx.Args().Slice()
	if len(files) == 0 {
		files = []string{stdinName}
	}

	var m *manifest.Manifest
	if cCtx.Bool("write") {
		m, err = manifest.Load(manifestPath)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error loading manifest: %v", err), 1)
		}
	}

	failed := 0
	for _, name := range files {
		content, err := readInput(cCtx.App.Reader, name)
		if err != nil {
			fmt.Fprintf(cCtx.App.ErrWriter, "dgst: %s: %v\n", name, err)
			failed++
			continue
		}

		digest, err := hasher.Format(content, format)
		if err != nil {
			fmt.Fprintf(cCtx.App.ErrWriter, "dgst: %s: %v\n", name, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "%s  %s\n", digest, name)

		if m == nil {
			continue
		}
		if name == stdinName {
			fmt.Fprintf(cCtx.App.ErrWriter, "Warning: stdin is not recorded in the manifest.\n")
			continue
		}
		// The manifest always stores the prefixed form so check can parse it
		// regardless of the display format.
		recorded, err := hasher.CalculateSHA256(content)
		if err != nil {
			fmt.Fprintf(cCtx.App.ErrWriter, "dgst: %s: %v\n", name, err)
			failed++
			continue
		}
		key, err := manifest.KeyFor(manifestPath, name)
		if err != nil {
			fmt.Fprintf(cCtx.App.ErrWriter, "dgst: %s: %v\n", name, err)
			failed++
			continue
		}
		m.AddOrUpdate(key, recorded, int64(len(content)))
		if verbose {
			fmt.Fprintf(out, "Recorded %s as '%s' in %s\n", name, key, manifestPath)
		}
	}

	if m != nil {
		if err := manifest.Save(manifestPath, m); err != nil {
			return cli.Exit(fmt.Sprintf("Error saving manifest: %v", err), 1)
		}
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("Error: %d of %d inputs could not be hashed.", failed, len(files)), 1)
	}
	return nil
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == stdinName {
		if stdin == nil {
			stdin = os.Stdin
		}
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}
