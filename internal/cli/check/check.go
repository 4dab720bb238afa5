package check

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/dgst/internal/core/config"
	"github.com/nightconcept/dgst/internal/core/hasher"
	"github.com/nightconcept/dgst/internal/core/manifest"
)

// Status is the outcome of verifying one manifest entry.
type Status string

const (
	// StatusOK means the file matches its recorded size and digest.
	StatusOK Status = "OK"
	// StatusFailed means the file's size or digest differs from the record.
	StatusFailed Status = "FAILED"
	// StatusMissing means the recorded file no longer exists.
	StatusMissing Status = "MISSING"
	// StatusError means the file or its recorded digest could not be read.
	StatusError Status = "ERROR"
)

// Result holds the verification outcome for one manifest entry.
type Result struct {
	Path   string
	Status Status
	Detail string
}

// CheckCmd defines the structure for the 'check' command.
var CheckCmd = &cli.Command{
	Name:    "check",
	Aliases: []string{"verify"},
	Usage:   "Verifies files against the digests recorded in the checksum manifest",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "manifest",
			Aliases: []string{"m"},
			Usage:   "Path of the checksum manifest (defaults to dgst.toml, then dgst-sums.toml)",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Only print entries that did not verify",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := config.Load(".")
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error loading %s: %v", config.ConfigTomlName, err), 1)
		}
		manifestPath := cfg.Manifest.File
		if c.IsSet("manifest") {
			manifestPath = c.String("manifest")
		}

		if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
			return cli.Exit(fmt.Sprintf("Error: %s not found. Record digests with 'dgst hash --write' first.", manifestPath), 1)
		}
		m, err := manifest.Load(manifestPath)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error loading %s: %v", manifestPath, err), 1)
		}
		if len(m.Files) == 0 {
			fmt.Fprintf(c.App.Writer, "No files recorded in %s.\n", manifestPath)
			return nil
		}

		okColor := color.New(color.FgGreen).SprintFunc()
		failColor := color.New(color.FgRed, color.Bold).SprintFunc()
		missingColor := color.New(color.FgYellow).SprintFunc()

		results := Verify(filepath.Dir(manifestPath), m)
		bad := 0
		for _, r := range results {
			var status string
			switch r.Status {
			case StatusOK:
				if c.Bool("quiet") {
					continue
				}
				status = okColor(r.Status)
			case StatusMissing:
				status = missingColor(r.Status)
				bad++
			default:
				status = failColor(r.Status)
				bad++
			}
			if r.Detail != "" {
				fmt.Fprintf(c.App.Writer, "%s: %s (%s)\n", r.Path, status, r.Detail)
			} else {
				fmt.Fprintf(c.App.Writer, "%s: %s\n", r.Path, status)
			}
		}

		if bad > 0 {
			return cli.Exit(fmt.Sprintf("Error: %d of %d files did not verify.", bad, len(results)), 1)
		}
		return nil
	},
}

// Verify re-hashes every entry of m, resolving entry paths against root.
// Results are returned in manifest path order.
func Verify(root string, m *manifest.Manifest) []Result {
	results := make([]Result, 0, len(m.Files))
	for _, p := range m.Paths() {
		entry := m.Files[p]
		results = append(results, verifyEntry(filepath.Join(root, filepath.FromSlash(p)), p, entry))
	}
	return results
}

func verifyEntry(fullPath, key string, entry manifest.FileEntry) Result {
	content, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Path: key, Status: StatusMissing}
		}
		return Result{Path: key, Status: StatusError, Detail: err.Error()}
	}

	if int64(len(content)) != entry.Size {
		return Result{Path: key, Status: StatusFailed, Detail: fmt.Sprintf("size %d, expected %d", len(content), entry.Size)}
	}

	ok, err := hasher.Verify(content, entry.Hash)
	if err != nil {
		return Result{Path: key, Status: StatusError, Detail: err.Error()}
	}
	if !ok {
		return Result{Path: key, Status: StatusFailed, Detail: "digest mismatch"}
	}
	return Result{Path: key, Status: StatusOK}
}
