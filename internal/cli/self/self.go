package self

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/urfave/cli/v2"
)

// DefaultRepository is the GitHub repository releases are fetched from.
const DefaultRepository = "nightconcept/dgst"

// NewSelfCommand creates a new command for self-management.
func NewSelfCommand() *cli.Command {
	return &cli.Command{
		Name:  "self",
		Usage: "Manage the dgst CLI application itself",
		Subcommands: []*cli.Command{
			{
				Name:  "update",
				Usage: "Update dgst to the latest version",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Automatically confirm the update",
					},
					&cli.BoolFlag{
						Name:  "check",
						Usage: "Check for available updates without installing",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Specify a custom GitHub update source as 'owner/repo'",
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "Enable verbose output",
					},
				},
				Action: updateAction,
			},
		},
	}
}

// parseVersion accepts versions with or without a leading 'v'.
func parseVersion(s string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(s, "v"))
	if err != nil {
		return nil, fmt.Errorf("error parsing current version '%s': %w. Ensure version is like vX.Y.Z or X.Y.Z", s, err)
	}
	return v, nil
}

// parseRepositorySlug validates an 'owner/repo' source flag; empty selects the default.
func parseRepositorySlug(source string) (string, error) {
	if source == "" {
		return DefaultRepository, nil
	}
	parts := strings.Split(source, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("invalid --source format. Expected 'owner/repo', got: %s", source)
	}
	return source, nil
}

// confirm asks a y/N question on in and reports whether the answer was yes.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprint(out, question)
	input, _ := bufio.NewReader(in).ReadString('\n')
	return strings.TrimSpace(strings.ToLower(input)) == "y"
}

func updateAction(c *cli.Context) error {
	out := c.App.Writer
	currentVersionStr := c.App.Version
	verbose := c.Bool("verbose")

	if verbose {
		fmt.Fprintf(out, "dgst current version: %s\n", currentVersionStr)
	}

	currentSemVer, err := parseVersion(currentVersionStr)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	repoSlug, err := parseRepositorySlug(c.String("source"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if verbose {
		fmt.Fprintf(out, "Using GitHub source: %s\n", repoSlug)
	}

	ghSource, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error creating GitHub source: %v", err), 1)
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source: ghSource,
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to initialize updater: %v", err), 1)
	}

	if verbose {
		fmt.Fprintln(out, "Checking for latest version...")
	}

	latestRelease, found, err := updater.DetectLatest(c.Context, selfupdate.ParseSlug(repoSlug))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error detecting latest version: %v", err), 1)
	}

	if !found {
		fmt.Fprintf(out, "Current version %s is already the latest.\n", currentVersionStr)
		return nil
	}

	if verbose {
		fmt.Fprintf(out, "Latest version detected: %s (Release URL: %s)\n", latestRelease.Version(), latestRelease.URL)
		if latestRelease.ReleaseNotes != "" {
			fmt.Fprintf(out, "Release Notes:\n%s\n", latestRelease.ReleaseNotes)
		}
	}

	if !latestRelease.GreaterThan(currentSemVer.String()) {
		fmt.Fprintf(out, "Current version %s is already the latest or newer.\n", currentVersionStr)
		return nil
	}

	fmt.Fprintf(out, "New version available: %s (current: %s)\n", latestRelease.Version(), currentVersionStr)

	if c.Bool("check") {
		return nil
	}

	if !c.Bool("yes") && !confirm(c.App.Reader, out, "Do you want to update? (y/N): ") {
		fmt.Fprintln(out, "Update cancelled.")
		return nil
	}

	fmt.Fprintf(out, "Updating to %s...\n", latestRelease.Version())
	execPath, err := os.Executable()
	if err != nil {
		return cli.Exit(fmt.Sprintf("Could not get executable path: %v", err), 1)
	}

	if err := updater.UpdateTo(c.Context, latestRelease, execPath); err != nil {
		return cli.Exit(fmt.Sprintf("Failed to update: %v", err), 1)
	}

	fmt.Fprintf(out, "Successfully updated to version %s.\n", latestRelease.Version())
	return nil
}
