package selftest

import (
	stdsha256 "crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/dgst/internal/core/sha256"
)

// Vector is a message with its independently known digest. An empty Want
// means the digest is taken from crypto/sha256 at run time.
type Vector struct {
	Name    string
	Message []byte
	Want    string
}

// Result is the outcome of checking one Vector.
type Result struct {
	Vector
	Got       string
	Reference string
	Blocks    int
	Err       error
}

// Passed reports whether the digest matched both the literal and the reference.
func (r Result) Passed() bool {
	return r.Err == nil && r.Got == r.Reference && (r.Want == "" || r.Got == r.Want)
}

// Vectors returns the FIPS 180-4 examples, two plain-text messages and the
// padding boundary cases.
func Vectors() []Vector {
	return []Vector{
		{Name: "empty", Message: []byte{}, Want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{Name: "abc", Message: []byte("abc"), Want: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{Name: "448-bit", Message: []byte("abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq"), Want: "248d6a61d20638b8e5c026930c3e6039a33ce45964ff2167f6ecedd419db06c1"},
		{Name: "hello world", Message: []byte("Hello, world!"), Want: "315f5bdb76d078c43b8ac0064e4a0164612b1fce77c869345bfc94c75894edd3"},
		{Name: "larger input", Message: []byte("The quick brown fox jumps over the lazy dog. Extra data to make the input larger."), Want: "dc3744ceb54e0e24eb9f658d80bc6612d1c90d8acf9688f0cd3758b3ff3c7fdb"},
		{Name: "million a", Message: []byte(strings.Repeat("a", 1000000)), Want: "cdc76e5c9914fb9281a1c7e284d73e67f1809a48a497200e046d39ccc7112cd0"},
		{Name: "55 bytes", Message: []byte(strings.Repeat("a", 55))},
		{Name: "56 bytes", Message: []byte(strings.Repeat("a", 56))},
		{Name: "64 bytes", Message: []byte(strings.Repeat("a", 64))},
	}
}

// Run checks every vector against its literal digest and against crypto/sha256.
func Run(vectors []Vector) []Result {
	results := make([]Result, 0, len(vectors))
	for _, v := range vectors {
		ref := stdsha256.Sum256(v.Message)
		got, err := sha256.Digest(v.Message)
		results = append(results, Result{
			Vector:    v,
			Got:       got,
			Reference: hex.EncodeToString(ref[:]),
			Blocks:    sha256.BlockCount(len(v.Message)),
			Err:       err,
		})
	}
	return results
}

// SelfTestCmd defines the structure for the 'selftest' command.
var SelfTestCmd = &cli.Command{
	Name:  "selftest",
	Usage: "Checks the built-in SHA-256 against known vectors and crypto/sha256",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Print every digest",
		},
	},
	Action: func(c *cli.Context) error {
		passColor := color.New(color.FgGreen).SprintFunc()
		failColor := color.New(color.FgRed, color.Bold).SprintFunc()
		verbose := c.Bool("verbose")
		out := c.App.Writer

		failed := 0
		results := Run(Vectors())
		for _, r := range results {
			if r.Passed() {
				fmt.Fprintf(out, "%s %s (%d bytes, %d blocks)\n", passColor("PASS"), r.Name, len(r.Message), r.Blocks)
			} else {
				failed++
				fmt.Fprintf(out, "%s %s (%d bytes, %d blocks)\n", failColor("FAIL"), r.Name, len(r.Message), r.Blocks)
			}
			if r.Err != nil {
				fmt.Fprintf(out, "  error:     %v\n", r.Err)
				continue
			}
			if verbose || !r.Passed() {
				fmt.Fprintf(out, "  got:       %s\n", r.Got)
				fmt.Fprintf(out, "  reference: %s\n", r.Reference)
				if r.Want != "" {
					fmt.Fprintf(out, "  expected:  %s\n", r.Want)
				}
			}
		}

		if failed > 0 {
			return cli.Exit(fmt.Sprintf("Error: %d of %d vectors failed.", failed, len(results)), 1)
		}
		fmt.Fprintf(out, "All %d vectors passed.\n", len(results))
		return nil
	},
}
