package bench

import (
	stdsha256 "crypto/sha256"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/dgst/internal/core/sha256"
)

// Measurement is the timing of one implementation over a workload.
type Measurement struct {
	Name    string
	Elapsed time.Duration
	Bytes   int64
}

// MBPerSecond returns throughput in MiB/s.
func (m Measurement) MBPerSecond() float64 {
	secs := m.Elapsed.Seconds()
	if secs == 0 {
		return 0
	}
	return float64(m.Bytes) / (1024 * 1024) / secs
}

// Run hashes a size-byte message of 'a' iterations times with this package
// and with crypto/sha256.
func Run(size, iterations int) ([]Measurement, error) {
	if size < 0 || iterations <= 0 {
		return nil, fmt.Errorf("size must be >= 0 and iterations > 0, got size=%d iterations=%d", size, iterations)
	}
	msg := make([]byte, size)
	for i := range msg {
		msg[i] = 'a'
	}
	total := int64(size) * int64(iterations)

	start := time.Now()
	custom, err := sha256.Sum(msg)
	if err != nil {
		return nil, err
	}
	for i := 1; i < iterations; i++ {
		if custom, err = sha256.Sum(msg); err != nil {
			return nil, err
		}
	}
	customElapsed := time.Since(start)

	start = time.Now()
	var ref [stdsha256.Size]byte
	for i := 0; i < iterations; i++ {
		ref = stdsha256.Sum256(msg)
	}
	refElapsed := time.Since(start)

	if custom != ref {
		return nil, fmt.Errorf("digest mismatch: dgst %x, crypto/sha256 %x", custom, ref)
	}

	return []Measurement{
		{Name: "dgst", Elapsed: customElapsed, Bytes: total},
		{Name: "crypto/sha256", Elapsed: refElapsed, Bytes: total},
	}, nil
}

// BenchCmd defines the structure for the 'bench' command.
var BenchCmd = &cli.Command{
	Name:  "bench",
	Usage: "Compares the built-in SHA-256 throughput with crypto/sha256",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "size",
			Usage: "Message size in bytes",
			Value: 1000,
		},
		&cli.IntFlag{
			Name:    "iterations",
			Aliases: []string{"n"},
			Usage:   "Number of messages to hash with each implementation",
			Value:   10000,
		},
	},
	Action: func(c *cli.Context) error {
		size, iterations := c.Int("size"), c.Int("iterations")
		measurements, err := Run(size, iterations)
		if err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}

		fmt.Fprintf(c.App.Writer, "Hashing %d x %d bytes\n", iterations, size)
		for _, m := range measurements {
			fmt.Fprintf(c.App.Writer, "%-14s time: %f seconds  speed: %f MB/sec\n", m.Name, m.Elapsed.Seconds(), m.MBPerSecond())
		}
		return nil
	},
}
