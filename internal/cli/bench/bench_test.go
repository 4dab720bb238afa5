package bench

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestRun(t *testing.T) {
	t.Parallel()
	ms, err := Run(100, 10)
	require.NoError(t, err)
	require.Len(t, ms, 2)
	assert.Equal(t, "dgst", ms[0].Name)
	assert.Equal(t, "crypto/sha256", ms[1].Name)
	for _, m := range ms {
		assert.Equal(t, int64(1000), m.Bytes)
	}
}

func TestRun_InvalidArguments(t *testing.T) {
	t.Parallel()
	_, err := Run(10, 0)
	assert.Error(t, err)
	_, err = Run(-1, 1)
	assert.Error(t, err)
}

func TestMeasurement_MBPerSecond(t *testing.T) {
	t.Parallel()
	m := Measurement{Elapsed: 2 * time.Second, Bytes: 4 * 1024 * 1024}
	assert.InDelta(t, 2.0, m.MBPerSecond(), 1e-9)
	assert.Zero(t, Measurement{Bytes: 10}.MBPerSecond())
}

func TestBenchCommand(t *testing.T) {
	var stdout bytes.Buffer
	app := &cli.App{
		Name:           "dgst",
		Writer:         &stdout,
		Commands:       []*cli.Command{BenchCmd},
		ExitErrHandler: func(_ *cli.Context, _ error) {},
	}

	require.NoError(t, app.Run([]string{"dgst", "bench", "--size", "64", "-n", "5"}))
	assert.Contains(t, stdout.String(), "Hashing 5 x 64 bytes")
	assert.Contains(t, stdout.String(), "crypto/sha256")
}
