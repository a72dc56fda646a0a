package options

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*Options, error) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	return Parse(fs, args)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glrender.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	opts, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, 500, *opts.Width)
	assert.Equal(t, 500, *opts.Height)
	assert.Equal(t, "glrender", *opts.Title)
	assert.False(t, *opts.Headless)
	assert.Equal(t, 0, *opts.Frames)
	assert.Equal(t, "", *opts.Record)
	assert.Equal(t, "h264", *opts.Codec)
}

func TestConfigFileFillsUnsetFlags(t *testing.T) {
	path := writeConfig(t, `
width = 1280
height = 720
title = "from file"
frames = 30
record = "out.mp4"
`)
	opts, err := parse(t, "-config", path, "-width", "640")
	require.NoError(t, err)
	assert.Equal(t, 640, *opts.Width, "explicit flag wins over the file")
	assert.Equal(t, 720, *opts.Height)
	assert.Equal(t, "from file", *opts.Title)
	assert.Equal(t, 30, *opts.Frames)
	assert.Equal(t, "out.mp4", *opts.Record)
	assert.Equal(t, 60, *opts.FPS, "keys missing from the file keep their defaults")
}

func TestConfigFileErrors(t *testing.T) {
	_, err := parse(t, "-config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := writeConfig(t, "width = \"wide\"")
	_, err = parse(t, "-config", path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	_, err := parse(t, "-width", "0")
	assert.ErrorContains(t, err, "window size")

	_, err = parse(t, "-frames", "-1")
	assert.ErrorContains(t, err, "frames")

	_, err = parse(t, "-record", "out.mp4", "-fps", "0")
	assert.ErrorContains(t, err, "fps")

	_, err = parse(t, "-codec", "vp9")
	assert.ErrorContains(t, err, "codec")
}
