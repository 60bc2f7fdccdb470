package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanOutputs(t *testing.T) {
	dir := t.TempDir()

	jobs, err := planOutputs([]string{"/data/a.pgm"}, "", "rotate", ".pgm")
	require.NoError(t, err)
	assert.Equal(t, []job{{"/data/a.pgm", "/data/a-rotate.pgm"}}, jobs)

	jobs, err = planOutputs([]string{"/data/a.pgm"}, "/tmp/out.png", "rotate", ".pgm")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out.png", jobs[0].out)

	out := filepath.Join(dir, "results")
	jobs, err = planOutputs([]string{"/x/a.pgm", "/y/b.ppm"}, out, "topng", ".png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "a.png"), jobs[0].out)
	assert.Equal(t, filepath.Join(out, "b.png"), jobs[1].out)
	assert.DirExists(t, out)

	_, err = planOutputs([]string{"/x/a.pgm", "/y/a.pgm"}, out, "invert", ".pgm")
	assert.Error(t, err, "two inputs with the same base name collide in one directory")
}
