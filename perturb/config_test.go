package perturb_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/katalvlaran/lvmds/perturb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestLoadOptions_Full decodes every supported key.
func TestLoadOptions_Full(t *testing.T) {
	src := `
radius: 0.5
percent: 0.8
seed: 42
workers: 4
reduction: scratch
scratch_capacity: 256
metrics: true
`
	opts, err := perturb.LoadOptions(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 0.5, opts.Radius)
	assert.Equal(t, 0.8, opts.Percent)
	assert.Equal(t, int64(42), opts.Seed)
	assert.Equal(t, 4, opts.Workers)
	assert.Equal(t, perturb.ReduceScratch, opts.Reduction)
	require.NotNil(t, opts.Scratch)
	assert.Equal(t, 256, opts.Scratch.Cap())
	assert.True(t, opts.Metrics)

	_, err = perturb.NewEngine(opts)
	assert.NoError(t, err)
}

// TestLoadOptions_Defaults: missing keys keep DefaultOptions values.
func TestLoadOptions_Defaults(t *testing.T) {
	opts, err := perturb.LoadOptions(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, perturb.DefaultRadius, opts.Radius)
	assert.Equal(t, perturb.DefaultPercent, opts.Percent)
	assert.Equal(t, runtime.GOMAXPROCS(0), opts.Workers)
	assert.Equal(t, perturb.ReduceLocked, opts.Reduction)

	opts, err = perturb.LoadOptions(strings.NewReader("radius: 0.25\n"))
	require.NoError(t, err)
	assert.Equal(t, 0.25, opts.Radius)
	assert.Equal(t, perturb.DefaultPercent, opts.Percent)
}

// TestLoadOptions_Errors covers decode and validation failures.
func TestLoadOptions_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"bad percent", "percent: 2\n", perturb.ErrInvalidPercent},
		{"bad radius", "radius: -1\n", perturb.ErrInvalidRadius},
		{"bad reduction", "reduction: fastest\n", perturb.ErrUnknownReduction},
		{"scratch without capacity", "reduction: scratch\n", perturb.ErrNilScratch},
		{"negative capacity", "reduction: scratch\nscratch_capacity: -3\n", perturb.ErrInvalidCapacity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := perturb.LoadOptions(strings.NewReader(tc.src))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := perturb.LoadOptions(strings.NewReader("radios: 1\n"))
	assert.Error(t, err, "unknown keys are rejected")
}

// TestLoadOptionsFile reads options from disk.
func TestLoadOptionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "perturb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 9\nworkers: 2\n"), 0o600))

	opts, err := perturb.LoadOptionsFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(9), opts.Seed)
	assert.Equal(t, 2, opts.Workers)

	_, err = perturb.LoadOptionsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// TestReduction_TextForms covers String, ParseReduction and YAML round-trip.
func TestReduction_TextForms(t *testing.T) {
	assert.Equal(t, "locked", perturb.ReduceLocked.String())
	assert.Equal(t, "scratch", perturb.ReduceScratch.String())
	assert.Equal(t, "Reduction(7)", perturb.Reduction(7).String())

	r, err := perturb.ParseReduction(" Scratch ")
	require.NoError(t, err)
	assert.Equal(t, perturb.ReduceScratch, r)

	out, err := yaml.Marshal(map[string]perturb.Reduction{"reduction": perturb.ReduceScratch})
	require.NoError(t, err)
	assert.Equal(t, "reduction: scratch\n", string(out))
}
