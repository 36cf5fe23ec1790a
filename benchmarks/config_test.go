package benchmarks

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	file := path.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(file, []byte(contents), 0644))
	return file
}

func TestLoadRunConfig(t *testing.T) {
	file := writeConfig(t, `
episodes: 200
horizon: 25
runs: 3
save: out
seed: 0
redis: "localhost:6379"
`)
	cfg, err := LoadRunConfig(file)
	require.NoError(t, err)
	require.Equal(t, 200, cfg.Episodes)
	require.Equal(t, 25, cfg.Horizon)
	require.Equal(t, 3, cfg.Runs)
	require.Equal(t, "out", cfg.Save)
	require.NotNil(t, cfg.Seed)
	require.Equal(t, int64(0), *cfg.Seed)
	require.Equal(t, "localhost:6379", cfg.Redis)
}

func TestLoadRunConfigErrors(t *testing.T) {
	_, err := LoadRunConfig(path.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = LoadRunConfig(writeConfig(t, "episodes: [not, an, int]"))
	require.Error(t, err)
}

func TestApplyRunConfig(t *testing.T) {
	episodes, horizon, runs = 5000, 100, 1
	saveDir, seed, redisAddr = "results", -1, ""

	require.NoError(t, applyRunConfig(writeConfig(t, `
episodes: 42
seed: 7
`)))
	require.Equal(t, 42, episodes)
	require.Equal(t, int64(7), seed)

	// untouched flags keep their values
	require.Equal(t, 100, horizon)
	require.Equal(t, 1, runs)
	require.Equal(t, "results", saveDir)
	require.Equal(t, "", redisAddr)
}
