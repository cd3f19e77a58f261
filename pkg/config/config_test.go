package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 0.33, cfg.TrainFraction)
	assert.Equal(t, "classe", cfg.LabelField)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
seed: 99
train_fraction: 0.5
forest:
  trees: 10
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, 0.5, cfg.TrainFraction)
	assert.Equal(t, 10, cfg.Forest.Trees)
	// Untouched fields keep their defaults.
	assert.Equal(t, Default().Sources.Training, cfg.Sources.Training)
	assert.Equal(t, Default().Boosting.Rounds, cfg.Boosting.Rounds)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.TrainFraction = 1.0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LabelField = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Boosting.LearningRate = 0
	assert.Error(t, cfg.Validate())
}
