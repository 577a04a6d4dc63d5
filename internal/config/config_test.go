package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSchedulerConfig_Defaults(t *testing.T) {
	cfg, err := LoadSchedulerConfig()
	require.NoError(t, err)

	assert.Equal(t, int32(100), cfg.PopulationSize)
	assert.Equal(t, int32(100), cfg.MaxGenerations)
	assert.Equal(t, 0.3, cfg.CrossoverRate)
	assert.Equal(t, 0.2, cfg.MutationRate)
	assert.Equal(t, int32(5), cfg.HallOfFameSize)
	assert.Equal(t, int32(3), cfg.TournamentSize)
	assert.Equal(t, int32(50), cfg.Mu)
	assert.Equal(t, int32(100), cfg.Lambda)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.False(t, cfg.SymmetricCoveragePenalty)
}

func TestLoadSchedulerConfig_FromEnv(t *testing.T) {
	t.Setenv("SCHEDULER_POPULATION_SIZE", "20")
	t.Setenv("SCHEDULER_SEED", "42")
	t.Setenv("SCHEDULER_WORKERS", "4")
	t.Setenv("SCHEDULER_SYMMETRIC_COVERAGE_PENALTY", "true")

	cfg, err := LoadSchedulerConfig()
	require.NoError(t, err)

	assert.Equal(t, int32(20), cfg.PopulationSize)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, int32(4), cfg.Workers)
	assert.True(t, cfg.SymmetricCoveragePenalty)
}

func TestLoadSchedulerConfig_InvalidValue(t *testing.T) {
	t.Setenv("SCHEDULER_MUTATION_RATE", "often")

	_, err := LoadSchedulerConfig()
	assert.Error(t, err)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	_, err := LoadConfig()
	assert.Error(t, err)
}
