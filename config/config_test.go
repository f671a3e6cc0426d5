package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosrod723/TSP-Optimization-Framework/config"
)

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, config.Default().Validate())
}

func TestValidate_Failures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   error
	}{
		{"zero small limit", func(c *config.Config) { c.TimeLimits.SmallInstance = 0 }, config.ErrBadTimeLimit},
		{"negative large limit", func(c *config.Config) { c.TimeLimits.LargeInstance = -time.Second }, config.ErrBadTimeLimit},
		{"zero memory", func(c *config.Config) { c.Resources.MaxMemoryBytes = 0 }, config.ErrBadResourceLimit},
		{"cpu over 100", func(c *config.Config) { c.Resources.MaxCPUPercent = 150 }, config.ErrBadResourceLimit},
		{"quality below 1", func(c *config.Config) { c.Performance.SolutionQualityThreshold = 0.9 }, config.ErrBadQualityThreshold},
		{"sizes not increasing", func(c *config.Config) { c.Sizes.Medium = c.Sizes.Small }, config.ErrBadSizeBoundaries},
		{"tiny threshold", func(c *config.Config) { c.Partitioning.DirectSolveThreshold = 1 }, config.ErrBadPartitioning},
		{"tiny target", func(c *config.Config) { c.Partitioning.TargetPartitionSize = 1 }, config.ErrBadPartitioning},
		{"zero max partitions", func(c *config.Config) { c.Partitioning.MaxPartitions = 0 }, config.ErrBadPartitioning},
		{"target above threshold", func(c *config.Config) {
			c.Partitioning.TargetPartitionSize = c.Partitioning.DirectSolveThreshold + 1
		}, config.ErrBadPartitioning},
		{"imbalance below 1", func(c *config.Config) { c.Partitioning.ImbalanceRatio = 0.5 }, config.ErrBadPartitioning},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := config.Default()
			tc.mutate(&c)
			assert.ErrorIs(t, c.Validate(), tc.want)
		})
	}
}

func TestTimeLimitFor_Categories(t *testing.T) {
	c := config.Default()

	assert.Equal(t, c.TimeLimits.SmallInstance, c.TimeLimitFor(1))
	assert.Equal(t, c.TimeLimits.SmallInstance, c.TimeLimitFor(c.Sizes.Small))
	assert.Equal(t, c.TimeLimits.MediumInstance, c.TimeLimitFor(c.Sizes.Small+1))
	assert.Equal(t, c.TimeLimits.MediumInstance, c.TimeLimitFor(c.Sizes.Medium))
	assert.Equal(t, c.TimeLimits.LargeInstance, c.TimeLimitFor(c.Sizes.Medium+1))
	assert.Equal(t, c.TimeLimits.LargeInstance, c.TimeLimitFor(1_000_000))
}
