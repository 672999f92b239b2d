package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	level   int
	verbose bool
}

func (c *testConfig) setLevel(level int) error {
	if level < 0 {
		return errors.New("level cannot be negative")
	}
	c.level = level

	return nil
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg,
			New(func(c *testConfig) error { return c.setLevel(7) }),
			NoError(func(c *testConfig) { c.verbose = true }),
		)
		require.NoError(t, err)
		require.Equal(t, 7, cfg.level)
		require.True(t, cfg.verbose)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg,
			New(func(c *testConfig) error { return c.setLevel(-1) }),
			NoError(func(c *testConfig) { c.verbose = true }),
		)
		require.Error(t, err)
		require.False(t, cfg.verbose)
	})

	t.Run("no options is a no-op", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg))
	})
}
