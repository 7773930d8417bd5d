package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:5002", cfg.APIBaseURL)
	assert.Equal(t, 60*time.Second, cfg.Timeout())
	assert.Equal(t, 10*time.Second, cfg.SuccessDisplay())
	assert.Equal(t, "dark", cfg.Theme)
	assert.False(t, cfg.Demo)
}

func TestMergeConfigOverridesOnlyStoredFields(t *testing.T) {
	base := DefaultConfig()
	url := "http://backend:9000"
	timeout := 5
	stored := fileConfig{
		APIBaseURL:  &url,
		TimeoutSecs: &timeout,
	}

	merged := mergeConfig(base, stored)

	assert.Equal(t, "http://backend:9000", merged.APIBaseURL)
	assert.Equal(t, 5*time.Second, merged.Timeout())
	assert.Equal(t, base.Theme, merged.Theme)
	assert.Equal(t, base.SuccessDisplaySecs, merged.SuccessDisplaySecs)
}

func TestMergeConfigIgnoresNonPositiveDurations(t *testing.T) {
	base := DefaultConfig()
	zero := 0
	negative := -3
	stored := fileConfig{
		TimeoutSecs:        &zero,
		SuccessDisplaySecs: &negative,
	}

	merged := mergeConfig(base, stored)

	assert.Equal(t, base.TimeoutSecs, merged.TimeoutSecs)
	assert.Equal(t, base.SuccessDisplaySecs, merged.SuccessDisplaySecs)
}

func TestTimeoutFallbackForZeroValues(t *testing.T) {
	cfg := Config{}

	assert.Equal(t, 60*time.Second, cfg.Timeout())
	assert.Equal(t, 10*time.Second, cfg.SuccessDisplay())
}

func TestPersistedConfigDropsDemoOverride(t *testing.T) {
	loaded := DefaultConfig()
	effective := loaded
	effective.Demo = true
	effective.Theme = "light"

	saved := PersistedConfig(effective, loaded)

	assert.False(t, saved.Demo)
	assert.Equal(t, "light", saved.Theme)
	assert.Equal(t, loaded.APIBaseURL, saved.APIBaseURL)
}

func TestPersistedConfigKeepsStoredDemoSetting(t *testing.T) {
	loaded := DefaultConfig()
	loaded.Demo = true

	saved := PersistedConfig(loaded, loaded)

	assert.True(t, saved.Demo)
}
