package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LENAX/chain-engine/pkg/config"
	"github.com/LENAX/chain-engine/pkg/events"
)

func TestEngineBuilder_DefaultsWhenConfigMissing(t *testing.T) {
	eng, err := NewEngineBuilder(filepath.Join(t.TempDir(), "missing.yaml")).Build()
	require.NoError(t, err)
	defer eng.Stop()

	assert.False(t, eng.HistoryEnabled())
	assert.Equal(t, "chain-engine", eng.Config().ChainEngine.General.InstanceName)
}

func TestEngineBuilder_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	content := `chain-engine:
  general:
    instance_name: "builder-test"
  storage:
    database:
      type: "sqlite"
      dsn: "` + filepath.Join(dir, "history.db") + `"
    cache:
      enabled: true
  history:
    retention:
      enabled: true
      schedule: "@daily"
      max_age: 24h
  events:
    backend: "none"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	eng, err := NewEngineBuilder(path).Build()
	require.NoError(t, err)
	defer eng.Stop()

	assert.Equal(t, "builder-test", eng.Config().ChainEngine.General.InstanceName)
	assert.True(t, eng.HistoryEnabled())
	assert.NotNil(t, eng.cache)
	assert.NotNil(t, eng.retention)
}

func TestEngineBuilder_WithDependencies(t *testing.T) {
	repo := &memRepo{}
	bus := events.NewGoChannelBus(4, false)

	eng, err := NewEngineBuilder("").
		WithConfig(config.NewDefaultConfig()).
		WithRepository(repo).
		WithPublisher(bus).
		Build()
	require.NoError(t, err)

	assert.True(t, eng.HistoryEnabled())
	eng.Stop()
	assert.True(t, repo.closed)
}

func TestEngineBuilder_Errors(t *testing.T) {
	_, err := NewEngineBuilder("").WithRepository(nil).Build()
	assert.Error(t, err)

	_, err = NewEngineBuilder("").WithPublisher(nil).Build()
	assert.Error(t, err)

	_, err = NewEngineBuilder("").WithConfig(nil).Build()
	assert.Error(t, err)

	cfg := config.NewDefaultConfig()
	cfg.ChainEngine.Events.Backend = "kafka"
	_, err = NewEngineBuilder("").WithConfig(cfg).Build()
	assert.Error(t, err)
}
