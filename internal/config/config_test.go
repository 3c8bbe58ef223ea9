package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskledger/internal/model"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DriverFile, cfg.Store.Driver)
	assert.Equal(t, "data/tasks_database.json", cfg.Store.Path)
	assert.Equal(t, LocaleEN, cfg.Tasks.Locale)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskledger.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: "1"
store:
  driver: SQLite
tasks:
  locale: vi
  initial_status: "todo"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "data/tasks.db", cfg.Store.Path)

	labels, err := cfg.Tasks.Labels()
	require.NoError(t, err)
	assert.Equal(t, []model.Priority{"Thấp", "Trung bình", "Cao"}, labels.Priorities.Labels())
	assert.Equal(t, model.Status("todo"), labels.InitialStatus)
}

func TestLoadOptional_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadOptional(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Store, cfg.Store)
}

func TestLoadOptional_EnvOverrides(t *testing.T) {
	t.Setenv(EnvStoreDriver, "file")
	t.Setenv(EnvStorePath, "/tmp/x/tasks.yaml")
	t.Setenv(EnvLocale, "vi")

	cfg, err := LoadOptional("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x/tasks.yaml", cfg.Store.Path)
	assert.Equal(t, LocaleVI, cfg.Tasks.Locale)
}

func TestLoadOptional_DriverEnvResetsDefaultPath(t *testing.T) {
	t.Setenv(EnvStoreDriver, "sqlite")

	cfg, err := LoadOptional("")
	require.NoError(t, err)
	assert.Equal(t, "data/tasks.db", cfg.Store.Path)
}

func TestLoadOptional_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  driver: mongo\n"), 0o644))
	_, err := LoadOptional(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("store: [\n"), 0o644))
	_, err = LoadOptional(path)
	assert.Error(t, err)
}

func TestTasksLabels(t *testing.T) {
	labels, err := Tasks{}.Labels()
	require.NoError(t, err)
	assert.Equal(t, []model.Priority{"Low", "Medium", "High"}, labels.Priorities.Labels())
	assert.Equal(t, model.StatusIncomplete, labels.InitialStatus)

	labels, err = Tasks{Priorities: []string{"P3", "P2", "P1"}}.Labels()
	require.NoError(t, err)
	assert.Equal(t, []model.Priority{"P3", "P2", "P1"}, labels.Priorities.Labels())

	_, err = Tasks{Priorities: []string{"a", "b"}}.Labels()
	assert.Error(t, err)
	_, err = Tasks{Priorities: []string{"a", "a", "b"}}.Labels()
	assert.Error(t, err)
	_, err = Tasks{Locale: "fr"}.Labels()
	assert.Error(t, err)
}
