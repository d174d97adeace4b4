package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := DefaultConfig()
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "cellrules.db", cfg.Store.SQLite.Path)
	assert.Equal(t, "localhost:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, "default", cfg.Store.Redis.Namespace)
	assert.Equal(t, 0, cfg.Log.Verbosity)
}

func TestLoadFile(t *testing.T) {
	t.Chdir(t.TempDir())

	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[store]
driver = "redis"

[store.redis]
addr = "redis:6380"
db = 2
namespace = "lab"

[log]
verbosity = 2
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "redis:6380", cfg.Store.Redis.Addr)
	assert.Equal(t, 2, cfg.Store.Redis.DB)
	assert.Equal(t, "lab", cfg.Store.Redis.Namespace)
	assert.Equal(t, "cellrules.db", cfg.Store.SQLite.Path, "unset keys keep defaults")
	assert.Equal(t, 2, cfg.Log.Verbosity)
}

func TestLoadDefaultFileFromWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFile), []byte("[store.sqlite]\npath = \"rules.db\"\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "rules.db", cfg.Store.SQLite.Path)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CELLRULES_STORE__DRIVER", "redis")
	t.Setenv("CELLRULES_STORE__REDIS__NAMESPACE", "from-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "from-env", cfg.Store.Redis.Namespace)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := DefaultConfig()
	cfg.Store.Driver = "etcd"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Store.SQLite.Path = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Store.Driver = DriverRedis
	cfg.Store.Redis.Namespace = " "
	assert.Error(t, cfg.Validate())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "store.redis.addr", envKey("CELLRULES_STORE__REDIS__ADDR"))
	assert.Equal(t, "log.verbosity", envKey("CELLRULES_LOG__VERBOSITY"))
}
