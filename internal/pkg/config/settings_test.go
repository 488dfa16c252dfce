//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerSettingsValidation(t *testing.T) {
	consoleSettings := LoggerSettings{
		LogLevel: LogLevelInfo,
		LogType:  LogTypeConsole,
	}
	assert.NoError(t, consoleSettings.Validate())

	fileSettings := LoggerSettings{
		LogLevel:   LogLevelInfo,
		LogType:    LogTypeFile,
		FilePath:   "/tmp/metaqs.log",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     30,
	}
	assert.NoError(t, fileSettings.Validate())

	fileSettings.FilePath = ""
	assert.Error(t, fileSettings.Validate(), "File logger requires a path")

	badLevel := LoggerSettings{LogLevel: "verbose", LogType: LogTypeConsole}
	assert.Error(t, badLevel.Validate())
}

func TestDatabaseSettingsValidation(t *testing.T) {
	sqlite := DatabaseSettings{Type: SqliteDbType}
	assert.NoError(t, sqlite.Validate(), "SQLite without a DSN falls back to in-memory")

	postgres := DatabaseSettings{Type: PostgresDbType}
	assert.Error(t, postgres.Validate(), "Postgres requires a DSN")

	postgres.DSN = "user=postgres host=localhost"
	assert.NoError(t, postgres.Validate())

	unknown := DatabaseSettings{Type: "oracle"}
	assert.Error(t, unknown.Validate())
}

func TestElasticsearchSettingsDefaults(t *testing.T) {
	settings := ElasticsearchSettings{
		Addresses: []string{"http://localhost:9200"},
	}
	require.NoError(t, settings.Validate())

	settings.ApplyDefaults()
	assert.Equal(t, DefaultWorkspaceIndex, settings.WorkspaceIndex)
	assert.Equal(t, DefaultAnalyticsIndex, settings.AnalyticsIndex)
	assert.Equal(t, 30*time.Second, settings.Backoff())

	settings.WorkspaceIndex = "custom"
	settings.ApplyDefaults()
	assert.Equal(t, "custom", settings.WorkspaceIndex, "Set values survive ApplyDefaults")
}

func TestElasticsearchSettingsValidation(t *testing.T) {
	empty := ElasticsearchSettings{}
	assert.Error(t, empty.Validate(), "At least one address is required")

	badURL := ElasticsearchSettings{Addresses: []string{"not a url"}}
	assert.Error(t, badURL.Validate())
}

func TestEduSharingSettingsValidation(t *testing.T) {
	valid := EduSharingSettings{
		BaseURL:          "https://redaktion.openeduhub.net/edu-sharing",
		RootCollectionID: "root-1",
	}
	assert.NoError(t, valid.Validate())

	missingRoot := EduSharingSettings{BaseURL: "https://redaktion.openeduhub.net/edu-sharing"}
	assert.Error(t, missingRoot.Validate())
}

func TestCacheSettingsValidation(t *testing.T) {
	database := CacheSettings{Store: CacheStoreDatabase}
	assert.NoError(t, database.Validate())

	redisWithoutAddr := CacheSettings{Store: CacheStoreRedis}
	assert.Error(t, redisWithoutAddr.Validate(), "Redis store requires an address")

	redis := CacheSettings{Store: CacheStoreRedis, Redis: RedisSettings{Addr: "localhost:6379"}}
	assert.NoError(t, redis.Validate())

	unknown := CacheSettings{Store: "memcached"}
	assert.Error(t, unknown.Validate())
}

func TestInitializeRestConfig(t *testing.T) {
	configYAML := `
port: "8080"
logger:
  log_level: info
  log_type: console
database:
  type: sqlite
elasticsearch:
  addresses:
    - http://localhost:9200
edu_sharing:
  base_url: https://redaktion.openeduhub.net/edu-sharing
  root_collection_id: root-1
cache:
  store: database
`

	configPath := filepath.Join(t.TempDir(), "rest-app.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configYAML), 0600))

	cfg, err := InitializeRestConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultWorkspaceIndex, cfg.Elasticsearch.WorkspaceIndex, "Index defaults are applied")
	assert.Equal(t, DefaultAnalyticsIndex, cfg.Elasticsearch.AnalyticsIndex)
	assert.Equal(t, CacheStoreDatabase, cfg.Cache.Store)
}

func TestInitializeRestConfig_MissingFile(t *testing.T) {
	_, err := InitializeRestConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInitializeRestConfig_InvalidConfig(t *testing.T) {
	configYAML := `
port: "8080"
logger:
  log_level: info
  log_type: console
database:
  type: sqlite
elasticsearch:
  addresses: []
edu_sharing:
  base_url: https://redaktion.openeduhub.net/edu-sharing
  root_collection_id: root-1
cache:
  store: database
`

	configPath := filepath.Join(t.TempDir(), "rest-app.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(configYAML), 0600))

	_, err := InitializeRestConfig(configPath)
	assert.Error(t, err, "Empty address list fails validation")
}
