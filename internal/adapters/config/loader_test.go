package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/TopPano/providence-engine/internal/adapters/config"
	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
docker:
  socketPath: /var/run/docker.sock
  cli: /usr/local/bin/docker
registry:
  host: registry.example.com:5000
store:
  bucket: engines
  region: us-west-2
  endpoint: http://minio:9000
  accessKeyId: AKID
  accessSecretKey: SECRET
etcd:
  endpoints: [http://etcd-1:2379, http://etcd-2:2379]
  dialTimeout: 2s
nats:
  url: nats://bus:4222
  subject: controller.engine.dev
  queue: engine-workers
worker:
  maxConcurrentBuilds: 3
log:
  level: debug
  json: true
`)

	cfg, err := config.NewLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/run/docker.sock", cfg.Docker.SocketPath)
	assert.Equal(t, "/usr/local/bin/docker", cfg.Docker.CLI)
	assert.Equal(t, "registry.example.com:5000", cfg.Registry.Host)
	assert.Equal(t, domain.StoreConfig{
		Bucket:          "engines",
		Region:          "us-west-2",
		Endpoint:        "http://minio:9000",
		AccessKeyID:     "AKID",
		AccessSecretKey: "SECRET",
	}, cfg.Store)
	assert.Equal(t, []string{"http://etcd-1:2379", "http://etcd-2:2379"}, cfg.Etcd.Endpoints)
	assert.Equal(t, 2*time.Second, cfg.Etcd.DialTimeout)
	assert.Equal(t, "nats://bus:4222", cfg.NATS.URL)
	assert.Equal(t, "controller.engine.dev", cfg.NATS.Subject)
	assert.Equal(t, "engine-workers", cfg.NATS.Queue)
	assert.Equal(t, 3, cfg.Worker.MaxConcurrentBuilds)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	require.NoError(t, cfg.Validate())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
registry:
  host: localhost:5000
store:
  bucket: engines
`)

	cfg, err := config.NewLoader(path).Load()
	require.NoError(t, err)

	defaults := domain.DefaultConfig()
	assert.Equal(t, defaults.NATS, cfg.NATS)
	assert.Equal(t, defaults.Etcd, cfg.Etcd)
	assert.Equal(t, domain.DefaultDockerCLI, cfg.Docker.CLI)
	assert.Equal(t, 1, cfg.Worker.MaxConcurrentBuilds)
	assert.Equal(t, "localhost:5000", cfg.Registry.Host)
}

func TestLoad_EmptyValuesFallBack(t *testing.T) {
	path := writeConfig(t, `
docker:
  cli: ""
nats:
  subject: ""
`)

	cfg, err := config.NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDockerCLI, cfg.Docker.CLI)
	assert.Equal(t, domain.DefaultSubject, cfg.NATS.Subject)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := config.NewLoader(path).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigRead)
}

func TestLoad_DefaultMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	loader := config.NewLoader("")
	cfg, err := loader.Load()
	require.NoError(t, err)

	defaults := domain.DefaultConfig()
	assert.Equal(t, &defaults, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "registry: [unterminated")

	_, err := config.NewLoader(path).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigParse)
}

func TestLoad_WrongShape(t *testing.T) {
	path := writeConfig(t, "worker:\n  maxConcurrentBuilds: many\n")

	_, err := config.NewLoader(path).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigParse)
}

func TestPathContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, config.PathFrom(ctx))

	ctx = config.WithPath(ctx, "/etc/providence-engine.yaml")
	assert.Equal(t, "/etc/providence-engine.yaml", config.PathFrom(ctx))
	assert.Equal(t, "/etc/providence-engine.yaml", config.NewLoader(config.PathFrom(ctx)).Path())
}
