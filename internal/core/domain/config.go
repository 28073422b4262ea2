package domain

import (
	"time"

	"go.trai.ch/zerr"
)

const (
	// DefaultSubject is the bus subject the worker listens on for controller messages.
	DefaultSubject = "controller.engine"

	// DefaultDockerCLI is the executable used to push images.
	DefaultDockerCLI = "docker"

	// DefaultEtcdDialTimeout bounds the initial connection to the metadata store.
	DefaultEtcdDialTimeout = 5 * time.Second
)

// Config is the worker configuration.
type Config struct {
	Docker   DockerConfig
	Registry RegistryConfig
	Store    StoreConfig
	Etcd     EtcdConfig
	NATS     NATSConfig
	Worker   WorkerConfig
	Log      LogConfig
}

// DockerConfig selects the local container engine.
type DockerConfig struct {
	// SocketPath takes precedence over Host. When both are empty the
	// DOCKER_HOST environment is used.
	SocketPath string
	Host       string
	// CLI is the docker executable used for pushes.
	CLI string
}

// RegistryConfig names the registry images are tagged for.
type RegistryConfig struct {
	Host string
}

// StoreConfig configures the blob store.
type StoreConfig struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	AccessSecretKey string
}

// EtcdConfig configures the metadata store.
type EtcdConfig struct {
	Endpoints   []string
	DialTimeout time.Duration
}

// NATSConfig configures the message bus.
type NATSConfig struct {
	URL     string
	Subject string
	Queue   string
}

// WorkerConfig bounds the worker's concurrency.
type WorkerConfig struct {
	MaxConcurrentBuilds int
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string
	JSON  bool
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Docker: DockerConfig{CLI: DefaultDockerCLI},
		Etcd: EtcdConfig{
			Endpoints:   []string{"http://127.0.0.1:2379"},
			DialTimeout: DefaultEtcdDialTimeout,
		},
		NATS:   NATSConfig{URL: "nats://127.0.0.1:4222", Subject: DefaultSubject},
		Worker: WorkerConfig{MaxConcurrentBuilds: 1},
		Log:    LogConfig{Level: "info"},
	}
}

// Validate checks the values a build needs.
func (c *Config) Validate() error {
	if c.Registry.Host == "" {
		return zerr.With(ErrConfigInvalid, "field", "registry.host")
	}
	if c.Store.Bucket == "" {
		return zerr.With(ErrConfigInvalid, "field", "store.bucket")
	}
	if c.Worker.MaxConcurrentBuilds < 1 {
		return zerr.With(ErrConfigInvalid, "field", "worker.maxConcurrentBuilds")
	}
	return nil
}
