// Package config loads the worker configuration from a YAML file.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/adrg/xdg"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	appDirName     = "providence-engine"
	configFileName = "config.yaml"
)

// File is the on-disk representation of the worker configuration.
type File struct {
	Docker   DockerDTO   `yaml:"docker"`
	Registry RegistryDTO `yaml:"registry"`
	Store    StoreDTO    `yaml:"store"`
	Etcd     EtcdDTO     `yaml:"etcd"`
	NATS     NATSDTO     `yaml:"nats"`
	Worker   WorkerDTO   `yaml:"worker"`
	Log      LogDTO      `yaml:"log"`
}

// DockerDTO mirrors domain.DockerConfig.
type DockerDTO struct {
	SocketPath string `yaml:"socketPath"`
	Host       string `yaml:"host"`
	CLI        string `yaml:"cli"`
}

// RegistryDTO mirrors domain.RegistryConfig.
type RegistryDTO struct {
	Host string `yaml:"host"`
}

// StoreDTO mirrors domain.StoreConfig.
type StoreDTO struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"accessKeyId"`
	AccessSecretKey string `yaml:"accessSecretKey"`
}

// EtcdDTO mirrors domain.EtcdConfig.
type EtcdDTO struct {
	Endpoints   []string      `yaml:"endpoints"`
	DialTimeout time.Duration `yaml:"dialTimeout"`
}

// NATSDTO mirrors domain.NATSConfig.
type NATSDTO struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
	Queue   string `yaml:"queue"`
}

// WorkerDTO mirrors domain.WorkerConfig.
type WorkerDTO struct {
	MaxConcurrentBuilds int `yaml:"maxConcurrentBuilds"`
}

// LogDTO mirrors domain.LogConfig.
type LogDTO struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DefaultPath returns the configuration file location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appDirName, configFileName)
}

// Loader reads the worker configuration.
type Loader struct {
	path     string
	explicit bool
}

// NewLoader creates a loader for path. An empty path selects DefaultPath,
// and a missing default file yields the built-in defaults.
func NewLoader(path string) *Loader {
	if path == "" {
		return &Loader{path: DefaultPath()}
	}
	return &Loader{path: path, explicit: true}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string {
	return l.path
}

// Load reads and decodes the configuration file.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(l.path) //nolint:gosec // path is provided by the operator
	if err != nil {
		if !l.explicit && errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, domain.Tag(domain.ErrConfigRead, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", l.path))
	}

	return Parse(data)
}

// Parse decodes YAML data on top of the built-in defaults.
func Parse(data []byte) (*domain.Config, error) {
	file := fromDomain(domain.DefaultConfig())
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, domain.Tag(domain.ErrConfigParse, zerr.Wrap(err, "failed to parse config file"))
	}

	cfg := file.toDomain()
	return &cfg, nil
}

func fromDomain(c domain.Config) File {
	return File{
		Docker: DockerDTO{SocketPath: c.Docker.SocketPath, Host: c.Docker.Host, CLI: c.Docker.CLI},
		Registry: RegistryDTO{Host: c.Registry.Host},
		Store: StoreDTO{
			Bucket:          c.Store.Bucket,
			Region:          c.Store.Region,
			Endpoint:        c.Store.Endpoint,
			AccessKeyID:     c.Store.AccessKeyID,
			AccessSecretKey: c.Store.AccessSecretKey,
		},
		Etcd:   EtcdDTO{Endpoints: c.Etcd.Endpoints, DialTimeout: c.Etcd.DialTimeout},
		NATS:   NATSDTO{URL: c.NATS.URL, Subject: c.NATS.Subject, Queue: c.NATS.Queue},
		Worker: WorkerDTO{MaxConcurrentBuilds: c.Worker.MaxConcurrentBuilds},
		Log:    LogDTO{Level: c.Log.Level, JSON: c.Log.JSON},
	}
}

func (f *File) toDomain() domain.Config {
	cfg := domain.Config{
		Docker:   domain.DockerConfig{SocketPath: f.Docker.SocketPath, Host: f.Docker.Host, CLI: f.Docker.CLI},
		Registry: domain.RegistryConfig{Host: f.Registry.Host},
		Store: domain.StoreConfig{
			Bucket:          f.Store.Bucket,
			Region:          f.Store.Region,
			Endpoint:        f.Store.Endpoint,
			AccessKeyID:     f.Store.AccessKeyID,
			AccessSecretKey: f.Store.AccessSecretKey,
		},
		Etcd:   domain.EtcdConfig{Endpoints: f.Etcd.Endpoints, DialTimeout: f.Etcd.DialTimeout},
		NATS:   domain.NATSConfig{URL: f.NATS.URL, Subject: f.NATS.Subject, Queue: f.NATS.Queue},
		Worker: domain.WorkerConfig{MaxConcurrentBuilds: f.Worker.MaxConcurrentBuilds},
		Log:    domain.LogConfig{Level: f.Log.Level, JSON: f.Log.JSON},
	}

	// Empty values in the file fall back to the defaults.
	if cfg.Docker.CLI == "" {
		cfg.Docker.CLI = domain.DefaultDockerCLI
	}
	if cfg.NATS.Subject == "" {
		cfg.NATS.Subject = domain.DefaultSubject
	}
	if cfg.Etcd.DialTimeout <= 0 {
		cfg.Etcd.DialTimeout = domain.DefaultEtcdDialTimeout
	}
	return cfg
}

type pathKey struct{}

// WithPath returns a context carrying the configuration file path chosen on
// the command line. The config node reads it when resolving.
func WithPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, pathKey{}, path)
}

// PathFrom returns the path stored by WithPath, or "".
func PathFrom(ctx context.Context) string {
	p, _ := ctx.Value(pathKey{}).(string)
	return p
}
