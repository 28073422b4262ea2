// Package etcd records build metadata in etcd.
package etcd

import (
	"context"
	"encoding/json"
	"io"

	"github.com/TopPano/providence-engine/internal/core/domain"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
)

const userAgent = "providence-engine"

// Store implements ports.MetadataStore on an etcd key-value API.
type Store struct {
	kv     clientv3.KV
	closer io.Closer
}

// New creates a Store on kv. The caller keeps ownership of kv.
func New(kv clientv3.KV) *Store {
	return &Store{kv: kv}
}

// Dial connects to the configured endpoints. Close releases the connection.
func Dial(cfg domain.EtcdConfig) (*Store, error) {
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: cfg.DialTimeout,
		DialOptions: []grpc.DialOption{grpc.WithUserAgent(userAgent)},
	})
	if err != nil {
		return nil, domain.Tag(domain.ErrMetadataStore, zerr.With(zerr.Wrap(err, "failed to connect to etcd"), "endpoints", cfg.Endpoints))
	}
	return &Store{kv: client, closer: client}, nil
}

// Put writes md as JSON under the build's metadata key.
func (s *Store) Put(ctx context.Context, id domain.BuildID, md domain.Metadata) error {
	key := domain.MetadataKey(id)

	data, err := json.Marshal(md)
	if err != nil {
		return domain.Tag(domain.ErrMetadataStore, zerr.Wrap(err, "failed to encode metadata"))
	}

	if _, err := s.kv.Put(ctx, key, string(data)); err != nil {
		return domain.Tag(domain.ErrMetadataStore, zerr.With(zerr.Wrap(err, "failed to write metadata"), "key", key))
	}
	return nil
}

// Get reads the metadata record of a build.
func (s *Store) Get(ctx context.Context, id domain.BuildID) (domain.Metadata, error) {
	key := domain.MetadataKey(id)

	resp, err := s.kv.Get(ctx, key)
	if err != nil {
		return domain.Metadata{}, domain.Tag(domain.ErrMetadataStore, zerr.With(zerr.Wrap(err, "failed to read metadata"), "key", key))
	}
	if len(resp.Kvs) == 0 {
		return domain.Metadata{}, domain.Tag(domain.ErrMetadataNotFound, zerr.With(zerr.New("no metadata record"), "key", key))
	}

	var md domain.Metadata
	if err := json.Unmarshal(resp.Kvs[0].Value, &md); err != nil {
		return domain.Metadata{}, domain.Tag(domain.ErrMetadataStore, zerr.With(zerr.Wrap(err, "failed to decode metadata"), "key", key))
	}
	return md, nil
}

// Close releases the connection opened by Dial.
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
