// Package s3 stores engine packages in an S3-compatible blob store.
package s3

import (
	"bytes"
	"context"

	"github.com/TopPano/providence-engine/internal/core/domain"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"go.trai.ch/zerr"
)

// PutObjectAPI is the part of the S3 client the store uses.
type PutObjectAPI interface {
	PutObjectWithContext(ctx aws.Context, input *awss3.PutObjectInput, opts ...request.Option) (*awss3.PutObjectOutput, error)
}

// Store implements ports.ArtifactStore.
type Store struct {
	client PutObjectAPI
	bucket string
}

// New creates a Store writing to bucket.
func New(client PutObjectAPI, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// NewClient builds an S3 client from cfg. Static credentials are used when
// both keys are set; otherwise the SDK's default chain applies.
func NewClient(cfg domain.StoreConfig) (*awss3.S3, error) {
	awsCfg := aws.NewConfig()
	if cfg.Region != "" {
		awsCfg = awsCfg.WithRegion(cfg.Region)
	}
	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint).WithS3ForcePathStyle(true)
	}
	if cfg.AccessKeyID != "" && cfg.AccessSecretKey != "" {
		awsCfg = awsCfg.WithCredentials(credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.AccessSecretKey, ""))
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create s3 session")
	}
	return awss3.New(sess), nil
}

// Save uploads pkg under the build's artifact key and returns its location.
func (s *Store) Save(ctx context.Context, id domain.BuildID, pkg []byte) (domain.Artifact, error) {
	key := domain.ArtifactKey(id)

	out, err := s.client.PutObjectWithContext(ctx, &awss3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(pkg),
		ACL:          aws.String(awss3.ObjectCannedACLPrivate),
		ContentType:  aws.String(domain.ArtifactContentType),
		StorageClass: aws.String(awss3.StorageClassStandard),
	})
	if err != nil {
		return domain.Artifact{}, domain.Tag(domain.ErrStorage, zerr.With(zerr.With(zerr.Wrap(err, "failed to upload engine package"), "bucket", s.bucket), "key", key))
	}

	return domain.Artifact{Key: key, Etag: aws.StringValue(out.ETag)}, nil
}
