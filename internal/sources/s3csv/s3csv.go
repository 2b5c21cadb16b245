// Package s3csv reads catalog CSV files from an S3-compatible bucket
// (AWS S3 or MinIO), one object per collection kind below a prefix.
package s3csv

import (
	"context"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/agentstation/capmap/internal/sources/csvfiles"
	"github.com/agentstation/capmap/internal/sources/csvrows"
	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/normalize"
)

// API is the subset of the S3 client the source needs.
type API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Config holds construction parameters. Credentials come from the
// default AWS chain (environment, shared config, instance role).
type Config struct {
	Region    string
	Bucket    string
	Prefix    string
	Endpoint  string // optional, e.g. a MinIO URL
	PathStyle bool
}

// Source reads CSV objects from one bucket.
type Source struct {
	api    API
	bucket string
	prefix string
}

// New builds an S3 client from cfg and wraps it.
func New(ctx context.Context, cfg Config) (*Source, error) {
	if cfg.Bucket == "" {
		return nil, errors.NewValidationError("s3_bucket", cfg.Bucket, "bucket is required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, errors.NewConfigError("s3", "load AWS configuration", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewWithClient(client, cfg.Bucket, cfg.Prefix), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(api API, bucket, prefix string) *Source {
	return &Source{api: api, bucket: bucket, prefix: prefix}
}

// Name implements sources.RowSource.
func (s *Source) Name() string {
	return "s3"
}

// Key returns the object key for kind k.
func (s *Source) Key(k catalog.Kind) string {
	return path.Join(s.prefix, csvfiles.FileName(k))
}

// Rows implements sources.RowSource.
func (s *Source) Rows(ctx context.Context, k catalog.Kind) ([]normalize.Row, error) {
	key := s.Key(k)
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.WrapIO("fetch", "s3://"+s.bucket+"/"+key, err)
	}
	defer func() { _ = out.Body.Close() }()
	return csvrows.Decode(out.Body, key)
}
