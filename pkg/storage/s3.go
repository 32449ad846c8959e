// Package storage keeps uploaded resumes, profile pictures and
// introduction clips in S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"hireable-backend/internal/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Provider is the S3-compatible storage vendor.
type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderWasabi Provider = "wasabi"
	// ProviderCustom is any S3 API behind Endpoint (MinIO, Supabase storage, R2).
	ProviderCustom Provider = "custom"
)

// WasabiEndpoints maps regions to Wasabi endpoints
var WasabiEndpoints = map[string]string{
	"us-east-1":      "s3.us-east-1.wasabisys.com",
	"us-east-2":      "s3.us-east-2.wasabisys.com",
	"us-west-1":      "s3.us-west-1.wasabisys.com",
	"eu-central-1":   "s3.eu-central-1.wasabisys.com",
	"eu-west-1":      "s3.eu-west-1.wasabisys.com",
	"ap-southeast-1": "s3.ap-southeast-1.wasabisys.com",
	"ap-southeast-2": "s3.ap-southeast-2.wasabisys.com",
}

type Config struct {
	Provider        Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Endpoint        string
	// PublicBaseURL prefixes object URLs, e.g. a CDN. When empty the URL
	// is derived from the endpoint.
	PublicBaseURL string
	Buckets       map[domain.Bucket]string
}

// ObjectAPI is the part of the S3 client the store uses.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var ErrUnknownBucket = errors.New("storage: bucket not configured")

// S3Store implements domain.BlobStore.
type S3Store struct {
	api     ObjectAPI
	cfg     Config
	baseURL string
}

// NewS3Client builds the SDK client for cfg. Wasabi and custom endpoints
// use path-style addressing.
func NewS3Client(ctx context.Context, cfg Config) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	endpoint := resolveEndpoint(cfg)
	if endpoint == "" {
		return s3.NewFromConfig(awsCfg), nil
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}), nil
}

func resolveEndpoint(cfg Config) string {
	switch cfg.Provider {
	case ProviderWasabi:
		if cfg.Endpoint != "" {
			return withScheme(cfg.Endpoint)
		}
		if ep, ok := WasabiEndpoints[cfg.Region]; ok {
			return "https://" + ep
		}
		return "https://s3.ap-southeast-1.wasabisys.com"
	case ProviderCustom:
		return withScheme(cfg.Endpoint)
	}
	return ""
}

func withScheme(ep string) string {
	if ep == "" || strings.HasPrefix(ep, "http://") || strings.HasPrefix(ep, "https://") {
		return ep
	}
	return "https://" + ep
}

func NewS3Store(api ObjectAPI, cfg Config) *S3Store {
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		if ep := resolveEndpoint(cfg); ep != "" {
			base = strings.TrimRight(ep, "/")
		} else {
			base = fmt.Sprintf("https://s3.%s.amazonaws.com", cfg.Region)
		}
	}
	return &S3Store{api: api, cfg: cfg, baseURL: base}
}

func (s *S3Store) bucket(b domain.Bucket) (string, error) {
	name, ok := s.cfg.Buckets[b]
	if !ok || name == "" {
		return "", fmt.Errorf("%w: %s", ErrUnknownBucket, b)
	}
	return name, nil
}

// Put uploads data and returns its public URL.
func (s *S3Store) Put(ctx context.Context, b domain.Bucket, key, contentType string, data []byte) (string, error) {
	name, err := s.bucket(b)
	if err != nil {
		return "", err
	}
	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(name),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("put %s/%s: %w", name, key, err)
	}
	return s.URL(name, key), nil
}

func (s *S3Store) Delete(ctx context.Context, b domain.Bucket, key string) error {
	name, err := s.bucket(b)
	if err != nil {
		return err
	}
	if _, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(name),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete %s/%s: %w", name, key, err)
	}
	return nil
}

// URL is the public address of an object.
func (s *S3Store) URL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, bucket, key)
}
