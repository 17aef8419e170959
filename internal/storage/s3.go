package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
)

// S3Options configures the S3-backed blob store.
type S3Options struct {
	Bucket  string
	Region  string
	BaseURL string
	Logger  zerolog.Logger
}

// S3Store implements BlobStore on top of S3-compatible object storage.
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
	logger  zerolog.Logger
}

// NewS3Store builds a store using the default AWS credential chain.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, errors.New("storage: s3 bucket is required")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}
	return &S3Store{
		client:  s3.NewFromConfig(cfg),
		bucket:  opts.Bucket,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		logger:  opts.Logger.With().Str("component", "s3").Str("bucket", opts.Bucket).Logger(),
	}, nil
}

// NewS3StoreWithClient injects a preconfigured client, used by tests.
func NewS3StoreWithClient(client *s3.Client, bucket, baseURL string, logger zerolog.Logger) *S3Store {
	return &S3Store{client: client, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/"), logger: logger}
}

// List returns every object under the prefix, following pagination.
func (s *S3Store) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	var objects []ObjectInfo
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("storage: list %q: %w", prefix, err)
		}
		for _, obj := range page.Contents {
			info := ObjectInfo{Name: aws.ToString(obj.Key), Size: aws.ToInt64(obj.Size)}
			if obj.LastModified != nil {
				info.LastModified = *obj.LastModified
			}
			objects = append(objects, info)
		}
	}
	return objects, nil
}

// Upload stores the local file under remoteName with a detected content type.
func (s *S3Store) Upload(ctx context.Context, localPath, remoteName string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("storage: open %s: %w", localPath, err)
	}
	defer f.Close()

	contentType := "application/octet-stream"
	if mt, err := mimetype.DetectFile(localPath); err == nil {
		contentType = mt.String()
	}

	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(remoteName),
		Body:        f,
		ContentType: aws.String(contentType),
	}); err != nil {
		return "", fmt.Errorf("storage: upload %s: %w", remoteName, err)
	}

	url := s.objectURL(remoteName)
	s.logger.Info().Str("key", remoteName).Str("url", url).Msg("uploaded object")
	return url, nil
}

// Download fetches remoteName into localPath, creating parent directories.
func (s *S3Store) Download(ctx context.Context, remoteName, localPath string) error {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(remoteName),
	})
	if err != nil {
		return fmt.Errorf("storage: download %s: %w", remoteName, err)
	}
	defer out.Body.Close()

	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("storage: ensure directory: %w", err)
	}
	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("storage: create %s: %w", localPath, err)
	}
	defer f.Close()
	if _, err := f.ReadFrom(out.Body); err != nil {
		return fmt.Errorf("storage: write %s: %w", localPath, err)
	}
	return nil
}

func (s *S3Store) objectURL(key string) string {
	if s.baseURL != "" {
		return s.baseURL + "/" + key
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key)
}

var _ BlobStore = (*S3Store)(nil)
