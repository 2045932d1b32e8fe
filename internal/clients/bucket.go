package clients

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// BucketClient stores shared chat files and hands back publicly
// fetchable URLs. Upload failures are non-fatal to the caller: a message
// is simply sent without its attachment.
type BucketClient interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}

type BucketConfig struct {
	BucketName      string
	CDNDomain       string
	CredentialsFile string
}

type bucketClient struct {
	client     *storage.Client
	logger     *zap.Logger
	bucketName string
	cdnDomain  string
}

func NewBucketClient(ctx context.Context, cfg BucketConfig, logger *zap.Logger) (BucketClient, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("GCS_BUCKET_NAME is not set")
	}

	var (
		client *storage.Client
		err    error
	)
	if cfg.CredentialsFile != "" {
		client, err = storage.NewClient(ctx,
			option.WithCredentialsFile(cfg.CredentialsFile),
			option.WithScopes(storage.ScopeReadWrite))
	} else {
		// Fall back to application default credentials.
		client, err = storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
	}
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &bucketClient{
		client:     client,
		logger:     logger,
		bucketName: cfg.BucketName,
		cdnDomain:  cfg.CDNDomain,
	}, nil
}

func (b *bucketClient) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := b.client.Bucket(b.bucketName).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close object writer: %w", err)
	}

	return b.publicURL(key), nil
}

func (b *bucketClient) publicURL(key string) string {
	if b.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", b.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.bucketName, key)
}
