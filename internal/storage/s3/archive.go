// Package s3 archives exported invoice documents in an S3-compatible bucket.
package s3

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pratik-mahalle/bizdesk/internal/config"
	"github.com/pratik-mahalle/bizdesk/internal/domain/invoice"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
)

// Archive implements invoice.Archive
type Archive struct {
	client *s3.Client
	bucket string
	prefix string
	now    func() time.Time
}

// New creates an archive for cfg.S3Bucket
func New(ctx context.Context, cfg config.StorageConfig) (*Archive, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.S3Region)}
	if cfg.S3AccessKey != "" && cfg.S3SecretKey != "" {
		// Static credentials for MinIO or explicit keys
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		o.UsePathStyle = cfg.S3PathStyle
	})

	return &Archive{
		client: client,
		bucket: cfg.S3Bucket,
		prefix: cfg.S3Prefix,
		now:    time.Now,
	}, nil
}

// Key builds <prefix><user>/<yyyy>/<mm>/<uuid>-<filename>
func (a *Archive) Key(userID int64, filename string) string {
	t := a.now().UTC()
	name := fmt.Sprintf("%s-%s", uuid.NewString(), path.Base(filename))
	return a.prefix + path.Join(fmt.Sprint(userID), t.Format("2006"), t.Format("01"), name)
}

// Put uploads doc and returns its object key
func (a *Archive) Put(ctx context.Context, userID int64, doc *invoice.Document) (string, error) {
	key := a.Key(userID, doc.Filename)
	sum := sha256.Sum256(doc.Data)

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(doc.Data),
		ContentType: aws.String(doc.ContentType),
		Metadata: map[string]string{
			"checksum-sha256": hex.EncodeToString(sum[:]),
			"user-id":         fmt.Sprint(userID),
		},
	})
	if err != nil {
		return "", errors.StorageError("Failed to archive document", err)
	}
	return key, nil
}
