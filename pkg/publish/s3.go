// Package publish uploads rendered images to an S3-compatible bucket.
package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"quadcheck/pkg/config"
)

// DefaultTimeout bounds a single upload when the config leaves it unset
const DefaultTimeout = 10 * time.Second

// Uploader stores an object under key
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

// S3Publisher uploads objects with PutObject
type S3Publisher struct {
	client  s3iface.S3API
	bucket  string
	prefix  string
	acl     string
	timeout time.Duration
}

// NewS3Publisher builds a client from the upload section. Static
// credentials are used when both keys are set; otherwise the SDK's
// default chain applies.
func NewS3Publisher(cfg config.UploadConfig) (*S3Publisher, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is not set")
	}

	s3Config := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		s3Config.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		s3Config.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return newS3Publisher(s3.New(sess), cfg), nil
}

func newS3Publisher(client s3iface.S3API, cfg config.UploadConfig) *S3Publisher {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &S3Publisher{
		client:  client,
		bucket:  cfg.Bucket,
		prefix:  cfg.Prefix,
		acl:     cfg.ACL,
		timeout: timeout,
	}
}

// Key joins the configured prefix and name into an object key
func (p *S3Publisher) Key(name string) string {
	return ObjectKey(p.prefix, name)
}

// ObjectKey joins prefix and name with single slashes and no leading one
func ObjectKey(prefix, name string) string {
	return strings.TrimPrefix(path.Join(prefix, name), "/")
}

// Upload implements Uploader
func (p *S3Publisher) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	}
	if p.acl != "" {
		input.ACL = aws.String(p.acl)
	}

	if _, err := p.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}
