// Package avatars publishes local profile pictures to S3-compatible storage
// so that the remote API receives a URL instead of a device path.
package avatars

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// ErrNotConfigured is returned by New when no bucket is set.
var ErrNotConfigured = errors.New("avatar storage not configured")

// Uploader turns a local image reference into a public URL.
type Uploader interface {
	Upload(ctx context.Context, ref string) (string, error)
}

// Options configures S3Uploader. Only Bucket is mandatory; the default AWS
// credential chain is used unless both keys are set.
type Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	PublicURL string
	AccessKey string
	SecretKey string
}

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores avatars under "avatars/<year>/<month>/<uuid><ext>".
type S3Uploader struct {
	s3        objectPutter
	bucket    string
	publicURL string
	now       func() time.Time
}

// New builds an uploader from opts.
func New(ctx context.Context, opts Options) (*S3Uploader, error) {
	if opts.Bucket == "" {
		return nil, ErrNotConfigured
	}

	loaders := []func(*config.LoadOptions) error{}
	if opts.Region != "" {
		loaders = append(loaders, config.WithRegion(opts.Region))
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newUploader(client, opts), nil
}

func newUploader(putter objectPutter, opts Options) *S3Uploader {
	public := strings.TrimSuffix(opts.PublicURL, "/")
	if public == "" {
		switch {
		case opts.Endpoint != "":
			public = strings.TrimSuffix(opts.Endpoint, "/") + "/" + opts.Bucket
		default:
			public = fmt.Sprintf("https://%s.s3.amazonaws.com", opts.Bucket)
		}
	}
	return &S3Uploader{s3: putter, bucket: opts.Bucket, publicURL: public, now: time.Now}
}

// IsRemote reports whether ref already points to an http(s) resource.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Upload sends the file at ref and returns its public URL. Remote
// references are returned unchanged.
func (u *S3Uploader) Upload(ctx context.Context, ref string) (string, error) {
	if IsRemote(ref) {
		return ref, nil
	}

	f, err := os.Open(ref)
	if err != nil {
		return "", fmt.Errorf("failed to open avatar: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(ref))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	d := u.now()
	key := fmt.Sprintf("avatars/%d/%02d/%s%s", d.Year(), d.Month(), uuid.NewString(), ext)

	_, err = u.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	return u.publicURL + "/" + key, nil
}
