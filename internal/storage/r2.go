package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Config holds the Cloudflare R2 bucket settings.
type R2Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	BaseURL   string
}

// R2ConfigFromEnv reads the R2_* variables. ok is false when any of them is
// missing, meaning image hosting is switched off.
func R2ConfigFromEnv() (cfg R2Config, ok bool) {
	cfg = R2Config{
		Endpoint:  os.Getenv("R2_ENDPOINT"),
		AccessKey: os.Getenv("R2_ACCESS_KEY"),
		SecretKey: os.Getenv("R2_SECRET_KEY"),
		Bucket:    os.Getenv("R2_BUCKET_NAME"),
		BaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}
	ok = cfg.Endpoint != "" &&
		cfg.AccessKey != "" &&
		cfg.SecretKey != "" &&
		cfg.Bucket != "" &&
		cfg.BaseURL != ""
	return cfg, ok
}

// objectPutter is the slice of the S3 API the client needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type R2Client struct {
	client  objectPutter
	bucket  string
	baseURL string
}

func NewR2Client(ctx context.Context, rc R2Config) (*R2Client, error) {
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				rc.AccessKey,
				rc.SecretKey,
				"",
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load r2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(rc.Endpoint)
		o.UsePathStyle = true
	})

	return newR2Client(client, rc.Bucket, rc.BaseURL), nil
}

func newR2Client(client objectPutter, bucket, baseURL string) *R2Client {
	return &R2Client{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload stores body under key and returns its public URL.
func (r *R2Client) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := r.client.PutObject(ctx, input); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", r.baseURL, key), nil
}
