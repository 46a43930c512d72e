package mediamirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/config"
	"github.com/deikotec/socialflow/internal/infrastructure/metrics"
)

var errS3Disabled = errors.New("media mirror bucket is not configured; set MEDIA_S3_* to enable")

// S3Mirror copies media into an S3-compatible bucket and hands out presigned GET URLs.
type S3Mirror struct {
	bucket  string
	ttl     time.Duration
	client  *s3.Client
	presign *s3.PresignClient
	log     zerolog.Logger
}

func NewS3Mirror(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*S3Mirror, error) {
	logger := log.With().Str("component", "s3-mirror").Logger()
	mirror := &S3Mirror{
		bucket: strings.TrimSpace(cfg.S3Bucket),
		ttl:    cfg.MediaPresignTTL,
		log:    logger,
	}

	accessKey := strings.TrimSpace(cfg.S3AccessKeyID)
	secretKey := strings.TrimSpace(cfg.S3SecretKey)
	if mirror.bucket == "" || accessKey == "" || secretKey == "" {
		return nil, errS3Disabled
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3UsePathStyle
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
	})

	mirror.client = client
	mirror.presign = s3.NewPresignClient(client)
	return mirror, nil
}

// Mirror uploads body under key and returns a presigned URL valid for the configured TTL.
func (m *S3Mirror) Mirror(ctx context.Context, key, mimeType string, body io.Reader) (string, error) {
	start := time.Now()
	input := &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(mimeType),
	}
	if _, err := m.client.PutObject(ctx, input); err != nil {
		metrics.RecordMirror("s3", false, time.Since(start).Seconds())
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	req, err := m.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(m.ttl))
	if err != nil {
		metrics.RecordMirror("s3", false, time.Since(start).Seconds())
		return "", fmt.Errorf("presign %s: %w", key, err)
	}

	metrics.RecordMirror("s3", true, time.Since(start).Seconds())
	m.log.Debug().Str("key", key).Msg("media mirrored")
	return req.URL, nil
}

// Health checks bucket access.
func (m *S3Mirror) Health(ctx context.Context) error {
	_, err := m.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(m.bucket)})
	return err
}
