package media

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/gamingclub/internal/logging"
	"github.com/dmitrijs2005/gamingclub/internal/netx"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

const (
	uploadURLTTL = 15 * time.Minute
	// SigV4 caps presigned URLs at seven days.
	imageURLTTL = 7 * 24 * time.Hour
)

type S3Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// S3Encoder uploads images to an S3 compatible bucket (MinIO works) via a
// presigned PUT and returns a presigned GET URL.
type S3Encoder struct {
	opts   S3Options
	client netx.Client
	now    func() time.Time
	logger logging.Logger
}

func NewS3Encoder(opts S3Options, client netx.Client, logger logging.Logger) *S3Encoder {
	return &S3Encoder{
		opts:   opts,
		client: client,
		now:    time.Now,
		logger: logger.With("component", "s3"),
	}
}

func (e *S3Encoder) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(e.opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			e.opts.AccessKey,
			e.opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if e.opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(e.opts.Endpoint)
		}
		o.UsePathStyle = true
	})
	return s3.NewPresignClient(client), nil
}

// objectKey returns products/<yyyy>/<mm>/<uuid><ext>.
func (e *S3Encoder) objectKey(name, contentType string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	d := e.now().UTC()
	return fmt.Sprintf("products/%04d/%02d/%s%s", d.Year(), int(d.Month()), uuid.NewString(), ext)
}

func (e *S3Encoder) Encode(ctx context.Context, name string, data []byte) (string, error) {
	ct, err := DetectImageType(data)
	if err != nil {
		return "", err
	}

	pc, err := e.presignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := e.opts.Bucket
	key := e.objectKey(name, ct)

	put, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &ct,
	}, s3.WithPresignExpires(uploadURLTTL))
	if err != nil {
		return "", fmt.Errorf("presign put %s: %w", key, err)
	}

	if err := netx.Put(ctx, e.client, put.URL, data, ct); err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	get, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(imageURLTTL))
	if err != nil {
		return "", fmt.Errorf("presign get %s: %w", key, err)
	}

	e.logger.Info(ctx, "image uploaded", "key", key, "bytes", len(data))
	return get.URL, nil
}
