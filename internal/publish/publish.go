// Package publish uploads rendered documents to S3-compatible storage.
package publish

import (
	"bytes"
	"context"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/snapp-dev/snapp/internal/config"
	"github.com/snapp-dev/snapp/internal/errors"
	"github.com/snapp-dev/snapp/pkg/dom"
)

// ObjectAPI is the subset of *s3.Client used by Publisher.
type ObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Result describes a published document.
type Result struct {
	Bucket string
	Key    string
	Size   int
	ETag   string
}

// Publisher writes documents under a bucket prefix.
type Publisher struct {
	client ObjectAPI
	bucket string
	prefix string
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// New creates a Publisher. logger may be nil.
func New(client ObjectAPI, bucket, prefix string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
		tracer: otel.Tracer("github.com/snapp-dev/snapp/internal/publish"),
		now:    time.Now,
	}
}

// Key returns the object key for name. An empty name gets a random one.
func (p *Publisher) Key(name string) string {
	if name == "" {
		name = uuid.NewString() + ".html"
	}
	name = strings.TrimPrefix(name, "/")
	if p.prefix == "" {
		return name
	}
	return path.Join(p.prefix, name)
}

// Publish serializes doc and uploads it as name.
func (p *Publisher) Publish(ctx context.Context, name string, doc *dom.Document) (*Result, error) {
	key := p.Key(name)

	ctx, span := p.tracer.Start(ctx, "publish.Publish", trace.WithAttributes(
		attribute.String("bucket", p.bucket),
		attribute.String("key", key),
	))
	defer span.End()

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "serialize")
		return nil, errors.New("S142").WithDetail("cannot serialize document").Wrap(err)
	}
	size := buf.Len()

	out, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("text/html; charset=utf-8"),
		Metadata: map[string]string{
			"generator":   "snapp",
			"rendered-at": p.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "put object")
		return nil, errors.New("S142").
			WithDetailf("s3://%s/%s", p.bucket, key).
			Wrap(err)
	}

	res := &Result{Bucket: p.bucket, Key: key, Size: size}
	if out != nil && out.ETag != nil {
		res.ETag = strings.Trim(*out.ETag, `"`)
	}
	span.SetAttributes(attribute.Int("size", size))
	p.logger.Info("published document", "bucket", p.bucket, "key", key, "size", size)
	return res, nil
}

// NewS3Client builds a client from cfg. Credentials and any setting cfg
// leaves empty resolve through the default AWS chain: environment, shared
// config and profiles, SSO, then instance metadata.
func NewS3Client(ctx context.Context, cfg config.PublishConfig) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.New("S142").WithDetail("cannot load AWS configuration").Wrap(err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	}), nil
}
