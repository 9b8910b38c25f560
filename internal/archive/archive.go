// Package archive uploads generated HTML reports to S3-compatible object
// storage so a run's report outlives the machine that produced it.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/kuitang/qa-suite/internal/config"
	"github.com/kuitang/qa-suite/internal/errs"
	"github.com/kuitang/qa-suite/internal/obs"
)

// KeyPrefix is where every report lives inside the bucket.
const KeyPrefix = "reports/"

const htmlContentType = "text/html; charset=utf-8"

// Archive stores reports in one bucket.
type Archive struct {
	s3Client   *s3.Client
	bucketName string
	publicURL  string
}

// Options locates the bucket.
type Options struct {
	// Endpoint is the S3 endpoint URL. Leave empty for AWS S3.
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	// PublicURL is the base URL objects are served from.
	PublicURL string
	// UsePathStyle is required by gofakes3 and most self-hosted services.
	UsePathStyle bool
}

// OptionsFromConfig maps suite configuration to archive options. A custom
// endpoint implies path-style addressing.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Endpoint:        cfg.AWSEndpointS3,
		Region:          cfg.AWSRegion,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		BucketName:      cfg.ReportBucket,
		PublicURL:       cfg.ReportPublicURL,
		UsePathStyle:    cfg.AWSEndpointS3 != "",
	}
}

// New creates an archive client.
func New(ctx context.Context, opts Options) (*Archive, error) {
	if opts.BucketName == "" {
		return nil, errs.New(errs.InvalidArgument, "archive: bucket name is required")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	sdkConfig, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("archive: load AWS config: %w", err)
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})
	return NewFromS3Client(client, opts.BucketName, opts.PublicURL), nil
}

// NewFromS3Client wraps an existing S3 client.
func NewFromS3Client(client *s3.Client, bucketName, publicURL string) *Archive {
	return &Archive{
		s3Client:   client,
		bucketName: bucketName,
		publicURL:  strings.TrimSuffix(publicURL, "/"),
	}
}

// BucketName returns the configured bucket.
func (a *Archive) BucketName() string {
	return a.bucketName
}

// ReportKey places a report file under its run, grouped by UTC day:
// reports/2025/03/01/<run-id>/report_2025-03-01_12-00-00.html.
func ReportKey(runID, fileName string, at time.Time) string {
	return KeyPrefix + path.Join(at.UTC().Format("2006/01/02"), runID, path.Base(filepath.ToSlash(fileName)))
}

// PublicURL returns the URL a stored key is served from.
func (a *Archive) PublicURL(key string) string {
	return a.publicURL + "/" + strings.TrimPrefix(key, "/")
}

// PutReport uploads the report at localPath and returns its key.
func (a *Archive) PutReport(ctx context.Context, runID, localPath string, at time.Time) (string, error) {
	content, err := os.ReadFile(localPath)
	if err != nil {
		return "", errs.Wrap(errs.NotFound, "archive: read report", err)
	}

	key := ReportKey(runID, localPath, at)
	if err := a.Put(ctx, key, content, htmlContentType); err != nil {
		return "", err
	}
	obs.From(ctx).Info("report_archived",
		"pkg", "archive",
		"bucket", a.bucketName,
		"key", key,
		"bytes", len(content),
	)
	return key, nil
}

// Put stores content under key.
func (a *Archive) Put(ctx context.Context, key string, content []byte, contentType string) error {
	_, err := a.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return errs.Wrap(errs.Unavailable, fmt.Sprintf("archive: put %q", key), err)
	}
	return nil
}

// Get returns the object stored under key. A missing key yields an
// errs.NotFound error.
func (a *Archive) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := a.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		var notFound *types.NotFound
		if errors.As(err, &nsk) || errors.As(err, &notFound) {
			return nil, errs.New(errs.NotFound, fmt.Sprintf("archive: %q not found", key))
		}
		return nil, errs.Wrap(errs.Unavailable, fmt.Sprintf("archive: get %q", key), err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, errs.Wrap(errs.Unavailable, fmt.Sprintf("archive: read %q", key), err)
	}
	return data, nil
}

// List returns every key under prefix, which is relative to KeyPrefix.
func (a *Archive) List(ctx context.Context, prefix string) ([]string, error) {
	full := KeyPrefix + strings.TrimPrefix(prefix, "/")
	paginator := s3.NewListObjectsV2Paginator(a.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucketName),
		Prefix: aws.String(full),
	})

	var keys []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errs.Wrap(errs.Unavailable, "archive: list "+full, err)
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (a *Archive) Delete(ctx context.Context, key string) error {
	_, err := a.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return errs.Wrap(errs.Unavailable, fmt.Sprintf("archive: delete %q", key), err)
	}
	return nil
}
