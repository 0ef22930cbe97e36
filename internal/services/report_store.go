package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ReportStore archives rendered reports and returns their location.
type ReportStore interface {
	Upload(ctx context.Context, reviewID, report string) (string, error)
}

type S3Config struct {
	Bucket      string
	EndpointURL string
	Region      string
	AccessKey   string
	SecretKey   string
}

type S3ReportStore struct {
	client *s3.Client
	bucket string
}

func NewS3ReportStore(ctx context.Context, conf S3Config) (*S3ReportStore, error) {
	if conf.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is not set")
	}

	creds := credentials.NewStaticCredentialsProvider(conf.AccessKey, conf.SecretKey, "")

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(conf.Region),
		config.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	if conf.EndpointURL != "" {
		cfg.BaseEndpoint = aws.String(conf.EndpointURL)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return &S3ReportStore{client: client, bucket: conf.Bucket}, nil
}

// ReportKey is the object key of a review's report.
func ReportKey(reviewID string) string {
	return fmt.Sprintf("reports/%s.md", reviewID)
}

func (s *S3ReportStore) Upload(ctx context.Context, reviewID, report string) (string, error) {
	key := ReportKey(reviewID)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:             aws.String(s.bucket),
		Key:                aws.String(key),
		Body:               strings.NewReader(report),
		ContentType:        aws.String("text/markdown; charset=utf-8"),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", ReportFilename)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
