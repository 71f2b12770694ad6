package proofstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage uploads images to a bucket and returns their s3:// reference.
type S3Storage struct {
	client objectPutter
	bucket string
	prefix string
}

// NewS3Storage loads credentials from the default AWS chain.
func NewS3Storage(ctx context.Context, region, bucket, prefix string) (*S3Storage, error) {
	if bucket == "" {
		return nil, errs.NewValueIsRequiredError("bucket")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newS3Storage(s3.NewFromConfig(awsCfg), bucket, prefix), nil
}

func newS3Storage(client objectPutter, bucket, prefix string) *S3Storage {
	return &S3Storage{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func (s *S3Storage) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	objectKey := strings.TrimLeft(key, "/")
	if s.prefix != "" {
		objectKey = s.prefix + "/" + objectKey
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("put proof image %s: %w", objectKey, err)
	}
	return "s3://" + s.bucket + "/" + objectKey, nil
}
