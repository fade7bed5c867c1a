package aws

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client in use.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3RepositoryImpl implementa ObjectStore e ReportIndex.
type S3RepositoryImpl struct {
	client S3API
}

// NewS3Repository creates a repository over client.
func NewS3Repository(client S3API) *S3RepositoryImpl {
	return &S3RepositoryImpl{client: client}
}

// PutObject writes body as a JSON object.
func (r *S3RepositoryImpl) PutObject(ctx context.Context, bucket, key string, body []byte) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("error writing s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}

// IsEmpty reports whether bucket holds no objects at all.
func (r *S3RepositoryImpl) IsEmpty(ctx context.Context, bucket string) (bool, error) {
	out, err := r.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, fmt.Errorf("error listing bucket %s: %w", bucket, err)
	}
	return len(out.Contents) == 0, nil
}
