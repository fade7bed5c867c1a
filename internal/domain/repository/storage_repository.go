package repository

import "context"

// ObjectStore is the only storage capability the report store needs.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key string, body []byte) error
}

// ReportIndex answers whether any report was ever stored in a bucket.
type ReportIndex interface {
	IsEmpty(ctx context.Context, bucket string) (bool, error)
}
