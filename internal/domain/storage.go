package domain

import "context"

// Bucket names a storage area for uploaded files.
type Bucket string

const (
	BucketProfilePictures Bucket = "profile-pictures"
	BucketResumes         Bucket = "resumes"
	BucketMedia           Bucket = "introductions"
)

// BlobStore persists uploaded files and returns their public URL.
type BlobStore interface {
	Put(ctx context.Context, bucket Bucket, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, bucket Bucket, key string) error
}

// TextExtractor pulls plain text out of a resume for search.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, contentType string) (string, error)
}

// ImageCompressor downsizes profile pictures before upload.
type ImageCompressor interface {
	Compress(data []byte) ([]byte, string, error)
}
