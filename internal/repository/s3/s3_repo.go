package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/Tanuj-tj/video-converter/internal/domain/entity"
	"github.com/Tanuj-tj/video-converter/pkg/client/s3"
)

// S3Repo wraps the minio client. Jobs carry their own bucket names, so
// every method takes the bucket explicitly instead of binding one at
// construction time.
type S3Repo struct {
	StorageS3 *s3.StorageS3
}

func NewS3Repo(storageS3 *s3.StorageS3) *S3Repo {
	return &S3Repo{
		StorageS3: storageS3,
	}
}

func (s *S3Repo) Upload(ctx context.Context, bucket, key string, payload []byte, contentType string) error {
	if s.StorageS3 == nil || s.StorageS3.Client == nil {
		return fmt.Errorf("s3 client not initialized")
	}

	reader := bytes.NewReader(payload)

	_, err := s.StorageS3.Client.PutObject(
		ctx,
		bucket,
		key,
		reader,
		int64(len(payload)),
		minio.PutObjectOptions{
			ContentType: contentType,
		},
	)
	if err != nil {
		return fmt.Errorf("s3 put object: %w", err)
	}

	return nil
}

func (s *S3Repo) FetchToFile(ctx context.Context, bucket, key, localPath string) error {
	if s.StorageS3 == nil || s.StorageS3.Client == nil {
		return fmt.Errorf("s3 client not initialized")
	}

	if err := s.StorageS3.Client.FGetObject(ctx, bucket, key, localPath, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("s3 get object: %w", err)
	}

	return nil
}

func (s *S3Repo) UploadFile(ctx context.Context, bucket, key, localPath, contentType string) error {
	if s.StorageS3 == nil || s.StorageS3.Client == nil {
		return fmt.Errorf("s3 client not initialized")
	}

	_, err := s.StorageS3.Client.FPutObject(ctx, bucket, key, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("s3 put object: %w", err)
	}

	return nil
}

func (s *S3Repo) ListPrefix(ctx context.Context, bucket, prefix string) ([]entity.StoredObject, error) {
	if s.StorageS3 == nil || s.StorageS3.Client == nil {
		return nil, fmt.Errorf("s3 client not initialized")
	}

	var objects []entity.StoredObject
	for info := range s.StorageS3.Client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, fmt.Errorf("s3 list objects: %w", info.Err)
		}
		objects = append(objects, entity.StoredObject{
			Key:          info.Key,
			Size:         info.Size,
			LastModified: info.LastModified,
		})
	}

	return objects, nil
}

func (s *S3Repo) PresignedURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if s.StorageS3 == nil || s.StorageS3.Client == nil {
		return "", fmt.Errorf("s3 client not initialized")
	}

	reqParams := url.Values{}

	presignedURL, err := s.StorageS3.Client.PresignedGetObject(ctx, bucket, key, expiry, reqParams)
	if err != nil {
		return "", fmt.Errorf("presigned get object: %w", err)
	}
	return presignedURL.String(), nil
}
