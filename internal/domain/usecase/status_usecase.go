package usecase

import (
	"context"
	"time"

	"github.com/Tanuj-tj/video-converter/internal/domain/entity"
)

const presignExpiry = time.Hour

type BlobLister interface {
	ListPrefix(ctx context.Context, bucket, prefix string) ([]entity.StoredObject, error)
	PresignedURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

// StatusResolver derives per-format completion state from the converted
// bucket alone: a format is done exactly when an object exists at its
// deterministic key. There is no other persisted job state, so "not
// started", "in progress" and "failed" are indistinguishable here.
type StatusResolver struct {
	Storage         BlobLister
	ConvertedBucket string
}

func NewStatusResolver(s BlobLister, convertedBucket string) *StatusResolver {
	return &StatusResolver{
		Storage:         s,
		ConvertedBucket: convertedBucket,
	}
}

// Completed lists every converted output for the job. A job with no
// outputs yet yields an empty slice, not an error.
func (u *StatusResolver) Completed(ctx context.Context, jobID string) ([]entity.ConvertedFile, error) {
	objects, err := u.Storage.ListPrefix(ctx, u.ConvertedBucket, jobID+"/")
	if err != nil {
		return nil, &entity.UpstreamError{Op: "list converted", Err: err}
	}

	files := make([]entity.ConvertedFile, 0, len(objects))
	for _, obj := range objects {
		format, ok := entity.FormatFromKey(obj.Key)
		if !ok {
			continue
		}
		files = append(files, entity.ConvertedFile{
			Format:       format,
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified.Format(time.RFC3339),
		})
	}

	return files, nil
}

// DownloadURL returns a time-limited read URL for the job's output in the
// given format, or a NotFoundError when no such output exists.
func (u *StatusResolver) DownloadURL(ctx context.Context, jobID, format string) (string, error) {
	objects, err := u.Storage.ListPrefix(ctx, u.ConvertedBucket, jobID+"/")
	if err != nil {
		return "", &entity.UpstreamError{Op: "list converted", Err: err}
	}

	for _, obj := range objects {
		if entity.MatchesFormat(obj.Key, format) {
			url, err := u.Storage.PresignedURL(ctx, u.ConvertedBucket, obj.Key, presignExpiry)
			if err != nil {
				return "", &entity.UpstreamError{Op: "presign", Err: err}
			}
			return url, nil
		}
	}

	return "", &entity.NotFoundError{JobID: jobID, Format: format}
}
