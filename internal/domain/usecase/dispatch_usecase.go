package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Tanuj-tj/video-converter/internal/domain/entity"
	"github.com/Tanuj-tj/video-converter/pkg/utils"
)

type BlobUploader interface {
	Upload(ctx context.Context, bucket, key string, payload []byte, contentType string) error
}

type Publisher interface {
	Publish(ctx context.Context, body json.RawMessage) error
}

// Dispatcher turns one uploaded video into N independent conversion jobs,
// one per requested format. The payload is written once; every job message
// references the same input key.
type Dispatcher struct {
	Storage         BlobUploader
	Publisher       Publisher
	UploadBucket    string
	ConvertedBucket string
}

func NewDispatcher(s BlobUploader, p Publisher, uploadBucket, convertedBucket string) *Dispatcher {
	return &Dispatcher{
		Storage:         s,
		Publisher:       p,
		UploadBucket:    uploadBucket,
		ConvertedBucket: convertedBucket,
	}
}

// Dispatch validates the upload, stores it, and enqueues one job per
// requested format. formatsJSON is the raw client value, a JSON array of
// format identifiers. The blob write is all-or-nothing: on failure nothing
// is enqueued. The per-format enqueue step is not transactional; a partial
// publish failure can leave some formats queued.
func (u *Dispatcher) Dispatch(ctx context.Context, payload []byte, filename, contentType, formatsJSON string) (string, []string, error) {
	if !strings.HasPrefix(contentType, "video/") {
		return "", nil, &entity.ValidationError{Reason: "file must be a video, got " + contentType}
	}

	var formats []string
	if err := json.Unmarshal([]byte(formatsJSON), &formats); err != nil {
		return "", nil, &entity.ValidationError{Reason: "formats must be a JSON array of strings"}
	}
	if len(formats) == 0 {
		return "", nil, &entity.ValidationError{Reason: "formats list is empty"}
	}

	jobID := uuid.New().String()
	inputKey := entity.InputKey(jobID, filename)

	if err := u.Storage.Upload(ctx, u.UploadBucket, inputKey, payload, contentType); err != nil {
		return "", nil, &entity.UpstreamError{Op: "upload", Err: err}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		job := entity.ConversionJob{
			JobID:        jobID,
			InputBucket:  u.UploadBucket,
			InputKey:     inputKey,
			OutputBucket: u.ConvertedBucket,
			Format:       format,
			Filename:     filename,
		}
		g.Go(func() error {
			msg, err := utils.ToRawMessage(job)
			if err != nil {
				return err
			}
			return u.publishWithRetry(gctx, msg)
		})
	}
	if err := g.Wait(); err != nil {
		return "", nil, &entity.UpstreamError{Op: "enqueue", Err: err}
	}

	log.Printf("dispatched job %s with %d format(s)\n", jobID, len(formats))
	return jobID, formats, nil
}

func (u *Dispatcher) publishWithRetry(ctx context.Context, msg json.RawMessage) error {
	var (
		baseDelay   = 500 * time.Millisecond
		maxDelay    = 10 * time.Second
		maxAttempts = 5
	)

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := u.Publisher.Publish(ctx, msg); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt == maxAttempts {
			break
		}

		backoff := baseDelay << (attempt - 1)
		if backoff > maxDelay {
			backoff = maxDelay
		}

		select {
		case <-time.After(backoff):

		case <-ctx.Done():
			return errors.New("publish canceled by context")
		}
	}

	return lastErr
}
