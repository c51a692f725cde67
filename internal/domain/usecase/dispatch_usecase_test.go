package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Tanuj-tj/video-converter/internal/domain/entity"
)

type fakeUploader struct {
	uploads map[string][]byte
	err     error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploads: make(map[string][]byte)}
}

func (f *fakeUploader) Upload(_ context.Context, bucket, key string, payload []byte, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.uploads[bucket+"/"+key] = payload
	return nil
}

type fakePublisher struct {
	messages []json.RawMessage
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, body json.RawMessage) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, body)
	return nil
}

func newDispatcher(s *fakeUploader, p *fakePublisher) *Dispatcher {
	return NewDispatcher(s, p, "uploads", "converted")
}

func TestDispatch_QueuesOneJobPerFormat(t *testing.T) {
	storage := newFakeUploader()
	publisher := &fakePublisher{}
	d := newDispatcher(storage, publisher)

	jobID, formats, err := d.Dispatch(context.Background(), []byte("payload"), "holiday.mov", "video/quicktime", `["720p","480p"]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobID == "" {
		t.Fatal("expected a job id")
	}
	if len(formats) != 2 {
		t.Fatalf("accepted formats = %v", formats)
	}

	if len(storage.uploads) != 1 {
		t.Fatalf("expected exactly one blob write, got %d", len(storage.uploads))
	}
	wantKey := "uploads/" + jobID + "/holiday.mov"
	if _, ok := storage.uploads[wantKey]; !ok {
		t.Fatalf("payload not stored at %q", wantKey)
	}

	if len(publisher.messages) != 2 {
		t.Fatalf("expected 2 queue messages, got %d", len(publisher.messages))
	}

	seen := map[string]bool{}
	for _, raw := range publisher.messages {
		var job entity.ConversionJob
		if err := json.Unmarshal(raw, &job); err != nil {
			t.Fatalf("message is not a conversion job: %v", err)
		}
		if job.JobID != jobID {
			t.Fatalf("message job id %q, want %q", job.JobID, jobID)
		}
		if job.InputBucket != "uploads" || job.InputKey != jobID+"/holiday.mov" {
			t.Fatalf("message input location %s/%s", job.InputBucket, job.InputKey)
		}
		if job.OutputBucket != "converted" {
			t.Fatalf("message output bucket %q", job.OutputBucket)
		}
		if job.Filename != "holiday.mov" {
			t.Fatalf("message filename %q", job.Filename)
		}
		seen[job.Format] = true
	}
	if !seen["720p"] || !seen["480p"] {
		t.Fatalf("formats seen: %v", seen)
	}
}

func TestDispatch_RejectsNonVideoContentType(t *testing.T) {
	storage := newFakeUploader()
	publisher := &fakePublisher{}
	d := newDispatcher(storage, publisher)

	_, _, err := d.Dispatch(context.Background(), []byte("payload"), "cat.png", "image/png", `["720p"]`)

	var validationErr *entity.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(storage.uploads) != 0 {
		t.Fatal("no blob should be written for a rejected upload")
	}
	if len(publisher.messages) != 0 {
		t.Fatal("no jobs should be enqueued for a rejected upload")
	}
}

func TestDispatch_RejectsBadFormatList(t *testing.T) {
	cases := []struct {
		name        string
		formatsJSON string
	}{
		{"empty list", `[]`},
		{"malformed json", `720p,480p`},
		{"blank", ``},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			storage := newFakeUploader()
			publisher := &fakePublisher{}
			d := newDispatcher(storage, publisher)

			_, _, err := d.Dispatch(context.Background(), []byte("payload"), "a.mp4", "video/mp4", tc.formatsJSON)

			var validationErr *entity.ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(storage.uploads) != 0 || len(publisher.messages) != 0 {
				t.Fatal("nothing should be written or enqueued")
			}
		})
	}
}

func TestDispatch_BlobWriteFailureEnqueuesNothing(t *testing.T) {
	storage := newFakeUploader()
	storage.err = errors.New("connection refused")
	publisher := &fakePublisher{}
	d := newDispatcher(storage, publisher)

	_, _, err := d.Dispatch(context.Background(), []byte("payload"), "a.mp4", "video/mp4", `["720p"]`)

	var upstreamErr *entity.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if len(publisher.messages) != 0 {
		t.Fatal("no jobs should be enqueued when the blob write fails")
	}
}
