package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Tanuj-tj/video-converter/internal/domain/entity"
)

type fakeLister struct {
	objects  []entity.StoredObject
	listErr  error
	presigns []string
}

func (f *fakeLister) ListPrefix(_ context.Context, bucket, prefix string) ([]entity.StoredObject, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []entity.StoredObject
	for _, obj := range f.objects {
		if len(obj.Key) >= len(prefix) && obj.Key[:len(prefix)] == prefix {
			out = append(out, obj)
		}
	}
	return out, nil
}

func (f *fakeLister) PresignedURL(_ context.Context, bucket, key string, expiry time.Duration) (string, error) {
	f.presigns = append(f.presigns, key)
	return "https://signed.example/" + key, nil
}

func TestCompleted_ReturnsOneEntryPerConvertedFormat(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	storage := &fakeLister{objects: []entity.StoredObject{
		{Key: "job-1/holiday_720p.mp4", Size: 1024, LastModified: now},
		{Key: "job-1/holiday_480p.mp4", Size: 512, LastModified: now},
		{Key: "job-2/other_720p.mp4", Size: 99, LastModified: now},
	}}
	resolver := NewStatusResolver(storage, "converted")

	files, err := resolver.Completed(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 converted files, got %d", len(files))
	}

	byFormat := map[string]entity.ConvertedFile{}
	for _, f := range files {
		byFormat[f.Format] = f
	}
	if byFormat["720p"].Key != "job-1/holiday_720p.mp4" || byFormat["720p"].Size != 1024 {
		t.Fatalf("720p entry = %+v", byFormat["720p"])
	}
	if byFormat["480p"].LastModified != "2025-06-01T12:00:00Z" {
		t.Fatalf("480p last modified = %q", byFormat["480p"].LastModified)
	}
}

func TestCompleted_EmptyNamespaceIsNotAnError(t *testing.T) {
	resolver := NewStatusResolver(&fakeLister{}, "converted")

	files, err := resolver.Completed(context.Background(), "job-42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected empty result, got %v", files)
	}
}

func TestCompleted_SkipsKeysOutsideTheNamingConvention(t *testing.T) {
	storage := &fakeLister{objects: []entity.StoredObject{
		{Key: "job-1/holiday_720p.mp4"},
		{Key: "job-1/notes.txt"},
		{Key: "job-1/raw.mp4"},
	}}
	resolver := NewStatusResolver(storage, "converted")

	files, err := resolver.Completed(context.Background(), "job-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || files[0].Format != "720p" {
		t.Fatalf("files = %v", files)
	}
}

func TestCompleted_ListFailureIsUpstreamError(t *testing.T) {
	storage := &fakeLister{listErr: errors.New("connection reset")}
	resolver := NewStatusResolver(storage, "converted")

	_, err := resolver.Completed(context.Background(), "job-1")

	var upstreamErr *entity.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestDownloadURL_PresignsMatchingKey(t *testing.T) {
	storage := &fakeLister{objects: []entity.StoredObject{
		{Key: "job-1/holiday_720p.mp4"},
		{Key: "job-1/holiday_480p.mp4"},
	}}
	resolver := NewStatusResolver(storage, "converted")

	url, err := resolver.DownloadURL(context.Background(), "job-1", "480p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://signed.example/job-1/holiday_480p.mp4" {
		t.Fatalf("url = %q", url)
	}
	if len(storage.presigns) != 1 {
		t.Fatalf("presign calls = %v", storage.presigns)
	}
}

func TestDownloadURL_MissingFormatIsNotFound(t *testing.T) {
	storage := &fakeLister{objects: []entity.StoredObject{
		{Key: "job-1/holiday_720p.mp4"},
	}}
	resolver := NewStatusResolver(storage, "converted")

	_, err := resolver.DownloadURL(context.Background(), "job-1", "4k")

	var notFoundErr *entity.NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if len(storage.presigns) != 0 {
		t.Fatal("nothing should be presigned")
	}
}
