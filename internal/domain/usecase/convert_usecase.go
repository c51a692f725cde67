package usecase

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/Tanuj-tj/video-converter/internal/domain/entity"
)

type BlobFetcher interface {
	FetchToFile(ctx context.Context, bucket, key, localPath string) error
	UploadFile(ctx context.Context, bucket, key, localPath, contentType string) error
}

type Transcoder interface {
	Transcode(ctx context.Context, inputPath, outputPath, resolution string) error
}

// Converter executes one conversion job: fetch the input into a scratch
// workspace, run the transcoder, upload the result. Re-processing the same
// job overwrites the same output key, so queue redelivery converges instead
// of duplicating.
type Converter struct {
	Storage    BlobFetcher
	Transcoder Transcoder
}

func NewConverter(s BlobFetcher, t Transcoder) *Converter {
	return &Converter{
		Storage:    s,
		Transcoder: t,
	}
}

func (u *Converter) Process(ctx context.Context, job *entity.ConversionJob) error {
	log.Printf("processing job %s for format %s\n", job.JobID, job.Format)

	workDir, err := os.MkdirTemp("", "videoconv-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(workDir)

	inputPath := filepath.Join(workDir, "input_video")
	outputPath := filepath.Join(workDir, "output_"+job.Format+".mp4")

	if err := u.Storage.FetchToFile(ctx, job.InputBucket, job.InputKey, inputPath); err != nil {
		return &entity.FetchError{Bucket: job.InputBucket, Key: job.InputKey, Err: err}
	}

	resolution := entity.ResolveFormat(job.Format)

	if err := u.Transcoder.Transcode(ctx, inputPath, outputPath, resolution); err != nil {
		return err
	}

	outputKey := entity.OutputKey(job.JobID, job.Filename, job.Format)

	if err := u.Storage.UploadFile(ctx, job.OutputBucket, outputKey, outputPath, "video/mp4"); err != nil {
		return &entity.UpstreamError{Op: "upload converted", Err: err}
	}

	log.Printf("finished job %s: %s\n", job.JobID, outputKey)
	return nil
}
