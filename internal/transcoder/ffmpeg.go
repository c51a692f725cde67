package transcoder

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/Tanuj-tj/video-converter/internal/domain/entity"
)

const (
	DefaultBin     = "ffmpeg"
	DefaultTimeout = 300 * time.Second

	// how much of ffmpeg's stderr ends up in a TranscodeError
	diagnosticLimit = 2048
)

// FFmpeg shells out to an ffmpeg binary to rescale a video. The binary
// path and the wall-clock timeout are injectable.
type FFmpeg struct {
	Bin     string
	Timeout time.Duration
}

func New(bin string, timeout time.Duration) *FFmpeg {
	if bin == "" {
		bin = DefaultBin
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &FFmpeg{Bin: bin, Timeout: timeout}
}

// Transcode converts inputPath to an mp4 at outputPath scaled to the given
// resolution ("1280x720"). A non-zero exit or hitting the timeout returns a
// TranscodeError carrying the tail of ffmpeg's stderr.
func (f *FFmpeg) Transcode(ctx context.Context, inputPath, outputPath, resolution string) error {
	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, f.Bin, buildArgs(inputPath, outputPath, resolution)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return &entity.TranscodeError{
			Reason: fmt.Sprintf("timed out after %s", f.Timeout),
			Output: tail(stderr.Bytes()),
		}
	}
	if err != nil {
		return &entity.TranscodeError{
			Reason: err.Error(),
			Output: tail(stderr.Bytes()),
		}
	}

	return nil
}

func buildArgs(inputPath, outputPath, resolution string) []string {
	return []string{
		"-i", inputPath,
		"-vf", "scale=" + resolution,
		"-c:v", "libx264",
		"-preset", "fast",
		"-crf", "23",
		"-c:a", "aac",
		"-b:a", "128k",
		"-movflags", "+faststart",
		"-y",
		outputPath,
	}
}

func tail(out []byte) string {
	if len(out) > diagnosticLimit {
		out = out[len(out)-diagnosticLimit:]
	}
	return string(out)
}
