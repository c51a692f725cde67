package entity

import "fmt"

// ValidationError is bad client input: not a video, empty or malformed
// format list.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// UpstreamError is a storage or queue service failure on the write path.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// FetchError means the job's input object is missing or unreadable.
type FetchError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// TranscodeError is a non-zero ffmpeg exit or a timeout. Output carries
// the tail of the tool's diagnostic stream.
type TranscodeError struct {
	Reason string
	Output string
}

func (e *TranscodeError) Error() string {
	if e.Output == "" {
		return "transcode: " + e.Reason
	}
	return fmt.Sprintf("transcode: %s: %s", e.Reason, e.Output)
}

// NotFoundError means no converted object exists for the requested format.
type NotFoundError struct {
	JobID  string
	Format string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no converted file for job %s format %s", e.JobID, e.Format)
}
