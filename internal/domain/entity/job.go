package entity

// ConversionJob is the queue payload for one (input, target format) task.
// It is fully self-describing: a worker needs nothing beyond the two
// bucket/key pairs to process it.
type ConversionJob struct {
	JobID        string `json:"job_id"`
	InputBucket  string `json:"input_bucket"`
	InputKey     string `json:"input_key"`
	OutputBucket string `json:"output_bucket"`
	Format       string `json:"format"`
	Filename     string `json:"filename"`
}

// ConvertedFile is one completed output as observed in the converted bucket.
type ConvertedFile struct {
	Format       string `json:"format"`
	Key          string `json:"key"`
	Size         int64  `json:"size"`
	LastModified string `json:"last_modified"`
}
