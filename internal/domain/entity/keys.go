package entity

import (
	"path"
	"strings"
)

// Output object keys follow <job_id>/<base>_<format>.mp4. The converted
// bucket has no index besides this convention, so encoding and decoding
// live here and nowhere else.

// InputKey builds the upload key for the original payload. The filename is
// client-supplied, so it is reduced to its base name to keep slash-bearing
// names from nesting extra segments under the job prefix.
func InputKey(jobID, filename string) string {
	return jobID + "/" + path.Base(filename)
}

// OutputKey builds the converted object key for one format.
func OutputKey(jobID, filename, format string) string {
	base := path.Base(filename)
	base = strings.TrimSuffix(base, path.Ext(base))
	return jobID + "/" + base + "_" + format + ".mp4"
}

// FormatFromKey extracts the format identifier from a converted object key.
// The second return is false for keys that don't match the convention.
func FormatFromKey(key string) (string, bool) {
	if !strings.HasSuffix(key, ".mp4") {
		return "", false
	}
	trimmed := strings.TrimSuffix(key, ".mp4")
	idx := strings.LastIndex(trimmed, "_")
	if idx < 0 || idx == len(trimmed)-1 {
		return "", false
	}
	return trimmed[idx+1:], true
}

// MatchesFormat reports whether a converted object key is the output for
// the given format.
func MatchesFormat(key, format string) bool {
	return strings.HasSuffix(key, "_"+format+".mp4")
}
