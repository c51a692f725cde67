package entity

// Resolutions maps the supported format identifiers to ffmpeg scale targets.
var Resolutions = map[string]string{
	"4k":    "3840x2160",
	"1080p": "1920x1080",
	"720p":  "1280x720",
	"480p":  "854x480",
}

// DefaultResolution is used for format identifiers outside the table.
const DefaultResolution = "1280x720"

// ResolveFormat returns the pixel-dimension string for a format identifier.
// Unknown identifiers fall back to the 720p default rather than failing:
// the message was already accepted at upload time, so the worker converts
// to something playable instead of poisoning the queue.
func ResolveFormat(format string) string {
	if res, ok := Resolutions[format]; ok {
		return res
	}
	return DefaultResolution
}
