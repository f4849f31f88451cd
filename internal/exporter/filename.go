package exporter

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02_15-04-05"

// audioExtensions is the allow-list of supported recording formats.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".flac": true,
	".aac":  true,
	".ogg":  true,
}

// IsAudioFile reports whether path has a supported audio extension,
// case-insensitively. The file is never opened; only the path matters.
func IsAudioFile(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// TimestampedName builds "base_YYYY-MM-DD_HH-MM-SS.ext".
func TimestampedName(base, ext string) string {
	return timestampedName(base, ext, time.Now())
}

func timestampedName(base, ext string, t time.Time) string {
	ext = strings.TrimPrefix(ext, ".")
	return fmt.Sprintf("%s_%s.%s", base, t.Format(timestampLayout), ext)
}
