package export

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"shipdesk/internal/domain"
)

// DefaultFilenamePrefix names exports when the deployment does not configure one.
const DefaultFilenamePrefix = "shipping_data"

// unsafeFilename matches characters that are not safe in a Content-Disposition filename.
var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// BuildFilename returns {prefix}_{unix millis}.{ext}.
func BuildFilename(prefix string, format domain.ExportFormat, now time.Time) string {
	if prefix == "" {
		prefix = DefaultFilenamePrefix
	}
	return fmt.Sprintf("%s_%d.%s", prefix, now.UnixMilli(), format.Extension())
}

// SanitizeFilename cleans a collaborator-supplied filename: directories are
// stripped, unsafe runs become "_", and the result is capped at 100 characters.
// An empty result yields "".
func SanitizeFilename(name string) string {
	s := path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if s == "." || s == "/" {
		return ""
	}
	s = unsafeFilename.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[len(s)-100:]
	}
	return s
}
