package media

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NameGenerator produces storage names from a nanosecond timestamp, a
// random component and an extension derived from the declared content
// type. The caller-supplied filename never contributes to the name.
type NameGenerator struct{}

func NewNameGenerator() *NameGenerator {
	return &NameGenerator{}
}

func (g *NameGenerator) Generate(contentType string) string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), random, ExtensionFor(contentType))
}

func ExtensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	case "video/quicktime":
		return ".mov"
	default:
		return ""
	}
}

// ContentTypeFor maps a storage name back to a content type for serving.
func ContentTypeFor(name string) string {
	dotIndex := strings.LastIndex(name, ".")
	if dotIndex == -1 || dotIndex == len(name)-1 {
		return "application/octet-stream"
	}
	switch strings.ToLower(name[dotIndex+1:]) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "mp4":
		return "video/mp4"
	case "webm":
		return "video/webm"
	case "mov":
		return "video/quicktime"
	default:
		return "application/octet-stream"
	}
}

// ValidName reports whether a name taken from a URL is a plain file name
// that cannot escape the storage directory.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, "/\\") {
		return false
	}
	return true
}
