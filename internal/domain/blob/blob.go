// Package blob holds stored documents served verbatim, such as transcripts and images.
package blob

import (
	"fmt"
	"strings"
)

// DefaultContentType is used when a blob is stored without one.
const DefaultContentType = "application/octet-stream"

// maxNameLength bounds blob names.
const maxNameLength = 512

// Blob is a stored document.
type Blob struct {
	Data        []byte
	ContentType string
	Length      int64
}

// New creates a Blob; a blank content type falls back to DefaultContentType.
func New(data []byte, contentType string) Blob {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		contentType = DefaultContentType
	}
	return Blob{Data: data, ContentType: contentType, Length: int64(len(data))}
}

// ValidateName checks a container or blob name. Names are key segments, so
// they may not be blank, contain ':' or wildcard characters, or climb directories.
func ValidateName(kind, name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%s name is required", kind)
	case len(name) > maxNameLength:
		return fmt.Errorf("%s name too long (max %d chars)", kind, maxNameLength)
	case strings.ContainsAny(name, ":*?[]\\"):
		return fmt.Errorf("%s name %q contains a reserved character", kind, name)
	case name == "." || name == ".." || strings.Contains(name, "../"):
		return fmt.Errorf("%s name %q is not allowed", kind, name)
	}
	return nil
}
