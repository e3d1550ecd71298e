package files

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Category selects the MIME allow-list and size ceiling applied to an upload.
type Category string

const (
	CategoryImage    Category = "image"
	CategoryVideo    Category = "video"
	CategoryDocument Category = "document"
	CategoryIcon     Category = "icon"
)

const (
	MaxImageBytes    = 10 << 20
	MaxVideoBytes    = 100 << 20
	MaxDocumentBytes = 20 << 20
	MaxIconBytes     = 2 << 20
)

// FileMeta is everything the validator needs to know about an upload.
// Head may be nil; it is only consulted when ContentType is empty.
type FileMeta struct {
	Name        string
	ContentType string
	Size        int64
	Head        []byte
}

// FileError pairs a failing file with the rule it violated.
type FileError struct {
	FileName string
	Err      string
}

var allowedTypes = map[Category][]string{
	CategoryImage: {
		"image/jpeg",
		"image/png",
		"image/webp",
		"image/gif",
	},
	CategoryIcon: {
		"image/jpeg",
		"image/png",
		"image/webp",
		"image/svg+xml",
		"image/gif",
	},
	CategoryVideo: {
		"video/mp4",
		"video/webm",
		"video/quicktime",
	},
	CategoryDocument: {
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"text/plain",
	},
}

var sizeLimits = map[Category]int64{
	CategoryImage:    MaxImageBytes,
	CategoryVideo:    MaxVideoBytes,
	CategoryDocument: MaxDocumentBytes,
	CategoryIcon:     MaxIconBytes,
}

// ValidateFile returns nil when the file's content type is allowed for the
// category and its size is within the category limit, otherwise a
// human-readable description of the violated rule.
func ValidateFile(meta FileMeta, category Category) error {
	allowed, ok := allowedTypes[category]
	if !ok {
		return fmt.Errorf("unknown file category %q", category)
	}

	contentType := normalizeContentType(meta)
	if !typeAllowed(contentType, allowed) {
		return fmt.Errorf("%s: file type %q is not allowed for %s uploads (allowed: %s)",
			meta.Name, contentType, category, strings.Join(allowed, ", "))
	}

	limit := sizeLimits[category]
	if meta.Size > limit {
		return fmt.Errorf("%s: file size %d bytes exceeds the %s limit of %d bytes",
			meta.Name, meta.Size, category, limit)
	}
	return nil
}

// ValidateFiles applies ValidateFile to every file and collects failures.
// An empty result means every file passed.
func ValidateFiles(metas []FileMeta, category Category) []FileError {
	var failures []FileError
	for _, meta := range metas {
		if err := ValidateFile(meta, category); err != nil {
			failures = append(failures, FileError{FileName: meta.Name, Err: err.Error()})
		}
	}
	return failures
}

func normalizeContentType(meta FileMeta) string {
	ct := meta.ContentType
	if ct == "" && len(meta.Head) > 0 {
		ct = mimetype.Detect(meta.Head).String()
	}
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

func typeAllowed(contentType string, allowed []string) bool {
	for _, a := range allowed {
		if contentType == a {
			return true
		}
	}
	return false
}
