package upload_service

import "strings"

// allowedMimeTypes is the static allow-list enforced on single uploads and,
// for chunked uploads, deferred to completion time.
var allowedMimeTypes = map[string]struct{}{
	// Images
	"image/jpeg":    {},
	"image/png":     {},
	"image/gif":     {},
	"image/webp":    {},
	"image/svg+xml": {},
	// Documents
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       {},
	"application/vnd.ms-powerpoint":                                           {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
	"text/plain": {},
	"text/csv":   {},
	// Archives
	"application/zip":              {},
	"application/x-rar-compressed": {},
	"application/x-7z-compressed":  {},
	// Video
	"video/mp4":       {},
	"video/mpeg":      {},
	"video/quicktime": {},
	"video/x-msvideo": {},
	// Audio
	"audio/mpeg": {},
	"audio/wav":  {},
	"audio/ogg":  {},
}

// IsMimeTypeAllowed reports whether the mime type is on the allow-list.
// Comparison is case-insensitive.
func IsMimeTypeAllowed(mimeType string) bool {
	_, ok := allowedMimeTypes[strings.ToLower(mimeType)]
	return ok
}

// IsImageMimeType reports whether the type belongs to the image family
func IsImageMimeType(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(mimeType), "image/")
}

// IsVideoMimeType reports whether the type belongs to the video family
func IsVideoMimeType(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(mimeType), "video/")
}

// AllowedMimeTypes returns a copy of the allow-list for error messages
func AllowedMimeTypes() []string {
	types := make([]string, 0, len(allowedMimeTypes))
	for t := range allowedMimeTypes {
		types = append(types, t)
	}
	return types
}
