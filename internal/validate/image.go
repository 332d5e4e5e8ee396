package validate

import (
	"errors"
	"strings"
)

// MaxImageSize is the largest accepted image attachment.
const MaxImageSize = 5 * 1024 * 1024

var (
	// ErrNotAnImage is returned for attachments without an image mime type.
	ErrNotAnImage = errors.New("file must be an image")

	// ErrImageTooLarge is returned for attachments above MaxImageSize.
	ErrImageTooLarge = errors.New("image size must be less than 5MB")
)

// CheckImage validates an image attachment's mime type and size.
func CheckImage(mimeType string, size int64) error {
	if !strings.HasPrefix(mimeType, "image/") {
		return ErrNotAnImage
	}
	if size > MaxImageSize {
		return ErrImageTooLarge
	}
	return nil
}
