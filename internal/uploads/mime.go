package uploads

import (
	"fmt"
	"mime"
	"strings"
)

var imageTypes = []string{"image/png", "image/jpeg", "image/webp", "image/gif"}

func parseContentType(value string) (string, error) {
	clean := strings.TrimSpace(value)
	if clean == "" {
		return "", fmt.Errorf("content type required")
	}
	mediaType, _, err := mime.ParseMediaType(clean)
	if err != nil {
		return "", fmt.Errorf("content type invalid: %w", err)
	}
	return strings.ToLower(mediaType), nil
}

func isAllowedImage(contentType string) bool {
	for _, candidate := range imageTypes {
		if candidate == contentType {
			return true
		}
	}
	return false
}

func allowedImageDescription() string {
	names := make([]string, len(imageTypes))
	for i, t := range imageTypes {
		names[i] = strings.TrimPrefix(t, "image/")
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1] + " images"
}
