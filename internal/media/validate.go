// internal/media/validate.go
package media

import (
	"fmt"
	"path/filepath"
	"strings"
)

var allowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// ValidateUpload checks size and extension limits before any bytes hit
// the network.
func ValidateUpload(in UploadInput, maxSize int64) error {
	if maxSize > 0 && int64(len(in.Body)) > maxSize {
		return fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", len(in.Body), maxSize)
	}

	fileExt := strings.ToLower(filepath.Ext(in.FileName))
	for _, allowed := range allowedImageExtensions {
		if fileExt == allowed {
			return nil
		}
	}
	return fmt.Errorf("file type %s is not allowed", fileExt)
}

// ValidateImageBytes sniffs the file signature of common image formats.
func ValidateImageBytes(buffer []byte) error {
	if !isValidImageType(buffer) {
		return fmt.Errorf("invalid image file")
	}
	return nil
}

func isValidImageType(buffer []byte) bool {
	// Check for JPEG
	if len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF {
		return true
	}

	// Check for PNG
	if len(buffer) >= 8 && buffer[0] == 0x89 && buffer[1] == 0x50 && buffer[2] == 0x4E && buffer[3] == 0x47 {
		return true
	}

	// Check for GIF
	if len(buffer) >= 6 && (string(buffer[0:6]) == "GIF87a" || string(buffer[0:6]) == "GIF89a") {
		return true
	}

	// Check for WebP (RIFF....WEBP)
	if len(buffer) >= 12 && string(buffer[0:4]) == "RIFF" && string(buffer[8:12]) == "WEBP" {
		return true
	}

	return false
}
