package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxImageSize caps uploaded pictures at 5 MB.
const MaxImageSize = 5 << 20

var ErrUnsupportedImage = errors.New("unsupported image type")

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ValidateImageExtension checks the filename against the allowed picture types.
func ValidateImageExtension(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExt[ext] {
		return "", fmt.Errorf("%w: %q (allowed: .jpg, .jpeg, .png, .webp)", ErrUnsupportedImage, ext)
	}
	return ext, nil
}

// ImageKey builds the object key messes/<messID>/<uuid><ext>.
func ImageKey(messID, filename string) (string, error) {
	ext, err := ValidateImageExtension(filename)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("messes/%s/%s%s", messID, uuid.New().String(), ext), nil
}
