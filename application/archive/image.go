package archive

import (
	"bytes"
	"image"

	// Decoders registered with image.DecodeConfig
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ValidateImage checks that data starts with a decodable image header
func ValidateImage(data []byte) error {
	_, err := ImageFormat(data)
	return err
}

// ImageFormat returns the registered format name of data
func ImageFormat(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return format, nil
}
