package imageproc

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Decode decodes PNG, JPEG, GIF, TIFF, BMP or WebP data.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	return img, format, nil
}

// Encode encodes img in the format implied by name's extension.
// Unknown extensions encode as PNG.
func Encode(img image.Image, name string) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch ext(name) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95})
	case ".gif":
		err = gif.Encode(&buf, img, nil)
	case ".tif", ".tiff":
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate})
	case ".bmp":
		err = bmp.Encode(&buf, img)
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// ContentType returns the MIME type Encode produces for name.
func ContentType(name string) string {
	switch ext(name) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	case ".json":
		return "application/json"
	default:
		return "image/png"
	}
}

func ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
