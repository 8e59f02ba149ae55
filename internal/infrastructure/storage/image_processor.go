package storage

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// ErrUnsupportedImage is returned for anything that is not a JPEG/PNG within the size limit
var ErrUnsupportedImage = errors.New("unsupported image")

const (
	DefaultMaxImageSize = 5 * 1024 * 1024
	DefaultPhotoSide    = 600
	jpegQuality         = 90
)

// ImageProcessor validates uploaded photos and re-encodes them as bounded JPEGs
type ImageProcessor struct {
	MaxSize int64 // bytes
	Side    int   // longest side after resize, px
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{MaxSize: DefaultMaxImageSize, Side: DefaultPhotoSide}
}

// Validate checks size and format (jpeg or png only)
func (p *ImageProcessor) Validate(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty file", ErrUnsupportedImage)
	}
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("%w: exceeds %dMB", ErrUnsupportedImage, p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	switch format {
	case "jpeg", "png":
		return nil
	default:
		return fmt.Errorf("%w: format %s not allowed", ErrUnsupportedImage, format)
	}
}

// Normalize validates data, fits it into Side x Side and encodes it as JPEG.
// Smaller images keep their dimensions.
func (p *ImageProcessor) Normalize(data []byte) ([]byte, error) {
	if err := p.Validate(data); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode: %v", ErrUnsupportedImage, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > p.Side || bounds.Dy() > p.Side {
		img = imaging.Fit(img, p.Side, p.Side, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("cannot encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
