package services

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"event-storefront/internal/models"
	"event-storefront/internal/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	_ "golang.org/x/image/webp"
)

const jpegQuality = 85

// ImageService normalizes uploaded images before they are forwarded to the API
type ImageService struct {
	maxEdge  int
	maxBytes int64
}

// NewImageService creates an image normalizer. Images larger than maxEdge on
// either side are downscaled; inputs over maxBytes are refused.
func NewImageService(maxEdge int, maxBytes int64) *ImageService {
	return &ImageService{maxEdge: maxEdge, maxBytes: maxBytes}
}

// Normalize decodes the upload (honoring EXIF orientation), fits it inside
// maxEdge and re-encodes it as JPEG with a generated file name.
func (s *ImageService) Normalize(up *models.Upload) (*models.Upload, error) {
	if up.Empty() {
		return nil, models.ErrImageRequired
	}
	if s.maxBytes > 0 && int64(len(up.Data)) > s.maxBytes {
		return nil, UploadTooLarge(s.maxBytes)
	}

	img, err := imaging.Decode(bytes.NewReader(up.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, models.ErrNotAnImage
	}

	img = s.fit(img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}

	return &models.Upload{
		Filename:    generateImageName(up.Filename),
		ContentType: "image/jpeg",
		Data:        buf.Bytes(),
	}, nil
}

// UploadTooLarge wraps ErrUploadTooLarge with the size limit
func UploadTooLarge(maxBytes int64) error {
	return fmt.Errorf("%w Maximum size is %s.", models.ErrUploadTooLarge, utils.FormatFileSize(maxBytes))
}

func (s *ImageService) fit(img image.Image) image.Image {
	if s.maxEdge <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= s.maxEdge && b.Dy() <= s.maxEdge {
		return img
	}
	return imaging.Fit(img, s.maxEdge, s.maxEdge, imaging.Lanczos)
}

// generateImageName keeps a cleaned base name and adds a short unique suffix
func generateImageName(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	base = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(base), " ", "-"))
	if base == "" || base == "." || base == "/" {
		base = "image"
	}
	return fmt.Sprintf("%s-%s.jpg", base, uuid.New().String()[:8])
}
