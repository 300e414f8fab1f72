// Package storage keeps uploaded post images on the local filesystem or in
// S3.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"Yatube/api/utils/fileformat"

	"github.com/disintegration/imaging"
)

// MaxImageSize caps uploaded images at 5MB.
const MaxImageSize = 5 << 20

var (
	ErrNotImage = errors.New("storage: upload is not a valid image")
	ErrTooLarge = errors.New("storage: image is too large")
)

type ImageStore interface {
	Save(ctx context.Context, img *Image) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// Image is a validated upload ready to be stored under Key.
type Image struct {
	Key         string
	ContentType string
	Data        []byte
}

// PrepareImage reads r fully, checks that it decodes as an image and assigns
// it a fresh key under posts/.
func PrepareImage(r io.Reader, filename string) (*Image, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("storage: read upload: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, ErrNotImage
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotImage
	}
	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	return &Image{
		Key:         "posts/" + fileformat.UniqueFormat(filename),
		ContentType: contentType,
		Data:        data,
	}, nil
}
