package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/pkg/storage"
)

// MaxImageSize caps product image uploads at 5 MB.
const MaxImageSize = 5 << 20

var (
	// ErrImageTooLarge rejects uploads over MaxImageSize.
	ErrImageTooLarge = errors.New("image exceeds the 5 MB limit")
	// ErrImageType rejects non-image uploads.
	ErrImageType = errors.New("unsupported image type")
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ImageProductStore is the slice of ProductRepository image upload
// needs.
type ImageProductStore interface {
	FindByID(id string) (models.Product, error)
	Update(item *models.Product) error
}

// ImageService stores product images on the configured disk and links
// them to menu items.
type ImageService struct {
	products ImageProductStore
}

func NewImageService(products ImageProductStore) *ImageService {
	return &ImageService{products: products}
}

// Upload validates and stores an image for the product, returning its
// public URL. The old image (if any) is deleted best-effort.
func (s *ImageService) Upload(productID, filename string, size int64, r io.Reader) (string, error) {
	if size > MaxImageSize {
		return "", ErrImageTooLarge
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("%w: %s", ErrImageType, ext)
	}

	item, err := s.products.FindByID(productID)
	if err != nil {
		return "", err
	}

	path := imagePath(ext)
	if err := storage.PutStream(path, io.LimitReader(r, MaxImageSize)); err != nil {
		return "", fmt.Errorf("image: store: %w", err)
	}

	oldURL := item.ImageURL
	item.ImageURL = storage.URL(path)
	if err := s.products.Update(&item); err != nil {
		storage.Delete(path) //nolint:errcheck
		return "", fmt.Errorf("image: link: %w", err)
	}

	if old := storedPath(oldURL); old != "" {
		storage.Delete(old) //nolint:errcheck
	}
	return item.ImageURL, nil
}

// imagePath builds a unique storage key: product-images/<ts>_<rand>.<ext>.
func imagePath(ext string) string {
	b := make([]byte, 4)
	rand.Read(b) //nolint:errcheck
	return fmt.Sprintf("product-images/%d_%s%s", time.Now().UnixNano(), hex.EncodeToString(b), ext)
}

// storedPath maps a public URL back to its storage key, or "" when the
// URL does not point at our disk.
func storedPath(url string) string {
	idx := strings.Index(url, "product-images/")
	if idx < 0 {
		return ""
	}
	return url[idx:]
}
