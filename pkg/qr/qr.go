// Package qr generates QR code images for table links.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	// MinSize and MaxSize bound the rendered image in pixels.
	MinSize     = 64
	MaxSize     = 2048
	DefaultSize = 512
)

// PNG renders content as a QR code PNG of size x size pixels.
// Size is clamped to [MinSize, MaxSize]; pass 0 for DefaultSize.
func PNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qr: content is empty")
	}
	if size == 0 {
		size = DefaultSize
	}
	if size < MinSize {
		size = MinSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr: encode: %w", err)
	}
	return png, nil
}
