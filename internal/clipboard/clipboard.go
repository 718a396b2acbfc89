// Package clipboard reads pasted images and writes reply text through the
// system clipboard.
package clipboard

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"sync"
	"time"

	"golang.design/x/clipboard"

	"github.com/cazelabs/cazechat/internal/logger"
)

// MaxImageDimension is the maximum allowed width or height of a pasted image.
const MaxImageDimension = 8000

// ImageData is an image read from the clipboard, re-encoded as PNG.
type ImageData struct {
	Data      []byte
	MediaType string
	Width     int
	Height    int
}

// Filename returns the name the pasted image is uploaded under.
func (img *ImageData) Filename(now time.Time) string {
	return fmt.Sprintf("pasted-%s.png", now.Format("20060102-150405"))
}

// Validate checks the image dimensions and that it fits within maxBytes.
func (img *ImageData) Validate(maxBytes int) error {
	if maxBytes > 0 && len(img.Data) > maxBytes {
		return fmt.Errorf("image too large: %d bytes (max %d bytes / %.1fMB)",
			len(img.Data), maxBytes, float64(maxBytes)/(1<<20))
	}
	if img.Width > MaxImageDimension || img.Height > MaxImageDimension {
		return fmt.Errorf("image dimensions too large: %dx%d (max %dx%d)",
			img.Width, img.Height, MaxImageDimension, MaxImageDimension)
	}
	return nil
}

// SizeKB returns the image size in kilobytes
func (img *ImageData) SizeKB() int {
	return len(img.Data) / 1024
}

var (
	initOnce sync.Once
	initErr  error
)

// Init initializes the clipboard. It is safe to call multiple times.
func Init() error {
	initOnce.Do(func() {
		if err := clipboard.Init(); err != nil {
			logger.WithComponent("clipboard").Warn("failed to initialize", "error", err)
			initErr = fmt.Errorf("failed to initialize clipboard: %w", err)
			return
		}
		logger.WithComponent("clipboard").Debug("initialized")
	})
	return initErr
}

// ReadImage reads an image from the clipboard. It returns nil, nil when the
// clipboard holds no image.
func ReadImage() (*ImageData, error) {
	if err := Init(); err != nil {
		return nil, err
	}

	raw := clipboard.Read(clipboard.FmtImage)
	if len(raw) == 0 {
		return nil, nil
	}
	return DecodeImage(raw)
}

// DecodeImage decodes raw image bytes and re-encodes them as PNG so every
// pasted image reaches the backend in the same format.
func DecodeImage(raw []byte) (*ImageData, error) {
	log := logger.WithComponent("clipboard")

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		log.Warn("failed to decode image", "bytes", len(raw), "error", err)
		return nil, fmt.Errorf("failed to decode clipboard image: %w", err)
	}

	bounds := img.Bounds()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image as PNG: %w", err)
	}

	log.Debug("image decoded", "format", format, "width", bounds.Dx(), "height", bounds.Dy(), "png_bytes", buf.Len())
	return &ImageData{
		Data:      buf.Bytes(),
		MediaType: "image/png",
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
	}, nil
}

// WriteText writes text to the clipboard.
func WriteText(text string) error {
	if err := Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	logger.WithComponent("clipboard").Debug("wrote text", "bytes", len(text))
	return nil
}
