package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/hyperview/internal/logger"
)

// FromFramebuffer converts RGBA pixels read back from OpenGL into an
// image. Rows are flipped since OpenGL has its origin at the bottom left.
func FromFramebuffer(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// WriteCapture saves a framebuffer read-back as <Dir>/<base>-screen.png.
func (e *Exporter) WriteCapture(base string, pixels []byte, width, height int) (string, error) {
	img, err := FromFramebuffer(pixels, width, height)
	if err != nil {
		return "", err
	}
	if err := e.mkdir(); err != nil {
		return "", err
	}
	path := filepath.Join(e.Dir, base+"-screen.png")
	if err := create(path, func(w io.Writer) error { return png.Encode(w, img) }); err != nil {
		return "", err
	}
	logger.Info("screen captured", zap.String("file", path))
	return path, nil
}
