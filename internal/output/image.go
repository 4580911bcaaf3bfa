package output

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/axdriver/axdriver/pkg/automation"
)

// ImageFromScreenshot wraps raw capture pixels in an image.RGBA. The pixel
// buffer is shared, not copied.
func ImageFromScreenshot(shot *automation.ScreenshotResult) (*image.RGBA, error) {
	if shot == nil {
		return nil, fmt.Errorf("screenshot is nil")
	}
	want := shot.Width * shot.Height * 4
	if len(shot.ImageData) != want {
		return nil, fmt.Errorf("screenshot buffer is %d bytes, want %d for %dx%d RGBA",
			len(shot.ImageData), want, shot.Width, shot.Height)
	}
	return &image.RGBA{
		Pix:    shot.ImageData,
		Stride: shot.Width * 4,
		Rect:   image.Rect(0, 0, shot.Width, shot.Height),
	}, nil
}

// ScaleImage resizes img by factor with bilinear interpolation. Factors
// outside (0, 1) return img unchanged; screenshots are only ever shrunk.
func ScaleImage(img image.Image, factor float64) image.Image {
	if factor <= 0 || factor >= 1 {
		return img
	}
	b := img.Bounds()
	w := int(float64(b.Dx()) * factor)
	h := int(float64(b.Dy()) * factor)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// EncodeImage serializes img as png or jpg. Quality applies to JPEG only.
func EncodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "png", "":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("png encode: %w", err)
		}
	case "jpg", "jpeg":
		if quality <= 0 || quality > 100 {
			quality = 80
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("jpeg encode: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}
	return buf.Bytes(), nil
}
