package output

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/axdriver/axdriver/pkg/automation"
)

func solidScreenshot(w, h int) *automation.ScreenshotResult {
	buf := make([]byte, w*h*4)
	for i := 0; i < len(buf); i += 4 {
		buf[i] = 0x20
		buf[i+1] = 0x40
		buf[i+2] = 0x80
		buf[i+3] = 0xFF
	}
	return &automation.ScreenshotResult{ImageData: buf, Width: w, Height: h}
}

func TestImageFromScreenshot(t *testing.T) {
	img, err := ImageFromScreenshot(solidScreenshot(8, 4))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
		t.Errorf("bounds = %v", img.Bounds())
	}

	if _, err := ImageFromScreenshot(nil); err == nil {
		t.Error("nil screenshot should error")
	}
	bad := solidScreenshot(8, 4)
	bad.ImageData = bad.ImageData[:10]
	if _, err := ImageFromScreenshot(bad); err == nil {
		t.Error("short buffer should error")
	}
}

func TestScaleImage(t *testing.T) {
	src, _ := ImageFromScreenshot(solidScreenshot(100, 60))

	half := ScaleImage(src, 0.5)
	if half.Bounds().Dx() != 50 || half.Bounds().Dy() != 30 {
		t.Errorf("half bounds = %v", half.Bounds())
	}

	// Factors outside (0, 1) are no-ops.
	if same := ScaleImage(src, 1.0); same != image.Image(src) {
		t.Error("factor 1.0 should return the source image")
	}
	if same := ScaleImage(src, 0); same != image.Image(src) {
		t.Error("factor 0 should return the source image")
	}
}

func TestEncodeImage(t *testing.T) {
	src, _ := ImageFromScreenshot(solidScreenshot(10, 10))

	data, err := EncodeImage(src, "png", 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("output is not valid PNG: %v", err)
	}

	if _, err := EncodeImage(src, "jpeg", 80); err != nil {
		t.Errorf("jpeg encode: %v", err)
	}
	if _, err := EncodeImage(src, "bmp", 0); err == nil {
		t.Error("unsupported format should error")
	}
}
