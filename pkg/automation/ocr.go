package automation

import "context"

// OCRProvider recognizes text in images. The engine does no image
// preprocessing beyond reconstructing a pixel buffer from bytes it captured
// itself; providers receive either a file path or raw tightly-packed RGBA
// pixels.
type OCRProvider interface {
	RecognizeFile(ctx context.Context, imagePath string) (string, error)
	RecognizeImage(ctx context.Context, rgba []byte, width, height int) (string, error)
}

// UnsupportedOCR is the default provider; it reports every recognition
// request as unsupported.
type UnsupportedOCR struct{}

// RecognizeFile implements OCRProvider.
func (UnsupportedOCR) RecognizeFile(ctx context.Context, imagePath string) (string, error) {
	return "", UnsupportedError("no OCR provider configured")
}

// RecognizeImage implements OCRProvider.
func (UnsupportedOCR) RecognizeImage(ctx context.Context, rgba []byte, width, height int) (string, error) {
	return "", UnsupportedError("no OCR provider configured")
}
