package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr",
	Short: "Run OCR over the screen or an image file",
	Long:  "Recognize text via the configured OCR provider. Without a provider this reports an unsupported operation.",
	RunE:  runOCR,
}

func init() {
	rootCmd.AddCommand(ocrCmd)
	ocrCmd.Flags().String("image", "", "Path to an image file; captures the screen when omitted")
}

func runOCR(cmd *cobra.Command, args []string) error {
	imagePath, _ := cmd.Flags().GetString("image")

	desktop, err := newDesktop()
	if err != nil {
		return err
	}

	var text string
	if imagePath != "" {
		text, err = desktop.OCRImagePath(cmd.Context(), imagePath)
	} else {
		shot, captureErr := desktop.CaptureScreen(cmd.Context())
		if captureErr != nil {
			return captureErr
		}
		text, err = desktop.OCRScreenshot(cmd.Context(), shot)
	}
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}
