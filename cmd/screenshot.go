package cmd

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/axdriver/axdriver/internal/output"
	"github.com/axdriver/axdriver/pkg/automation"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture a screenshot",
	Long:  "Capture the primary screen or a named monitor. Writes base64 to stdout by default for agent consumption.",
	RunE:  runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().String("monitor", "", "Capture a specific monitor by name")
	screenshotCmd.Flags().String("output", "", "Output file path (default: stdout as base64)")
	screenshotCmd.Flags().String("image-format", "png", "Image format: png, jpg")
	screenshotCmd.Flags().Int("quality", 80, "JPEG quality 1-100")
	screenshotCmd.Flags().Float64("scale", 1.0, "Scale factor 0.1-1.0 (below 1 shrinks for token efficiency)")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	monitor, _ := cmd.Flags().GetString("monitor")
	outPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("image-format")
	quality, _ := cmd.Flags().GetInt("quality")
	scale, _ := cmd.Flags().GetFloat64("scale")

	desktop, err := newDesktop()
	if err != nil {
		return err
	}

	var shot *automation.ScreenshotResult
	if monitor != "" {
		shot, err = desktop.CaptureMonitorByName(cmd.Context(), monitor)
	} else {
		shot, err = desktop.CaptureScreen(cmd.Context())
	}
	if err != nil {
		return err
	}

	img, err := output.ImageFromScreenshot(shot)
	if err != nil {
		return err
	}
	data, err := output.EncodeImage(output.ScaleImage(img, scale), format, quality)
	if err != nil {
		return err
	}

	if outPath != "" {
		return os.WriteFile(outPath, data, 0644)
	}

	encoder := base64.NewEncoder(base64.StdEncoding, os.Stdout)
	if _, err := encoder.Write(data); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	fmt.Println()
	return nil
}
