package ebiten

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// screenshotName returns the file name for a screenshot taken at t
func screenshotName(t time.Time) string {
	return fmt.Sprintf("screenshot-%s.png", t.Format("20060102-150405"))
}

// saveScreenshot writes img as a PNG into dir and returns the file path
func saveScreenshot(img image.Image, dir string, t time.Time) (string, error) {
	path := filepath.Join(dir, screenshotName(t))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding screenshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing screenshot: %w", err)
	}
	return path, nil
}
