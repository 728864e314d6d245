package services

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/vmkteam/embedlog"
)

// Tesseract runs the tesseract binary over receipt photos. Indonesian
// and English language packs must be installed.
type Tesseract struct {
	logger embedlog.Logger
}

var _ Recognizer = (*Tesseract)(nil)

// NewTesseract creates the OCR recognizer.
func NewTesseract(logger embedlog.Logger) *Tesseract {
	return &Tesseract{logger: logger}
}

func (t *Tesseract) Recognize(ctx context.Context, image []byte) (string, error) {
	img, err := os.CreateTemp("", "receipt-*.jpg")
	if err != nil {
		return "", fmt.Errorf("create temp image: %w", err)
	}
	defer os.Remove(img.Name())

	if _, err := img.Write(image); err != nil {
		img.Close()
		return "", fmt.Errorf("write temp image: %w", err)
	}
	if err := img.Close(); err != nil {
		return "", fmt.Errorf("close temp image: %w", err)
	}

	cmd := exec.CommandContext(ctx, "tesseract",
		img.Name(),
		"stdout",
		"-l", "eng+ind",
	)
	output, err := cmd.Output()
	if err != nil {
		var stderr string
		if ee, ok := err.(*exec.ExitError); ok {
			stderr = string(ee.Stderr)
		}
		return "", fmt.Errorf("tesseract error: %w, output: %s", err, stderr)
	}

	text := strings.TrimSpace(string(output))
	t.logger.Print(ctx, "ocr finished", "text_len", len(text))
	return text, nil
}
