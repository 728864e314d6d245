package services

import (
	"context"
	"time"

	"github.com/vmkteam/embedlog"

	"duit/pkg/duit"
	"duit/pkg/receipt"
)

// Recognizer turns a receipt photo into raw text.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Extractor turns recognized receipt text into a structured scan
// result. Implementations are total: they always return a usable
// result, degrading to placeholder fields instead of failing.
type Extractor interface {
	Extract(ctx context.Context, ocrText string) (duit.ScanResult, error)
}

// MockRecognizer is a canned-text Recognizer for tests and local runs
// without tesseract installed.
type MockRecognizer struct {
	logger embedlog.Logger
	Text   string
}

// NewMockRecognizer creates a recognizer that always returns text.
func NewMockRecognizer(logger embedlog.Logger, text string) *MockRecognizer {
	return &MockRecognizer{logger: logger, Text: text}
}

func (m *MockRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	m.logger.Print(ctx, "mock recognizer", "image_bytes", len(image))
	return m.Text, nil
}

// Fallback is the offline Extractor built on the pattern cascade. It
// serves when no Gemini API key is configured.
type Fallback struct {
	logger embedlog.Logger
	now    func() time.Time
}

// NewFallback creates the pattern-based extractor.
func NewFallback(logger embedlog.Logger) *Fallback {
	return &Fallback{logger: logger, now: time.Now}
}

func (f *Fallback) Extract(ctx context.Context, ocrText string) (duit.ScanResult, error) {
	f.logger.Print(ctx, "fallback extraction", "text_len", len(ocrText))
	return receipt.Parse(ocrText, f.now()), nil
}
