package ai

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractContext pulls plain text out of an uploaded supporting document.
// PDF and plain-text files are supported; anything else is ignored. An
// extraction failure degrades to empty context rather than failing the
// draft request.
func ExtractContext(filename string, data []byte, logger *slog.Logger) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err := extractPDFText(data)
		if err != nil {
			logger.Warn("Failed to extract pdf text",
				slog.String("filename", filename),
				slog.Any("error", err),
			)
			return ""
		}
		return text
	case ".txt":
		return string(data)
	default:
		logger.Debug("Unsupported context file type ignored",
			slog.String("filename", filename),
		)
		return ""
	}
}

func extractPDFText(data []byte) (text string, err error) {
	// The pdf package panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	return buf.String(), nil
}
