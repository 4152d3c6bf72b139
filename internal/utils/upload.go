package utils

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/worksys/workforce-api/internal/constants"
)

// EncodeAttachment reads an uploaded proof file and returns it as a
// self-contained data URI for inline storage. Returns the placeholder value
// when no file was sent.
func EncodeAttachment(fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Size == 0 {
		return constants.PlaceholderScreenshot, nil
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)), nil
}
