package bookcompiler

import (
	"fmt"
	"net/http"
	"strings"
)

func cleanText(text string) string {
	// Replace characters the core fonts render badly
	text = strings.ReplaceAll(text, "“", "\"") // smart quotes
	text = strings.ReplaceAll(text, "”", "\"")
	text = strings.ReplaceAll(text, "‘", "'")
	text = strings.ReplaceAll(text, "’", "'")
	text = strings.ReplaceAll(text, "…", "...")
	text = strings.ReplaceAll(text, "—", "-")
	return text
}

// imageType maps sniffed content to the type names gofpdf accepts.
func imageType(data []byte) (string, error) {
	switch http.DetectContentType(data) {
	case "image/png":
		return "PNG", nil
	case "image/jpeg":
		return "JPG", nil
	case "image/gif":
		return "GIF", nil
	}
	return "", fmt.Errorf("unsupported image format")
}
