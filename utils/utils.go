package utils

import (
	rndm "math/rand"
	"mime/multipart"
	"net/http"
	"os"
	"slices"
	"strings"
)

var idRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

// GenerateID creates a lowercase alphanumeric identifier of length n.
func GenerateID(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = idRunes[rndm.Intn(len(idRunes))]
	}
	return string(b)
}

// --- Image Validation ---

var SupportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

func ValidateImageFileType(w http.ResponseWriter, header *multipart.FileHeader) bool {
	mimeType := header.Header.Get("Content-Type")
	if !SupportedImageTypes[mimeType] {
		http.Error(w, "Invalid file type. Supported formats: JPEG, PNG, WebP, GIF.", http.StatusBadRequest)
		return false
	}
	return true
}

// --- Directory Helper ---

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// NormalizeEmail lowercases and trims; "&" is a recurring typo for "@" in
// imported customer data, so it is rewritten.
func NormalizeEmail(email string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(email)), "&", "@")
}

func Contains(slice []string, value string) bool {
	return slices.Contains(slice, value)
}
