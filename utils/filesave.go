package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// SaveImageFile stores an uploaded image under folder with a generated name
// and returns the stored filename.
func SaveImageFile(file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	if err := EnsureDir(folder); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(header.Filename))
	filePath := filepath.Join(folder, filename)

	out, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err = io.Copy(out, file); err != nil {
		return "", err
	}

	return filename, nil
}

// CreateThumb writes a width-constrained thumbnail next to the original,
// under folder/thumb/.
func CreateThumb(id, folder, ext string, width int) error {
	src, err := imaging.Open(filepath.Join(folder, id+ext))
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}

	thumbDir := filepath.Join(folder, "thumb")
	if err := EnsureDir(thumbDir); err != nil {
		return fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	thumb := imaging.Resize(src, width, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, id+ext)); err != nil {
		return fmt.Errorf("failed to save thumbnail: %w", err)
	}
	return nil
}
