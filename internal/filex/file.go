// Package filex holds small filesystem helpers used by the CLI.
package filex

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// MaxPhotoSize bounds the files ReadPhoto accepts.
const MaxPhotoSize = 20 << 20

// EnsureParentDir creates the directory that will hold the file at path
// and returns its absolute name.
func EnsureParentDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", path, err)
	}

	dir := filepath.Dir(abs)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// ReadPhoto loads an image from disk and guesses its content type, first
// from the extension and then by sniffing the data.
func ReadPhoto(path string) ([]byte, string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, "", err
	}
	if fi.IsDir() {
		return nil, "", fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > MaxPhotoSize {
		return nil, "", fmt.Errorf("%s is larger than %d bytes", path, MaxPhotoSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return data, contentType, nil
}
