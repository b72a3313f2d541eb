// Package storage persists uploaded post images under a local media
// directory and hands back the URL path they are served from.
package storage

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrFileMustBeImage             = errors.New("file must be an image")
	ErrFileMustHaveAValidExtension = errors.New("file must have a valid extension")
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

type ImageStore struct {
	dir       string
	urlPrefix string
}

func NewImageStore(dir string, urlPrefix string) *ImageStore {
	return &ImageStore{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}
}

func (s *ImageStore) Dir() string {
	return s.dir
}

// Save writes the upload under a fresh uuid name and returns its URL path.
func (s *ImageStore) Save(fileHeader *multipart.FileHeader) (string, error) {
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		return "", ErrFileMustBeImage
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrFileMustHaveAValidExtension
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return s.urlPrefix + "/" + name, nil
}
