package api

import (
	"io"
	"os"
	"path/filepath"
)

// Upload is a file attached to a multipart request.
type Upload struct {
	FieldName string
	Filename  string
	Reader    io.Reader
}

// Field returns the form field name, "avatar" unless set.
func (u *Upload) Field() string {
	if u.FieldName == "" {
		return "avatar"
	}
	return u.FieldName
}

// OpenUpload opens path as an avatar upload. The caller closes the returned file.
func OpenUpload(path string) (*Upload, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return &Upload{Filename: filepath.Base(path), Reader: f}, f, nil
}
