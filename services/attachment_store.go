package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// AttachmentStore persists uploaded file bodies and hands back the descriptor
// the workflow engine records. The engine never touches bytes itself.
type AttachmentStore interface {
	Store(file *multipart.FileHeader) (AttachmentDescriptor, error)
}

// DiskAttachmentStore writes uploads under a base directory using random
// filenames. Stored files are never overwritten or removed: attachment
// history is append-only.
type DiskAttachmentStore struct {
	BasePath string
}

// NewDiskAttachmentStore uses UPLOAD_PATH, defaulting to ./uploads.
func NewDiskAttachmentStore() *DiskAttachmentStore {
	basePath := os.Getenv("UPLOAD_PATH")
	if basePath == "" {
		basePath = "./uploads"
	}
	return &DiskAttachmentStore{BasePath: basePath}
}

func (s *DiskAttachmentStore) Store(file *multipart.FileHeader) (AttachmentDescriptor, error) {
	src, err := file.Open()
	if err != nil {
		return AttachmentDescriptor{}, fmt.Errorf("%w: open upload: %v", ErrDependency, err)
	}
	defer src.Close()

	if err := os.MkdirAll(s.BasePath, os.ModePerm); err != nil {
		return AttachmentDescriptor{}, fmt.Errorf("%w: create upload directory: %v", ErrDependency, err)
	}

	storedName := uuid.NewString() + filepath.Ext(file.Filename)
	storedPath := filepath.Join(s.BasePath, storedName)

	dst, err := os.Create(storedPath)
	if err != nil {
		return AttachmentDescriptor{}, fmt.Errorf("%w: create stored file: %v", ErrDependency, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return AttachmentDescriptor{}, fmt.Errorf("%w: write stored file: %v", ErrDependency, err)
	}

	mediaType := file.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}

	return AttachmentDescriptor{
		Name:      file.Filename,
		Path:      storedPath,
		MediaType: mediaType,
	}, nil
}
