package client

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// StoredFile describes one object in the attachment store
type StoredFile struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// FileStore defines the interface for attachment storage operations
type FileStore interface {
	Save(ctx context.Context, originalName string, file io.Reader, contentType string) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]StoredFile, error)
}

// GenerateFileName generates a unique stored file name
// Format: {uuid}_{timestamp}{ext}
func GenerateFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s_%d%s", uuid.New().String(), time.Now().Unix(), ext)
}
