package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// MockFileStore implements FileStore in memory for testing
type MockFileStore struct {
	mu    sync.Mutex
	files map[string][]byte
	times map[string]time.Time

	// Optional function overrides for custom test behavior
	SaveFunc   func(ctx context.Context, originalName string, file io.Reader, contentType string) (string, error)
	OpenFunc   func(ctx context.Context, name string) (io.ReadCloser, error)
	DeleteFunc func(ctx context.Context, name string) error
	ListFunc   func(ctx context.Context) ([]StoredFile, error)
}

// NewMockFileStore creates a new in-memory file store for testing
func NewMockFileStore() *MockFileStore {
	return &MockFileStore{
		files: make(map[string][]byte),
		times: make(map[string]time.Time),
	}
}

// Put seeds a file directly, bypassing name generation
func (m *MockFileStore) Put(name string, data []byte, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = data
	m.times[name] = modTime
}

// Has reports whether a file is currently stored
func (m *MockFileStore) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[name]
	return ok
}

func (m *MockFileStore) Save(ctx context.Context, originalName string, file io.Reader, contentType string) (string, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, originalName, file, contentType)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	name := GenerateFileName(originalName)
	m.Put(name, data, time.Now())
	return name, nil
}

func (m *MockFileStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MockFileStore) Delete(ctx context.Context, name string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[name]; !ok {
		return fmt.Errorf("file not found: %s", name)
	}
	delete(m.files, name)
	delete(m.times, name)
	return nil
}

func (m *MockFileStore) List(ctx context.Context) ([]StoredFile, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	files := make([]StoredFile, 0, len(m.files))
	for name, data := range m.files {
		files = append(files, StoredFile{
			Name:    name,
			Size:    int64(len(data)),
			ModTime: m.times[name],
		})
	}
	return files, nil
}
