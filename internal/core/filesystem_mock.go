package core

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing/fstest"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests. Absolute paths such as
// "/project/pom.xml" are stored unrooted in an fstest.MapFS, which also
// synthesizes the parent directories for ReadDir and Stat.
type MockFileSystem struct {
	mu        sync.RWMutex
	files     fstest.MapFS
	readErrs  map[string]error
	writeErr  error
	removeErr error
	removed   []string
}

// NewMockFileSystem returns an empty MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:    fstest.MapFS{},
		readErrs: map[string]error{},
	}
}

// Ensure MockFileSystem implements FileSystem.
var _ FileSystem = (*MockFileSystem)(nil)

// SetFile stores a regular file with mode 0644 and the current time as mtime.
func (m *MockFileSystem) SetFile(path string, data []byte) {
	m.SetFileWithInfo(path, data, 0o644, time.Now())
}

// SetFileWithInfo stores a file with an explicit mode and modification time.
func (m *MockFileSystem) SetFileWithInfo(path string, data []byte, mode fs.FileMode, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[mockKey(path)] = &fstest.MapFile{Data: data, Mode: mode, ModTime: modTime}
}

// SetDir stores an empty directory.
func (m *MockFileSystem) SetDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[mockKey(path)] = &fstest.MapFile{Mode: fs.ModeDir | 0o755}
}

// SetReadError makes ReadFile fail for path.
func (m *MockFileSystem) SetReadError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErrs[mockKey(path)] = err
}

// SetWriteError makes every WriteFile call fail.
func (m *MockFileSystem) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// SetRemoveError makes every Remove call fail.
func (m *MockFileSystem) SetRemoveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeErr = err
}

// Exists reports whether path is present.
func (m *MockFileSystem) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, err := m.files.Stat(mockKey(path))
	return err == nil
}

// Removed returns the paths passed to successful Remove calls, in order.
func (m *MockFileSystem) Removed() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.removed...)
}

func (m *MockFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	key := mockKey(path)
	if err, ok := m.readErrs[key]; ok {
		return nil, err
	}
	return m.files.ReadFile(key)
}

func (m *MockFileSystem) WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	key := mockKey(path)
	if _, ok := m.files[key]; ok {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrExist}
	}
	m.files[key] = &fstest.MapFile{Data: append([]byte(nil), data...), Mode: perm, ModTime: time.Now()}
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files.Stat(mockKey(path))
}

func (m *MockFileSystem) ReadDir(ctx context.Context, path string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.files.ReadDir(mockKey(path))
}

func (m *MockFileSystem) Remove(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.removeErr != nil {
		return m.removeErr
	}
	key := mockKey(path)
	if _, ok := m.files[key]; !ok {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	delete(m.files, key)
	m.removed = append(m.removed, path)
	return nil
}

// mockKey converts an OS path into an io/fs path understood by fstest.MapFS.
func mockKey(path string) string {
	p := strings.TrimPrefix(filepath.ToSlash(filepath.Clean(path)), "/")
	if p == "" {
		return "."
	}
	return p
}
