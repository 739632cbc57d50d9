package core

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOSFileSystem_WriteFileIsExclusive(t *testing.T) {
	ctx := context.Background()
	fsys := NewOSFileSystem()
	path := filepath.Join(t.TempDir(), "viceversion.task")

	if err := fsys.WriteFile(ctx, path, []byte("a"), PermScript); err != nil {
		t.Fatalf("first WriteFile failed: %v", err)
	}
	err := fsys.WriteFile(ctx, path, []byte("b"), PermScript)
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("second WriteFile error = %v, want fs.ErrExist", err)
	}

	data, err := fsys.ReadFile(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "a" {
		t.Errorf("content = %q, want original content", data)
	}
}

func TestOSFileSystem_RemoveIgnoresCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewOSFileSystem().Remove(ctx, path); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still exists after Remove")
	}
}

func TestOSFileSystem_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewOSFileSystem().ReadDir(ctx, t.TempDir()); !errors.Is(err, context.Canceled) {
		t.Errorf("ReadDir() error = %v, want context.Canceled", err)
	}
}

func TestMockFileSystem_ReadDirAndStat(t *testing.T) {
	ctx := context.Background()
	m := NewMockFileSystem()
	mtime := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	m.SetFileWithInfo("/project/pom.xml", []byte("<project/>"), 0o644, mtime)
	m.SetFile("/project/ios/App/Info.plist", []byte("plist"))

	entries, err := m.ReadDir(ctx, "/project")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Name() != "ios" || !entries[0].IsDir() {
		t.Errorf("entries[0] = %s (dir=%v), want ios dir", entries[0].Name(), entries[0].IsDir())
	}
	if entries[1].Name() != "pom.xml" {
		t.Errorf("entries[1] = %s, want pom.xml", entries[1].Name())
	}

	info, err := m.Stat(ctx, "/project/pom.xml")
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("ModTime = %v, want %v", info.ModTime(), mtime)
	}
}

func TestMockFileSystem_WriteAndRemove(t *testing.T) {
	ctx := context.Background()
	m := NewMockFileSystem()

	if err := m.WriteFile(ctx, "/p/a", []byte("x"), PermScript); err != nil {
		t.Fatal(err)
	}
	if err := m.WriteFile(ctx, "/p/a", []byte("y"), PermScript); !errors.Is(err, fs.ErrExist) {
		t.Errorf("duplicate WriteFile error = %v, want fs.ErrExist", err)
	}
	if !m.Exists("/p/a") {
		t.Fatal("file missing after WriteFile")
	}
	if err := m.Remove(ctx, "/p/a"); err != nil {
		t.Fatal(err)
	}
	if m.Exists("/p/a") {
		t.Error("file still present after Remove")
	}
	if got := m.Removed(); len(got) != 1 || got[0] != "/p/a" {
		t.Errorf("Removed() = %v", got)
	}
	if err := m.Remove(ctx, "/p/a"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("second Remove error = %v, want fs.ErrNotExist", err)
	}
}

func TestMockFileSystem_InjectedErrors(t *testing.T) {
	ctx := context.Background()
	m := NewMockFileSystem()
	m.SetFile("/p/package.json", []byte("{}"))
	readErr := errors.New("simulated read failure")
	m.SetReadError("/p/package.json", readErr)

	if _, err := m.ReadFile(ctx, "/p/package.json"); !errors.Is(err, readErr) {
		t.Errorf("ReadFile() error = %v, want %v", err, readErr)
	}

	writeErr := errors.New("simulated write failure")
	m.SetWriteError(writeErr)
	if err := m.WriteFile(ctx, "/p/new", nil, PermScript); !errors.Is(err, writeErr) {
		t.Errorf("WriteFile() error = %v, want %v", err, writeErr)
	}
}
