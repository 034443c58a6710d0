package margarita

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemStore resolves snippets as files under a fixed base path.
// Include paths are interpreted relative to the base path regardless of
// which snippet references them, so a snippet tree renders identically no
// matter where rendering started. Paths resolving outside the base path
// are rejected.
type FilesystemStore struct {
	base string
}

// FilesystemStoreDriver is the driver for creating FilesystemStore instances.
type FilesystemStoreDriver struct{}

func init() {
	RegisterStoreDriver(DriverFilesystem, &FilesystemStoreDriver{})
}

// Open creates a FilesystemStore rooted at the connection string.
func (d *FilesystemStoreDriver) Open(connectionString string) (SnippetStore, error) {
	return NewFilesystemStore(connectionString)
}

// NewFilesystemStore creates a snippet store rooted at basePath.
func NewFilesystemStore(basePath string) (*FilesystemStore, error) {
	if basePath == "" {
		return nil, NewStoreError(ErrMsgBasePathRequired, DriverFilesystem, nil)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, NewStoreError(ErrMsgBasePathRequired, DriverFilesystem, err)
	}
	return &FilesystemStore{base: abs}, nil
}

// BasePath returns the absolute base path snippets resolve against.
func (s *FilesystemStore) BasePath() string {
	return s.base
}

// Load reads a snippet file relative to the base path. The canonical form
// is the cleaned absolute file path.
func (s *FilesystemStore) Load(ctx context.Context, path string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	canonical, err := s.resolve(path)
	if err != nil {
		return "", "", err
	}

	data, err := os.ReadFile(canonical)
	if err != nil {
		return "", "", err
	}
	return string(data), canonical, nil
}

// resolve joins a snippet path onto the base path and rejects escapes.
func (s *FilesystemStore) resolve(path string) (string, error) {
	canonical := filepath.Clean(filepath.Join(s.base, filepath.FromSlash(path)))
	if canonical != s.base && !strings.HasPrefix(canonical, s.base+string(filepath.Separator)) {
		return "", NewStoreError(ErrMsgPathEscapesRoot, DriverFilesystem, nil)
	}
	return canonical, nil
}

// Name returns the driver name.
func (s *FilesystemStore) Name() string {
	return DriverFilesystem
}

// Close is a no-op for the filesystem store.
func (s *FilesystemStore) Close() error {
	return nil
}
