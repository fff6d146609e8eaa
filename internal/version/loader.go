package version

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/oshokin/version-file/internal/logger"
)

// FileName is the fixed name of the version descriptor.
const FileName = "version.yaml"

// Provider exposes the version string of the running software.
type Provider interface {
	VersionString() string
}

// File is a loaded version descriptor. It is immutable once constructed,
// so a single File can be shared between goroutines without locking.
type File struct {
	// path is the absolute location of the descriptor that was parsed.
	path string
	// descriptor holds the parsed document; it is never handed out.
	descriptor descriptor
}

var _ Provider = (*File)(nil)

// Load reads dir/version.yaml and returns the parsed descriptor.
// dir is the directory of the running program; no other location is searched.
// On failure the returned File is nil and the error wraps ErrResolution,
// ErrFileNotFound, ErrRead or ErrParse.
func Load(ctx context.Context, dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty directory", ErrResolution)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResolution, err)
	}

	path := filepath.Join(absDir, FileName)

	parsed, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	file := &File{
		path:       path,
		descriptor: *parsed,
	}

	logger.DebugKV(ctx, "Version descriptor loaded", "path", path, "version", file.VersionString())

	return file, nil
}

// LoadFromExecutable loads the descriptor located next to the running executable.
func LoadFromExecutable(ctx context.Context) (*File, error) {
	dir, err := ExecutableDir()
	if err != nil {
		return nil, err
	}

	return Load(ctx, dir)
}

// ExecutableDir returns the directory containing the running executable.
// Symlinks are resolved, so a linked binary finds the descriptor next to its target.
func ExecutableDir() (string, error) {
	executable, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("%w: locate executable: %w", ErrResolution, err)
	}

	resolved, err := filepath.EvalSymlinks(executable)
	if err != nil {
		return "", fmt.Errorf("%w: resolve executable %q: %w", ErrResolution, executable, err)
	}

	return filepath.Dir(resolved), nil
}

// VersionString returns the version recorded in the descriptor,
// or an empty string when the document had no version key.
func (f *File) VersionString() string {
	if f == nil || f.descriptor.Version == nil {
		return ""
	}

	return *f.descriptor.Version
}

// Path returns the absolute path of the parsed descriptor.
func (f *File) Path() string {
	if f == nil {
		return ""
	}

	return f.path
}

// parseFile opens and decodes the descriptor at path.
// The file handle is released on every return path.
func parseFile(path string) (*descriptor, error) {
	file, err := os.Open(path) //nolint:gosec // The path is built from the program directory and a constant name.
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}

		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	defer func() {
		_ = file.Close() //nolint:errcheck // Read-only handle.
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrRead, path)
	}

	parsed, err := decodeDescriptor(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}

	return parsed, nil
}
