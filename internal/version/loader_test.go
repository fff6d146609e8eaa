package version

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeDescriptor creates a temporary directory holding version.yaml with the given content.
func writeDescriptor(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))

	return dir
}

// TestLoad_VersionValues verifies that well-formed descriptors round-trip the version text unchanged.
func TestLoad_VersionValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		content string
		want    string
	}{
		{content: "version: 1.2.3\n", want: "1.2.3"},
		{content: "version: \"1.2.3\"\n", want: "1.2.3"},
		{content: "version: '2024.10.1-hotfix'\n", want: "2024.10.1-hotfix"},
		{content: "version: 1.10\n", want: "1.10"},
		{content: "name: storage\nversion: 7.0.0\n", want: "7.0.0"},
		{content: "# release\nversion: v0.1.0 # tag\n", want: "v0.1.0"},
		{content: "base: &v 9.9.9\nversion: *v\n", want: "9.9.9"},
		{content: "---\nversion: 4.0.0\n...\n", want: "4.0.0"},
		{content: "version: \"  spaced  \"\n", want: "  spaced  "},
		{content: "version: \"\"\n", want: ""},
		{content: "extra:\n  nested: [1, 2]\nversion: 3\n", want: "3"},
	}

	for _, tc := range cases {
		file, err := Load(context.Background(), writeDescriptor(t, tc.content))
		require.NoError(t, err, tc.content)
		require.Equal(t, tc.want, file.VersionString(), tc.content)
	}
}

// TestLoad_CamelCaseKey asserts that the field Version binds to the lowercase document key.
func TestLoad_CamelCaseKey(t *testing.T) {
	t.Parallel()

	file, err := Load(context.Background(), writeDescriptor(t, "version: \"1.2.3\"\n"))
	require.NoError(t, err)
	require.NotNil(t, file.descriptor.Version)
	require.Equal(t, "1.2.3", file.VersionString())

	// A capitalized key is normalized to the same field.
	file, err = Load(context.Background(), writeDescriptor(t, "Version: 3.1.4\n"))
	require.NoError(t, err)
	require.Equal(t, "3.1.4", file.VersionString())

	// Only the first letter is normalized, so this key is unknown and ignored.
	file, err = Load(context.Background(), writeDescriptor(t, "VERSION: 3.1.4\n"))
	require.NoError(t, err)
	require.Empty(t, file.VersionString())
}

// TestLoad_MissingKey checks that a descriptor without a version key loads with an empty version.
func TestLoad_MissingKey(t *testing.T) {
	t.Parallel()

	for _, content := range []string{
		"name: storage\n",
		"version: ~\n",
		"version:\n",
		"~\n",
		"{}\n",
	} {
		file, err := Load(context.Background(), writeDescriptor(t, content))
		require.NoError(t, err, content)
		require.NotNil(t, file, content)
		require.Nil(t, file.descriptor.Version, content)
		require.Empty(t, file.VersionString(), content)
	}
}

// TestLoad_EmptyFile verifies that a zero-byte descriptor is accepted and reports no version.
func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()

	file, err := Load(context.Background(), writeDescriptor(t, ""))
	require.NoError(t, err)
	require.Empty(t, file.VersionString())
}

// TestLoad_FileNotFound ensures a missing descriptor fails construction without a loader.
func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	file, err := Load(context.Background(), t.TempDir())
	require.ErrorIs(t, err, ErrFileNotFound)
	require.Nil(t, file)
}

// TestLoad_DoesNotSearchParents ensures only the given directory is consulted.
func TestLoad_DoesNotSearchParents(t *testing.T) {
	t.Parallel()

	parent := writeDescriptor(t, "version: 1.0.0\n")
	child := filepath.Join(parent, "bin")
	require.NoError(t, os.Mkdir(child, 0o700))

	file, err := Load(context.Background(), child)
	require.ErrorIs(t, err, ErrFileNotFound)
	require.Nil(t, file)
}

// TestLoad_ParseErrors covers malformed YAML, wrong root kinds, type mismatches, duplicate keys
// and content after the first document.
func TestLoad_ParseErrors(t *testing.T) {
	t.Parallel()

	for _, content := range []string{
		"version: \"1.2.3\n",
		"a: b: c\n",
		"- 1.0.0\n",
		"1.0.0\n",
		"version:\n  major: 1\n",
		"version: [1, 2]\n",
		"version: 1.0.0\nVersion: 2.0.0\n",
		"version: 1.0.0\n---\nversion: [unclosed\n",
		"version: 1.0.0\n---\nversion: 2.0.0\n",
	} {
		file, err := Load(context.Background(), writeDescriptor(t, content))
		require.ErrorIs(t, err, ErrParse, content)
		require.Nil(t, file, content)
	}
}

// TestLoad_Resolution checks that an empty directory cannot be resolved.
func TestLoad_Resolution(t *testing.T) {
	t.Parallel()

	file, err := Load(context.Background(), "")
	require.ErrorIs(t, err, ErrResolution)
	require.Nil(t, file)
}

// TestLoad_DescriptorIsDirectory checks that a directory named version.yaml is a read error.
func TestLoad_DescriptorIsDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, FileName), 0o700))

	file, err := Load(context.Background(), dir)
	require.ErrorIs(t, err, ErrRead)
	require.NotErrorIs(t, err, ErrFileNotFound)
	require.Nil(t, file)
}

// TestLoad_EndToEnd loads a directory that contains only version.yaml.
func TestLoad_EndToEnd(t *testing.T) {
	t.Parallel()

	dir := writeDescriptor(t, "version: \"5.0.0-rc1\"\n")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	file, err := Load(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, "5.0.0-rc1", file.VersionString())
	require.Equal(t, filepath.Join(dir, FileName), file.Path())
}

// TestFile_LoadOnce verifies repeated reads return the same value even after the file changes on disk.
func TestFile_LoadOnce(t *testing.T) {
	t.Parallel()

	dir := writeDescriptor(t, "version: 1.0.0\n")

	file, err := Load(context.Background(), dir)
	require.NoError(t, err)

	first := file.VersionString()
	require.Equal(t, first, file.VersionString())

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("version: 2.0.0\n"), 0o600))
	require.Equal(t, "1.0.0", file.VersionString())

	require.NoError(t, os.Remove(filepath.Join(dir, FileName)))
	require.Equal(t, "1.0.0", file.VersionString())
}

// TestFile_ConcurrentReaders reads one File from many goroutines.
func TestFile_ConcurrentReaders(t *testing.T) {
	t.Parallel()

	file, err := Load(context.Background(), writeDescriptor(t, "version: 8.1.0\n"))
	require.NoError(t, err)

	const readers = 16

	var (
		wg      sync.WaitGroup
		results = make([]string, readers)
	)

	for i := range readers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			results[i] = file.VersionString()
		}()
	}

	wg.Wait()

	for _, got := range results {
		require.Equal(t, "8.1.0", got)
	}
}

// TestFile_NilSafe checks that accessors on a nil File do not panic.
func TestFile_NilSafe(t *testing.T) {
	t.Parallel()

	var file *File

	require.Empty(t, file.VersionString())
	require.Empty(t, file.Path())
}

// TestExecutableDir verifies the directory of the test binary is resolved and used as the lookup root.
func TestExecutableDir(t *testing.T) {
	t.Parallel()

	dir, err := ExecutableDir()
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	// The test binary is built into a scratch directory without a descriptor.
	file, err := LoadFromExecutable(context.Background())
	require.ErrorIs(t, err, ErrFileNotFound)
	require.Nil(t, file)
}
