package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestResolvePathDirectoryTarget verifies a final component without an
// extension classifies as a directory target.
func TestResolvePathDirectoryTarget(t *testing.T) {
	segments, leaf, isDir := resolvePath("alice", "docs/one/two", "upload.bin")
	require.True(t, isDir)
	require.Equal(t, []string{"alice", "docs", "one", "two"}, segments)
	require.Equal(t, "upload.bin", leaf)
}

// TestResolvePathFileTarget verifies the final component becomes the
// leaf when it carries an extension.
func TestResolvePathFileTarget(t *testing.T) {
	segments, leaf, isDir := resolvePath("alice", "docs/one/two.txt", "upload.bin")
	require.False(t, isDir)
	require.Equal(t, []string{"alice", "docs", "one"}, segments)
	require.Equal(t, "two.txt", leaf)
}

// TestResolvePathTrailingSeparator verifies a trailing separator always
// means a directory target, extension or not.
func TestResolvePathTrailingSeparator(t *testing.T) {
	segments, leaf, isDir := resolvePath("alice", "docs/archive.d/", "upload.bin")
	require.True(t, isDir)
	require.Equal(t, []string{"alice", "docs", "archive.d"}, segments)
	require.Equal(t, "upload.bin", leaf)
}

// TestResolvePathLeadingSeparator verifies exactly one leading separator
// is stripped.
func TestResolvePathLeadingSeparator(t *testing.T) {
	segments, leaf, isDir := resolvePath("alice", "/docs/two.txt", "upload.bin")
	require.False(t, isDir)
	require.Equal(t, []string{"alice", "docs"}, segments)
	require.Equal(t, "two.txt", leaf)
}

// TestResolvePathEmpty verifies the empty path targets the user root.
func TestResolvePathEmpty(t *testing.T) {
	segments, leaf, isDir := resolvePath("alice", "", "upload.bin")
	require.True(t, isDir)
	require.Equal(t, []string{"alice"}, segments)
	require.Equal(t, "upload.bin", leaf)
}

// TestResolvePathRootFile verifies a bare file name lands in the user's
// namespace directory.
func TestResolvePathRootFile(t *testing.T) {
	segments, leaf, isDir := resolvePath("alice", "file.txt", "upload.bin")
	require.False(t, isDir)
	require.Equal(t, []string{"alice"}, segments)
	require.Equal(t, "file.txt", leaf)
}
