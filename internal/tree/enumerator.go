package tree

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	errorReadDirectoryFormat = "reading directory %s: %w"
	errorStatPathFormat      = "stat %s: %w"
)

// DirectoryEnumerator lists the immediate children of a directory by kind.
type DirectoryEnumerator interface {
	ListSubdirectories(path string) ([]string, error)
	ListFiles(path string) ([]string, error)
}

// IdentityResolver is implemented by enumerators that can identify the directory
// behind a path. The walker uses it to detect directory cycles.
type IdentityResolver interface {
	Identify(path string) (os.FileInfo, error)
}

// OSEnumerator enumerates the local filesystem.
type OSEnumerator struct {
	// FollowSymlinks lists symbolic links to directories as subdirectories.
	// Otherwise they are listed with the files.
	FollowSymlinks bool
}

// ListSubdirectories returns the names of the directories directly inside path.
func (enumerator OSEnumerator) ListSubdirectories(path string) ([]string, error) {
	return enumerator.list(path, true)
}

// ListFiles returns the names of the non-directory entries directly inside path.
func (enumerator OSEnumerator) ListFiles(path string) ([]string, error) {
	return enumerator.list(path, false)
}

// Identify returns file information for the directory path resolves to.
func (enumerator OSEnumerator) Identify(path string) (os.FileInfo, error) {
	fileInformation, statError := os.Stat(path)
	if statError != nil {
		return nil, fmt.Errorf(errorStatPathFormat, path, statError)
	}
	return fileInformation, nil
}

func (enumerator OSEnumerator) list(path string, directories bool) ([]string, error) {
	directoryEntries, readDirectoryError := os.ReadDir(path)
	if readDirectoryError != nil {
		return nil, fmt.Errorf(errorReadDirectoryFormat, path, readDirectoryError)
	}
	var names []string
	for _, directoryEntry := range directoryEntries {
		if enumerator.isDirectory(path, directoryEntry) == directories {
			names = append(names, directoryEntry.Name())
		}
	}
	return names, nil
}

func (enumerator OSEnumerator) isDirectory(parentPath string, directoryEntry fs.DirEntry) bool {
	if directoryEntry.IsDir() {
		return true
	}
	if directoryEntry.Type()&fs.ModeSymlink == 0 || !enumerator.FollowSymlinks {
		return false
	}
	targetInformation, statError := os.Stat(filepath.Join(parentPath, directoryEntry.Name()))
	return statError == nil && targetInformation.IsDir()
}

var (
	_ DirectoryEnumerator = OSEnumerator{}
	_ IdentityResolver    = OSEnumerator{}
)
