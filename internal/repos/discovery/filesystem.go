package discovery

import (
	"io/fs"
	"path/filepath"

	"github.com/temirov/gitstatus/internal/repos/filesystem"
)

const gitMetadataEntryNameConstant = ".git"

// DirectoryWalker enumerates a directory tree.
type DirectoryWalker interface {
	WalkDir(root string, walkFunction fs.WalkDirFunc) error
}

// SkippedDirectory records a directory that could not be read during a search.
type SkippedDirectory struct {
	Path  string
	Cause error
}

// MarkerSearchResult lists the repository markers found beneath a root.
// Markers are reported in walk order, which is lexical for the OS walker.
type MarkerSearchResult struct {
	Markers            []string
	SkippedDirectories []SkippedDirectory
}

// FilesystemRepositoryDiscoverer locates repository markers on disk.
type FilesystemRepositoryDiscoverer struct {
	walker     DirectoryWalker
	markerName string
}

// NewFilesystemRepositoryDiscoverer constructs a discoverer backed by filepath.WalkDir.
func NewFilesystemRepositoryDiscoverer() *FilesystemRepositoryDiscoverer {
	return NewFilesystemRepositoryDiscovererWithWalker(filesystem.OSFileSystem{})
}

// NewFilesystemRepositoryDiscovererWithWalker constructs a discoverer over a custom walker.
func NewFilesystemRepositoryDiscovererWithWalker(walker DirectoryWalker) *FilesystemRepositoryDiscoverer {
	if walker == nil {
		walker = filesystem.OSFileSystem{}
	}
	return &FilesystemRepositoryDiscoverer{walker: walker, markerName: gitMetadataEntryNameConstant}
}

// FindMarkers walks root and returns every entry named .git, directory or file.
//
// The walk does not descend into .git directories but keeps descending into working
// trees, so nested repositories are found as well. Unreadable directories below root
// are recorded in SkippedDirectories and skipped; an unreadable root is returned as an error.
func (discoverer *FilesystemRepositoryDiscoverer) FindMarkers(root string) (MarkerSearchResult, error) {
	cleanedRoot := filepath.Clean(root)
	var result MarkerSearchResult

	walkError := discoverer.walker.WalkDir(cleanedRoot, func(path string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			if filepath.Clean(path) == cleanedRoot {
				return walkError
			}
			result.SkippedDirectories = append(result.SkippedDirectories, SkippedDirectory{Path: path, Cause: walkError})
			if directoryEntry != nil && directoryEntry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if directoryEntry.Name() != discoverer.markerName || filepath.Clean(path) == cleanedRoot {
			return nil
		}

		result.Markers = append(result.Markers, path)
		if directoryEntry.IsDir() {
			return fs.SkipDir
		}
		return nil
	})
	if walkError != nil {
		return MarkerSearchResult{}, walkError
	}

	return result, nil
}
