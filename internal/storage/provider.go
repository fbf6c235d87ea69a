// Package storage defines the data-directory file-system abstraction.
package storage

import "time"

// Entry is one direct child of a directory.
type Entry struct {
	Name  string
	IsDir bool
}

// FileMeta is lightweight metadata for a markdown file found by List.
type FileMeta struct {
	Path      string
	Checksum  string
	UpdatedAt time.Time
}

// FileTimes are the filesystem timestamps of a stored file.
type FileTimes struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Provider is the interface for data-directory file operations. All paths
// are relative to the data root and use forward slashes.
type Provider interface {
	// ReadDir returns the direct children of dir. A missing directory
	// yields an empty result, not an error.
	ReadDir(dir string) ([]Entry, error)
	// List walks dir recursively and returns metadata for every .md file.
	List(dir string) ([]FileMeta, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Stat returns the filesystem timestamps of the file at path.
	Stat(path string) (FileTimes, error)
	// Exists reports whether a file or directory exists at path.
	Exists(path string) bool
	// Write atomically writes content to path, creating parent directories.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
	// Move renames oldPath to newPath (file or directory subtree).
	Move(oldPath, newPath string) error
	// MkdirAll creates dir and any missing parents.
	MkdirAll(dir string) error
	// RemoveAll removes dir and everything beneath it.
	RemoveAll(dir string) error
	// Root returns the absolute data root directory.
	Root() string
}
