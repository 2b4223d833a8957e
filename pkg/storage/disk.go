// Package storage abstracts where product images live. Two disks are
// built in: "local" (the default, served back under /storage) and
// "s3" for S3-compatible object stores.
//
//	storage.Connect()
//	storage.PutStream("product-images/nasi-goreng.webp", file)
//	url := storage.URL("product-images/nasi-goreng.webp")
//
// Package-level helpers hit the default disk; Use(name) picks one
// explicitly.
package storage

import "io"

// Disk is one storage backend.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string

	// Files lists non-recursive file paths directly inside directory.
	Files(directory string) ([]string, error)
}
