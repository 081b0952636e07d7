// Package storage puts uploaded files somewhere reachable by URL.
package storage

import (
	"context"
	"errors"
	"io"
	"strings"
)

var (
	ErrUpload        = errors.New("storage: upload failed")
	ErrInvalidFolder = errors.New("storage: folder not allowed")
)

// File is one upload. Folder is a logical bucket such as "avatars".
type File struct {
	Name        string
	ContentType string
	Folder      string
	Body        io.Reader
}

// Uploader stores a file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}

// Folders is the allowlist for caller supplied folder names.
type Folders map[string]bool

func DefaultFolders(avatarFolder string) Folders {
	f := Folders{"packages": true, "hotels": true, "documents": true}
	f[strings.Trim(avatarFolder, "/")] = true
	return f
}

func (f Folders) Allowed(name string) bool {
	return f[strings.Trim(strings.TrimSpace(name), "/")]
}
