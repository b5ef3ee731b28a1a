// Package models defines server-side data models persisted in the database.
package models

import "time"

// Recognized file types. Type discriminates whether content exists: folders
// are metadata-only, files and images reference a blob on disk.
const (
	TypeFolder = "folder"
	TypeFile   = "file"
	TypeImage  = "image"
)

// RootParentID is the sentinel ParentID meaning "no parent; top-level".
const RootParentID = "0"

// File describes a stored resource owned by a user. For folders LocalPath is
// empty; for files and images it references a blob in the content store.
type File struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parentId"`
	IsPublic bool   `json:"isPublic"`

	// LocalPath is a server-side reference and is never exposed to clients.
	LocalPath string `json:"-"`

	CreatedAt time.Time `json:"-"`
}

// ValidType reports whether t is one of the recognized file types.
func ValidType(t string) bool {
	return t == TypeFolder || t == TypeFile || t == TypeImage
}

// HasContent reports whether records of this type carry a blob reference.
func (f *File) HasContent() bool {
	return f.Type == TypeFile || f.Type == TypeImage
}
