package fileformat

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// UniqueFormat replaces the client supplied name with a random one, keeping
// the lowercased extension.
func UniqueFormat(fn string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(fn)))
	return uuid.NewString() + ext
}
