// Package file provides handlers for file operations.
//
//   - file.save: write the active document to its path
//   - file.saveAs: write it to Args.Extra["path"]
//
// Editors implementing Saver control how they are written (line endings,
// saved-state tracking); others are written with LF line endings.
package file
