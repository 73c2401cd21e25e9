//go:build !unix

package mmap

import (
	"fmt"
	"os"
)

// File reads a file into memory on non-Unix platforms.
// On platforms without mmap support, this falls back to reading the entire
// file. Provides the same signature as the Unix version for API
// compatibility; the cleanup function is a no-op.
func File(filename string) ([]byte, func(), error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, func() {}, nil
}
