//go:build unix

// Package mmap memory-maps files for zero-copy reading by the parser.
package mmap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// File memory-maps filename for reading.
// Returns the mapped byte slice and a cleanup function that must be called
// to unmap the file.
//
// This is useful for processing large CSV files efficiently:
//   - The file is mapped into memory without loading it entirely
//   - The OS handles paging data in/out as needed
//   - Combined with zero-copy parsing, this enables processing huge files
//     with minimal heap allocation
//
// Example usage:
//
//	data, cleanup, err := mmap.File("large.csv")
//	if err != nil {
//	    return err
//	}
//	defer cleanup()
//
//	records, err := fastparser.Parse(data)
//
// IMPORTANT: Do not use the data slice after calling cleanup().
func File(filename string) ([]byte, func(), error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	size := stat.Size()
	if size == 0 {
		return []byte{}, func() { f.Close() }, nil
	}

	data, err := unix.Mmap(
		int(f.Fd()),
		0,
		int(size),
		unix.PROT_READ,
		unix.MAP_SHARED,
	)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to mmap file: %w", err)
	}

	cleanup := func() {
		_ = unix.Munmap(data)
		f.Close()
	}

	return data, cleanup, nil
}
