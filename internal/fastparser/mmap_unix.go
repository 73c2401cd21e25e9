//go:build unix

package fastparser

import "github.com/csvcore/fastcsv/internal/mmap"

// MmapFile memory-maps a file for reading.
// Returns the mapped byte slice and a cleanup function that must be called to unmap the file.
//
// This is useful for processing large CSV files efficiently:
//   - The file is mapped into memory without loading it entirely
//   - The OS handles paging data in/out as needed
//   - Combined with zero-copy parsing, this enables processing huge files with minimal memory
//
// Example usage:
//
//	data, cleanup, err := MmapFile("large.csv")
//	if err != nil {
//	    return err
//	}
//	defer cleanup()
//
//	records, err := ParseZeroCopy(data)
//	// Process records...
//
// IMPORTANT: Do not use the data slice after calling cleanup().
func MmapFile(filename string) ([]byte, func(), error) {
	return mmap.File(filename)
}
