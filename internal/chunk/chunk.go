// Package chunk splits a byte buffer into record-aligned pieces and parses
// them concurrently across a worker pool.
//
// Splitting naively on '\n' would cut a quoted field that spans a chunk
// boundary in half. This package tracks quote parity cumulatively from the
// start of the file (not just within a lookahead window, the way
// raceordie690-simdcsv's deriveChunkResult does for a single chunk's
// prefix) so a split point is only chosen where the number of quote bytes
// seen so far is even — i.e. genuinely outside any quoted field.
package chunk

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// Result is one chunk's parsed records, tagged with its original order so
// the caller can reassemble output deterministically.
type Result struct {
	Part    int
	Records [][]string
	Err     error
}

type input struct {
	part int
	data []byte
}

// ParseFunc parses one record-aligned chunk of bytes.
type ParseFunc func([]byte) ([][]string, error)

// WorkerCount returns the number of parallel chunk workers to use. It
// prefers cpuid's physical core count over runtime.NumCPU()'s logical
// count, the way raceordie690-simdcsv sized its pool off runtime.NumCPU()
// but tuned here for a core count uninflated by hyperthreading so worker
// count tracks genuine parallelism rather than SMT siblings that would
// just contend for the same execution units on CSV's memory-bound loop.
func WorkerCount() int {
	if n := cpuid.CPU.PhysicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Split partitions data into roughly targetSize-byte pieces, each split
// point guaranteed to fall outside any quoted field and on a record
// boundary (immediately after a '\n'). The final piece may be shorter or
// longer than targetSize to reach the next safe boundary.
func Split(data []byte, targetSize int) [][]byte {
	if targetSize <= 0 {
		targetSize = 1
	}
	var chunks [][]byte
	start := 0
	quoteCount := 0

	for start < len(data) {
		end := start + targetSize
		if end >= len(data) {
			chunks = append(chunks, data[start:])
			break
		}

		// Advance quoteCount across [start, end) before searching for a
		// boundary past it, so parity reflects everything seen so far
		// from the beginning of the file.
		for i := start; i < end; i++ {
			if data[i] == '"' {
				quoteCount++
			}
		}

		boundary := end
		limit := end + 2*targetSize
		for boundary < len(data) {
			if boundary >= limit {
				boundary = len(data)
				break
			}
			if data[boundary] == '"' {
				quoteCount++
			}
			if data[boundary] == '\n' && quoteCount%2 == 0 {
				boundary++
				break
			}
			boundary++
		}

		chunks = append(chunks, data[start:boundary])
		start = boundary
	}

	return chunks
}

// ParseParallel splits data into chunks of targetSize bytes and parses
// each chunk with parse, using a worker pool sized by WorkerCount. Results
// are returned in original order; if any chunk fails, the first error
// received is returned and no records are returned.
func ParseParallel(data []byte, targetSize int, parse ParseFunc) ([][]string, error) {
	chunks := Split(data, targetSize)
	if len(chunks) == 0 {
		return [][]string{}, nil
	}

	jobs := make(chan input)
	results := make(chan Result)

	workers := WorkerCount()
	if workers > len(chunks) {
		workers = len(chunks)
	}
	if workers < 1 {
		workers = 1
	}

	for w := 0; w < workers; w++ {
		go func() {
			for in := range jobs {
				records, err := parse(in.data)
				results <- Result{Part: in.part, Records: records, Err: err}
			}
		}()
	}

	go func() {
		for i, c := range chunks {
			jobs <- input{part: i, data: c}
		}
		close(jobs)
	}()

	ordered := make([][][]string, len(chunks))
	var firstErr error
	for range chunks {
		r := <-results
		if r.Err != nil && firstErr == nil {
			firstErr = r.Err
		}
		ordered[r.Part] = r.Records
	}

	if firstErr != nil {
		return nil, firstErr
	}

	total := 0
	for _, recs := range ordered {
		total += len(recs)
	}
	out := make([][]string, 0, total)
	for _, recs := range ordered {
		out = append(out, recs...)
	}
	return out, nil
}
