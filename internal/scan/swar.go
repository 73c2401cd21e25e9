// Package scan provides the structural byte scanner: locating the next
// quote, delimiter, or line terminator in a byte buffer, and answering
// needs-quoting checks for the encoder.
//
// It is grounded on internal/fastparser/chunked.go's 8-byte SWAR
// (SIMD-within-a-register) null-byte-detection trick, unrolled to a 64-byte
// stride and gated by golang.org/x/sys/cpu feature detection the way
// entreya-csvquery's internal/simd package gates its own AVX2 dispatch.
// Both the accelerated and scalar paths return identical offsets; CPU
// detection only picks which loop runs, never changes the answer.
package scan

import "encoding/binary"

const stride = 8
const wideStride = 64

// FindNextStructural returns the index of the next occurrence in buf of
// delim, '"', '\r', or '\n', starting at 0. Returns len(buf) if none is
// found.
func FindNextStructural(buf []byte, delim byte) int {
	n := len(buf)
	i := 0

	if hasAcceleratedPath() {
		for ; i+wideStride <= n; i += wideStride {
			if idx := scanWideStructural(buf[i:i+wideStride], delim); idx >= 0 {
				return i + idx
			}
		}
	}

	for ; i+stride <= n; i += stride {
		word := binary.LittleEndian.Uint64(buf[i : i+stride])
		if !hasAnyStructural(word, delim) {
			continue
		}
		for j := 0; j < stride; j++ {
			if isStructural(buf[i+j], delim) {
				return i + j
			}
		}
	}

	for ; i < n; i++ {
		if isStructural(buf[i], delim) {
			return i
		}
	}
	return n
}

// FindNextQuote returns the index of the next '"' in buf, or len(buf).
func FindNextQuote(buf []byte) int {
	n := len(buf)
	i := 0
	for ; i+stride <= n; i += stride {
		word := binary.LittleEndian.Uint64(buf[i : i+stride])
		if !swarHasByte(word, '"') {
			continue
		}
		for j := 0; j < stride; j++ {
			if buf[i+j] == '"' {
				return i + j
			}
		}
	}
	for ; i < n; i++ {
		if buf[i] == '"' {
			return i
		}
	}
	return n
}

// StructuralHit is one structural byte position found by ScanStructural.
type StructuralHit struct {
	Offset int
	Byte   byte
}

// ScanStructural emits every structural position in buf, in order.
func ScanStructural(buf []byte, delim byte) []StructuralHit {
	hits := make([]StructuralHit, 0, len(buf)/8+1)
	pos := 0
	for pos < len(buf) {
		idx := FindNextStructural(buf[pos:], delim)
		if idx == len(buf)-pos {
			break
		}
		hits = append(hits, StructuralHit{Offset: pos + idx, Byte: buf[pos+idx]})
		pos += idx + 1
	}
	return hits
}

// CountNewlinesApprox counts LF bytes in buf, ignoring quote context. Used
// only for chunk-size estimation, never for correctness-sensitive boundary
// decisions.
func CountNewlinesApprox(buf []byte) int {
	count := 0
	i := 0
	n := len(buf)
	for ; i+stride <= n; i += stride {
		word := binary.LittleEndian.Uint64(buf[i : i+stride])
		count += swarPopcountMatches(word, '\n')
	}
	for ; i < n; i++ {
		if buf[i] == '\n' {
			count++
		}
	}
	return count
}

// NeedsQuoting reports whether buf contains any byte that forces the
// encoder to wrap the field in quotes: the delimiter, '"', CR, or LF.
func NeedsQuoting(buf []byte, delim byte) bool {
	return FindNextStructural(buf, delim) != len(buf)
}

func isStructural(b, delim byte) bool {
	return b == delim || b == '"' || b == '\r' || b == '\n'
}

func hasAnyStructural(word uint64, delim byte) bool {
	return swarHasByte(word, delim) || swarHasByte(word, '"') ||
		swarHasByte(word, '\r') || swarHasByte(word, '\n')
}

// swarHasByte reports whether any of the 8 bytes in word equals b, using
// the classic ((x - 0x0101..) & ^x & 0x8080..) zero-byte detection trick.
func swarHasByte(word uint64, b byte) bool {
	bcast := uint64(b) * 0x0101010101010101
	xor := word ^ bcast
	return ((xor - 0x0101010101010101) & ^xor & 0x8080808080808080) != 0
}

func swarPopcountMatches(word uint64, b byte) int {
	bcast := uint64(b) * 0x0101010101010101
	xor := word ^ bcast
	highBits := (xor - 0x0101010101010101) & ^xor & 0x8080808080808080
	count := 0
	for highBits != 0 {
		highBits &= highBits - 1
		count++
	}
	return count
}

// scanWideStructural scans a full wideStride-byte chunk using 8 unrolled
// SWAR words, returning the index of the first structural byte or -1.
func scanWideStructural(chunk []byte, delim byte) int {
	for word := 0; word < wideStride/stride; word++ {
		w := binary.LittleEndian.Uint64(chunk[word*stride : word*stride+stride])
		if !hasAnyStructural(w, delim) {
			continue
		}
		base := word * stride
		for j := 0; j < stride; j++ {
			if isStructural(chunk[base+j], delim) {
				return base + j
			}
		}
	}
	return -1
}
