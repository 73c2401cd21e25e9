package encode

import (
	"bufio"
	"io"
)

// defaultBufferSize matches spec.md §4.6's "buffered writer (default
// 64 KiB buffer)" requirement.
const defaultBufferSize = 64 * 1024

// WriteTo encodes records to w through a buffered writer, flushing once
// at the end. I/O errors surface with the buffer flushed up to the
// point of failure, per spec.md §4.6's failure semantics.
func WriteTo(w io.Writer, records []*Record, opts Options) error {
	bw := bufio.NewWriterSize(w, defaultBufferSize)
	buf := getBuffer()
	defer putBuffer(buf)

	if err := writeAll(buf, records, opts); err != nil {
		return err
	}
	if _, err := bw.Write(buf.Bytes()); err != nil {
		return err
	}
	return bw.Flush()
}
