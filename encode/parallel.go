package encode

import (
	"bytes"

	"github.com/csvcore/fastcsv/internal/chunk"
)

// EncodeParallel splits records into chunks of chunkSize, encodes each
// chunk concurrently, and concatenates the results in original record
// order. The header row is written once, derived from the first
// record's key order, exactly as Encode does.
//
// Grounded on internal/chunk.ParseParallel's worker-pool/channel
// skeleton, run in the opposite direction: instead of splitting bytes
// and parsing each chunk, this splits records and renders each chunk to
// bytes, then reassembles by chunk index the same way ParseParallel
// reassembles parsed rows.
func EncodeParallel(records []*Record, opts Options, chunkSize int) ([]byte, error) {
	if len(records) == 0 {
		return nil, nil
	}
	if chunkSize <= 0 {
		chunkSize = 1
	}

	header := records[0].Keys
	comma := opts.Comma
	if comma == 0 {
		comma = ','
	}
	terminator := "\n"
	if opts.UseCRLF {
		terminator = "\r\n"
	}

	var chunks [][]*Record
	for start := 0; start < len(records); start += chunkSize {
		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}
		chunks = append(chunks, records[start:end])
	}

	rendered := make([][]byte, len(chunks))

	workers := chunk.WorkerCount()
	if workers > len(chunks) {
		workers = len(chunks)
	}

	type job struct {
		idx  int
		recs []*Record
	}
	jobs := make(chan job)
	done := make(chan struct{})

	for w := 0; w < workers; w++ {
		go func() {
			for j := range jobs {
				var buf bytes.Buffer
				for _, rec := range j.recs {
					row := make([]string, len(header))
					for i, key := range header {
						v, ok := rec.Values[key]
						switch {
						case !ok:
							row[i] = ""
						case v == nil:
							row[i] = nilLiteral(opts)
						default:
							row[i] = *v
						}
					}
					writeRow(&buf, row, comma)
					buf.WriteString(terminator)
				}
				out := make([]byte, buf.Len())
				copy(out, buf.Bytes())
				rendered[j.idx] = out
			}
			done <- struct{}{}
		}()
	}

	go func() {
		for idx, recs := range chunks {
			jobs <- job{idx: idx, recs: recs}
		}
		close(jobs)
	}()

	for w := 0; w < workers; w++ {
		<-done
	}

	var out bytes.Buffer
	writeRow(&out, header, comma)
	out.WriteString(terminator)
	for _, chunkBytes := range rendered {
		out.Write(chunkBytes)
	}
	return out.Bytes(), nil
}
