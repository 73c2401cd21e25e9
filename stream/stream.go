// Package stream provides a memory-bounded, backpressured CSV reading
// pipeline for files too large to load whole.
//
// Unlike pkg/csv.Scanner (which, despite its streaming-looking API, reads
// the entire reader via io.ReadAll before parsing a single record), this
// package never holds more than one growing-but-capped buffer plus the
// current batch in memory. It is grounded on
// entreya-csvquery/internal/indexer's buffered-channel batch pipeline
// (chan []common.IndexRecord feeding a downstream consumer), adapted here
// into a single producer/consumer pair since records, unlike that
// indexer's per-column fan-out, have only one destination: the caller's
// handler.
package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/csvcore/fastcsv/internal/fastparser"
)

// Config controls batching, memory bounds, and progress reporting.
type Config struct {
	// BatchSize is the number of records buffered before Handler is
	// invoked. Default: 1000.
	BatchSize int

	// ReadSize is the number of bytes read from the source per
	// iteration before the pipeline looks for a safe record boundary.
	// Default: 64KB.
	ReadSize int

	// HighWaterMark is the maximum number of undelivered bytes the
	// pipeline will buffer while searching for a record boundary (e.g. a
	// single quoted field spanning many reads) before giving up with
	// ErrBoundaryNotFound. Default: 8MB.
	HighWaterMark int

	// OnProgress, if set, is called after every flushed batch with the
	// cumulative number of records processed so far.
	OnProgress func(recordsProcessed int64)

	// Logger receives structured diagnostics for each run. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		BatchSize:     1000,
		ReadSize:      64 * 1024,
		HighWaterMark: 8 * 1024 * 1024,
	}
}

// ErrBoundaryNotFound is returned when no safe, quote-parity-respecting
// record boundary could be found within HighWaterMark bytes.
var ErrBoundaryNotFound = fmt.Errorf("stream: no record boundary found within high water mark")

// Handler processes one batch of parsed records. Returning an error
// aborts the run; the error is returned from Process.
type Handler func(batch [][]string) error

// Pipeline reads CSV records from a stream under a bounded memory budget.
type Pipeline struct {
	cfg Config
}

// New creates a Pipeline with the given configuration. Zero-valued fields
// in cfg fall back to DefaultConfig's values.
func New(cfg Config) *Pipeline {
	d := DefaultConfig()
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = d.BatchSize
	}
	if cfg.ReadSize <= 0 {
		cfg.ReadSize = d.ReadSize
	}
	if cfg.HighWaterMark <= 0 {
		cfg.HighWaterMark = d.HighWaterMark
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Pipeline{cfg: cfg}
}

// Process reads r incrementally, parsing complete, quote-safe records as
// they become available and delivering them to handle in batches of
// cfg.BatchSize. It never materializes the full input in memory; at most
// cfg.HighWaterMark bytes are buffered awaiting a safe boundary.
//
// Each run is tagged with a correlation ID (logged, not returned) so
// concurrent runs against the same logger can be told apart.
func (p *Pipeline) Process(ctx context.Context, r io.Reader, handle Handler) error {
	runID := uuid.New()
	log := p.cfg.Logger.With("stream_run_id", runID.String())
	log.Info("stream pipeline started")

	br := bufio.NewReaderSize(r, p.cfg.ReadSize)
	var buf []byte
	var batch [][]string
	var total int64
	quoteParity := false // false == even == outside any quoted field

	flush := func(records [][]string) error {
		batch = append(batch, records...)
		if len(batch) < p.cfg.BatchSize {
			return nil
		}
		if err := handle(batch); err != nil {
			return err
		}
		total += int64(len(batch))
		if p.cfg.OnProgress != nil {
			p.cfg.OnProgress(total)
		}
		batch = batch[:0]
		return nil
	}

	readChunk := make([]byte, p.cfg.ReadSize)
	eof := false

	for !eof {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := br.Read(readChunk)
		if n > 0 {
			buf = append(buf, readChunk[:n]...)
		}
		if err == io.EOF {
			eof = true
		} else if err != nil {
			return fmt.Errorf("stream: read error: %w", err)
		}

		boundary, newParity := findSafeBoundary(buf, quoteParity)
		if boundary < 0 && !eof {
			if len(buf) > p.cfg.HighWaterMark {
				return ErrBoundaryNotFound
			}
			continue
		}
		if boundary < 0 && eof {
			boundary = len(buf)
			newParity = quoteParity
		}

		if boundary > 0 {
			records, err := fastparser.Parse(buf[:boundary])
			if err != nil {
				return fmt.Errorf("stream: parse error: %w", err)
			}
			if err := flush(records); err != nil {
				return err
			}
			buf = append([]byte(nil), buf[boundary:]...)
			quoteParity = newParity
		}
	}

	if len(batch) > 0 {
		if err := handle(batch); err != nil {
			return err
		}
		total += int64(len(batch))
		if p.cfg.OnProgress != nil {
			p.cfg.OnProgress(total)
		}
	}

	log.Info("stream pipeline finished", "records", total)
	return nil
}

// findSafeBoundary scans buf for the last newline at which the running
// quote parity (starting from startParity) is even, i.e. outside any
// quoted field. Returns the byte offset just past that newline and the
// parity at that point, or (-1, startParity) if no safe boundary exists
// yet.
func findSafeBoundary(buf []byte, startParity bool) (int, bool) {
	parity := startParity
	last := -1
	lastParity := startParity

	for i, b := range buf {
		if b == '"' {
			parity = !parity
		}
		if b == '\n' && !parity {
			last = i + 1
			lastParity = parity
		}
	}

	return last, lastParity
}
