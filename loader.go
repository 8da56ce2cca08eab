package pnlyzer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// Column names of the fixed header contract. Columns are matched by name,
// not by position; extra columns are ignored.
const (
	ColumnDigest    = "Digest"
	ColumnTimestamp = "Timestamp"
	ColumnType      = "Type"
	ColumnPNL       = "PNL USD"
)

// EmptyDatasetError reports that every chunk was scanned successfully but
// not a single row was accepted.
type EmptyDatasetError struct {
	Rows     int // total rows read across all chunks
	Rejected int
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("no valid records in any chunk (%d rows read, %d rejected)", e.Rows, e.Rejected)
}

// RowError records one rejected row for the data quality section of the
// report. Only a small sample of rejections is retained; the full tally
// lives in the chunk counters.
type RowError struct {
	Chunk string `json:"chunk"`
	Row   int    `json:"row"` // 1-based row number within the chunk, header excluded
	Cause string `json:"cause"`
}

// ProgressFunc receives the cumulative number of rows read so far across
// all chunks. It is an observable side effect for the presentation layer,
// not a correctness requirement.
type ProgressFunc func(rows int)

const defaultProgressEvery = 100000

// maxRowErrorSamples caps the rejection samples kept for the report. The
// export carries all of them; the terminal rendering shows only the first
// few.
const maxRowErrorSamples = 100

// Loader streams chunk files into an accumulator, one row at a time. The
// zero value is ready to use.
type Loader struct {
	Progress      ProgressFunc
	ProgressEvery int // rows between progress calls, default 100000

	// Samples holds the first few rejected rows of the run.
	Samples []RowError

	rows int
}

// Rows returns the total number of rows read so far, header rows excluded.
func (l *Loader) Rows() int { return l.rows }

// Load reads every chunk in order, folding each accepted row into acc
// before the next row is read. Malformed rows are counted on their chunk
// and skipped, never retried; a run only fails at file level (unreadable
// chunk) or dataset level (nothing accepted anywhere, EmptyDatasetError).
//
// Cancelling ctx stops the run cleanly between rows: tallies of rows
// already processed stay intact, but no report should be built from a
// cancelled run.
func (l *Loader) Load(ctx context.Context, chunks []*Chunk, acc *Accumulator) error {
	for _, chunk := range chunks {
		if err := l.loadChunk(ctx, chunk, acc); err != nil {
			return err
		}
	}
	accepted, rejected := 0, 0
	for _, chunk := range chunks {
		accepted += chunk.Accepted
		rejected += chunk.Rejected
	}
	if accepted == 0 {
		return &EmptyDatasetError{Rows: l.rows, Rejected: rejected}
	}
	return nil
}

func (l *Loader) loadChunk(ctx context.Context, chunk *Chunk, acc *Accumulator) error {
	f, err := os.Open(chunk.Path)
	if err != nil {
		return fmt.Errorf("cannot open chunk %q: %w", chunk.Path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	// strip the UTF-8 BOM some exporters prepend
	if head, _ := br.Peek(3); bytes.Equal(head, []byte{0xEF, 0xBB, 0xBF}) {
		br.Discard(3)
	}

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1 // short rows are rejected per row, not fatal
	r.ReuseRecord = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		// an empty file is a zero-row chunk, not an error
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot read header of chunk %q: %w", chunk.Path, err)
	}
	columns := indexColumns(header)
	if columns == nil {
		// a file without the required header contributes zero rows
		return nil
	}

	every := l.ProgressEvery
	if every <= 0 {
		every = defaultProgressEvery
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		var parseErr *csv.ParseError
		if err != nil && !errors.As(err, &parseErr) {
			return fmt.Errorf("cannot read chunk %q: %w", chunk.Path, err)
		}

		chunk.Rows++
		l.rows++
		if l.Progress != nil && l.rows%every == 0 {
			l.Progress(l.rows)
		}
		if parseErr != nil {
			l.reject(chunk, fmt.Sprintf("malformed CSV: %v", err))
			continue
		}

		record, err := columns.record(row)
		if err != nil {
			l.reject(chunk, err.Error())
			continue
		}
		record.Chunk = chunk.Seq
		chunk.Accepted++
		chunk.Sum = chunk.Sum.Add(record.PNL)
		acc.Add(record)
	}
}

func (l *Loader) reject(chunk *Chunk, cause string) {
	chunk.Rejected++
	if len(l.Samples) < maxRowErrorSamples {
		l.Samples = append(l.Samples, RowError{Chunk: chunk.Path, Row: chunk.Rows, Cause: cause})
	}
}

// columnIndex maps the required columns to their position in this chunk's
// header. Column order is free; unknown columns are ignored.
type columnIndex struct {
	digest, timestamp, typ, pnl int
}

// indexColumns returns nil when any required column is missing from the header.
func indexColumns(header []string) *columnIndex {
	idx := columnIndex{digest: -1, timestamp: -1, typ: -1, pnl: -1}
	for i, name := range header {
		switch name {
		case ColumnDigest:
			idx.digest = i
		case ColumnTimestamp:
			idx.timestamp = i
		case ColumnType:
			idx.typ = i
		case ColumnPNL:
			idx.pnl = i
		}
	}
	if idx.digest < 0 || idx.timestamp < 0 || idx.typ < 0 || idx.pnl < 0 {
		return nil
	}
	return &idx
}

func (c *columnIndex) record(row []string) (Record, error) {
	width := len(row)
	if c.digest >= width || c.timestamp >= width || c.typ >= width || c.pnl >= width {
		return Record{}, fmt.Errorf("row has %d fields, fewer than the header", width)
	}
	return NewRecord(row[c.digest], row[c.timestamp], row[c.typ], row[c.pnl])
}
