// Package telemetry logs each driving evaluation as a CSV row and summarises
// a finished run.
package telemetry

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/golangdaddy/highway/scoring"
)

// Record is one evaluation as written to the CSV log.
type Record struct {
	Time     float64        `csv:"time"`
	Speed    float64        `csv:"speed"`
	Lane     int            `csv:"lane"`
	Position float64        `csv:"position"`
	Reason   scoring.Reason `csv:"reason"`
	Mode     scoring.Mode   `csv:"mode"`
	Score    int            `csv:"score"`
	Traffic  int            `csv:"traffic"`
}

// FromEvaluation converts an evaluation to a record.
func FromEvaluation(ev scoring.Evaluation) Record {
	return Record{
		Time:     ev.Time,
		Speed:    ev.Speed,
		Lane:     ev.Lane,
		Position: ev.Position,
		Reason:   ev.Reason,
		Mode:     ev.Mode,
		Score:    ev.Score,
		Traffic:  ev.Traffic,
	}
}

// Recorder buffers records and writes them in batches. Every record is also
// kept for Summarize.
type Recorder struct {
	out        io.Writer
	closer     io.Closer
	flushEvery int

	pending       []Record
	rows          []Record
	headerWritten bool
}

// NewRecorder creates a recorder writing to out every flushEvery records.
// A nil out keeps rows in memory only.
func NewRecorder(out io.Writer, flushEvery int) *Recorder {
	if flushEvery < 1 {
		flushEvery = 1
	}
	return &Recorder{out: out, flushEvery: flushEvery}
}

// Create opens a recorder on a new file at path.
func Create(path string, flushEvery int) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating telemetry file: %w", err)
	}
	r := NewRecorder(f, flushEvery)
	r.closer = f
	return r, nil
}

// Record adds an evaluation, flushing when the batch is full.
func (r *Recorder) Record(ev scoring.Evaluation) error {
	rec := FromEvaluation(ev)
	r.rows = append(r.rows, rec)
	if r.out == nil {
		return nil
	}
	r.pending = append(r.pending, rec)
	if len(r.pending) >= r.flushEvery {
		return r.Flush()
	}
	return nil
}

// Flush writes the pending records. The first write includes the header.
func (r *Recorder) Flush() error {
	if r.out == nil || len(r.pending) == 0 {
		return nil
	}

	if !r.headerWritten {
		if err := gocsv.Marshal(r.pending, r.out); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(r.pending, r.out); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
	}
	r.pending = r.pending[:0]
	return nil
}

// Disable stops writing. Pending records are dropped; rows are still kept.
func (r *Recorder) Disable() {
	r.out = nil
	r.pending = nil
}

// Rows returns every record seen since the last Reset.
func (r *Recorder) Rows() []Record {
	return r.rows
}

// Reset forgets the collected rows. Rows already written stay in the file.
func (r *Recorder) Reset() {
	r.rows = nil
}

// Close flushes and closes the file opened by Create.
func (r *Recorder) Close() error {
	err := r.Flush()
	if r.closer != nil {
		if cerr := r.closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
		r.closer = nil
	}
	return err
}

// ReadRecords parses a CSV log written by a Recorder.
func ReadRecords(in io.Reader) ([]Record, error) {
	var records []Record
	if err := gocsv.Unmarshal(in, &records); err != nil {
		return nil, fmt.Errorf("reading telemetry: %w", err)
	}
	return records, nil
}
