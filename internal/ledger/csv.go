package ledger

import (
	"encoding/csv"
	"os"

	"github.com/clickexp/clickexp/internal"
)

// FileName is the name of the CSV ledger inside the output directory
const FileName = "PerformanceResults.csv"

// CSVLedger appends fully quoted, CRLF terminated rows to a CSV file, writing the header
// when the file is first created. Concurrent writers are not coordinated:
// two runs may both see a missing file and both write a header.
type CSVLedger struct {
	Path string
}

// NewCSVLedger creates a ledger stored at path
func NewCSVLedger(path string) *CSVLedger {
	return &CSVLedger{Path: path}
}

// Append implements Sink
func (l *CSVLedger) Append(rec *Record) error {
	writeHeader := !internal.FileExists(l.Path)

	f, err := os.OpenFile(l.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return &internal.LedgerError{Path: l.Path, Op: "open", Err: err}
	}

	qw := internal.NewQuotedWriter(f)
	qw.UseCRLF = true
	if writeHeader {
		internal.LogDebug("Ledger %s does not exist, writing header", l.Path)
		if err := qw.Write(Header...); err != nil {
			_ = f.Close()
			return &internal.LedgerError{Path: l.Path, Op: "append", Err: err}
		}
	}
	if err := qw.Write(rec.Fields()...); err != nil {
		_ = f.Close()
		return &internal.LedgerError{Path: l.Path, Op: "append", Err: err}
	}
	if err := qw.Flush(); err != nil {
		_ = f.Close()
		return &internal.LedgerError{Path: l.Path, Op: "append", Err: err}
	}

	if err := f.Close(); err != nil {
		return &internal.LedgerError{Path: l.Path, Op: "append", Err: err}
	}
	return nil
}

// Records implements Reader. A missing file holds no records.
func (l *CSVLedger) Records() ([]*Record, error) {
	f, err := os.Open(l.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &internal.LedgerError{Path: l.Path, Op: "read", Err: err}
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, &internal.LedgerError{Path: l.Path, Op: "read", Err: err}
	}

	var records []*Record
	for _, row := range rows {
		if len(row) > 0 && row[0] == Header[0] {
			continue
		}
		rec, err := ParseRecord(row)
		if err != nil {
			return nil, &internal.LedgerError{Path: l.Path, Op: "read", Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}
